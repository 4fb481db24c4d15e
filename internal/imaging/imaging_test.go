package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func fill(img *image.NRGBA, c [4]uint8) {
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:i+4], c[:])
	}
}

func TestGaussianKernel(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2.5, 10} {
		k := gaussianKernel(sigma)
		wantLen := 2*int(math.Ceil(sigma*3)) + 1
		if len(k) != wantLen {
			t.Errorf("sigma %v: expected %d taps, got %d", sigma, wantLen, len(k))
		}
		sum := 0.0
		for i := range k {
			sum += k[i]
			if k[i] != k[len(k)-1-i] {
				t.Errorf("sigma %v: kernel not symmetric at tap %d", sigma, i)
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sigma %v: kernel sums to %v", sigma, sum)
		}
		mid := len(k) / 2
		if k[mid] <= k[0] {
			t.Errorf("sigma %v: center tap must dominate", sigma)
		}
	}
}

func TestBlurZeroSigmaIsIdentity(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if out := Blur(img, 0); out != img {
		t.Error("sigma 0 should return the input untouched")
	}
	if out := Blur(img, -5); out != img {
		t.Error("negative sigma should return the input untouched")
	}
}

func TestBlurConstantImageUnchanged(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(img, [4]uint8{90, 120, 30, 200})

	out := Blur(img, 2)
	for i := 0; i < len(out.Pix); i += 4 {
		got := [4]uint8{out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3]}
		if got != [4]uint8{90, 120, 30, 200} {
			t.Fatalf("pixel %d: constant image changed to %v", i/4, got)
		}
	}
}

func TestBlurSpreadsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	img.Pix[img.PixOffset(4, 4)+3] = 255

	out := Blur(img, 1)
	center := out.Pix[out.PixOffset(4, 4)+3]
	neighbor := out.Pix[out.PixOffset(5, 4)+3]
	far := out.Pix[out.PixOffset(0, 0)+3]
	if center >= 255 {
		t.Errorf("center alpha should drop below 255, got %d", center)
	}
	if neighbor == 0 {
		t.Error("neighbor alpha should gain mass")
	}
	if neighbor >= center {
		t.Errorf("alpha must fall off with distance: center %d, neighbor %d", center, neighbor)
	}
	if far != 0 {
		t.Errorf("alpha leaked to the far corner: %d", far)
	}
}

func TestDownscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	fill(img, [4]uint8{10, 20, 30, 255})

	out := Downscale(img, 10)
	if b := out.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("expected 10x5, got %v", b)
	}

	tall := image.NewNRGBA(image.Rect(0, 0, 20, 80))
	if b := Downscale(tall, 8).Bounds(); b.Dx() != 2 || b.Dy() != 8 {
		t.Errorf("expected 2x8, got %v", b)
	}

	small := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	if out := Downscale(small, 10); out != small {
		t.Error("images within bounds should pass through untouched")
	}
	if out := Downscale(img, 0); out != img {
		t.Error("maxSize 0 should disable downscaling")
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	fill(img, [4]uint8{1, 2, 3, 255})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds changed in round trip: %v", b)
	}
}

func TestDecodeToNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fill(src, [4]uint8{50, 60, 70, 128})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	i := img.PixOffset(0, 0)
	if got := [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}; got != [4]uint8{50, 60, 70, 128} {
		t.Errorf("alpha must survive PNG decoding, got %v", got)
	}
}

func TestDecodeSniffsEveryFormat(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fill(src, [4]uint8{200, 100, 50, 255})

	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
		"tga":  func(b *bytes.Buffer) error { return tga.Encode(b, src) },
		"webp": func(b *bytes.Buffer) error { return nativewebp.Encode(b, src, nil) },
	}
	for format, encode := range encoders {
		var buf bytes.Buffer
		if err := encode(&buf); err != nil {
			t.Fatalf("%s: encode: %v", format, err)
		}
		img, err := Decode(&buf)
		if err != nil {
			t.Errorf("%s: decode: %v", format, err)
			continue
		}
		if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
			t.Errorf("%s: bounds changed to %v", format, b)
			continue
		}
		i := img.PixOffset(0, 0)
		got := [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
		if got != [4]uint8{200, 100, 50, 255} {
			t.Errorf("%s: pixel (0,0) decoded as %v", format, got)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("definitely not an image"))); err == nil {
		t.Error("expected error for unrecognizable data")
	}
}

func TestDecodeJPEGForcesOpaqueAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fill(src, [4]uint8{200, 100, 50, 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("JPEG has no alpha channel, expected 255, got %d", img.Pix[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSaveWebPRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(x * 50)
			img.Pix[i+1] = uint8(y * 60)
			img.Pix[i+2] = 128
			img.Pix[i+3] = 255
		}
	}

	path := filepath.Join(t.TempDir(), "texture.webp")
	if err := SaveWebP(path, img); err != nil {
		t.Fatal(err)
	}

	// Lossless encoding, so the load must be pixel-exact.
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := back.Bounds(); b.Dx() != 5 || b.Dy() != 4 {
		t.Fatalf("bounds changed in round trip: %v", b)
	}
	if !bytes.Equal(back.Pix, img.Pix) {
		t.Error("lossless WebP round trip changed pixel data")
	}
}
