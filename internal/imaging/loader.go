// Package imaging handles image I/O and the pixel-level pre-passes the
// pipeline needs: decoding to NRGBA, downscaling, Gaussian blur, and
// encoding the repaired texture.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Load reads an image file (PNG, JPEG, TGA, WebP or BMP) and returns it
// as NRGBA.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: read %s: %w", path, err)
	}
	img, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes PNG, JPEG, WebP, BMP or TGA data to NRGBA. The format
// is sniffed from the header by hand: TGA has no magic bytes, so it is
// the fallback, and the TGA decoder cannot be registered with
// image.Decode without its empty magic prefix capturing every input.
func Decode(r io.Reader) (*image.NRGBA, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return toNRGBA(img), nil
}

func decode(raw []byte) (image.Image, error) {
	switch {
	case bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")):
		return png.Decode(bytes.NewReader(raw))
	case bytes.HasPrefix(raw, []byte{0xFF, 0xD8}):
		return jpeg.Decode(bytes.NewReader(raw))
	case len(raw) >= 12 && string(raw[0:4]) == "RIFF" && string(raw[8:12]) == "WEBP":
		return webp.Decode(bytes.NewReader(raw))
	case bytes.HasPrefix(raw, []byte("BM")):
		return bmp.Decode(bytes.NewReader(raw))
	default:
		return tga.Decode(bytes.NewReader(raw))
	}
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha channel: draw and force alpha to 255.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 255
		}
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
