package repair

import (
	"image"
	"testing"
)

func setPixel(img *image.NRGBA, x, y int, c [4]uint8) {
	i := img.PixOffset(x, y)
	copy(img.Pix[i:i+4], c[:])
}

func pixel(img *image.NRGBA, x, y int) [4]uint8 {
	i := img.PixOffset(x, y)
	return [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

func TestSingleSourceFillsEverything(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	// Transparent pixels carry garbage color that must not leak through.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			setPixel(img, x, y, [4]uint8{77, 88, 99, 0})
		}
	}
	setPixel(img, 1, 1, [4]uint8{200, 10, 30, 255})

	out := Repair(img)
	want := [4]uint8{200, 10, 30, 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := pixel(out, x, y); got != want {
				t.Errorf("pixel (%d,%d): expected %v, got %v", x, y, got, want)
			}
		}
	}
}

func TestOpaquePixelsKeepTheirColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(img, 0, 0, [4]uint8{255, 0, 0, 255})
	setPixel(img, 1, 0, [4]uint8{0, 255, 0, 255})
	setPixel(img, 2, 0, [4]uint8{0, 0, 255, 255})

	out := Repair(img)
	for x, want := range [][4]uint8{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	} {
		if got := pixel(out, x, 0); got != want {
			t.Errorf("pixel (%d,0): expected %v, got %v", x, want, got)
		}
	}
}

func TestNoOpaquePixelLeavesSentinel(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			setPixel(img, x, y, [4]uint8{10, 20, 30, 254})
		}
	}

	out := Repair(img)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := pixel(out, x, y); got != Sentinel {
				t.Errorf("pixel (%d,%d): expected sentinel %v, got %v", x, y, Sentinel, got)
			}
		}
	}
}

func TestPartialAlphaIsNotASource(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	setPixel(img, 0, 0, [4]uint8{200, 0, 0, 255})
	setPixel(img, 1, 0, [4]uint8{0, 200, 0, 254})
	setPixel(img, 2, 0, [4]uint8{0, 0, 0, 0})

	out := Repair(img)
	want := [4]uint8{200, 0, 0, 255}
	for x := 0; x < 3; x++ {
		if got := pixel(out, x, 0); got != want {
			t.Errorf("pixel (%d,0): expected fill from the only opaque source, got %v", x, got)
		}
	}
}

func TestEqualDistanceFavorsEarlierSource(t *testing.T) {
	// Red at (0,0), green at (7,7). Pixels on the anti-diagonal x+y == 7
	// are equidistant from both; the source seeded first wins.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	setPixel(img, 0, 0, [4]uint8{255, 0, 0, 255})
	setPixel(img, 7, 7, [4]uint8{0, 255, 0, 255})

	out := Repair(img)
	red := [4]uint8{255, 0, 0, 255}
	green := [4]uint8{0, 255, 0, 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := pixel(out, x, y)
			switch {
			case x+y < 7:
				if got != red {
					t.Errorf("pixel (%d,%d): expected red, got %v", x, y, got)
				}
			case x+y > 7:
				if got != green {
					t.Errorf("pixel (%d,%d): expected green, got %v", x, y, got)
				}
			default:
				if got != red {
					t.Errorf("pixel (%d,%d): tie should favor the first source, got %v", x, y, got)
				}
			}
		}
	}
}

func TestSubimageOffsetBounds(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	setPixel(base, 3, 3, [4]uint8{9, 9, 9, 255})
	sub := base.SubImage(image.Rect(2, 2, 6, 6)).(*image.NRGBA)

	out := Repair(sub)
	if got := out.Bounds(); got != image.Rect(0, 0, 4, 4) {
		t.Fatalf("output must be rebased at the origin, got %v", got)
	}
	want := [4]uint8{9, 9, 9, 255}
	if got := pixel(out, 1, 1); got != want {
		t.Errorf("expected source color at rebased (1,1), got %v", got)
	}
	if got := pixel(out, 3, 3); got != want {
		t.Errorf("expected fill at rebased (3,3), got %v", got)
	}
}
