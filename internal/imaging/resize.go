package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// Downscale shrinks img so its longer edge is at most maxSize pixels,
// preserving aspect ratio. Images already within bounds (or maxSize <= 0)
// are returned unchanged. CatmullRom keeps the alpha silhouette smooth
// enough for field construction.
func Downscale(img *image.NRGBA, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	newW, newH := maxSize, maxSize
	if w > h {
		newH = h * maxSize / w
	} else {
		newW = w * maxSize / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
