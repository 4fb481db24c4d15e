package imaging

import (
	"image"
	"math"
)

// Blur applies a separable Gaussian blur with the given sigma and
// returns a new image. Sigma <= 0 returns the input unchanged. Edges
// are clamp-extended. Two 1-D passes keep the cost at
// O(w*h*kernelSize) instead of O(w*h*kernelSize²).
func Blur(img *image.NRGBA, sigma float64) *image.NRGBA {
	if sigma <= 0 {
		return img
	}
	kernel := gaussianKernel(sigma)
	half := len(kernel) / 2

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	// Horizontal pass into a float buffer.
	tmp := make([]float64, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a float64
			for k, weight := range kernel {
				kx := clampInt(x+k-half, 0, w-1)
				i := img.PixOffset(b.Min.X+kx, b.Min.Y+y)
				r += float64(img.Pix[i]) * weight
				g += float64(img.Pix[i+1]) * weight
				bl += float64(img.Pix[i+2]) * weight
				a += float64(img.Pix[i+3]) * weight
			}
			i := (y*w + x) * 4
			tmp[i] = r
			tmp[i+1] = g
			tmp[i+2] = bl
			tmp[i+3] = a
		}
	}

	// Vertical pass back to bytes.
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a float64
			for k, weight := range kernel {
				ky := clampInt(y+k-half, 0, h-1)
				i := (ky*w + x) * 4
				r += tmp[i] * weight
				g += tmp[i+1] * weight
				bl += tmp[i+2] * weight
				a += tmp[i+3] * weight
			}
			i := out.PixOffset(x, y)
			out.Pix[i] = clampUint8(r)
			out.Pix[i+1] = clampUint8(g)
			out.Pix[i+2] = clampUint8(bl)
			out.Pix[i+3] = clampUint8(a)
		}
	}
	return out
}

// gaussianKernel builds a normalized 1-D kernel with half-size
// ceil(3*sigma), covering 99.7% of the distribution.
func gaussianKernel(sigma float64) []float64 {
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float64, half*2+1)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
