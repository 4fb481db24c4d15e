// Package repair rewrites transparent pixels with the color of the
// nearest fully opaque pixel so texture sampling near the silhouette
// never picks up undefined color.
package repair

import "image"

// Sentinel is the fill color a pixel keeps when the image contains no
// fully opaque pixel at all (degenerate but valid input).
var Sentinel = [4]uint8{0, 0, 255, 255}

type span struct {
	x, y   int // pixel being filled
	sx, sy int // its nearest opaque source
}

// Repair runs a multi-source breadth-first flood fill: every pixel with
// alpha 255 seeds the queue as its own source, and each remaining pixel
// receives the RGB of its graph-geodesically nearest (4-connected)
// source. Neighbors are marked visited at enqueue time so every pixel is
// assigned exactly once. The output alpha is 255 everywhere.
func Repair(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		out.Pix[i*4+0] = Sentinel[0]
		out.Pix[i*4+1] = Sentinel[1]
		out.Pix[i*4+2] = Sentinel[2]
		out.Pix[i*4+3] = Sentinel[3]
	}

	visited := make([]bool, w*h)
	queue := make([]span, 0, w*h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+3] == 255 {
				queue = append(queue, span{x, y, x, y})
				visited[y*w+x] = true
			}
		}
	}

	dirs := [4][2]int{{-1, 0}, {1, 0}, {0, 1}, {0, -1}}
	for head := 0; head < len(queue); head++ {
		s := queue[head]
		src := img.PixOffset(b.Min.X+s.sx, b.Min.Y+s.sy)
		dst := out.PixOffset(s.x, s.y)
		out.Pix[dst+0] = img.Pix[src+0]
		out.Pix[dst+1] = img.Pix[src+1]
		out.Pix[dst+2] = img.Pix[src+2]
		out.Pix[dst+3] = 255

		for _, d := range dirs {
			nx, ny := s.x+d[0], s.y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if visited[ny*w+nx] {
				continue
			}
			visited[ny*w+nx] = true
			queue = append(queue, span{nx, ny, s.sx, s.sy})
		}
	}

	return out
}
