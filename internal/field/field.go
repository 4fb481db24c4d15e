package field

import (
	"errors"
	"fmt"
	"image"
)

// Configuration errors, reported before any processing starts.
var (
	ErrEmptyImage = errors.New("image has zero area")
	ErrCellSize   = errors.New("cell size must be positive")
)

// Grid is an immutable 2-D density field built from an image's alpha
// channel. Cell values are in [0,1]: the mean alpha coverage of the
// pixel block the cell covers.
type Grid struct {
	Width    int
	Height   int
	CellSize int
	cells    []float64 // row-major, len = Width*Height
}

// Build rasterizes the alpha channel of img into a grid of
// cellSize×cellSize blocks. Grid dimensions are ceil(imageDim/cellSize).
// Blocks at the right/bottom edge may cover fewer pixels; their value is
// divided by the true pixel count, not the nominal cellSize².
func Build(img *image.NRGBA, cellSize int) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("field: %w (got %d)", ErrCellSize, cellSize)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("field: %w", ErrEmptyImage)
	}

	gw := (w + cellSize - 1) / cellSize
	gh := (h + cellSize - 1) / cellSize
	cells := make([]float64, gw*gh)

	for y := 0; y < h; y++ {
		row := img.PixOffset(b.Min.X, b.Min.Y+y)
		cy := y / cellSize
		for x := 0; x < w; x++ {
			a := img.Pix[row+x*4+3]
			cells[cy*gw+x/cellSize] += float64(a) / 255.0
		}
	}

	for cy := 0; cy < gh; cy++ {
		ph := min(cellSize, h-cy*cellSize)
		for cx := 0; cx < gw; cx++ {
			pw := min(cellSize, w-cx*cellSize)
			cells[cy*gw+cx] /= float64(pw * ph)
		}
	}

	return &Grid{Width: gw, Height: gh, CellSize: cellSize, cells: cells}, nil
}

// Sample returns the density at integer grid coordinates. Coordinates
// outside the grid return 0, giving the contour extractor a zero border
// ring so silhouettes touching the image edge still close.
func (g *Grid) Sample(x, y int) float64 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.cells[y*g.Width+x]
}
