// Package pipeline runs the full sprite-extrusion pipeline as a pure
// function of (image, options): alpha density field, contour
// extraction, mesh assembly, texture repair, and GLB packing. Each
// invocation owns its inputs and outputs; regeneration after an option
// change is a fresh call, never an incremental update.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"sprite-extruder/internal/field"
	"sprite-extruder/internal/glb"
	"sprite-extruder/internal/imaging"
	"sprite-extruder/internal/march"
	"sprite-extruder/internal/mesh"
	"sprite-extruder/internal/repair"
)

// ErrOptions marks configuration errors, rejected before any
// processing. Serialization failures wrap different errors so callers
// can tell bad input from internal encoding trouble.
var ErrOptions = errors.New("invalid options")

// Options configures one pipeline invocation.
type Options struct {
	// CellSize is the edge length, in pixels, of one density grid cell.
	CellSize int
	// Iso is the density threshold separating inside from outside.
	Iso float64
	// Thickness is the total extrusion depth of the model.
	Thickness float64
	// NormalUVOffset nudges silhouette UVs outward, in pixels, past
	// semi-transparent boundary pixels.
	NormalUVOffset float64
	// BlurSigma is the Gaussian pre-pass applied to the image before
	// field sampling; 0 disables the blur.
	BlurSigma float64
	// Height fixes the model height; width follows the image aspect
	// ratio.
	Height float64

	FrontFace bool
	BackFace  bool
	SideWalls bool

	// MaxSize, when positive, downscales larger inputs so their longer
	// edge is at most this many pixels before processing.
	MaxSize int
}

// Default returns the documented default options.
func Default() Options {
	return Options{
		CellSize:       10,
		Iso:            0.5,
		Thickness:      0.1,
		NormalUVOffset: 2.0,
		BlurSigma:      10.0,
		Height:         1.0,
		FrontFace:      true,
		BackFace:       true,
		SideWalls:      true,
	}
}

// Validate rejects configuration errors before any processing begins.
func (o Options) Validate() error {
	switch {
	case o.CellSize <= 0:
		return fmt.Errorf("pipeline: %w: cell size %d", ErrOptions, o.CellSize)
	case o.Thickness <= 0:
		return fmt.Errorf("pipeline: %w: thickness %g", ErrOptions, o.Thickness)
	case o.Height <= 0:
		return fmt.Errorf("pipeline: %w: height %g", ErrOptions, o.Height)
	case o.BlurSigma < 0:
		return fmt.Errorf("pipeline: %w: blur sigma %g", ErrOptions, o.BlurSigma)
	case o.NormalUVOffset < 0:
		return fmt.Errorf("pipeline: %w: uv offset %g", ErrOptions, o.NormalUVOffset)
	}
	return nil
}

// Result is the output of one invocation: the extruded vertex buffer
// and the repaired texture. A fully transparent image produces an empty
// vertex slice, which is valid.
type Result struct {
	Vertices []mesh.Vertex
	Texture  *image.NRGBA
}

// Generate runs mesh generation and texture repair over img. The two
// stages read the same source and write disjoint outputs, so they run
// concurrently.
func Generate(img *image.NRGBA, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("pipeline: %w", field.ErrEmptyImage)
	}
	img = imaging.Downscale(img, opts.MaxSize)

	var (
		wg       sync.WaitGroup
		vertices []mesh.Vertex
		texture  *image.NRGBA
		meshErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		vertices, meshErr = generateMesh(img, opts)
	}()
	go func() {
		defer wg.Done()
		texture = repair.Repair(img)
	}()
	wg.Wait()

	if meshErr != nil {
		return nil, meshErr
	}
	return &Result{Vertices: vertices, Texture: texture}, nil
}

func generateMesh(img *image.NRGBA, opts Options) ([]mesh.Vertex, error) {
	src := imaging.Blur(img, opts.BlurSigma)
	grid, err := field.Build(src, opts.CellSize)
	if err != nil {
		return nil, err
	}

	// March one cell beyond the grid on every side so silhouettes
	// touching the image edge still close against the zero border ring.
	bb := march.Rect{MinX: -1, MinY: -1, MaxX: grid.Width, MaxY: grid.Height}
	faces := march.Triangles(bb, grid.Sample, opts.Iso)

	return mesh.Assemble(faces, img.Bounds().Size(), mesh.Options{
		CellSize:       opts.CellSize,
		Iso:            opts.Iso,
		NormalUVOffset: opts.NormalUVOffset,
		Thickness:      opts.Thickness,
		Height:         opts.Height,
		FrontFace:      opts.FrontFace,
		BackFace:       opts.BackFace,
		SideWalls:      opts.SideWalls,
	}), nil
}

// EncodeGLB packs a pipeline result into a binary glTF container.
func EncodeGLB(res *Result) ([]byte, error) {
	png, err := imaging.EncodePNG(res.Texture)
	if err != nil {
		return nil, err
	}
	packed := make([]glb.Vertex, len(res.Vertices))
	for i, v := range res.Vertices {
		packed[i] = glb.Vertex{
			Position: [3]float32{v.Position.X(), v.Position.Y(), v.Position.Z()},
			UV:       [2]float32{v.UV.X(), v.UV.Y()},
		}
	}
	return glb.Encode(packed, png)
}
