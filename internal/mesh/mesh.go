// Package mesh turns 2-D contour triangles into the extruded
// front/back/side vertex buffer of a thick sprite.
package mesh

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"sprite-extruder/internal/march"
)

// Vertex is one output vertex of the extruded mesh.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

// Options controls mesh assembly.
type Options struct {
	// CellSize de-normalizes contour coordinates back to pixel space.
	CellSize int
	// Iso is the threshold the contour was extracted at; vertices with
	// exactly this density lie on the silhouette.
	Iso float64
	// NormalUVOffset nudges UV sampling outward along the silhouette
	// normal, in pixels, so the texture is not sampled on
	// semi-transparent boundary pixels.
	NormalUVOffset float64
	// Thickness is the total extrusion depth; front and back land at
	// z = ±Thickness/2.
	Thickness float64
	// Height is the fixed model height; X is scaled by the image aspect
	// ratio so proportions are preserved.
	Height float64

	FrontFace bool
	BackFace  bool
	SideWalls bool
}

// Assemble builds the final vertex buffer from contour faces. size is
// the source image size in pixels. An empty face list yields an empty
// (but valid) buffer.
//
// The back face reuses the front face's UV; vertices are emitted in
// reversed order per face so the winding stays correct.
func Assemble(faces []march.Face, size image.Point, opts Options) []Vertex {
	if len(faces) == 0 {
		return nil
	}
	normals := BuildNormals(faces, opts.Iso)

	w := float32(size.X)
	h := float32(size.Y)
	aspect := w / h
	cell := float32(opts.CellSize)
	offset := float32(opts.NormalUVOffset)
	halfThickness := float32(opts.Thickness) * 0.5
	halfHeight := float32(opts.Height) * 0.5

	var out []Vertex
	emit := func(v march.Vertex, z float32) {
		normal, onBoundary := normals[key(v.Pos)]

		// Contour coordinates are cell indices; sample at cell centers.
		pixel := v.Pos.Add(mgl32.Vec2{0.5, 0.5}).Mul(cell)
		pixel = pixel.Add(normal.Mul(offset))
		uv := mgl32.Vec2{pixel.X() / w, pixel.Y() / h}

		pos := mgl32.Vec3{uv.X()*2 - 1, uv.Y()*2 - 1, z}
		pos[2] *= halfThickness
		pos[1] *= halfHeight
		pos[0] *= halfHeight * aspect

		n3 := mgl32.Vec3{0, 0, 1}
		if onBoundary {
			n3 = mgl32.Vec3{normal.X(), normal.Y(), 0}
		}
		out = append(out, Vertex{Position: pos, UV: uv, Normal: n3})
	}

	if opts.FrontFace {
		for _, face := range faces {
			for _, v := range face {
				emit(v, 1)
			}
		}
	}
	if opts.BackFace {
		for _, face := range faces {
			for i := 2; i >= 0; i-- {
				emit(face[i], -1)
			}
		}
	}
	if opts.SideWalls {
		for _, face := range faces {
			for i := range face {
				a := face[i]
				b := face[(i+1)%3]
				if a.Value != opts.Iso || b.Value != opts.Iso {
					continue
				}
				// Two triangles joining the front and back rings.
				emit(a, 1)
				emit(a, -1)
				emit(b, -1)
				emit(a, 1)
				emit(b, -1)
				emit(b, 1)
			}
		}
	}
	return out
}
