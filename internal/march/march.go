// Package march extracts iso-contour triangles from a scalar grid.
//
// The algorithm ("marching triangles") walks every unit cell of the
// requested range, collects the cell's corners and threshold crossings
// in cyclic order, and fan-triangulates the resulting polygon. The
// output covers the region where the field is >= iso.
package march

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a 2-D contour vertex. Value is the field density it was
// produced at: exactly iso for interpolated boundary vertices, >= iso
// for grid corners.
type Vertex struct {
	Pos   mgl32.Vec2
	Value float64
}

// Face is one triangle of the filled region.
type Face [3]Vertex

// Rect is the integer cell range to march: cells [MinX,MaxX) × [MinY,MaxY).
// A cell (x,y) spans corners (x,y)..(x+1,y+1).
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Field maps integer grid coordinates to a density value.
type Field func(x, y int) float64

// Triangles marches bb and returns the contour triangles for f >= iso.
// The result is a flat list of independent triangles; vertices are not
// deduplicated across faces.
func Triangles(bb Rect, f Field, iso float64) []Face {
	var result []Face
	current := make([]Vertex, 0, 8)
	for x := bb.MinX; x < bb.MaxX; x++ {
		for y := bb.MinY; y < bb.MaxY; y++ {
			corners := [4][2]int{
				{x, y},
				{x + 1, y},
				{x + 1, y + 1},
				{x, y + 1},
			}
			current = current[:0]
			for i := range corners {
				a := corners[i]
				b := corners[(i+1)%4]
				va := f(a[0], a[1])
				vb := f(b[0], b[1])
				if va >= iso {
					current = append(current, Vertex{Pos: vec2(a), Value: va})
				}
				if v, ok := crossing(a, b, va, vb, iso); ok {
					current = append(current, v)
				}
				if vb >= iso {
					current = append(current, Vertex{Pos: vec2(b), Value: vb})
				}
			}
			for i := 1; i+1 < len(current); i++ {
				result = append(result, Face{current[0], current[i], current[i+1]})
			}
		}
	}
	return result
}

// crossing returns the interpolated vertex where segment a-b strictly
// crosses iso. Interpolation always starts from the lexicographically
// smaller corner so the two cells sharing an edge compute the crossing
// from the identical expression and land on the same float.
func crossing(a, b [2]int, va, vb, iso float64) (Vertex, bool) {
	if less(b, a) {
		a, b = b, a
		va, vb = vb, va
	}
	if va == vb {
		return Vertex{}, false
	}
	t := (iso - va) / (vb - va)
	if t <= 0 || t >= 1 {
		return Vertex{}, false
	}
	pa := vec2(a)
	pb := vec2(b)
	return Vertex{
		Pos:   pa.Add(pb.Sub(pa).Mul(float32(t))),
		Value: iso,
	}, true
}

func less(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func vec2(p [2]int) mgl32.Vec2 {
	return mgl32.Vec2{float32(p[0]), float32(p[1])}
}
