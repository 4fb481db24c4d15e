package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"sprite-extruder/internal/march"
)

// Table maps an exact boundary position to its outward 2-D normal.
// Keys compare by exact float value; every boundary position is produced
// by the extractor's deterministic interpolation rule, so positions
// shared between faces are bit-identical.
type Table map[[2]float32]mgl32.Vec2

// BuildNormals superimposes the normals of all silhouette edges: face
// edges whose endpoints both carry density exactly iso. The edge
// direction rotated 90° gives the outward normal for both endpoints.
// A position touched by several silhouette edges keeps the last-written
// normal; sharp corners may show lighting seams because of this.
func BuildNormals(faces []march.Face, iso float64) Table {
	t := make(Table)
	for _, face := range faces {
		for i := range face {
			a := face[i]
			b := face[(i+1)%3]
			if a.Value != iso || b.Value != iso {
				continue
			}
			n := normalizeOrZero(rotate90(b.Pos.Sub(a.Pos)))
			t[key(a.Pos)] = n
			t[key(b.Pos)] = n
		}
	}
	return t
}

func key(p mgl32.Vec2) [2]float32 {
	return [2]float32{p.X(), p.Y()}
}

func rotate90(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{-v.Y(), v.X()}
}

func normalizeOrZero(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec2{}
	}
	return v.Mul(1 / l)
}
