package common

import "github.com/chewxy/math32"

// Plane is the set of points p with Dot3(Normal, p) + Distance == 0.
// Points with a positive signed distance lie in front of the plane.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// SignedDistance returns the distance from p to the plane, positive on the normal side.
func (p Plane) SignedDistance(pt [3]float32) float32 {
	return Dot3(p.Normal, pt) + p.Distance
}

// Frustum is the six planes bounding what a camera can see, each facing inward.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// FrustumFromMatrix extracts the frustum of a column-major view-projection matrix with a
// clip-space depth range of [0, 1] (the range Perspective produces).
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - vp: the view-projection matrix
//
// Returns:
//   - Frustum: the frustum with unit-length plane normals
func FrustumFromMatrix(vp []float32) Frustum {
	// row i of the matrix is (vp[i], vp[4+i], vp[8+i], vp[12+i])
	row := func(i int) [4]float32 {
		return [4]float32{vp[i], vp[4+i], vp[8+i], vp[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combos := [6][4]float32{
		addRow(r3, r0, 1),
		addRow(r3, r0, -1),
		addRow(r3, r1, 1),
		addRow(r3, r1, -1),
		r2, // depth range starts at 0, so near is row2 alone
		addRow(r3, r2, -1),
	}

	var f Frustum
	for i, c := range combos {
		n := [3]float32{c[0], c[1], c[2]}
		l := Length3(n)
		if l > 0 {
			f.Planes[i] = Plane{Normal: Scale3(n, 1/l), Distance: c[3] / l}
		}
	}
	return f
}

func addRow(a, b [4]float32, sign float32) [4]float32 {
	return [4]float32{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2], a[3] + sign*b[3]}
}

// IntersectsBox reports whether an axis-aligned box is at least partly inside the frustum.
// The test is conservative: boxes near a frustum corner may pass without being visible.
//
// Parameters:
//   - min, max: the box corners
//
// Returns:
//   - bool: false only if the box is entirely outside one plane
func (f Frustum) IntersectsBox(min, max [3]float32) bool {
	for _, p := range f.Planes {
		// the corner furthest along the plane normal
		var v [3]float32
		for i := range 3 {
			if p.Normal[i] >= 0 {
				v[i] = max[i]
			} else {
				v[i] = min[i]
			}
		}
		if p.SignedDistance(v) < 0 {
			return false
		}
	}
	return true
}

// TransformBox returns the world-space bounds of a local box under the column-major matrix m.
//
// Parameters:
//   - m: the local-to-world matrix
//   - min, max: the local box corners
//
// Returns:
//   - [3]float32: the world minimum corner
//   - [3]float32: the world maximum corner
func TransformBox(m []float32, min, max [3]float32) ([3]float32, [3]float32) {
	lo := [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	hi := [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	for c := range 8 {
		corner := [3]float32{min[0], min[1], min[2]}
		if c&1 != 0 {
			corner[0] = max[0]
		}
		if c&2 != 0 {
			corner[1] = max[1]
		}
		if c&4 != 0 {
			corner[2] = max[2]
		}
		p := TransformPoint4(m, corner, 1)
		for i := range 3 {
			lo[i] = math32.Min(lo[i], p[i])
			hi[i] = math32.Max(hi[i], p[i])
		}
	}
	return lo, hi
}
