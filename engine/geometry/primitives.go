package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/chewxy/math32"
)

// face describes one side of a box: u×v equals the outward normal n.
type face struct {
	u, v, n [3]float32
}

// boxFaces are in px, nx, py, ny, pz, nz order.
var boxFaces = [6]face{
	{u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}, n: [3]float32{1, 0, 0}},
	{u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}, n: [3]float32{-1, 0, 0}},
	{u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}, n: [3]float32{0, 1, 0}},
	{u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}, n: [3]float32{0, -1, 0}},
	{u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}, n: [3]float32{0, 0, 1}},
	{u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}, n: [3]float32{0, 0, -1}},
}

func absDot(a, b [3]float32) float32 {
	return math32.Abs(common.Dot3(a, b))
}

// appendGrid adds a (segU+1)×(segV+1) vertex grid centered at center and spanning sizeU×sizeV
// along f.u and f.v, with UV (0,0) in the bottom-left corner, plus its counter-clockwise triangles.
func appendGrid(vertices []Vertex, indices []uint32, f face, center [3]float32, sizeU, sizeV float32, segU, segV int) ([]Vertex, []uint32) {
	base := uint32(len(vertices))
	for iy := 0; iy <= segV; iy++ {
		ty := float32(iy) / float32(segV)
		for ix := 0; ix <= segU; ix++ {
			tx := float32(ix) / float32(segU)
			p := common.Add3(center, common.Scale3(f.u, (tx-0.5)*sizeU))
			p = common.Add3(p, common.Scale3(f.v, (0.5-ty)*sizeV))
			vertices = append(vertices, Vertex{Position: p, Normal: f.n, UV: [2]float32{tx, 1 - ty}})
		}
	}

	row := uint32(segU + 1)
	for iy := 0; iy < segV; iy++ {
		for ix := 0; ix < segU; ix++ {
			a := base + uint32(ix) + row*uint32(iy)
			b := base + uint32(ix) + row*uint32(iy+1)
			c := base + uint32(ix+1) + row*uint32(iy+1)
			d := base + uint32(ix+1) + row*uint32(iy)
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return vertices, indices
}

func segments(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// NewBoxGeometry creates an axis-aligned box centered at the origin. Each face has its own
// vertices so normals and UVs are per face.
//
// Parameters:
//   - width, height, depth: extents along x, y and z
//   - seg: optional segment counts along width, height and depth (default 1)
//
// Returns:
//   - Geometry: the box
func NewBoxGeometry(width, height, depth float32, seg ...int) Geometry {
	s := [3]int{1, 1, 1}
	for i := 0; i < len(seg) && i < 3; i++ {
		s[i] = segments(seg[i])
	}
	dims := [3]float32{width, height, depth}

	var (
		vertices []Vertex
		indices  []uint32
	)
	for _, f := range boxFaces {
		sizeU := absDot(f.u, dims)
		sizeV := absDot(f.v, dims)
		segU := s[axisOf(f.u)]
		segV := s[axisOf(f.v)]
		center := common.Scale3(f.n, absDot(f.n, dims)/2)
		vertices, indices = appendGrid(vertices, indices, f, center, sizeU, sizeV, segU, segV)
	}
	return NewGeometry(WithName("box"), WithVertices(vertices), WithIndices(indices))
}

func axisOf(v [3]float32) int {
	for i, c := range v {
		if c != 0 {
			return i
		}
	}
	return 0
}

// NewPlaneGeometry creates a plane in the XY plane facing +Z, centered at the origin.
//
// Parameters:
//   - width, height: extents along x and y
//   - seg: optional segment counts along width and height (default 1)
//
// Returns:
//   - Geometry: the plane
func NewPlaneGeometry(width, height float32, seg ...int) Geometry {
	segU, segV := 1, 1
	if len(seg) > 0 {
		segU = segments(seg[0])
	}
	if len(seg) > 1 {
		segV = segments(seg[1])
	}
	vertices, indices := appendGrid(nil, nil, boxFaces[4], [3]float32{}, width, height, segU, segV)
	return NewGeometry(WithName("plane"), WithVertices(vertices), WithIndices(indices))
}

// NewSphereGeometry creates a UV sphere centered at the origin.
//
// Parameters:
//   - radius: the sphere radius
//   - seg: optional width (longitude) and height (latitude) segment counts, default 32 and 16
//
// Returns:
//   - Geometry: the sphere
func NewSphereGeometry(radius float32, seg ...int) Geometry {
	widthSeg, heightSeg := 32, 16
	if len(seg) > 0 {
		widthSeg = max(3, seg[0])
	}
	if len(seg) > 1 {
		heightSeg = max(2, seg[1])
	}

	vertices := make([]Vertex, 0, (widthSeg+1)*(heightSeg+1))
	for iy := 0; iy <= heightSeg; iy++ {
		v := float32(iy) / float32(heightSeg)
		for ix := 0; ix <= widthSeg; ix++ {
			u := float32(ix) / float32(widthSeg)
			sinV := math32.Sin(v * math32.Pi)
			n := [3]float32{
				-math32.Cos(u*2*math32.Pi) * sinV,
				math32.Cos(v * math32.Pi),
				math32.Sin(u*2*math32.Pi) * sinV,
			}
			vertices = append(vertices, Vertex{
				Position: common.Scale3(n, radius),
				Normal:   n,
				UV:       [2]float32{u, 1 - v},
			})
		}
	}

	row := uint32(widthSeg + 1)
	var indices []uint32
	for iy := 0; iy < heightSeg; iy++ {
		for ix := 0; ix < widthSeg; ix++ {
			a := uint32(iy)*row + uint32(ix+1)
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix+1)
			// the pole rows collapse to single triangles
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSeg-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return NewGeometry(WithName("sphere"), WithVertices(vertices), WithIndices(indices))
}

// NewGeometryFromPositions creates non-indexed triangle geometry from a flat x,y,z position
// list, three vertices per triangle. Normals are computed per face and UVs are zero.
//
// Parameters:
//   - positions: flat coordinates, length a multiple of 9
//
// Returns:
//   - Geometry: the geometry
//   - error: error if the length is not a whole number of triangles
func NewGeometryFromPositions(positions []float32) (Geometry, error) {
	if len(positions) == 0 || len(positions)%9 != 0 {
		return nil, fmt.Errorf("position count %d is not a whole number of triangles", len(positions))
	}
	vertices := make([]Vertex, len(positions)/3)
	for i := range vertices {
		vertices[i].Position = [3]float32{positions[i*3], positions[i*3+1], positions[i*3+2]}
	}
	computeFlatNormals(vertices)
	return NewGeometry(WithName("buffer"), WithVertices(vertices)), nil
}

// NewAxesHelper creates three line segments from the origin along +X (red), +Y (green) and +Z (blue).
//
// Parameters:
//   - size: the length of each axis
//
// Returns:
//   - Geometry: line geometry with per-vertex colors
func NewAxesHelper(size float32) Geometry {
	vertices := []Vertex{
		{}, {Position: [3]float32{size, 0, 0}},
		{}, {Position: [3]float32{0, size, 0}},
		{}, {Position: [3]float32{0, 0, size}},
	}
	colors := []common.Color{
		common.ColorRed, common.ColorRed,
		common.ColorGreen, common.ColorGreen,
		common.ColorBlue, common.ColorBlue,
	}
	return NewGeometry(WithName("axes"), WithMode(Lines), WithVertices(vertices), WithColors(colors))
}
