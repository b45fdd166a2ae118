package geometry

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/chewxy/math32"
)

// DrawMode tells the renderer how to assemble vertices into primitives.
type DrawMode int

const (
	// Triangles draws every three indices (or vertices) as a filled triangle.
	Triangles DrawMode = iota
	// Lines draws every two indices (or vertices) as a line segment.
	Lines
)

// Vertex is one corner of a primitive.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

type geometry struct {
	name     string
	mode     DrawMode
	vertices []Vertex
	indices  []uint32
	colors   []common.Color

	boundingMin [3]float32
	boundingMax [3]float32
}

// Geometry is an immutable vertex buffer with an optional index buffer.
// Without indices, vertices are consumed in order.
type Geometry interface {
	// Name returns the geometry's identifier.
	//
	// Returns:
	//   - string: the name, e.g. "box"
	Name() string

	// Mode returns how vertices are assembled into primitives.
	//
	// Returns:
	//   - DrawMode: Triangles or Lines
	Mode() DrawMode

	// Vertices returns the vertex buffer. Callers must not modify it.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices returns the index buffer, or nil for non-indexed geometry.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// Colors returns per-vertex colors, or nil when the geometry has none.
	//
	// Returns:
	//   - []common.Color: one color per vertex
	Colors() []common.Color

	// PrimitiveCount returns the number of triangles or line segments.
	//
	// Returns:
	//   - int: the primitive count
	PrimitiveCount() int

	// Primitive returns the vertex indices of the i-th primitive. For lines the third index is unused.
	//
	// Parameters:
	//   - i: primitive index in [0, PrimitiveCount())
	//
	// Returns:
	//   - [3]int: vertex indices
	Primitive(i int) [3]int

	// BoundingBox returns the axis-aligned bounds of all vertex positions.
	//
	// Returns:
	//   - min: the minimum corner
	//   - max: the maximum corner
	BoundingBox() (min, max [3]float32)
}

var _ Geometry = &geometry{}

// NewGeometry creates a Geometry from the provided options and computes its bounding box.
//
// Parameters:
//   - options: variadic list of GeometryBuilderOption functions
//
// Returns:
//   - Geometry: the new geometry
func NewGeometry(options ...GeometryBuilderOption) Geometry {
	g := &geometry{}
	for _, opt := range options {
		opt(g)
	}
	g.computeBoundingBox()
	return g
}

func (g *geometry) Name() string {
	return g.name
}

func (g *geometry) Mode() DrawMode {
	return g.mode
}

func (g *geometry) Vertices() []Vertex {
	return g.vertices
}

func (g *geometry) Indices() []uint32 {
	return g.indices
}

func (g *geometry) Colors() []common.Color {
	return g.colors
}

func (g *geometry) stride() int {
	if g.mode == Lines {
		return 2
	}
	return 3
}

func (g *geometry) PrimitiveCount() int {
	if g.indices != nil {
		return len(g.indices) / g.stride()
	}
	return len(g.vertices) / g.stride()
}

func (g *geometry) Primitive(i int) [3]int {
	s := g.stride()
	var p [3]int
	for k := 0; k < s; k++ {
		if g.indices != nil {
			p[k] = int(g.indices[i*s+k])
		} else {
			p[k] = i*s + k
		}
	}
	return p
}

func (g *geometry) BoundingBox() ([3]float32, [3]float32) {
	return g.boundingMin, g.boundingMax
}

func (g *geometry) computeBoundingBox() {
	if len(g.vertices) == 0 {
		return
	}
	lo := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, v := range g.vertices {
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], v.Position[k])
			hi[k] = math32.Max(hi[k], v.Position[k])
		}
	}
	g.boundingMin, g.boundingMax = lo, hi
}

// computeFlatNormals assigns each triangle's face normal to its three vertices.
// Only meaningful for non-indexed triangle geometry.
func computeFlatNormals(vertices []Vertex) {
	for i := 0; i+2 < len(vertices); i += 3 {
		a, b, c := vertices[i].Position, vertices[i+1].Position, vertices[i+2].Position
		n := common.Normalize3(common.Cross3(common.Sub3(b, a), common.Sub3(c, a)))
		vertices[i].Normal = n
		vertices[i+1].Normal = n
		vertices[i+2].Normal = n
	}
}
