package geometry

import "github.com/Carmen-Shannon/oxy-viewport/common"

// GeometryBuilderOption is a function that configures a geometry during construction.
type GeometryBuilderOption func(*geometry)

// WithName sets the geometry identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - GeometryBuilderOption: option function to apply
func WithName(name string) GeometryBuilderOption {
	return func(g *geometry) {
		g.name = name
	}
}

// WithVertices sets the vertex buffer.
//
// Parameters:
//   - vertices: the vertices, not copied
//
// Returns:
//   - GeometryBuilderOption: option function to apply
func WithVertices(vertices []Vertex) GeometryBuilderOption {
	return func(g *geometry) {
		g.vertices = vertices
	}
}

// WithIndices sets the index buffer.
//
// Parameters:
//   - indices: vertex indices, three per triangle or two per line
//
// Returns:
//   - GeometryBuilderOption: option function to apply
func WithIndices(indices []uint32) GeometryBuilderOption {
	return func(g *geometry) {
		g.indices = indices
	}
}

// WithMode sets how vertices are assembled into primitives.
//
// Parameters:
//   - mode: Triangles or Lines
//
// Returns:
//   - GeometryBuilderOption: option function to apply
func WithMode(mode DrawMode) GeometryBuilderOption {
	return func(g *geometry) {
		g.mode = mode
	}
}

// WithColors sets per-vertex colors.
//
// Parameters:
//   - colors: one color per vertex
//
// Returns:
//   - GeometryBuilderOption: option function to apply
func WithColors(colors []common.Color) GeometryBuilderOption {
	return func(g *geometry) {
		g.colors = colors
	}
}
