package geometry

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertOutwardWinding checks that every triangle winds counter-clockwise around its vertex normal.
func assertOutwardWinding(t *testing.T, g Geometry) {
	t.Helper()
	verts := g.Vertices()
	for i := 0; i < g.PrimitiveCount(); i++ {
		p := g.Primitive(i)
		a, b, c := verts[p[0]], verts[p[1]], verts[p[2]]
		n := common.Cross3(common.Sub3(b.Position, a.Position), common.Sub3(c.Position, a.Position))
		if common.Length3(n) < 1e-9 {
			continue
		}
		assert.Greater(t, common.Dot3(n, a.Normal), float32(0), "triangle %d winds inward", i)
	}
}

func TestBoxGeometry(t *testing.T) {
	g := NewBoxGeometry(1, 2, 3)
	assert.Equal(t, Triangles, g.Mode())
	assert.Len(t, g.Vertices(), 24)
	assert.Equal(t, 12, g.PrimitiveCount())

	lo, hi := g.BoundingBox()
	assert.Equal(t, [3]float32{-0.5, -1, -1.5}, lo)
	assert.Equal(t, [3]float32{0.5, 1, 1.5}, hi)
	assertOutwardWinding(t, g)
}

func TestBoxGeometrySegments(t *testing.T) {
	g := NewBoxGeometry(1, 1, 1, 2, 3, 4)
	// faces: x (d×h) 4*3 cells twice, y (w×d) 2*4 twice, z (w×h) 2*3 twice
	assert.Equal(t, 2*2*(12+8+6), g.PrimitiveCount())
	assertOutwardWinding(t, g)
}

func TestPlaneGeometry(t *testing.T) {
	g := NewPlaneGeometry(2, 4)
	require.Len(t, g.Vertices(), 4)
	assert.Equal(t, 2, g.PrimitiveCount())
	for _, v := range g.Vertices() {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	}

	// the top-left corner has UV (0, 1)
	first := g.Vertices()[0]
	assert.Equal(t, [3]float32{-1, 2, 0}, first.Position)
	assert.Equal(t, [2]float32{0, 1}, first.UV)
	assertOutwardWinding(t, g)
}

func TestSphereGeometry(t *testing.T) {
	g := NewSphereGeometry(2, 8, 4)
	assert.Len(t, g.Vertices(), 9*5)
	// two triangles per cell, minus one per cell in each pole row
	assert.Equal(t, 2*8*4-2*8, g.PrimitiveCount())

	for _, v := range g.Vertices() {
		assert.InDelta(t, 2, common.Length3(v.Position), 1e-4)
	}
	assertOutwardWinding(t, g)

	def := NewSphereGeometry(1)
	assert.Len(t, def.Vertices(), 33*17)
}

func TestGeometryFromPositions(t *testing.T) {
	positions := []float32{
		-1, -1, 1, 1, -1, 1, 1, 1, 1,
		1, 1, 1, -1, 1, 1, -1, -1, 1,
	}
	g, err := NewGeometryFromPositions(positions)
	require.NoError(t, err)
	assert.Nil(t, g.Indices())
	assert.Equal(t, 2, g.PrimitiveCount())
	assert.Equal(t, [3]int{3, 4, 5}, g.Primitive(1))
	for _, v := range g.Vertices() {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	}

	_, err = NewGeometryFromPositions(positions[:7])
	assert.Error(t, err)
	_, err = NewGeometryFromPositions(nil)
	assert.Error(t, err)
}

func TestAxesHelper(t *testing.T) {
	g := NewAxesHelper(5)
	assert.Equal(t, Lines, g.Mode())
	assert.Equal(t, 3, g.PrimitiveCount())
	require.Len(t, g.Colors(), 6)
	assert.Equal(t, common.ColorGreen, g.Colors()[3])

	_, hi := g.BoundingBox()
	assert.Equal(t, [3]float32{5, 5, 5}, hi)
}
