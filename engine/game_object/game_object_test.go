package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	obj := NewGameObject(WithName("group"))
	assert.True(t, obj.Visible())
	assert.Equal(t, [3]float32{1, 1, 1}, obj.Scale())
	assert.Nil(t, obj.Geometry())
	assert.Nil(t, obj.Parent())
	assert.Equal(t, "group", obj.Name())
}

func TestMesh(t *testing.T) {
	g := geometry.NewBoxGeometry(1, 1, 1)
	m := material.NewBasicMaterial()
	mesh := NewMesh(g, m, WithPosition(1, 2, 3))

	assert.Same(t, g, mesh.Geometry())
	assert.Same(t, m, mesh.Material())
	assert.Equal(t, [3]float32{1, 2, 3}, mesh.Position())
}

func TestAddReparents(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	child := NewGameObject()

	a.Add(child)
	require.Len(t, a.Children(), 1)
	assert.Same(t, a, child.Parent())

	b.Add(child)
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)
	assert.Same(t, b, child.Parent())

	b.Remove(child)
	assert.Nil(t, child.Parent())
	assert.Empty(t, b.Children())
}

func TestAddRejectsCycles(t *testing.T) {
	root := NewGameObject()
	child := NewGameObject()
	root.Add(child)

	root.Add(root)
	child.Add(root)
	assert.Len(t, root.Children(), 1)
	assert.Empty(t, child.Children())
	assert.Nil(t, root.Parent())
}

func TestWorldMatrixComposesParents(t *testing.T) {
	parent := NewGameObject(WithPosition(0, 0, 5), WithScale(2, 2, 2))
	child := NewGameObject(WithPosition(1, 0, 0))
	parent.Add(child)

	assert.Equal(t, [3]float32{2, 0, 5}, child.WorldPosition())

	parent.SetRotation(0, math32.Pi/2, 0)
	p := child.WorldPosition()
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 3, p[2], 1e-5)
}

func TestTraverseSkipsSubtree(t *testing.T) {
	root := NewGameObject(WithName("root"))
	hidden := NewGameObject(WithName("hidden"), WithVisible(false))
	leaf := NewGameObject(WithName("leaf"))
	other := NewGameObject(WithName("other"))
	hidden.Add(leaf)
	root.Add(hidden, other)

	var names []string
	root.Traverse(func(o GameObject) bool {
		if !o.Visible() {
			return false
		}
		names = append(names, o.Name())
		return true
	})
	assert.Equal(t, []string{"root", "other"}, names)
}

func TestRefsAndAdvance(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(0, 1, 0))

	assert.True(t, obj.PositionRef().Set("x", 4))
	assert.Equal(t, [3]float32{4, 0, 0}, obj.Position())

	obj.RotationRef().Set("x", 0.5)
	obj.Advance(0.25)
	assert.Equal(t, [3]float32{0.5, 0.25, 0}, obj.Rotation())

	obj.ScaleRef().Set("z", 3)
	assert.Equal(t, [3]float32{1, 1, 3}, obj.Scale())
}
