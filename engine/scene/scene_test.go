package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube(options ...game_object.GameObjectBuilderOption) game_object.GameObject {
	return game_object.NewMesh(geometry.NewBoxGeometry(1, 1, 1), material.NewBasicMaterial(), options...)
}

func TestAddAssignsIDs(t *testing.T) {
	s := NewScene("main")
	parent := cube()
	child := cube()
	parent.Add(child)

	s.Add(parent)
	assert.Equal(t, 2, s.Count())
	assert.NotZero(t, parent.ID())
	assert.NotEqual(t, parent.ID(), child.ID())
	assert.Same(t, child, s.Get(child.ID()))
	assert.Same(t, s.Root(), parent.Parent())
}

func TestLateChildrenAreRegistered(t *testing.T) {
	s := NewScene("main")
	parent := cube()
	s.Add(parent)

	late := cube()
	grandchild := cube()
	late.Add(grandchild)
	parent.Add(late)

	assert.Equal(t, 3, s.Count())
	assert.NotZero(t, late.ID())
	assert.Same(t, late, s.Get(late.ID()))
	assert.Same(t, grandchild, s.Get(grandchild.ID()))
	assert.Len(t, s.Drawables(), 3)

	parent.Remove(late)
	assert.Equal(t, 1, s.Count())
	assert.Nil(t, s.Get(grandchild.ID()), "detached through the parent, so gone from the registry")
}

func TestOnlyAttachedNodesDraw(t *testing.T) {
	s := NewScene("main")
	attached := cube()
	detached := cube()
	s.Add(attached)

	ds := s.Drawables()
	require.Len(t, ds, 1)
	assert.Same(t, attached, ds[0].Object)

	s.Remove(attached)
	assert.Empty(t, s.Drawables())
	assert.Equal(t, 0, s.Count())
	assert.Nil(t, attached.Parent())
	assert.Nil(t, detached.Parent())
}

func TestHiddenSubtreeIsSkipped(t *testing.T) {
	s := NewScene("main")
	group := game_object.NewGameObject()
	group.Add(cube(), cube())
	s.Add(group, cube())
	assert.Len(t, s.Drawables(), 3)

	group.SetVisible(false)
	assert.Len(t, s.Drawables(), 1)
}

func TestDrawableWorldMatrix(t *testing.T) {
	s := NewScene("main")
	group := game_object.NewGameObject(game_object.WithPosition(0, 2, 0))
	mesh := cube(game_object.WithPosition(1, 0, 0))
	group.Add(mesh)
	s.Add(group)

	ds := s.Drawables()
	require.Len(t, ds, 1)
	assert.Equal(t, [3]float32{1, 2, 0}, [3]float32{ds[0].World[12], ds[0].World[13], ds[0].World[14]})
}

func TestLightsFollowNodes(t *testing.T) {
	s := NewScene("main")
	sun := light.NewDirectionalLight(0xf5f5f5, 1)
	node := game_object.NewGameObject(game_object.WithLight(sun), game_object.WithPosition(5, 7, 10))
	off := light.NewAmbientLight(0xffffff, 1)
	off.SetEnabled(false)
	s.Add(node, game_object.NewGameObject(game_object.WithLight(off)))

	lights := s.Lights()
	require.Len(t, lights, 1)
	assert.Equal(t, [3]float32{5, 7, 10}, lights[0].Position())

	node.SetVisible(false)
	assert.Empty(t, s.Lights())
}

func TestBackground(t *testing.T) {
	assert.False(t, NewScene("empty").Background().HasColor)

	s := NewScene("main", WithBackgroundColor(common.ColorBlack))
	bg := s.Background()
	assert.Equal(t, common.ColorBlack, bg.Color)
	assert.True(t, bg.HasColor)
	assert.Nil(t, bg.Texture)

	env := texture.NewTexture()
	s.SetBackground(env)
	s.SetEnvironment(env)
	assert.Same(t, env, s.Background().Texture)
	assert.Same(t, env, s.Environment())

	s.SetBackgroundColor(common.ColorWhite)
	bg = s.Background()
	assert.Nil(t, bg.Texture)
	assert.Equal(t, common.ColorWhite, bg.Color)
}

func TestUpdateAdvancesSpin(t *testing.T) {
	s := NewScene("main")
	spinner := cube(game_object.WithRotationSpeed(0, 2, 0))
	s.Add(spinner)

	s.Update(0.5)
	assert.Equal(t, [3]float32{0, 1, 0}, spinner.Rotation())
}

func TestClear(t *testing.T) {
	s := NewScene("main", WithObjects(cube(), cube()))
	assert.Equal(t, 2, s.Count())
	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Root().Children())
}
