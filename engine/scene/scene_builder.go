package scene

import (
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.root.Add(obj)
			s.register(obj)
		}
	}
}

// WithBackgroundColor sets the solid background color.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackgroundColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.backgroundColor = c
		s.hasBackgroundColor = true
	}
}

// WithBackground sets a background texture.
//
// Parameters:
//   - t: the texture
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(t texture.Texture) SceneBuilderOption {
	return func(s *scene) {
		s.backgroundTexture = t
	}
}

// WithEnvironment sets the default reflection map.
//
// Parameters:
//   - t: the environment texture
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEnvironment(t texture.Texture) SceneBuilderOption {
	return func(s *scene) {
		s.environment = t
	}
}
