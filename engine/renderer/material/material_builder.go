package material

import (
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the base color of the material.
//
// Parameters:
//   - c: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(c common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = c
	}
}

// WithColorHex is WithColor for a packed 0xRRGGBB value.
func WithColorHex(hex uint32) MaterialBuilderOption {
	return WithColor(common.ColorFromHex(hex))
}

// WithMap is an option builder that sets the color map.
//
// Parameters:
//   - t: the color texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(t texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.colorMap = t
	}
}

// WithAlphaMap is an option builder that sets the opacity map. It has no effect unless the
// material is also transparent.
//
// Parameters:
//   - t: the grayscale alpha texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the alpha map option to a material
func WithAlphaMap(t texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.alphaMap = t
	}
}

// WithTransparent enables opacity and alpha map blending.
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = transparent
	}
}

// WithOpacity sets the opacity in [0, 1].
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = common.Clamp(opacity, 0, 1)
	}
}

// WithSide selects which triangle faces are drawn.
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithWireframe draws triangle edges only.
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *material) {
		m.wireframe = wireframe
	}
}

// WithVertexColors multiplies the color with the geometry's per-vertex colors.
func WithVertexColors(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.vertexColors = enabled
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Clamp(roughness, 0, 1)
	}
}

// WithMetalness is an option builder that sets the metalness factor of the material.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = common.Clamp(metalness, 0, 1)
	}
}

// WithNormalMap is an option builder that sets the tangent-space normal map.
//
// Parameters:
//   - t: the normal texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal map option to a material
func WithNormalMap(t texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.normalMap = t
	}
}

// WithDisplacementMap is an option builder that offsets vertices along their normals by the
// map's brightness times scale.
//
// Parameters:
//   - t: the height texture
//   - scale: the offset at a white texel
//
// Returns:
//   - MaterialBuilderOption: a function that applies the displacement option to a material
func WithDisplacementMap(t texture.Texture, scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.displacementMap = t
		m.displacementScale = scale
	}
}

// WithEnvMap sets the reflection environment and its intensity.
func WithEnvMap(t texture.Texture, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.envMap = t
		m.envMapIntensity = intensity
	}
}
