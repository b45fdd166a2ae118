package material

import (
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
)

// MaterialType selects the shading model.
type MaterialType int

const (
	// MaterialTypeBasic is unlit: the surface shows its color and map as-is.
	MaterialTypeBasic MaterialType = iota
	// MaterialTypeStandard is lit with a roughness/metalness model and needs lights to be visible.
	MaterialTypeStandard
)

// Side selects which faces of a triangle are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// material is the implementation of the Material interface.
type material struct {
	name         string
	materialType MaterialType
	color        common.Color
	opacity      float32
	transparent  bool
	side         Side
	wireframe    bool
	vertexColors bool

	colorMap        texture.Texture
	alphaMap        texture.Texture
	normalMap       texture.Texture
	displacementMap texture.Texture
	envMap          texture.Texture

	displacementScale float32
	roughness         float32
	metalness         float32
	envMapIntensity   float32
}

// Material defines the surface appearance of a mesh.
//
// Fields are plain values with no locking: they are changed on the frame goroutine
// (set-up code, GUI callbacks, tweens) and only read while a frame is drawn.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Type returns the shading model.
	//
	// Returns:
	//   - MaterialType: basic or standard
	Type() MaterialType

	// Color retrieves the base color, multiplied with the map when one is set.
	//
	// Returns:
	//   - common.Color: the base color
	Color() common.Color
	SetColor(c common.Color)

	// Opacity is only applied when Transparent is true.
	Opacity() float32
	SetOpacity(opacity float32)

	// Transparent enables blending with opacity and the alpha map. When false both are ignored.
	Transparent() bool
	SetTransparent(transparent bool)

	Side() Side
	SetSide(side Side)

	// Wireframe draws triangle edges instead of filled triangles.
	Wireframe() bool
	SetWireframe(wireframe bool)

	// VertexColors multiplies the color with the geometry's per-vertex colors.
	VertexColors() bool

	// Map retrieves the color map, or nil.
	//
	// Returns:
	//   - texture.Texture: the color map
	Map() texture.Texture
	SetMap(t texture.Texture)

	// AlphaMap retrieves the grayscale opacity map, or nil. Only the green channel is read.
	//
	// Returns:
	//   - texture.Texture: the alpha map
	AlphaMap() texture.Texture
	SetAlphaMap(t texture.Texture)

	// NormalMap retrieves the tangent-space normal map, or nil. Standard materials only.
	//
	// Returns:
	//   - texture.Texture: the normal map
	NormalMap() texture.Texture
	SetNormalMap(t texture.Texture)

	// DisplacementMap retrieves the height map that offsets vertices along their normals, or nil.
	//
	// Returns:
	//   - texture.Texture: the displacement map
	DisplacementMap() texture.Texture

	// DisplacementScale is the offset at a fully white displacement texel.
	DisplacementScale() float32
	SetDisplacementMap(t texture.Texture, scale float32)

	// EnvMap retrieves the reflection environment, or nil to fall back to the scene environment.
	//
	// Returns:
	//   - texture.Texture: the environment map
	EnvMap() texture.Texture
	SetEnvMap(t texture.Texture)

	EnvMapIntensity() float32

	// Roughness retrieves the roughness factor of the material.
	// A value of 0.0 represents a perfectly smooth surface, 1.0 represents a fully rough surface.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32
	SetRoughness(roughness float32)

	// Metalness retrieves the metalness factor of the material.
	// A value of 0.0 represents a dielectric surface, 1.0 represents a fully metallic surface.
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32
	SetMetalness(metalness float32)

	// ColorRef exposes the color as an Animatable with properties "r", "g" and "b".
	//
	// Returns:
	//   - common.Animatable: the color binding
	ColorRef() common.Animatable
}

var _ Material = &material{}

// NewMaterial creates a new Material of the given type configured with the provided options.
//
// Parameters:
//   - materialType: the shading model
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(materialType MaterialType, options ...MaterialBuilderOption) Material {
	m := &material{
		materialType:      materialType,
		color:             common.ColorWhite,
		opacity:           1,
		displacementScale: 1,
		roughness:         1,
		metalness:         0,
		envMapIntensity:   1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewBasicMaterial creates an unlit material.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new basic material
func NewBasicMaterial(options ...MaterialBuilderOption) Material {
	return NewMaterial(MaterialTypeBasic, options...)
}

// NewStandardMaterial creates a lit roughness/metalness material.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new standard material
func NewStandardMaterial(options ...MaterialBuilderOption) Material {
	return NewMaterial(MaterialTypeStandard, options...)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Type() MaterialType {
	return m.materialType
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) SetColor(c common.Color) {
	m.color = c
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) SetOpacity(opacity float32) {
	m.opacity = common.Clamp(opacity, 0, 1)
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) SetTransparent(transparent bool) {
	m.transparent = transparent
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) SetSide(side Side) {
	m.side = side
}

func (m *material) Wireframe() bool {
	return m.wireframe
}

func (m *material) SetWireframe(wireframe bool) {
	m.wireframe = wireframe
}

func (m *material) VertexColors() bool {
	return m.vertexColors
}

func (m *material) Map() texture.Texture {
	return m.colorMap
}

func (m *material) SetMap(t texture.Texture) {
	m.colorMap = t
}

func (m *material) AlphaMap() texture.Texture {
	return m.alphaMap
}

func (m *material) SetAlphaMap(t texture.Texture) {
	m.alphaMap = t
}

func (m *material) NormalMap() texture.Texture {
	return m.normalMap
}

func (m *material) SetNormalMap(t texture.Texture) {
	m.normalMap = t
}

func (m *material) DisplacementMap() texture.Texture {
	return m.displacementMap
}

func (m *material) DisplacementScale() float32 {
	return m.displacementScale
}

func (m *material) SetDisplacementMap(t texture.Texture, scale float32) {
	m.displacementMap = t
	m.displacementScale = scale
}

func (m *material) EnvMap() texture.Texture {
	return m.envMap
}

func (m *material) SetEnvMap(t texture.Texture) {
	m.envMap = t
}

func (m *material) EnvMapIntensity() float32 {
	return m.envMapIntensity
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) SetRoughness(roughness float32) {
	m.roughness = common.Clamp(roughness, 0, 1)
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) SetMetalness(metalness float32) {
	m.metalness = common.Clamp(metalness, 0, 1)
}

func (m *material) ColorRef() common.Animatable {
	return colorRef{m}
}

// colorRef binds the material color's channels by name.
type colorRef struct {
	m *material
}

func (r colorRef) channel(prop string) *float32 {
	switch prop {
	case "r":
		return &r.m.color.R
	case "g":
		return &r.m.color.G
	case "b":
		return &r.m.color.B
	}
	return nil
}

func (r colorRef) Get(prop string) (float32, bool) {
	if p := r.channel(prop); p != nil {
		return *p, true
	}
	return 0, false
}

func (r colorRef) Set(prop string, v float32) bool {
	if p := r.channel(prop); p != nil {
		*p = v
		return true
	}
	return false
}
