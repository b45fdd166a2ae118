package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	m := NewBasicMaterial()
	assert.Equal(t, MaterialTypeBasic, m.Type())
	assert.Equal(t, common.ColorWhite, m.Color())
	assert.Equal(t, float32(1), m.Opacity())
	assert.Equal(t, FrontSide, m.Side())
	assert.False(t, m.Transparent())
	assert.Nil(t, m.Map())

	s := NewStandardMaterial()
	assert.Equal(t, MaterialTypeStandard, s.Type())
	assert.Equal(t, float32(1), s.Roughness())
	assert.Equal(t, float32(0), s.Metalness())
}

func TestOptions(t *testing.T) {
	tex := texture.NewTexture(texture.WithName("map.png"))
	m := NewStandardMaterial(
		WithName("pbr"),
		WithColorHex(0x00ff00),
		WithMap(tex),
		WithNormalMap(tex),
		WithDisplacementMap(tex, 0.1),
		WithSide(DoubleSide),
		WithRoughness(0.1),
		WithMetalness(2),
		WithEnvMap(tex, 0.5),
	)

	assert.Equal(t, "pbr", m.Name())
	assert.Equal(t, common.ColorGreen, m.Color())
	assert.Same(t, tex, m.Map())
	assert.Same(t, tex, m.NormalMap())
	assert.Same(t, tex, m.DisplacementMap())
	assert.Equal(t, float32(0.1), m.DisplacementScale())
	assert.Equal(t, DoubleSide, m.Side())
	assert.Equal(t, float32(0.1), m.Roughness())
	assert.Equal(t, float32(1), m.Metalness(), "metalness is clamped")
	assert.Equal(t, float32(0.5), m.EnvMapIntensity())
}

func TestColorRef(t *testing.T) {
	m := NewBasicMaterial(WithColorHex(0xff0000))
	ref := m.ColorRef()

	r, ok := ref.Get("r")
	assert.True(t, ok)
	assert.Equal(t, float32(1), r)

	assert.True(t, ref.Set("b", 0.5))
	assert.Equal(t, common.Color{R: 1, G: 0, B: 0.5}, m.Color())
	assert.False(t, ref.Set("a", 1))
}
