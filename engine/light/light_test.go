package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/stretchr/testify/assert"
)

func TestDirectionPointsAtTarget(t *testing.T) {
	l := NewDirectionalLight(0xf5f5f5, 1)
	l.SetPosition(0, 10, 0)

	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
	assert.Equal(t, float32(1), l.Attenuation([3]float32{100, 0, 0}))
}

func TestDirectionFallsBackWhenDegenerate(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(0, 0, 0), WithTarget(0, 0, 0))
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
}

func TestAmbientRadiance(t *testing.T) {
	l := NewAmbientLight(0xffffff, 0.4)
	assert.Equal(t, LightTypeAmbient, l.Type())
	assert.InDelta(t, 0.4, l.Radiance().R, 1e-6)
	assert.Equal(t, "ambient", l.Type().String())
}

func TestPointAttenuation(t *testing.T) {
	tests := []struct {
		name  string
		rng   float32
		point [3]float32
		want  float32
	}{
		{"at source", 10, [3]float32{0, 1, 0}, 1},
		{"half range", 10, [3]float32{0, 6, 0}, 0.25},
		{"beyond range", 10, [3]float32{0, 20, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewPointLight(0xffffff, 1, tt.rng)
			assert.InDelta(t, tt.want, l.Attenuation(tt.point), 1e-5)
		})
	}
}

func TestSpotCone(t *testing.T) {
	l := NewLight(LightTypeSpot, WithPosition(0, 0, 0), WithTarget(0, 0, -1), WithSpotCone(10, 20), WithDecay(0))

	assert.InDelta(t, 1, l.Attenuation([3]float32{0, 0, -5}), 1e-5)
	assert.Equal(t, float32(0), l.Attenuation([3]float32{5, 0, -1}))
}

func TestSetters(t *testing.T) {
	l := NewLight(LightTypePoint)
	l.SetColor(common.ColorRed)
	l.SetIntensity(2)
	l.SetEnabled(false)

	assert.Equal(t, common.Color{R: 2}, l.Radiance())
	assert.False(t, l.Enabled())
}
