package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/chewxy/math32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every surface equally, regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant source. Light travels from the light's position
	// toward its target and does not attenuate with distance.
	LightTypeDirectional

	// LightTypePoint emits in all directions from a position and attenuates with distance
	// up to its range (0 means no cutoff).
	LightTypePoint

	// LightTypeSpot emits in a cone from a position toward its target. Attenuates with both
	// distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu         sync.Mutex
	lightType  LightType
	position   [3]float32
	target     [3]float32
	color      common.Color
	intensity  float32
	lightRange float32
	decay      float32
	innerCone  float32 // stored as cos(angle in radians)
	outerCone  float32 // stored as cos(angle in radians)
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// Lights take part in shading once attached to the scene graph through a node
// (see game_object.WithLight). The scene copies the node's world position into the
// light before each draw, so Position reflects where the node currently sits.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the point directional and spot lights aim at.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Direction returns the normalized direction light travels in, from position toward target.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the color of the light.
	//
	// Returns:
	//   - common.Color: the light color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the distance at which point and spot lights fade to zero, or 0 for no cutoff.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Decay returns the distance falloff exponent for point and spot lights.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light contributes to shading.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Radiance returns the light's color scaled by its intensity.
	//
	// Returns:
	//   - common.Color: color * intensity
	Radiance() common.Color

	// Attenuation returns the distance falloff for a point at the given world position.
	// Ambient and directional lights always return 1.
	//
	// Parameters:
	//   - p: world-space point being lit
	//
	// Returns:
	//   - float32: factor in [0, 1]
	Attenuation(p [3]float32) float32

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget sets the point directional and spot lights aim at.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetColor sets the color of the light.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the fade-out distance.
	//
	// Parameters:
	//   - lightRange: the range value, 0 for no cutoff
	SetRange(lightRange float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  [3]float32{0, 1, 0},
		color:     common.ColorWhite,
		intensity: 1.0,
		decay:     2,
		innerCone: 0.9063, // cos(25°)
		outerCone: 0.8192, // cos(35°)
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewAmbientLight creates an ambient light, e.g. NewAmbientLight(0xffffff, 0.4).
func NewAmbientLight(hex uint32, intensity float32) Light {
	return NewLight(LightTypeAmbient, WithColorHex(hex), WithIntensity(intensity))
}

// NewDirectionalLight creates a directional light aimed at the origin.
func NewDirectionalLight(hex uint32, intensity float32) Light {
	return NewLight(LightTypeDirectional, WithColorHex(hex), WithIntensity(intensity))
}

// NewPointLight creates a point light with the given fade-out distance (0 for none).
func NewPointLight(hex uint32, intensity, lightRange float32) Light {
	return NewLight(LightTypePoint, WithColorHex(hex), WithIntensity(intensity), WithRange(lightRange))
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

func (l *lightImpl) Direction() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	dir := common.Normalize3(common.Sub3(l.target, l.position))
	if dir == ([3]float32{}) {
		return [3]float32{0, -1, 0}
	}
	return dir
}

func (l *lightImpl) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lightRange
}

func (l *lightImpl) Decay() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decay
}

func (l *lightImpl) InnerCone() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) Radiance() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color.Scale(l.intensity)
}

func (l *lightImpl) Attenuation(p [3]float32) float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lightType == LightTypeAmbient || l.lightType == LightTypeDirectional {
		return 1
	}

	d := common.Length3(common.Sub3(p, l.position))
	att := float32(1)
	if l.lightRange > 0 {
		if d >= l.lightRange {
			return 0
		}
		att = math32.Pow(common.Clamp(1-d/l.lightRange, 0, 1), l.decay)
	} else if l.decay > 0 {
		att = 1 / math32.Max(math32.Pow(d, l.decay), 0.01)
	}

	if l.lightType == LightTypeSpot {
		axis := common.Normalize3(common.Sub3(l.target, l.position))
		toPoint := common.Normalize3(common.Sub3(p, l.position))
		cos := common.Dot3(axis, toPoint)
		if cos <= l.outerCone {
			return 0
		}
		if cos < l.innerCone {
			att *= (cos - l.outerCone) / (l.innerCone - l.outerCone)
		}
	}
	return att
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(c common.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lightRange = lightRange
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
