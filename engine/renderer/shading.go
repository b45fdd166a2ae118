package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
	"github.com/chewxy/math32"
)

// lightSample is a light captured once per frame so fragments do not take its lock for
// anything but attenuation.
type lightSample struct {
	source    light.Light
	kind      light.LightType
	radiance  common.Color
	position  [3]float32
	direction [3]float32
}

func sampleLights(lights []light.Light) []lightSample {
	out := make([]lightSample, 0, len(lights))
	for _, l := range lights {
		out = append(out, lightSample{
			source:    l,
			kind:      l.Type(),
			radiance:  l.Radiance(),
			position:  l.Position(),
			direction: l.Direction(),
		})
	}
	return out
}

// frameState is what every band worker reads while drawing one frame.
type frameState struct {
	fb          *frameBuffer
	cameraPos   [3]float32
	lights      []lightSample
	environment texture.Texture

	clearColor    common.Color
	background    texture.Texture
	invViewProj   [16]float32
	hasBackground bool
}

// interpolate returns perspective-correct attributes for screen-space weights.
func interpolate(p *primitive, bary [3]float32) vertexOut {
	var w [3]float32
	var sum float32
	for i := range 3 {
		w[i] = bary[i] * p.v[i].invW
		sum += w[i]
	}
	if sum != 0 {
		for i := range 3 {
			w[i] /= sum
		}
	}

	var o vertexOut
	for i := range 3 {
		a := &p.v[i].attr
		for k := range 3 {
			o.world[k] += a.world[k] * w[i]
			o.normal[k] += a.normal[k] * w[i]
		}
		o.uv[0] += a.uv[0] * w[i]
		o.uv[1] += a.uv[1] * w[i]
		o.color = o.color.Add(a.color.Scale(w[i]))
	}
	return o
}

func (f *frameState) shadeFragment(p *primitive, x, y, di int, depth float32, bary [3]float32) {
	m := p.mat
	a := interpolate(p, bary)

	base := m.Color().Mul(a.color)
	alpha := float32(1)
	if t := m.Map(); t != nil {
		s := t.Sample(a.uv[0], a.uv[1])
		base = base.Mul(common.Color{R: s[0], G: s[1], B: s[2]})
		alpha *= s[3]
	}
	if t := m.AlphaMap(); t != nil {
		alpha *= t.Sample(a.uv[0], a.uv[1])[1]
	}
	if m.Transparent() {
		alpha *= m.Opacity()
	} else {
		alpha = 1
	}

	out := base
	if m.Type() == material.MaterialTypeStandard {
		out = f.shadeStandard(p, a, base)
	}

	if alpha <= 0 {
		return
	}
	f.fb.depth[di] = depth
	f.fb.set(x, y, out, alpha)
}

// shadeStandard lights a fragment with Lambert diffuse and a normalized Blinn-Phong lobe whose
// exponent comes from roughness. Metalness moves energy from diffuse to a tinted specular.
func (f *frameState) shadeStandard(p *primitive, a vertexOut, base common.Color) common.Color {
	m := p.mat
	n := common.Normalize3(a.normal)
	if p.back {
		n = common.Scale3(n, -1)
	}
	if nm := m.NormalMap(); nm != nil && nm.Ready() && p.frame.ok {
		n = perturbNormal(n, p.frame, nm.Sample(a.uv[0], a.uv[1]), p.back)
	}

	v := common.Normalize3(common.Sub3(f.cameraPos, a.world))
	metal := m.Metalness()
	rough := common.Clamp(m.Roughness(), 0.04, 1)
	diffuse := base.Scale(1 - metal)
	f0 := common.Color{R: 0.04, G: 0.04, B: 0.04}.Lerp(base, metal)
	alpha := rough * rough
	shininess := common.Clamp(2/(alpha*alpha)-2, 1, 2048)
	norm := (shininess + 2) / 8

	var out common.Color
	for _, l := range f.lights {
		var dir [3]float32
		att := float32(1)
		switch l.kind {
		case light.LightTypeAmbient:
			out = out.Add(diffuse.Mul(l.radiance))
			continue
		case light.LightTypeDirectional:
			dir = common.Scale3(l.direction, -1)
		default:
			dir = common.Normalize3(common.Sub3(l.position, a.world))
			att = l.source.Attenuation(a.world)
		}
		ndl := common.Dot3(n, dir)
		if ndl <= 0 || att <= 0 {
			continue
		}
		h := common.Normalize3(common.Add3(dir, v))
		spec := norm * math32.Pow(max(common.Dot3(n, h), 0), shininess)
		radiance := l.radiance.Scale(ndl * att)
		out = out.Add(diffuse.Mul(radiance)).Add(f0.Scale(spec).Mul(radiance))
	}

	env := m.EnvMap()
	if env == nil {
		env = f.environment
	}
	if env != nil && env.Ready() {
		intensity := m.EnvMapIntensity()
		r := reflect(common.Scale3(v, -1), n)
		fresnel := math32.Pow(1-max(common.Dot3(n, v), 0), 5)
		specColor := f0.Lerp(common.ColorWhite, fresnel*(1-rough))
		out = out.Add(env.SampleDirection(r).Mul(specColor).Scale(intensity * (1 - rough*0.6)))
		out = out.Add(env.SampleDirection(n).Mul(diffuse).Scale(intensity * 0.5))
	}
	return out
}

func perturbNormal(n [3]float32, frame tangentFrame, texel [4]float32, back bool) [3]float32 {
	t := common.Normalize3(common.Sub3(frame.tangent, common.Scale3(n, common.Dot3(n, frame.tangent))))
	b := frame.bitangent
	if back {
		t = common.Scale3(t, -1)
		b = common.Scale3(b, -1)
	}
	tx, ty, tz := texel[0]*2-1, texel[1]*2-1, texel[2]*2-1
	out := common.Add3(common.Add3(common.Scale3(t, tx), common.Scale3(b, ty)), common.Scale3(n, tz))
	if out == ([3]float32{}) {
		return n
	}
	return common.Normalize3(out)
}

func reflect(i, n [3]float32) [3]float32 {
	return common.Sub3(i, common.Scale3(n, 2*common.Dot3(i, n)))
}

// clearBand fills rows [y0, y1) with the background and resets their depth.
func (f *frameState) clearBand(y0, y1 int) {
	f.fb.clearRows(y0, y1, f.clearColor)
	if !f.hasBackground || f.background == nil || !f.background.Ready() {
		return
	}

	bg := f.background
	w, h := float32(f.fb.width), float32(f.fb.height)
	directional := bg.Kind() != texture.KindImage || bg.Mapping() != texture.UVMapping
	for y := y0; y < y1; y++ {
		for x := 0; x < f.fb.width; x++ {
			u := (float32(x) + 0.5) / w
			v := 1 - (float32(y)+0.5)/h
			var c common.Color
			if directional {
				c = bg.SampleDirection(f.viewRay(u*2-1, v*2-1))
			} else {
				s := bg.Sample(u, v)
				c = common.Color{R: s[0], G: s[1], B: s[2]}
			}
			f.fb.set(x, y, c, 1)
		}
	}
}

// viewRay returns the world-space direction through an NDC point.
func (f *frameState) viewRay(nx, ny float32) [3]float32 {
	p := common.TransformPoint4(f.invViewProj[:], [3]float32{nx, ny, 1}, 1)
	if p[3] == 0 {
		return [3]float32{0, 0, -1}
	}
	far := [3]float32{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
	return common.Normalize3(common.Sub3(far, f.cameraPos))
}
