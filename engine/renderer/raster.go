package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewport/engine/scene"
	"github.com/chewxy/math32"
)

// vertexOut is a vertex after the world and clip transforms. Attributes are linear in clip space.
type vertexOut struct {
	clip   [4]float32
	world  [3]float32
	normal [3]float32
	uv     [2]float32
	color  common.Color
}

// screenVertex is a clipped vertex mapped to pixel coordinates.
type screenVertex struct {
	x, y  float32
	depth float32
	invW  float32
	attr  vertexOut
}

// primitive is a triangle or line ready to rasterize.
type primitive struct {
	v     [3]screenVertex
	line  bool
	mat   material.Material
	back  bool
	area  float32
	minY  int
	maxY  int
	frame tangentFrame
}

// tangentFrame is the per-triangle world-space tangent basis used by normal maps.
type tangentFrame struct {
	ok        bool
	tangent   [3]float32
	bitangent [3]float32
}

// drawList is the frame's primitives, opaque first then transparent back to front.
type drawList struct {
	prims []primitive
}

// setupDrawList transforms every drawable into screen-space primitives.
func setupDrawList(drawables []scene.Drawable, viewProj [16]float32, cameraPos [3]float32, width, height int) drawList {
	type group struct {
		prims []primitive
		dist  float32
	}
	var opaque []primitive
	var transparent []group
	frustum := common.FrustumFromMatrix(viewProj[:])

	for _, d := range drawables {
		g := d.Object.Geometry()
		m := d.Object.Material()
		if !inFrustum(frustum, g, m, d.World) {
			continue
		}
		verts := transformVertices(g, m, d.World, viewProj)

		var prims []primitive
		switch {
		case g.Mode() == geometry.Lines:
			for i := 0; i < g.PrimitiveCount(); i++ {
				idx := g.Primitive(i)
				prims = appendLine(prims, verts[idx[0]], verts[idx[1]], m, width, height)
			}
		case m.Wireframe():
			for i := 0; i < g.PrimitiveCount(); i++ {
				idx := g.Primitive(i)
				prims = appendLine(prims, verts[idx[0]], verts[idx[1]], m, width, height)
				prims = appendLine(prims, verts[idx[1]], verts[idx[2]], m, width, height)
				prims = appendLine(prims, verts[idx[2]], verts[idx[0]], m, width, height)
			}
		default:
			for i := 0; i < g.PrimitiveCount(); i++ {
				idx := g.Primitive(i)
				prims = appendTriangle(prims, [3]vertexOut{verts[idx[0]], verts[idx[1]], verts[idx[2]]}, m, width, height)
			}
		}

		if m.Transparent() {
			pos := [3]float32{d.World[12], d.World[13], d.World[14]}
			transparent = append(transparent, group{prims: prims, dist: common.Length3(common.Sub3(pos, cameraPos))})
			continue
		}
		opaque = append(opaque, prims...)
	}

	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].dist > transparent[j].dist
	})
	for _, t := range transparent {
		opaque = append(opaque, t.prims...)
	}
	return drawList{prims: opaque}
}

// inFrustum culls a drawable by its world bounds, padded by any displacement.
func inFrustum(f common.Frustum, g geometry.Geometry, m material.Material, world [16]float32) bool {
	lo, hi := g.BoundingBox()
	if m.DisplacementMap() != nil {
		pad := math32.Abs(m.DisplacementScale())
		lo = common.Sub3(lo, [3]float32{pad, pad, pad})
		hi = common.Add3(hi, [3]float32{pad, pad, pad})
	}
	lo, hi = common.TransformBox(world[:], lo, hi)
	return f.IntersectsBox(lo, hi)
}

// transformVertices applies displacement, the world matrix and the view-projection matrix.
func transformVertices(g geometry.Geometry, m material.Material, world, viewProj [16]float32) []vertexOut {
	src := g.Vertices()
	colors := g.Colors()
	useColors := m.VertexColors() && len(colors) == len(src)

	var normalMat [16]float32
	if !common.Invert4(normalMat[:], world[:]) {
		common.Identity(normalMat[:])
	}
	transpose3(&normalMat)

	disp := m.DisplacementMap()
	dispScale := m.DisplacementScale()
	if disp != nil && !disp.Ready() {
		disp = nil
	}

	out := make([]vertexOut, len(src))
	for i, v := range src {
		p := v.Position
		if disp != nil {
			h := disp.Sample(v.UV[0], v.UV[1])[0] * dispScale
			p = common.Add3(p, common.Scale3(v.Normal, h))
		}
		w := common.TransformPoint4(world[:], p, 1)
		wp := [3]float32{w[0], w[1], w[2]}
		o := vertexOut{
			clip:   common.TransformPoint4(viewProj[:], wp, 1),
			world:  wp,
			normal: common.TransformDirection(normalMat[:], v.Normal),
			uv:     v.UV,
			color:  common.ColorWhite,
		}
		if useColors {
			o.color = colors[i]
		}
		out[i] = o
	}
	return out
}

func transpose3(m *[16]float32) {
	m[1], m[4] = m[4], m[1]
	m[2], m[8] = m[8], m[2]
	m[6], m[9] = m[9], m[6]
}

func lerpVertex(a, b vertexOut, t float32) vertexOut {
	var o vertexOut
	for i := range 4 {
		o.clip[i] = a.clip[i] + (b.clip[i]-a.clip[i])*t
	}
	for i := range 3 {
		o.world[i] = a.world[i] + (b.world[i]-a.world[i])*t
		o.normal[i] = a.normal[i] + (b.normal[i]-a.normal[i])*t
	}
	o.uv[0] = a.uv[0] + (b.uv[0]-a.uv[0])*t
	o.uv[1] = a.uv[1] + (b.uv[1]-a.uv[1])*t
	o.color = a.color.Lerp(b.color, t)
	return o
}

// clipNear clips a polygon against the near plane (clip z >= 0).
func clipNear(in []vertexOut) []vertexOut {
	out := make([]vertexOut, 0, len(in)+1)
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := a.clip[2], b.clip[2]
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpVertex(a, b, da/(da-db)))
		}
	}
	return out
}

func toScreen(v vertexOut, width, height int) screenVertex {
	invW := 1 / v.clip[3]
	return screenVertex{
		x:     (v.clip[0]*invW*0.5 + 0.5) * float32(width),
		y:     (0.5 - v.clip[1]*invW*0.5) * float32(height),
		depth: v.clip[2] * invW,
		invW:  invW,
		attr:  v,
	}
}

func edge(a, b screenVertex, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

func appendTriangle(prims []primitive, tri [3]vertexOut, m material.Material, width, height int) []primitive {
	poly := tri[:]
	if tri[0].clip[2] < 0 || tri[1].clip[2] < 0 || tri[2].clip[2] < 0 {
		poly = clipNear(poly)
	}
	if len(poly) < 3 {
		return prims
	}

	frame := computeTangentFrame(tri)
	s0 := toScreen(poly[0], width, height)
	for i := 1; i+1 < len(poly); i++ {
		s1 := toScreen(poly[i], width, height)
		s2 := toScreen(poly[i+1], width, height)
		area := edge(s0, s1, s2.x, s2.y)
		if area == 0 {
			continue
		}
		// Counter-clockwise in NDC is clockwise on screen since y points down.
		back := area > 0
		switch m.Side() {
		case material.FrontSide:
			if back {
				continue
			}
		case material.BackSide:
			if !back {
				continue
			}
		}
		p := primitive{v: [3]screenVertex{s0, s1, s2}, mat: m, back: back, area: area, frame: frame}
		p.minY = int(math32.Floor(min(s0.y, s1.y, s2.y)))
		p.maxY = int(math32.Ceil(max(s0.y, s1.y, s2.y)))
		if p.maxY < 0 || p.minY >= height {
			continue
		}
		prims = append(prims, p)
	}
	return prims
}

func appendLine(prims []primitive, a, b vertexOut, m material.Material, width, height int) []primitive {
	da, db := a.clip[2], b.clip[2]
	switch {
	case da < 0 && db < 0:
		return prims
	case da < 0:
		a = lerpVertex(a, b, da/(da-db))
	case db < 0:
		b = lerpVertex(a, b, da/(da-db))
	}
	s0, s1 := toScreen(a, width, height), toScreen(b, width, height)
	p := primitive{v: [3]screenVertex{s0, s1, s1}, line: true, mat: m}
	p.minY = int(math32.Floor(min(s0.y, s1.y)))
	p.maxY = int(math32.Ceil(max(s0.y, s1.y)))
	if p.maxY < 0 || p.minY >= height {
		return prims
	}
	return append(prims, p)
}

func computeTangentFrame(tri [3]vertexOut) tangentFrame {
	e1 := common.Sub3(tri[1].world, tri[0].world)
	e2 := common.Sub3(tri[2].world, tri[0].world)
	du1, dv1 := tri[1].uv[0]-tri[0].uv[0], tri[1].uv[1]-tri[0].uv[1]
	du2, dv2 := tri[2].uv[0]-tri[0].uv[0], tri[2].uv[1]-tri[0].uv[1]
	det := du1*dv2 - du2*dv1
	if math32.Abs(det) < 1e-12 {
		return tangentFrame{}
	}
	r := 1 / det
	t := common.Scale3(common.Sub3(common.Scale3(e1, dv2), common.Scale3(e2, dv1)), r)
	b := common.Scale3(common.Sub3(common.Scale3(e2, du1), common.Scale3(e1, du2)), r)
	return tangentFrame{ok: true, tangent: common.Normalize3(t), bitangent: common.Normalize3(b)}
}

// rasterizeBand draws every primitive that touches rows [y0, y1).
func (f *frameState) rasterizeBand(list drawList, y0, y1 int) {
	for i := range list.prims {
		p := &list.prims[i]
		if p.maxY < y0 || p.minY >= y1 {
			continue
		}
		if p.line {
			f.drawLine(p, y0, y1)
		} else {
			f.drawTriangle(p, y0, y1)
		}
	}
}

func (f *frameState) drawTriangle(p *primitive, y0, y1 int) {
	v0, v1, v2 := p.v[0], p.v[1], p.v[2]
	minX := max(int(math32.Floor(min(v0.x, v1.x, v2.x))), 0)
	maxX := min(int(math32.Ceil(max(v0.x, v1.x, v2.x))), f.fb.width-1)
	minY := max(p.minY, y0)
	maxY := min(p.maxY, y1-1)
	invArea := 1 / p.area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			b0 := edge(v1, v2, px, py) * invArea
			b1 := edge(v2, v0, px, py) * invArea
			b2 := edge(v0, v1, px, py) * invArea
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			depth := b0*v0.depth + b1*v1.depth + b2*v2.depth
			if depth < 0 || depth > 1 {
				continue
			}
			di := y*f.fb.width + x
			if depth >= f.fb.depth[di] {
				continue
			}
			f.shadeFragment(p, x, y, di, depth, [3]float32{b0, b1, b2})
		}
	}
}

func (f *frameState) drawLine(p *primitive, y0, y1 int) {
	a, b := p.v[0], p.v[1]
	dx, dy := b.x-a.x, b.y-a.y
	steps := int(math32.Ceil(max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float32(s) / float32(steps)
		x := int(math32.Floor(a.x + dx*t))
		y := int(math32.Floor(a.y + dy*t))
		if y < y0 || y >= y1 || x < 0 || x >= f.fb.width {
			continue
		}
		depth := a.depth + (b.depth-a.depth)*t
		if depth < 0 || depth > 1 {
			continue
		}
		di := y*f.fb.width + x
		if depth >= f.fb.depth[di] {
			continue
		}
		f.shadeFragment(p, x, y, di, depth, [3]float32{1 - t, t, 0})
	}
}
