package demos

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
)

func init() {
	register(Demo{Name: "basic", Description: "green cube, axes and damped orbit controls", Setup: setupBasic})
	register(Demo{Name: "orbit-controls", Description: "cube spinning, sliding along x and stretching, wrapping at x=5", Setup: setupOrbitControls})
	register(Demo{Name: "clock", Description: "cube rising at one unit per second, wrapping at y=5", Setup: setupClock})
	register(Demo{Name: "fullscreen", Description: "spinning cube, double-click toggles fullscreen", Setup: setupFullscreen})
	register(Demo{Name: "buffer-geometry", Description: "a square built from raw triangle positions", Setup: setupBufferGeometry})
}

func setupBasic(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("basic")
	lookFrom(eng, 1, 1, 8)
	inst.Objects["cube"] = greenCube(eng)
	inst.Objects["axes"] = axes(eng)
	orbit(eng)
	return inst, nil
}

func setupOrbitControls(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("orbit-controls")
	lookFrom(eng, 0, 0, 10)
	cube := game_object.NewGameObject(
		game_object.WithName("cube"),
		game_object.WithMesh(geometry.NewBoxGeometry(1, 1, 1), material.NewBasicMaterial(material.WithColor(common.ColorYellow))),
	)
	eng.Scene().Add(cube)
	inst.Objects["cube"] = cube
	inst.Objects["axes"] = axes(eng)
	orbit(eng)

	eng.OnFrame(func(dt, elapsed float32) {
		r := cube.Rotation()
		cube.SetRotation(r[0]+0.05, r[1], r[2])

		p := cube.Position()
		s := cube.Scale()
		x, wrapped := common.BoundedAxis(p[0], 0.02, 5, 0)
		if wrapped {
			s[1] = 1
		} else {
			s[1] += 0.01
		}
		cube.SetPosition(x, p[1], p[2])
		cube.SetScale(s[0], s[1], s[2])
	})
	return inst, nil
}

func setupClock(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("clock")
	lookFrom(eng, 1, 1, 8)
	cube := greenCube(eng)
	inst.Objects["cube"] = cube
	inst.Objects["axes"] = axes(eng)

	const speed = 1
	eng.OnFrame(func(dt, elapsed float32) {
		p := cube.Position()
		y := p[1] + speed*dt
		if y > 5 {
			y = 0
		}
		cube.SetPosition(p[0], y, p[2])
	})
	return inst, nil
}

func setupFullscreen(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("fullscreen")
	lookFrom(eng, 1, 1, 6)
	cube := greenCube(eng)
	inst.Objects["cube"] = cube
	inst.Objects["axes"] = axes(eng)
	orbit(eng)

	eng.OnFrame(func(dt, elapsed float32) {
		r := cube.Rotation()
		cube.SetRotation(r[0], r[1]+0.03, r[2])
	})
	eng.Window().AddDoubleClickListener(func(x, y float32) {
		eng.Post(func() { toggleFullscreen(eng, env.Logger) })
	})
	return inst, nil
}

// squarePositions is two triangles covering a 2x2 square at z=1.
var squarePositions = []float32{
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	-1, 1, 1, -1, -1, 1, 1, 1, 1,
}

func setupBufferGeometry(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("buffer-geometry")
	lookFrom(eng, 1, 1, 8)
	g, err := geometry.NewGeometryFromPositions(squarePositions)
	if err != nil {
		return nil, fmt.Errorf("failed to build square: %w", err)
	}
	square := game_object.NewGameObject(
		game_object.WithName("square"),
		game_object.WithMesh(g, material.NewBasicMaterial(material.WithColorHex(0x00ff00))),
	)
	eng.Scene().Add(square)
	inst.Objects["square"] = square
	inst.Objects["axes"] = axes(eng)
	orbit(eng)
	return inst, nil
}
