// Package demos sets up the example scenes the viewport can run. Each demo receives a fresh
// engine, fills its scene, positions the camera and registers whatever per-frame logic,
// input handling, tweens or debug panel it needs.
package demos

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/gui"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
	"github.com/rs/zerolog"
)

// Env is what a demo may use besides the engine.
type Env struct {
	// Context bounds background work such as asynchronous texture loads.
	Context context.Context
	// Assets is the directory texture paths are resolved against.
	Assets string
	// Workers is the size of each texture loader's pool.
	Workers int
	Logger  zerolog.Logger
}

// Instance is a demo that has been set up on an engine.
type Instance struct {
	Name string

	// GUI is the debug panel, or nil if the demo has none.
	GUI gui.GUI

	// Loading tracks the demo's texture loads, or is nil if it loads none.
	Loading texture.LoadingManager

	// Objects holds the demo's named scene objects, for hosts and tests to inspect.
	Objects map[string]game_object.GameObject
}

func newInstance(name string) *Instance {
	return &Instance{Name: name, Objects: make(map[string]game_object.GameObject)}
}

// Demo is a named scene set-up.
type Demo struct {
	Name        string
	Description string
	Setup       func(eng engine.Engine, env Env) (*Instance, error)
}

var registry = map[string]Demo{}

func register(d Demo) {
	registry[strings.ToLower(d.Name)] = d
}

// All returns every demo sorted by name.
//
// Returns:
//   - []Demo: the demos
func All() []Demo {
	out := make([]Demo, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every demo name sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name
	}
	return names
}

// Lookup finds a demo by case-insensitive name.
//
// Parameters:
//   - name: the demo name
//
// Returns:
//   - Demo: the demo
//   - bool: false if no demo has that name
func Lookup(name string) (Demo, bool) {
	d, ok := registry[strings.ToLower(name)]
	return d, ok
}

// Start looks up a demo and sets it up on eng.
//
// Parameters:
//   - name: the demo name
//   - eng: a freshly built engine
//   - env: the demo environment
//
// Returns:
//   - *Instance: the running demo
//   - error: error if the name is unknown or set-up fails
func Start(name string, eng engine.Engine, env Env) (*Instance, error) {
	d, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown demo %q, want one of %s", name, strings.Join(Names(), ", "))
	}
	if env.Context == nil {
		env.Context = context.Background()
	}
	inst, err := d.Setup(eng, env)
	if err != nil {
		return nil, fmt.Errorf("failed to set up demo %s: %w", d.Name, err)
	}
	env.Logger.Info().Str("demo", d.Name).Int("objects", eng.Scene().Count()).Msg("demo ready")
	return inst, nil
}

// orbit attaches damped orbit controls to the engine's camera.
func orbit(eng engine.Engine) camera.OrbitControls {
	c := camera.NewOrbitControls(eng.Camera(), camera.WithDamping(0.05))
	c.Attach(eng.Window())
	eng.SetControls(c)
	return c
}

// axes adds a 5 unit axes helper at the origin.
func axes(eng engine.Engine) game_object.GameObject {
	o := game_object.NewGameObject(
		game_object.WithName("axes"),
		game_object.WithMesh(geometry.NewAxesHelper(5), material.NewBasicMaterial(material.WithVertexColors(true))),
	)
	eng.Scene().Add(o)
	return o
}

// greenCube adds the unit cube most demos start from.
func greenCube(eng engine.Engine) game_object.GameObject {
	cube := game_object.NewGameObject(
		game_object.WithName("cube"),
		game_object.WithMesh(geometry.NewBoxGeometry(1, 1, 1), material.NewBasicMaterial(material.WithColorHex(0x00ff00))),
	)
	eng.Scene().Add(cube)
	return cube
}

func lookFrom(eng engine.Engine, x, y, z float32) {
	eng.Camera().SetPosition(x, y, z)
	eng.Camera().LookAt(0, 0, 0)
}

// toggleFullscreen flips the window between fullscreen and windowed.
func toggleFullscreen(eng engine.Engine, logger zerolog.Logger) {
	w := eng.Window()
	var err error
	if w.IsFullscreen() {
		err = w.ExitFullscreen()
	} else {
		err = w.RequestFullscreen()
	}
	if err != nil {
		logger.Warn().Err(err).Msg("fullscreen toggle failed")
		return
	}
	logger.Debug().Bool("fullscreen", w.IsFullscreen()).Msg("fullscreen toggled")
}
