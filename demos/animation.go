package demos

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine"
	"github.com/Carmen-Shannon/oxy-viewport/engine/gui"
	"github.com/Carmen-Shannon/oxy-viewport/engine/tween"
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
)

func init() {
	register(Demo{Name: "gsap", Description: "four tweens on a cube; click pauses or resumes the x tween, double-click kills it", Setup: setupTween})
	register(Demo{Name: "gui", Description: "debug panel bound to the cube's position, visibility, wireframe and color", Setup: setupGUI})
}

// tweenDemo holds the tween the pointer controls.
type tweenDemo struct {
	logger zerolog.Logger
	slide  tween.Tween
}

// click pauses a moving tween and resumes a stopped one.
func (d *tweenDemo) click() {
	if d.slide.IsActive() {
		d.slide.Pause()
		d.logger.Info().Float32("progress", d.slide.Progress()).Msg("tween paused")
		return
	}
	d.slide.Resume()
	d.logger.Info().Msg("tween resumed")
}

func (d *tweenDemo) doubleClick() {
	d.slide.Kill()
	d.logger.Info().Msg("tween killed")
}

func setupTween(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("gsap")
	lookFrom(eng, 1, 1, 8)
	cube := greenCube(eng)
	inst.Objects["cube"] = cube
	inst.Objects["axes"] = axes(eng)
	orbit(eng)

	tl := eng.Tweens()
	d := &tweenDemo{logger: env.Logger}
	d.slide = tl.To(cube.PositionRef(), map[string]float32{"x": 5},
		tween.WithDuration(5),
		tween.WithEase("power1.inOut"),
		tween.WithRepeat(-1),
		tween.WithYoyo(true),
		tween.WithDelay(1),
		tween.OnStart(func() { env.Logger.Info().Msg("tween started") }),
		tween.OnComplete(func() { env.Logger.Info().Msg("tween completed") }),
	)
	tl.To(cube.PositionRef(), map[string]float32{"y": 4}, tween.WithDuration(4), tween.WithRepeat(-1), tween.WithYoyo(true))
	tl.To(cube.PositionRef(), map[string]float32{"z": 4}, tween.WithDuration(4), tween.WithRepeat(-1), tween.WithYoyo(true))
	tl.To(cube.RotationRef(), map[string]float32{"x": 2 * math32.Pi}, tween.WithDuration(5), tween.WithRepeat(-1))

	w := eng.Window()
	w.AddClickListener(func(x, y float32) { eng.Post(d.click) })
	w.AddDoubleClickListener(func(x, y float32) { eng.Post(d.doubleClick) })
	return inst, nil
}

func setupGUI(eng engine.Engine, env Env) (*Instance, error) {
	inst := newInstance("gui")
	lookFrom(eng, 1, 1, 8)
	cube := greenCube(eng)
	inst.Objects["cube"] = cube
	inst.Objects["axes"] = axes(eng)
	orbit(eng)

	panel := gui.New("controls", gui.WithLogger(env.Logger))
	inst.GUI = panel

	finished := func(v float32) {
		env.Logger.Info().Float32("value", v).Msg("change finished")
	}
	for _, axis := range []string{"x", "y", "z"} {
		panel.Add(cube.PositionRef(), axis).
			SetMin(0).SetMax(5).SetStep(0.01).
			SetName("move " + axis).
			OnFinishChange(finished)
	}
	panel.AddBool("visible", cube.Visible, cube.SetVisible)

	var slide tween.Tween
	panel.AddFunc("animate x", func() {
		if slide != nil && !slide.Killed() {
			slide.Restart()
			return
		}
		slide = eng.Tweens().To(cube.PositionRef(), map[string]float32{"x": 5},
			tween.WithDuration(3), tween.WithYoyo(true), tween.WithRepeat(-1))
	})

	mat := cube.Material()
	folder := panel.AddFolder("cube")
	folder.AddBool("wireframe", mat.Wireframe, mat.SetWireframe)
	opacity := common.FloatRef{
		Name: "opacity",
		Load: mat.Opacity,
		Store: func(v float32) {
			mat.SetOpacity(v)
			mat.SetTransparent(mat.Opacity() < 1)
		},
	}
	folder.Add(opacity, "opacity").SetMin(0).SetMax(1).SetStep(0.01)
	picker, err := folder.AddColor("color", mat.Color().Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to add color picker: %w", err)
	}
	picker.OnChange(func(c common.Color) { mat.SetColor(c) })

	return inst, nil
}
