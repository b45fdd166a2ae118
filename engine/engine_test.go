package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewport/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewport/engine/tween"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer wraps a real renderer and records the calls the shell makes.
type recordingRenderer struct {
	renderer.Renderer
	cam camera.Camera

	calls []string
	// projection version and aspect observed when SetSize was called
	sizeVersions []uint64
	sizeAspects  []float32
	// projection version observed at each draw
	drawVersions []uint64
	failAt       int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		Renderer: renderer.NewRenderer(renderer.WithSize(8, 8), renderer.WithWorkers(1)),
		failAt:   -1,
	}
}

func (r *recordingRenderer) SetSize(width, height int) {
	r.calls = append(r.calls, "setSize")
	if r.cam != nil {
		r.sizeVersions = append(r.sizeVersions, r.cam.ProjectionVersion())
		r.sizeAspects = append(r.sizeAspects, r.cam.Aspect())
	}
	r.Renderer.SetSize(width, height)
}

func (r *recordingRenderer) SetPixelRatio(ratio float32) {
	r.calls = append(r.calls, "setPixelRatio")
	r.Renderer.SetPixelRatio(ratio)
}

func (r *recordingRenderer) Render(s scene.Scene, cam camera.Camera) error {
	r.calls = append(r.calls, "render")
	r.drawVersions = append(r.drawVersions, cam.ProjectionVersion())
	if r.failAt >= 0 && len(r.drawVersions) > r.failAt {
		return errors.New("device lost")
	}
	return r.Renderer.Render(s, cam)
}

func (r *recordingRenderer) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (Engine, window.HeadlessWindow) {
	t.Helper()
	win := window.NewHeadlessWindow(window.WithSize(800, 600))
	eng, err := NewEngine(append([]EngineBuilderOption{
		WithWindow(win),
		WithRendererOptions(renderer.WithWorkers(1)),
	}, options...)...)
	require.NoError(t, err)
	return eng, win
}

func TestNewEngineValidatesParameters(t *testing.T) {
	tests := []struct {
		name    string
		options []EngineBuilderOption
		want    error
	}{
		{"zero width", []EngineBuilderOption{WithSize(0, 600)}, ErrInvalidViewport},
		{"negative height", []EngineBuilderOption{WithSize(800, -1)}, ErrInvalidViewport},
		{"zero near", []EngineBuilderOption{WithClipPlanes(0, 100)}, ErrInvalidClipPlanes},
		{"far before near", []EngineBuilderOption{WithClipPlanes(10, 1)}, ErrInvalidClipPlanes},
		{"far equals near", []EngineBuilderOption{WithClipPlanes(1, 1)}, ErrInvalidClipPlanes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := NewEngine(tt.options...)
			assert.Nil(t, eng)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewEngineSizesEverything(t *testing.T) {
	eng, err := NewEngine(WithSize(640, 480), WithFov(45), WithClipPlanes(1, 50), WithCameraPosition(0, 2, 9))
	require.NoError(t, err)

	w, h := eng.Renderer().Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 640, eng.Window().Width())
	assert.Equal(t, float32(640)/480, eng.Camera().Aspect())
	assert.Equal(t, float32(45), eng.Camera().Fov())
	assert.Equal(t, float32(1), eng.Camera().Near())
	assert.Equal(t, float32(50), eng.Camera().Far())
	assert.Equal(t, [3]float32{0, 2, 9}, eng.Camera().Position())
	assert.Nil(t, eng.Controls())
	assert.Equal(t, StateIdle, eng.State())
}

func TestResizeOrder(t *testing.T) {
	rec := newRecordingRenderer()
	cam := camera.NewCamera()
	rec.cam = cam
	eng, win := newTestEngine(t, WithCamera(cam), WithRenderer(rec))
	rec.calls = nil

	before := cam.ProjectionVersion()
	win.SetDevicePixelRatio(1.5)
	win.Resize(1024, 512)

	assert.Equal(t, []string{"setSize", "setPixelRatio"}, rec.calls)
	require.NotEmpty(t, rec.sizeVersions)
	last := len(rec.sizeVersions) - 1
	assert.Greater(t, rec.sizeVersions[last], before, "projection recomputed before the surface is resized")
	assert.Equal(t, float32(2), rec.sizeAspects[last])
	assert.Equal(t, float32(1.5), eng.Renderer().PixelRatio())

	require.NoError(t, eng.Step(0.016))
	assert.Equal(t, cam.ProjectionVersion(), rec.drawVersions[0], "the draw sees the recomputed projection")
}

func TestResizeIgnoresNonPositiveSizes(t *testing.T) {
	eng, win := newTestEngine(t)
	version := eng.Camera().ProjectionVersion()

	win.Resize(0, 0)
	eng.HandleResize(100, -5)

	w, h := eng.Renderer().Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, version, eng.Camera().ProjectionVersion())
}

func TestResizeProperty(t *testing.T) {
	eng, win := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))
	for range 200 {
		w, h := 1+rng.Intn(4096), 1+rng.Intn(4096)
		win.Resize(w, h)

		assert.Equal(t, float32(w)/float32(h), eng.Camera().Aspect())
		rw, rh := eng.Renderer().Size()
		assert.Equal(t, w, rw)
		assert.Equal(t, h, rh)
	}
}

func TestResizeScenario(t *testing.T) {
	eng, win := newTestEngine(t)
	assert.Equal(t, float32(800)/600, eng.Camera().Aspect())

	win.Resize(400, 300)
	assert.Equal(t, float32(400)/300, eng.Camera().Aspect())
	w, h := eng.Renderer().Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
}

func TestResizeFollowsHighDensityDisplay(t *testing.T) {
	eng, win := newTestEngine(t)
	win.SetDevicePixelRatio(3)
	win.Resize(400, 300)

	assert.Equal(t, win.DevicePixelRatio(), eng.Renderer().PixelRatio())
	w, h := eng.Renderer().DrawingBufferSize()
	assert.Equal(t, 1200, w)
	assert.Equal(t, 900, h)
}

func TestStepOrder(t *testing.T) {
	rec := newRecordingRenderer()
	eng, _ := newTestEngine(t, WithRenderer(rec), WithOrbitControls(camera.WithDamping(0.05)))
	rec.calls = nil

	var order []string
	box := game_object.NewGameObject()
	eng.Tweens().To(box.PositionRef(), map[string]float32{"x": 1}, tween.OnUpdate(func() { order = append(order, "tween") }))
	eng.OnFrame(func(dt, elapsed float32) { order = append(order, "first") })
	eng.OnFrame(func(dt, elapsed float32) { order = append(order, "second") })
	eng.Post(func() {
		order = append(order, "posted")
		eng.Post(func() { order = append(order, "posted again") })
	})

	require.NoError(t, eng.Step(0.1))
	assert.Equal(t, []string{"posted", "posted again", "tween", "first", "second"}, order)
	assert.Equal(t, 1, rec.count("render"))
	assert.Equal(t, uint64(1), eng.Frames())
}

func TestOneDrawPerStep(t *testing.T) {
	rec := newRecordingRenderer()
	eng, _ := newTestEngine(t, WithRenderer(rec))
	for range 25 {
		require.NoError(t, eng.Step(0.01))
	}
	assert.Equal(t, 25, rec.count("render"))
	assert.Equal(t, uint64(25), eng.Frames())
}

func TestRotationScenario(t *testing.T) {
	eng, _ := newTestEngine(t)
	cube := game_object.NewGameObject(
		game_object.WithMesh(geometry.NewBoxGeometry(1, 1, 1), material.NewBasicMaterial(material.WithColor(common.ColorRed))),
	)
	eng.Scene().Add(cube)
	eng.OnFrame(func(dt, elapsed float32) {
		r := cube.Rotation()
		cube.SetRotation(r[0]+0.05, r[1]+0.05, r[2])
	})

	const n = 40
	for range n {
		require.NoError(t, eng.Step(1.0/60))
	}
	assert.InDelta(t, 0.05*n, cube.Rotation()[0], 1e-4)
	assert.InDelta(t, 0.05*n, cube.Rotation()[1], 1e-4)
}

func TestBoundedAxisScenario(t *testing.T) {
	eng, _ := newTestEngine(t)
	cube := game_object.NewGameObject()
	eng.Scene().Add(cube)
	wraps := 0
	eng.OnFrame(func(dt, elapsed float32) {
		p := cube.Position()
		x, wrapped := common.BoundedAxis(p[0], 0.02, 5, 0)
		if wrapped {
			wraps++
		}
		cube.SetPosition(x, p[1], p[2])
	})

	for range 260 {
		require.NoError(t, eng.Step(1.0/60))
	}
	assert.GreaterOrEqual(t, wraps, 1)
	assert.GreaterOrEqual(t, cube.Position()[0], float32(0))
	assert.LessOrEqual(t, cube.Position()[0], float32(5.02)+1e-4)
}

func TestElapsedAccumulates(t *testing.T) {
	eng, _ := newTestEngine(t)
	var lastElapsed float32
	eng.OnFrame(func(dt, elapsed float32) { lastElapsed = elapsed })
	require.NoError(t, eng.Step(0.25))
	require.NoError(t, eng.Step(0.5))
	require.NoError(t, eng.Step(-1))
	assert.InDelta(t, 0.75, lastElapsed, 1e-6)
}

func TestRunStepsOncePerScheduledFrame(t *testing.T) {
	rec := newRecordingRenderer()
	sched := NewManualScheduler()
	eng, _ := newTestEngine(t, WithRenderer(rec), WithScheduler(sched))

	sched.Release(12)
	sched.Close()

	require.NoError(t, eng.Run(context.Background()))
	assert.Equal(t, 12, rec.count("render"))
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, StateStopped, eng.State())

	assert.ErrorIs(t, eng.Run(context.Background()), ErrStopped)
}

func TestRunStopsOnStop(t *testing.T) {
	sched := NewManualScheduler()
	eng, _ := newTestEngine(t, WithScheduler(sched))

	done := make(chan error, 1)
	go func() { done <- eng.Run(context.Background()) }()

	require.Eventually(t, func() bool { return eng.State() == StateRunning }, time.Second, time.Millisecond)
	sched.Release(3)
	require.Eventually(t, func() bool { return sched.Pending() == 0 }, time.Second, time.Millisecond)

	eng.Stop()
	eng.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.Equal(t, StateStopped, eng.State())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	eng, _ := newTestEngine(t, WithScheduler(NewManualScheduler()))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()
	require.Eventually(t, func() bool { return eng.State() == StateRunning }, time.Second, time.Millisecond)

	assert.ErrorIs(t, eng.Run(context.Background()), ErrAlreadyRunning)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	sched := NewManualScheduler()
	eng, win := newTestEngine(t, WithScheduler(sched))
	eng.OnFrame(func(dt, elapsed float32) {
		if eng.Frames() == 4 {
			_ = win.Close()
		}
	})
	sched.Release(100)

	require.NoError(t, eng.Run(context.Background()))
	assert.Equal(t, uint64(5), eng.Frames())
}

func TestRunStopsWhenWindowRequestsClose(t *testing.T) {
	sched := NewManualScheduler()
	eng, win := newTestEngine(t, WithScheduler(sched))
	eng.OnFrame(func(dt, elapsed float32) {
		if eng.Frames() == 2 {
			eng.Post(win.RequestClose)
		}
	})
	sched.Release(100)

	require.NoError(t, eng.Run(context.Background()))
	assert.Equal(t, uint64(4), eng.Frames(), "the frame that drains the request still renders")
	assert.NoError(t, win.Close(), "the window stays open until its owner closes it")
}

func TestRenderErrorHaltsRun(t *testing.T) {
	rec := newRecordingRenderer()
	rec.failAt = 2
	sched := NewManualScheduler()
	eng, _ := newTestEngine(t, WithRenderer(rec), WithScheduler(sched))
	sched.Release(10)

	err := eng.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device lost")
	assert.Equal(t, 3, rec.count("render"), "no retry after the failing draw")
	assert.Equal(t, 7, sched.Pending())
	assert.Equal(t, StateStopped, eng.State())
}

func TestStopBeforeRun(t *testing.T) {
	eng, _ := newTestEngine(t, WithScheduler(NewManualScheduler()))
	eng.Stop()
	assert.Equal(t, StateStopped, eng.State())
	assert.ErrorIs(t, eng.Run(context.Background()), ErrStopped)
}

func TestPostFromOtherGoroutines(t *testing.T) {
	eng, _ := newTestEngine(t)
	ran := 0
	done := make(chan struct{})
	for range 8 {
		go func() {
			eng.Post(func() { ran++ })
			done <- struct{}{}
		}()
	}
	for range 8 {
		<-done
	}
	require.NoError(t, eng.Step(0))
	assert.Equal(t, 8, ran)
}

func TestControlsUpdateEveryStep(t *testing.T) {
	eng, win := newTestEngine(t, WithCameraPosition(0, 0, 10), WithOrbitControls(camera.WithDamping(0.1)))
	require.NotNil(t, eng.Controls())
	start := eng.Camera().Position()

	win.EmitMouseDown(common.MouseButtonLeft, 400, 300)
	win.EmitMouseMove(450, 300)
	win.EmitMouseUp(common.MouseButtonLeft, 450, 300)

	require.NoError(t, eng.Step(0.016))
	afterOne := eng.Camera().Position()
	assert.NotEqual(t, start, afterOne)

	require.NoError(t, eng.Step(0.016))
	assert.NotEqual(t, afterOne, eng.Camera().Position(), "damping keeps moving the camera after input stops")

	eng.SetControls(nil)
	settled := eng.Camera().Position()
	require.NoError(t, eng.Step(0.016))
	assert.Equal(t, settled, eng.Camera().Position())
}

func TestProfilerToggle(t *testing.T) {
	eng, _ := newTestEngine(t, WithProfiling(true))
	eng.DisableProfiler()
	eng.EnableProfiler()
	require.NoError(t, eng.Step(0.016))
}

func TestSchedulers(t *testing.T) {
	t.Run("ticker", func(t *testing.T) {
		s := NewTickerScheduler(1000)
		require.NoError(t, s.Next(context.Background()))
		s.Close()
		s.Close()
		assert.ErrorIs(t, s.Next(context.Background()), ErrSchedulerClosed)
	})
	t.Run("ticker cancelled", func(t *testing.T) {
		s := NewTickerScheduler(0.001)
		defer s.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Next(ctx), context.Canceled)
	})
	t.Run("manual", func(t *testing.T) {
		s := NewManualScheduler()
		s.Release(2)
		s.Release(0)
		assert.Equal(t, 2, s.Pending())
		require.NoError(t, s.Next(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		require.NoError(t, s.Next(ctx))
		assert.ErrorIs(t, s.Next(ctx), context.DeadlineExceeded)

		s.Release(1)
		s.Close()
		require.NoError(t, s.Next(context.Background()), "released frames survive Close")
		assert.ErrorIs(t, s.Next(context.Background()), ErrSchedulerClosed)
	})
}
