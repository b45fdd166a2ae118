package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/clock"
	"github.com/Carmen-Shannon/oxy-viewport/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewport/engine/tween"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidViewport is returned by NewEngine when the initial width or height is not positive.
	ErrInvalidViewport = errors.New("viewport width and height must be positive")

	// ErrInvalidClipPlanes is returned by NewEngine unless 0 < near < far.
	ErrInvalidClipPlanes = errors.New("clip planes must satisfy 0 < near < far")

	// ErrStopped is returned by Run when the engine was already stopped.
	ErrStopped = errors.New("engine stopped")

	// ErrAlreadyRunning is returned by Run when another Run call is in progress.
	ErrAlreadyRunning = errors.New("engine already running")
)

// State is the lifecycle state of an Engine.
type State int

const (
	// StateIdle means Run has not been called yet.
	StateIdle State = iota
	// StateRunning means Run is looping.
	StateRunning
	// StateStopped means the loop has ended. An engine cannot be restarted.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// FrameCallback is called once per step with the step's delta and the total time stepped so far, in seconds.
type FrameCallback func(dt, elapsed float32)

// engine implements the Engine interface.
// It owns one scene, camera and renderer, and drives them from a single frame goroutine.
type engine struct {
	logger zerolog.Logger

	window   window.Window
	scene    scene.Scene
	camera   camera.Camera
	renderer renderer.Renderer
	controls camera.OrbitControls
	tweens   tween.Timeline
	clock    *clock.Clock

	scheduler FrameScheduler

	profiler         *profiler.Profiler
	profilingEnabled bool

	callbacks []FrameCallback
	elapsed   float32
	frames    uint64

	// guards state, queue, stopped and cancel; everything else belongs to the frame goroutine
	mu      sync.Mutex
	state   State
	queue   []func()
	stopped chan struct{}
	stopOne sync.Once
	cancel  context.CancelFunc

	// construction parameters, read by NewEngine after options are applied
	width, height   int
	sizeSet         bool
	fov             float32
	near, far       float32
	cameraPosition  [3]float32
	cameraTarget    [3]float32
	tickRate        float64
	orbitControls   bool
	orbitOptions    []camera.OrbitControlsOption
	rendererOptions []renderer.RendererBuilderOption
}

// Engine is the viewport render shell: scene, camera, drawing surface and an optional
// navigation controller, stepped once per scheduled frame.
//
// Scene mutation belongs on the frame goroutine. Work coming from other goroutines, such as
// texture load callbacks, must go through Post.
type Engine interface {
	// Window returns the host display surface.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene graph root drawn every frame.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Camera returns the projection source.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Renderer returns the drawing surface.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Controls returns the navigation controller, or nil if none is attached.
	//
	// Returns:
	//   - camera.OrbitControls: the controller
	Controls() camera.OrbitControls

	// SetControls attaches or detaches (nil) the navigation controller updated at the start of each step.
	//
	// Parameters:
	//   - c: the controller
	SetControls(c camera.OrbitControls)

	// Tweens returns the timeline advanced every step.
	//
	// Returns:
	//   - tween.Timeline: the timeline
	Tweens() tween.Timeline

	// Clock returns the clock Run derives frame deltas from.
	//
	// Returns:
	//   - *clock.Clock: the clock
	Clock() *clock.Clock

	// HandleResize reacts to a new viewport size: camera aspect, projection recompute, drawing
	// surface size and pixel ratio, in that order. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: new width in logical pixels
	//   - height: new height in logical pixels
	HandleResize(width, height int)

	// OnFrame registers a callback run every step after the controller and tweens, in registration order.
	//
	// Parameters:
	//   - callback: the per-frame function
	OnFrame(callback FrameCallback)

	// Post queues fn to run on the frame goroutine at the start of the next step.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the function to run
	Post(fn func())

	// Step runs one frame: window events, posted work, controller update, tweens, frame
	// callbacks, scene update, then exactly one draw.
	//
	// Parameters:
	//   - dt: seconds since the previous step
	//
	// Returns:
	//   - error: the render error, if drawing failed
	Step(dt float32) error

	// Run loops until stopped, asking the scheduler for every frame. It returns nil when stopped
	// through Stop, ctx, a closed scheduler or a closed window, and the render error if drawing
	// failed.
	//
	// Parameters:
	//   - ctx: cancelling it stops the loop
	//
	// Returns:
	//   - error: render error, ErrStopped or ErrAlreadyRunning
	Run(ctx context.Context) error

	// Stop ends the loop after the current step. Safe to call from any goroutine, any number of times.
	Stop()

	// State returns the lifecycle state.
	//
	// Returns:
	//   - State: the state
	State() State

	// Frames returns the number of completed steps.
	//
	// Returns:
	//   - uint64: the step count
	Frames() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Without WithWindow a headless window of the configured size is created, and without
// WithScene/WithRenderer a new scene and software renderer are built.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrInvalidViewport or ErrInvalidClipPlanes on bad parameters
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger:         zerolog.Nop(),
		width:          800,
		height:         600,
		fov:            75,
		near:           0.1,
		far:            1000,
		cameraPosition: [3]float32{0, 0, 5},
		tickRate:       60,
		stopped:        make(chan struct{}),
		tweens:         tween.NewTimeline(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && !e.sizeSet {
		e.width, e.height = e.window.Width(), e.window.Height()
	}
	if e.width <= 0 || e.height <= 0 {
		return nil, fmt.Errorf("failed to create engine: %w: %dx%d", ErrInvalidViewport, e.width, e.height)
	}
	if e.near <= 0 || e.far <= e.near {
		return nil, fmt.Errorf("failed to create engine: %w: near=%v far=%v", ErrInvalidClipPlanes, e.near, e.far)
	}

	if e.window == nil {
		e.window = window.NewHeadlessWindow(window.WithSize(e.width, e.height))
	}
	if e.scene == nil {
		e.scene = scene.NewScene("main")
	}
	if e.camera == nil {
		e.camera = camera.NewCamera(
			camera.WithFov(e.fov),
			camera.WithAspect(float32(e.width)/float32(e.height)),
			camera.WithClipPlanes(e.near, e.far),
			camera.WithPosition(e.cameraPosition[0], e.cameraPosition[1], e.cameraPosition[2]),
			camera.WithTarget(e.cameraTarget[0], e.cameraTarget[1], e.cameraTarget[2]),
		)
	}
	if e.renderer == nil {
		opts := []renderer.RendererBuilderOption{
			renderer.WithSize(e.width, e.height),
			renderer.WithPixelRatio(e.window.DevicePixelRatio()),
			renderer.WithLogger(e.logger),
		}
		e.renderer = renderer.NewRenderer(append(opts, e.rendererOptions...)...)
	}
	if e.clock == nil {
		e.clock = clock.NewClock()
	}
	if e.scheduler == nil {
		e.scheduler = NewTickerScheduler(e.tickRate)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.orbitControls {
		opts := append([]camera.OrbitControlsOption{camera.WithViewportSize(e.width, e.height)}, e.orbitOptions...)
		e.controls = camera.NewOrbitControls(e.camera, opts...)
		e.controls.Attach(e.window)
	}

	e.window.AddResizeListener(e.HandleResize)
	e.HandleResize(e.width, e.height)

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Controls() camera.OrbitControls {
	return e.controls
}

func (e *engine) SetControls(c camera.OrbitControls) {
	e.controls = c
	if c != nil {
		w, h := e.renderer.Size()
		c.SetViewportSize(w, h)
	}
}

func (e *engine) Tweens() tween.Timeline {
	return e.tweens
}

func (e *engine) Clock() *clock.Clock {
	return e.clock
}

func (e *engine) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.camera.SetAspect(float32(width) / float32(height))
	e.camera.UpdateProjectionMatrix()
	e.renderer.SetSize(width, height)
	e.renderer.SetPixelRatio(e.window.DevicePixelRatio())
	if e.controls != nil {
		e.controls.SetViewportSize(width, height)
	}
	e.logger.Debug().Int("width", width).Int("height", height).Msg("viewport resized")
}

func (e *engine) OnFrame(callback FrameCallback) {
	if callback == nil {
		return
	}
	e.callbacks = append(e.callbacks, callback)
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	e.mu.Unlock()
}

// drain runs posted work, including work posted by the functions it runs.
func (e *engine) drain() {
	for {
		e.mu.Lock()
		queue := e.queue
		e.queue = nil
		e.mu.Unlock()
		if len(queue) == 0 {
			return
		}
		for _, fn := range queue {
			fn()
		}
	}
}

func (e *engine) Step(dt float32) error {
	if dt < 0 {
		dt = 0
	}

	e.window.ProcessMessages()
	e.drain()

	if e.controls != nil {
		e.controls.Update()
	}
	e.tweens.Update(dt)

	e.elapsed += dt
	for _, cb := range e.callbacks {
		cb(dt, e.elapsed)
	}
	e.scene.Update(dt)

	if err := e.renderer.Render(e.scene, e.camera); err != nil {
		return fmt.Errorf("failed to render frame %d: %w", e.frames, err)
	}
	e.frames++

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case StateRunning:
		e.mu.Unlock()
		return ErrAlreadyRunning
	case StateStopped:
		e.mu.Unlock()
		return ErrStopped
	}
	select {
	case <-e.stopped:
		e.state = StateStopped
		e.mu.Unlock()
		return ErrStopped
	default:
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.state = StateRunning
	e.mu.Unlock()

	defer func() {
		cancel()
		e.mu.Lock()
		e.state = StateStopped
		e.cancel = nil
		e.mu.Unlock()
		e.logger.Info().Uint64("frames", e.frames).Msg("render loop stopped")
	}()

	e.logger.Info().Msg("render loop started")
	e.clock.Start()
	for {
		if ctx.Err() != nil || !e.window.IsRunning() {
			return nil
		}
		if err := e.scheduler.Next(ctx); err != nil {
			if errors.Is(err, ErrSchedulerClosed) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("frame scheduler failed: %w", err)
		}
		if err := e.Step(e.clock.Delta()); err != nil {
			e.logger.Error().Err(err).Msg("render loop halted")
			return err
		}
	}
}

func (e *engine) Stop() {
	e.stopOne.Do(func() {
		close(e.stopped)
	})
	e.mu.Lock()
	cancel := e.cancel
	if e.state == StateIdle {
		e.state = StateStopped
	}
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) Frames() uint64 {
	return e.frames
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	if !e.profilingEnabled {
		e.profiler.Reset()
	}
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}
