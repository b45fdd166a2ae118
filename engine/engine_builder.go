package engine

import (
	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/clock"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewport/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the frame rate of the default ticker scheduler.
// Values <= 0 will be treated as the default (60Hz). Ignored when WithScheduler is used.
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.tickRate = fps
	}
}

// WithScheduler sets the frame scheduler that paces Run.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s FrameScheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create a headless one. The window's size becomes the initial viewport size unless WithSize is given.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithSize sets the initial viewport size in logical pixels.
//
// Parameters:
//   - width: viewport width, must be positive
//   - height: viewport height, must be positive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSize(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.width, e.height = width, height
		e.sizeSet = true
	}
}

// WithFov sets the vertical field of view of the default camera in degrees (default 75).
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFov(fov float32) EngineBuilderOption {
	return func(e *engine) {
		e.fov = fov
	}
}

// WithClipPlanes sets the near and far clip distances of the default camera (default 0.1, 1000).
//
// Parameters:
//   - near: near plane, must be positive
//   - far: far plane, must be greater than near
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClipPlanes(near, far float32) EngineBuilderOption {
	return func(e *engine) {
		e.near, e.far = near, far
	}
}

// WithCameraPosition sets the initial position of the default camera (default 0, 0, 5).
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraPosition(x, y, z float32) EngineBuilderOption {
	return func(e *engine) {
		e.cameraPosition = [3]float32{x, y, z}
	}
}

// WithCameraTarget sets the point the default camera looks at (default origin).
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCameraTarget(x, y, z float32) EngineBuilderOption {
	return func(e *engine) {
		e.cameraTarget = [3]float32{x, y, z}
	}
}

// WithCamera replaces the default camera. Its aspect is overwritten by the first resize.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithOrbitControls creates orbit controls for the camera and attaches them to the window.
//
// Parameters:
//   - options: options passed to camera.NewOrbitControls
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOrbitControls(options ...camera.OrbitControlsOption) EngineBuilderOption {
	return func(e *engine) {
		e.orbitControls = true
		e.orbitOptions = options
	}
}

// WithScene sets the scene drawn every frame instead of an empty one.
//
// Parameters:
//   - s: the Scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRenderer sets the drawing surface instead of building a software renderer.
//
// Parameters:
//   - r: the Renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithRendererOptions passes extra options, such as a presentation backend, to the renderer the
// engine builds. Ignored when WithRenderer is used.
//
// Parameters:
//   - options: renderer options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rendererOptions = append(e.rendererOptions, options...)
	}
}

// WithClock sets the clock Run derives frame deltas from.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c *clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithLogger sets the logger for loop lifecycle, resize and profiler output.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
