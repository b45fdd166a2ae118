package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/rs/zerolog"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackend sets the backend frames are presented to.
//
// Parameters:
//   - backend: the RendererBackend to present to
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithSize sets the initial logical size of the drawing surface.
//
// Parameters:
//   - width: width in logical pixels
//   - height: height in logical pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width, r.height = width, height
	}
}

// WithPixelRatio sets the initial pixel ratio. It is clamped like SetPixelRatio.
//
// Parameters:
//   - ratio: the device pixel ratio
//
// Returns:
//   - RendererBuilderOption: a function that applies the pixel ratio option to a renderer
func WithPixelRatio(ratio float32) RendererBuilderOption {
	return func(r *renderer) {
		if ratio > 0 {
			r.pixelRatio = r.clampPixelRatio(ratio)
		}
	}
}

// WithMaxPixelRatio caps the pixel ratio. Renderers are uncapped by default and follow the
// host's device pixel ratio exactly; non-positive values leave them uncapped.
//
// Parameters:
//   - ratio: the largest accepted pixel ratio
//
// Returns:
//   - RendererBuilderOption: a function that applies the cap to a renderer
func WithMaxPixelRatio(ratio float32) RendererBuilderOption {
	return func(r *renderer) {
		if ratio <= 0 {
			r.maxPixelRatio = 0
			return
		}
		r.maxPixelRatio = ratio
		r.pixelRatio = min(r.pixelRatio, ratio)
	}
}

// WithClearColor sets the color used when the scene has no background.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color to a renderer
func WithClearColor(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithWorkers sets how many goroutines rasterize a frame. Defaults to runtime.NumCPU().
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count to a renderer
func WithWorkers(workers int) RendererBuilderOption {
	return func(r *renderer) {
		r.workers = workers
	}
}

// WithLogger sets the logger used for present failures and per-frame trace output.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger to a renderer
func WithLogger(logger zerolog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}
