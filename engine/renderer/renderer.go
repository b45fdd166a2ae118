package renderer

import (
	"errors"
	"fmt"
	"image"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/scene"
	"github.com/HugoSmits86/nativewebp"
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

// ErrNoFrame is returned when a frame is requested before anything was rendered.
var ErrNoFrame = errors.New("renderer: no frame rendered yet")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	logger  zerolog.Logger
	backend RendererBackend

	width         int
	height        int
	pixelRatio    float32
	maxPixelRatio float32
	clearColor    common.Color

	workers int
	pool    worker.DynamicWorkerPool
	taskID  int

	fb           *frameBuffer
	frames       uint64
	lastDuration time.Duration
}

// Renderer is the drawing surface. It rasterizes a scene as seen from a camera into a pixel
// buffer of Size scaled by PixelRatio, then hands the buffer to its backend for presentation.
//
// Rendering is split into horizontal bands drawn on a worker pool; Render returns only after
// every band is finished, so callers never observe a partially drawn frame.
type Renderer interface {
	// SetSize sets the logical size of the drawing surface.
	//
	// Parameters:
	//   - width: width in logical pixels
	//   - height: height in logical pixels
	SetSize(width, height int)

	// Size returns the logical size of the drawing surface.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// SetPixelRatio sets the ratio of framebuffer pixels to logical pixels. Values above the
	// configured maximum are clamped to it; non-positive values reset it to 1.
	//
	// Parameters:
	//   - ratio: the device pixel ratio
	SetPixelRatio(ratio float32)

	// PixelRatio returns the pixel ratio in effect.
	//
	// Returns:
	//   - float32: the pixel ratio
	PixelRatio() float32

	// DrawingBufferSize returns the framebuffer size in physical pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	DrawingBufferSize() (int, int)

	// SetClearColor sets the color used when the scene has no background.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// ClearColor returns the clear color.
	//
	// Returns:
	//   - common.Color: the clear color
	ClearColor() common.Color

	// Render draws the scene from the camera and presents the frame.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: error if the surface has no size or the backend fails to present
	Render(s scene.Scene, cam camera.Camera) error

	// Frame returns a copy of the last rendered frame at logical size.
	//
	// Returns:
	//   - image.Image: the frame, or nil before the first Render
	Frame() image.Image

	// CaptureWebP encodes the last rendered frame as lossless WebP.
	//
	// Parameters:
	//   - w: the destination
	//
	// Returns:
	//   - error: ErrNoFrame before the first Render, or an encoding error
	CaptureWebP(w io.Writer) error

	// Frames returns the number of frames rendered.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// LastFrameDuration returns how long the last Render took.
	//
	// Returns:
	//   - time.Duration: the duration
	LastFrameDuration() time.Duration

	// Backend returns the presentation backend.
	//
	// Returns:
	//   - RendererBackend: the backend
	Backend() RendererBackend

	// Release frees the backend's resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer. Without WithBackend frames are kept in memory by a
// HeadlessBackend.
//
// Parameters:
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        zerolog.Nop(),
		pixelRatio:    1,
		workers:       runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		r.backend = NewHeadlessBackend()
	}
	if r.workers < 1 {
		r.workers = 1
	}
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)

	if r.width > 0 && r.height > 0 {
		r.backend.Resize(r.bufferSize())
	}
	return r
}

// clampPixelRatio applies the optional cap. A cap of 0 leaves the ratio untouched.
func (r *renderer) clampPixelRatio(ratio float32) float32 {
	if r.maxPixelRatio > 0 {
		return min(ratio, r.maxPixelRatio)
	}
	return ratio
}

// bufferSize must be called with the lock held.
func (r *renderer) bufferSize() (int, int) {
	return int(math32.Floor(float32(r.width) * r.pixelRatio)), int(math32.Floor(float32(r.height) * r.pixelRatio))
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.backend.Resize(r.bufferSize())
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPixelRatio(ratio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ratio <= 0 {
		ratio = 1
	}
	ratio = r.clampPixelRatio(ratio)
	if ratio == r.pixelRatio {
		return
	}
	r.pixelRatio = ratio
	r.backend.Resize(r.bufferSize())
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) DrawingBufferSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferSize()
}

func (r *renderer) SetClearColor(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if s == nil || cam == nil {
		return errors.New("renderer: scene and camera are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	w, h := r.bufferSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("renderer: invalid drawing buffer size %dx%d", w, h)
	}
	if r.fb == nil || r.fb.width != w || r.fb.height != h {
		r.fb = newFrameBuffer(w, h)
	}

	viewProj := cam.ViewProjectionMatrix()
	f := &frameState{
		fb:          r.fb,
		cameraPos:   cam.Position(),
		lights:      sampleLights(s.Lights()),
		environment: s.Environment(),
		clearColor:  r.clearColor,
	}
	if bg := s.Background(); bg.Texture != nil {
		f.background = bg.Texture
		f.hasBackground = true
		if !common.Invert4(f.invViewProj[:], viewProj[:]) {
			f.hasBackground = false
		}
	} else if bg.HasColor {
		f.clearColor = bg.Color
	}

	list := setupDrawList(s.Drawables(), viewProj, f.cameraPos, w, h)
	r.drawBands(f, list)

	if err := r.backend.Present(r.fb.img); err != nil {
		r.logger.Error().Err(err).Str("backend", r.backend.Type().String()).Msg("present failed")
		return fmt.Errorf("failed to present frame: %w", err)
	}

	r.frames++
	r.lastDuration = time.Since(start)
	r.logger.Trace().
		Uint64("frame", r.frames).
		Int("primitives", len(list.prims)).
		Dur("took", r.lastDuration).
		Msg("frame rendered")
	return nil
}

// drawBands clears and rasterizes the frame in horizontal bands on the worker pool.
// A WaitGroup is the per-frame barrier; the pool's own Wait blocks until workers idle out.
func (r *renderer) drawBands(f *frameState, list drawList) {
	bands := min(r.workers*4, f.fb.height)
	rows := (f.fb.height + bands - 1) / bands

	var wg sync.WaitGroup
	for y0 := 0; y0 < f.fb.height; y0 += rows {
		y1 := min(y0+rows, f.fb.height)
		wg.Add(1)
		id := r.taskID
		r.taskID++
		r.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				f.clearBand(y0, y1)
				f.rasterizeBand(list, y0, y1)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (r *renderer) Frame() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame()
}

// frame must be called with the lock held.
func (r *renderer) frame() *image.RGBA {
	if r.fb == nil {
		return nil
	}
	src := r.fb.img
	if src.Rect.Dx() == r.width && src.Rect.Dy() == r.height {
		out := image.NewRGBA(src.Rect)
		copy(out.Pix, src.Pix)
		return out
	}
	out := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	return out
}

func (r *renderer) CaptureWebP(w io.Writer) error {
	r.mu.Lock()
	img := r.frame()
	r.mu.Unlock()
	if img == nil {
		return ErrNoFrame
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return nil
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) LastFrameDuration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastDuration
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) Release() {
	r.backend.Release()
}
