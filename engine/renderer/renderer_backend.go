package renderer

import (
	"image"
	"sync"
)

// RendererBackendType identifies where rendered frames are presented.
type RendererBackendType int

const (
	// BackendTypeHeadless keeps frames in memory only.
	BackendTypeHeadless RendererBackendType = iota

	// BackendTypeWGPU uploads frames to a WebGPU surface.
	BackendTypeWGPU
)

// String returns the backend name.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeHeadless:
		return "headless"
	case BackendTypeWGPU:
		return "wgpu"
	default:
		return "unknown"
	}
}

// RendererBackend presents finished frames. The renderer rasterizes on the CPU and hands each
// frame to its backend exactly once per Render call.
type RendererBackend interface {
	// Type returns the backend type.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	Type() RendererBackendType

	// Resize reconfigures the backend for a new framebuffer size in physical pixels.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Present displays a finished frame. The frame is only valid for the duration of the call.
	//
	// Parameters:
	//   - frame: the rendered pixels at framebuffer size
	//
	// Returns:
	//   - error: error if the frame could not be presented
	Present(frame *image.RGBA) error

	// Release frees any resources held by the backend.
	Release()
}

// HeadlessBackend is a RendererBackend that records presented frames in memory.
type HeadlessBackend interface {
	RendererBackend

	// Presented returns the number of frames presented so far.
	//
	// Returns:
	//   - int: the present count
	Presented() int

	// Size returns the last size passed to Resize.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Last returns a copy of the most recently presented frame, or nil before the first present.
	//
	// Returns:
	//   - *image.RGBA: the frame copy
	Last() *image.RGBA
}

type headlessBackend struct {
	mu        *sync.Mutex
	width     int
	height    int
	presented int
	last      *image.RGBA
}

var _ HeadlessBackend = &headlessBackend{}

// NewHeadlessBackend creates a backend that keeps frames in memory. It is the default backend.
//
// Returns:
//   - HeadlessBackend: the backend
func NewHeadlessBackend() HeadlessBackend {
	return &headlessBackend{mu: &sync.Mutex{}}
}

func (b *headlessBackend) Type() RendererBackendType {
	return BackendTypeHeadless
}

func (b *headlessBackend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *headlessBackend) Present(frame *image.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil || b.last.Rect != frame.Rect {
		b.last = image.NewRGBA(frame.Rect)
	}
	copy(b.last.Pix, frame.Pix)
	b.presented++
	return nil
}

func (b *headlessBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = nil
}

func (b *headlessBackend) Presented() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presented
}

func (b *headlessBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *headlessBackend) Last() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return nil
	}
	out := image.NewRGBA(b.last.Rect)
	copy(out.Pix, b.last.Pix)
	return out
}
