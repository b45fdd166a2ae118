package window

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/common"
)

// ErrClosed is returned by operations on a window that has already been closed.
var ErrClosed = errors.New("window is closed")

// HeadlessWindow is a Window with no platform surface behind it.
// It is driven programmatically: tests and offscreen captures call Resize and the Emit*
// methods to simulate what a desktop host would report.
type HeadlessWindow interface {
	Window

	// Resize changes the drawable size and notifies resize listeners.
	//
	// Parameters:
	//   - width: new width in pixels
	//   - height: new height in pixels
	Resize(width, height int)

	// SetDevicePixelRatio changes the reported device pixel ratio.
	//
	// Parameters:
	//   - ratio: the new ratio
	SetDevicePixelRatio(ratio float32)

	EmitScroll(delta float32)
	EmitKeyDown(key common.Key)
	EmitKeyUp(key common.Key)
	EmitMouseDown(button common.MouseButton, x, y float32)
	EmitMouseUp(button common.MouseButton, x, y float32)
	EmitMouseMove(x, y float32)
	EmitClick(x, y float32)
	EmitDoubleClick(x, y float32)
}

type headlessWindow struct {
	Listeners

	mu         sync.Mutex
	config     Config
	width      int
	height     int
	ratio      float32
	fullscreen bool
	closing    bool
	closed     bool
}

var _ HeadlessWindow = &headlessWindow{}

// NewHeadlessWindow creates a HeadlessWindow sized from the given options.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - HeadlessWindow: the configured window
func NewHeadlessWindow(options ...WindowBuilderOption) HeadlessWindow {
	c := Apply(options...)
	return &headlessWindow{
		config:     c,
		width:      c.Width,
		height:     c.Height,
		ratio:      c.DevicePixelRatio,
		fullscreen: c.Fullscreen,
	}
}

func (w *headlessWindow) Resize(width, height int) {
	w.mu.Lock()
	w.width = width
	w.height = height
	w.mu.Unlock()
	w.EmitResize(width, height)
}

func (w *headlessWindow) SetDevicePixelRatio(ratio float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ratio = ratio
}

func (w *headlessWindow) DevicePixelRatio() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ratio
}

func (w *headlessWindow) IsFullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *headlessWindow) RequestFullscreen() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.fullscreen = true
	return nil
}

func (w *headlessWindow) ExitFullscreen() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.fullscreen = false
	return nil
}

func (w *headlessWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed && !w.closing
}

func (w *headlessWindow) RequestClose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closing = true
}

func (w *headlessWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	return nil
}

func (w *headlessWindow) ProcessMessages() {}

func (w *headlessWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *headlessWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}
