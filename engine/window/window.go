package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/common"
)

// Window is the host display surface a viewport draws into.
// It reports its pixel size and device pixel ratio, forwards input events to registered
// listeners and owns the fullscreen state. Listener registration is additive so that a
// navigation controller and a demo can both observe the same events.
type Window interface {
	// AddResizeListener registers a function called when the drawable area changes size.
	//
	// Parameters:
	//   - listener: function receiving the new width and height in pixels
	AddResizeListener(listener func(width, height int))

	// AddScrollListener registers a function called for mouse wheel events.
	//
	// Parameters:
	//   - listener: function receiving the vertical scroll delta (positive = away from the user)
	AddScrollListener(listener func(delta float32))

	// AddKeyDownListener registers a function called when a key is pressed or repeats.
	//
	// Parameters:
	//   - listener: function receiving the key code
	AddKeyDownListener(listener func(key common.Key))

	// AddKeyUpListener registers a function called when a key is released.
	//
	// Parameters:
	//   - listener: function receiving the key code
	AddKeyUpListener(listener func(key common.Key))

	// AddMouseDownListener registers a function called when a mouse button is pressed.
	//
	// Parameters:
	//   - listener: function receiving the button and cursor position
	AddMouseDownListener(listener func(button common.MouseButton, x, y float32))

	// AddMouseUpListener registers a function called when a mouse button is released.
	//
	// Parameters:
	//   - listener: function receiving the button and cursor position
	AddMouseUpListener(listener func(button common.MouseButton, x, y float32))

	// AddMouseMoveListener registers a function called when the cursor moves.
	//
	// Parameters:
	//   - listener: function receiving the cursor position
	AddMouseMoveListener(listener func(x, y float32))

	// AddClickListener registers a function called on a primary-button click.
	//
	// Parameters:
	//   - listener: function receiving the cursor position
	AddClickListener(listener func(x, y float32))

	// AddDoubleClickListener registers a function called on a primary-button double click.
	//
	// Parameters:
	//   - listener: function receiving the cursor position
	AddDoubleClickListener(listener func(x, y float32))

	// DevicePixelRatio returns the ratio between framebuffer pixels and logical window units.
	//
	// Returns:
	//   - float32: the device pixel ratio (1 on standard displays)
	DevicePixelRatio() float32

	// IsFullscreen reports whether the window currently covers a monitor.
	//
	// Returns:
	//   - bool: true while fullscreen
	IsFullscreen() bool

	// RequestFullscreen switches the window to fullscreen.
	//
	// Returns:
	//   - error: error if the host cannot enter fullscreen
	RequestFullscreen() error

	// ExitFullscreen restores the windowed size and position.
	//
	// Returns:
	//   - error: error if the host cannot leave fullscreen
	ExitFullscreen() error

	// IsRunning returns true while the window has not been closed or asked to close.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose marks the window as closing without releasing anything. IsRunning reports
	// false from then on, and the owner still calls Close once its loop has exited.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages polls pending host events once without blocking.
	// Listeners run on the calling goroutine.
	ProcessMessages()

	// Width returns the current drawable width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current drawable height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// Listeners stores event listeners and dispatches events to them in registration order.
// Window implementations embed it to satisfy the Add*Listener half of Window.
type Listeners struct {
	mu sync.Mutex

	onResize      []func(width, height int)
	onScroll      []func(delta float32)
	onKeyDown     []func(key common.Key)
	onKeyUp       []func(key common.Key)
	onMouseDown   []func(button common.MouseButton, x, y float32)
	onMouseUp     []func(button common.MouseButton, x, y float32)
	onMouseMove   []func(x, y float32)
	onClick       []func(x, y float32)
	onDoubleClick []func(x, y float32)
}

func (l *Listeners) AddResizeListener(listener func(width, height int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onResize = append(l.onResize, listener)
}

func (l *Listeners) AddScrollListener(listener func(delta float32)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onScroll = append(l.onScroll, listener)
}

func (l *Listeners) AddKeyDownListener(listener func(key common.Key)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onKeyDown = append(l.onKeyDown, listener)
}

func (l *Listeners) AddKeyUpListener(listener func(key common.Key)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onKeyUp = append(l.onKeyUp, listener)
}

func (l *Listeners) AddMouseDownListener(listener func(button common.MouseButton, x, y float32)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onMouseDown = append(l.onMouseDown, listener)
}

func (l *Listeners) AddMouseUpListener(listener func(button common.MouseButton, x, y float32)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onMouseUp = append(l.onMouseUp, listener)
}

func (l *Listeners) AddMouseMoveListener(listener func(x, y float32)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onMouseMove = append(l.onMouseMove, listener)
}

func (l *Listeners) AddClickListener(listener func(x, y float32)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onClick = append(l.onClick, listener)
}

func (l *Listeners) AddDoubleClickListener(listener func(x, y float32)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onDoubleClick = append(l.onDoubleClick, listener)
}

// EmitResize notifies every resize listener.
func (l *Listeners) EmitResize(width, height int) {
	for _, fn := range snapshot(l, &l.onResize) {
		fn(width, height)
	}
}

// EmitScroll notifies every scroll listener.
func (l *Listeners) EmitScroll(delta float32) {
	for _, fn := range snapshot(l, &l.onScroll) {
		fn(delta)
	}
}

// EmitKeyDown notifies every key-down listener.
func (l *Listeners) EmitKeyDown(key common.Key) {
	for _, fn := range snapshot(l, &l.onKeyDown) {
		fn(key)
	}
}

// EmitKeyUp notifies every key-up listener.
func (l *Listeners) EmitKeyUp(key common.Key) {
	for _, fn := range snapshot(l, &l.onKeyUp) {
		fn(key)
	}
}

// EmitMouseDown notifies every mouse-down listener.
func (l *Listeners) EmitMouseDown(button common.MouseButton, x, y float32) {
	for _, fn := range snapshot(l, &l.onMouseDown) {
		fn(button, x, y)
	}
}

// EmitMouseUp notifies every mouse-up listener.
func (l *Listeners) EmitMouseUp(button common.MouseButton, x, y float32) {
	for _, fn := range snapshot(l, &l.onMouseUp) {
		fn(button, x, y)
	}
}

// EmitMouseMove notifies every mouse-move listener.
func (l *Listeners) EmitMouseMove(x, y float32) {
	for _, fn := range snapshot(l, &l.onMouseMove) {
		fn(x, y)
	}
}

// EmitClick notifies every click listener.
func (l *Listeners) EmitClick(x, y float32) {
	for _, fn := range snapshot(l, &l.onClick) {
		fn(x, y)
	}
}

// EmitDoubleClick notifies every double-click listener.
func (l *Listeners) EmitDoubleClick(x, y float32) {
	for _, fn := range snapshot(l, &l.onDoubleClick) {
		fn(x, y)
	}
}

// snapshot copies a listener slice under the lock so listeners may register more listeners.
func snapshot[T any](l *Listeners, fns *[]T) []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(*fns))
	copy(out, *fns)
	return out
}
