// Package glfw_window implements window.Window on top of GLFW with no client graphics API,
// so a WebGPU surface can be created from it.
package glfw_window

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// doubleClickInterval is the longest gap between two primary-button releases that still counts as a double click.
const doubleClickInterval = 400 * time.Millisecond

// doubleClickSlop is the furthest the cursor may travel between the two clicks, in window units.
const doubleClickSlop = 4

// GLFWWindow is a desktop window.Window that can also hand out a WebGPU surface descriptor.
type GLFWWindow interface {
	window.Window

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type glfwWindow struct {
	window.Listeners

	mu      sync.Mutex
	window  *glfw.Window
	running bool
	width   int
	height  int

	fullscreen bool
	// windowed geometry saved when entering fullscreen
	savedX, savedY, savedW, savedH int

	lastClick  time.Time
	lastClickX float32
	lastClickY float32
	pressX     float32
	pressY     float32
}

var _ GLFWWindow = &glfwWindow{}

// NewWindow creates a GLFW window and registers its input callbacks.
// The calling goroutine is locked to its OS thread; every later call on the window must come from it.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - GLFWWindow: the created window
//   - error: error if GLFW fails to initialize or create the window
func NewWindow(options ...window.WindowBuilderOption) (GLFWWindow, error) {
	c := window.Apply(options...)
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(c.Width, c.Height, c.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(c.MinWidth, c.MinHeight, c.MaxWidth, c.MaxHeight)

	gw := &glfwWindow{
		window:  win,
		running: true,
	}
	gw.registerCallbacks()

	gw.width, gw.height = win.GetSize()

	if c.Fullscreen {
		if err := gw.RequestFullscreen(); err != nil {
			return nil, err
		}
	}
	return gw, nil
}

func (w *glfwWindow) registerCallbacks() {
	win := w.window

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			w.EmitKeyDown(common.Key(key))
		case glfw.Release:
			w.EmitKeyUp(common.Key(key))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.EmitScroll(float32(yoff))
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		xpos, ypos := win.GetCursorPos()
		x, y := float32(xpos), float32(ypos)
		b := common.MouseButton(button)
		switch action {
		case glfw.Press:
			if b == common.MouseButtonLeft {
				w.pressX, w.pressY = x, y
			}
			w.EmitMouseDown(b, x, y)
		case glfw.Release:
			w.EmitMouseUp(b, x, y)
			if b == common.MouseButtonLeft && near(x, y, w.pressX, w.pressY) {
				w.handleClick(x, y)
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.EmitMouseMove(float32(xpos), float32(ypos))
	})

	// The framebuffer callback also fires when only the content scale changes, so it is the
	// single resize source. Listeners receive the logical window size; DevicePixelRatio
	// gives the factor to the framebuffer.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		width, height := win.GetSize()
		w.mu.Lock()
		w.width = width
		w.height = height
		w.mu.Unlock()
		w.EmitResize(width, height)
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	})
}

// handleClick emits a click, followed by a double click when the previous click was recent and close by.
func (w *glfwWindow) handleClick(x, y float32) {
	w.EmitClick(x, y)

	now := time.Now()
	if now.Sub(w.lastClick) <= doubleClickInterval && near(x, y, w.lastClickX, w.lastClickY) {
		w.lastClick = time.Time{}
		w.EmitDoubleClick(x, y)
		return
	}
	w.lastClick = now
	w.lastClickX, w.lastClickY = x, y
}

func near(ax, ay, bx, by float32) bool {
	dx, dy := ax-bx, ay-by
	return dx*dx+dy*dy <= doubleClickSlop*doubleClickSlop
}

func (w *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
	return wgpuglfw.GetSurfaceDescriptor(w.window)
}

// DevicePixelRatio reports framebuffer pixels per window unit. On high-DPI displays the
// framebuffer is larger than the window size, so logical size times this ratio is always the
// framebuffer size.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.GetFramebufferSize
func (w *glfwWindow) DevicePixelRatio() float32 {
	fw, _ := w.window.GetFramebufferSize()
	ww, _ := w.window.GetSize()
	if fw <= 0 || ww <= 0 {
		return 1
	}
	return float32(fw) / float32(ww)
}

func (w *glfwWindow) IsFullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

// RequestFullscreen moves the window onto the primary monitor at its current video mode.
// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_full_screen
func (w *glfwWindow) RequestFullscreen() error {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return fmt.Errorf("no primary monitor available")
	}
	mode := monitor.GetVideoMode()

	w.mu.Lock()
	if w.fullscreen {
		w.mu.Unlock()
		return nil
	}
	w.savedX, w.savedY = w.window.GetPos()
	w.savedW, w.savedH = w.window.GetSize()
	w.fullscreen = true
	w.mu.Unlock()

	w.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	return nil
}

func (w *glfwWindow) ExitFullscreen() error {
	w.mu.Lock()
	if !w.fullscreen {
		w.mu.Unlock()
		return nil
	}
	x, y, width, height := w.savedX, w.savedY, w.savedW, w.savedH
	w.fullscreen = false
	w.mu.Unlock()

	w.window.SetMonitor(nil, x, y, width, height, 0)
	return nil
}

func (w *glfwWindow) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running && !w.window.ShouldClose()
}

// RequestClose flags the GLFW window to close, like the close button does. The window and
// its surface stay valid until Close.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetShouldClose
func (w *glfwWindow) RequestClose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.window != nil {
		w.window.SetShouldClose(true)
	}
}

// Close destroys the GLFW window and terminates the GLFW library.
func (w *glfwWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.window == nil {
		return window.ErrClosed
	}
	w.running = false
	w.window.SetShouldClose(true)
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
	return nil
}

// ProcessMessages polls GLFW for pending events without blocking.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (w *glfwWindow) ProcessMessages() {
	glfw.PollEvents()
}

func (w *glfwWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *glfwWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}
