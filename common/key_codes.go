package common

// Key is a virtual key code. Values match GLFW key codes, which use ASCII for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

// Printable keys used by the viewport shortcuts.
const (
	KeyA     Key = 65
	KeyD     Key = 68
	KeyF     Key = 70
	KeyH     Key = 72
	KeyP     Key = 80
	KeyR     Key = 82
	KeyS     Key = 83
	KeyW     Key = 87
	KeySpace Key = 32
)

// Navigation and control keys (GLFW values).
const (
	KeyEsc        Key = 256
	KeyEnter      Key = 257
	KeyRight      Key = 262
	KeyLeft       Key = 263
	KeyDown       Key = 264
	KeyUp         Key = 265
	KeyF11        Key = 300
	KeyLeftShift  Key = 340
	KeyLeftCtrl   Key = 341
	KeyRightShift Key = 344
	KeyRightCtrl  Key = 345
)

// MouseButton identifies a pointer button. Values match GLFW mouse buttons.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)
