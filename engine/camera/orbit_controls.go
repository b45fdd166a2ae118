package camera

import (
	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
)

// OrbitControls orbits a Camera around a target point.
// Input handlers only accumulate deltas; the camera moves when Update is called, which must
// happen once per frame. With damping enabled the accumulated deltas decay over several
// frames, giving the camera inertia after the pointer is released.
type OrbitControls interface {
	// Update applies the accumulated rotation, pan and dolly to the camera.
	// With damping enabled, the remaining deltas are decayed by the damping factor.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera passed at construction
	Camera() Camera

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - [3]float32: world-space pivot
	Target() [3]float32

	// SetTarget moves the orbit pivot. The camera turns toward it on the next Update.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Enabled reports whether input handlers are active.
	//
	// Returns:
	//   - bool: true if input is applied
	Enabled() bool

	// SetEnabled turns input handling on or off. Update keeps applying any remaining damping.
	//
	// Parameters:
	//   - enabled: true to accept input
	SetEnabled(enabled bool)

	// EnableDamping reports whether inertia is applied.
	//
	// Returns:
	//   - bool: true if damping is enabled
	EnableDamping() bool

	// SetEnableDamping turns inertia on or off.
	//
	// Parameters:
	//   - enabled: true to enable damping
	SetEnableDamping(enabled bool)

	// DampingFactor returns the fraction of the accumulated delta applied per Update.
	//
	// Returns:
	//   - float32: damping factor in (0, 1]
	DampingFactor() float32

	// SetDampingFactor sets the fraction of the accumulated delta applied per Update.
	//
	// Parameters:
	//   - factor: damping factor in (0, 1]
	SetDampingFactor(factor float32)

	// RotateLeft accumulates a rotation around the up axis.
	//
	// Parameters:
	//   - angle: radians, positive turns the camera to the left of the target
	RotateLeft(angle float32)

	// RotateUp accumulates a rotation over the target.
	//
	// Parameters:
	//   - angle: radians, positive raises the camera
	RotateUp(angle float32)

	// Pan accumulates a screen-space pan measured in pixels.
	//
	// Parameters:
	//   - dx, dy: pointer travel in pixels
	Pan(dx, dy float32)

	// DollyIn moves the camera toward the target by the given scale.
	//
	// Parameters:
	//   - scale: factor in (0, 1); the distance is multiplied by it
	DollyIn(scale float32)

	// DollyOut moves the camera away from the target by the given scale.
	//
	// Parameters:
	//   - scale: factor in (0, 1); the distance is divided by it
	DollyOut(scale float32)

	// Distance returns the current camera distance from the target.
	//
	// Returns:
	//   - float32: distance in world units
	Distance() float32

	// SetViewportSize tells the controls how many pixels a full-height drag covers.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewportSize(width, height int)

	// HandleMouseDown starts a rotate (left), dolly (middle) or pan (right) drag.
	HandleMouseDown(button common.MouseButton, x, y float32)

	// HandleMouseMove continues the active drag.
	HandleMouseMove(x, y float32)

	// HandleMouseUp ends the active drag.
	HandleMouseUp(button common.MouseButton, x, y float32)

	// HandleScroll dollies in for positive deltas and out for negative ones.
	HandleScroll(delta float32)

	// HandleKeyDown pans with the arrow keys.
	HandleKeyDown(key common.Key)

	// Attach registers the input handlers and viewport size tracking on a window.
	//
	// Parameters:
	//   - w: the window to listen to
	Attach(w window.Window)

	// SaveState stores the current target, position and zoom for Reset.
	SaveState()

	// Reset restores the last saved state and clears pending deltas.
	Reset()
}
