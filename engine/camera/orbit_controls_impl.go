package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/chewxy/math32"
)

// minPolarEps keeps the camera off the poles, where the view basis degenerates.
const minPolarEps = 1e-6

// changeEps is the squared distance below which Update reports no movement.
const changeEps = 1e-6

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragDolly
	dragPan
)

// orbitControlsImpl is the single implementation of OrbitControls.
// Orbit state is kept as spherical deltas relative to the target; the camera position is
// re-derived from the camera itself on every Update so outside moves are respected.
type orbitControlsImpl struct {
	mu *sync.Mutex

	camera Camera
	target [3]float32

	enabled       bool
	enableDamping bool
	dampingFactor float32

	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32
	keyPanSpeed float32

	minDistance   float32
	maxDistance   float32
	minPolarAngle float32
	maxPolarAngle float32

	// pending deltas consumed by Update
	deltaTheta float32
	deltaPhi   float32
	panOffset  [3]float32
	scale      float32

	viewportWidth  int
	viewportHeight int

	drag       dragMode
	dragStartX float32
	dragStartY float32

	savedTarget   [3]float32
	savedPosition [3]float32
}

// Compile-time interface compliance check
var _ OrbitControls = &orbitControlsImpl{}

// NewOrbitControls creates orbit controls for the given camera.
// The orbit target defaults to the camera's current look-at target.
//
// Parameters:
//   - cam: the camera to control (must not be nil)
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the newly created controls
func NewOrbitControls(cam Camera, options ...OrbitControlsOption) OrbitControls {
	if cam == nil {
		panic("orbit controls require a camera")
	}
	oc := &orbitControlsImpl{
		mu:     &sync.Mutex{},
		camera: cam,
		target: cam.Target(),

		enabled:       true,
		dampingFactor: 0.05,

		rotateSpeed: 1,
		zoomSpeed:   1,
		panSpeed:    1,
		keyPanSpeed: 7,

		minDistance:   0,
		maxDistance:   math32.Inf(1),
		minPolarAngle: 0,
		maxPolarAngle: math32.Pi,

		scale:          1,
		viewportWidth:  1,
		viewportHeight: 1,
	}
	for _, option := range options {
		option(oc)
	}

	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])
	oc.savedTarget = oc.target
	oc.savedPosition = cam.Position()
	return oc
}

func (oc *orbitControlsImpl) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	position := oc.camera.Position()
	offset := common.Sub3(position, oc.target)

	radius := common.Length3(offset)
	theta := math32.Atan2(offset[0], offset[2])
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(common.Clamp(offset[1]/radius, -1, 1))
	}

	if oc.enableDamping {
		theta += oc.deltaTheta * oc.dampingFactor
		phi += oc.deltaPhi * oc.dampingFactor
	} else {
		theta += oc.deltaTheta
		phi += oc.deltaPhi
	}

	phi = common.Clamp(phi, oc.minPolarAngle, oc.maxPolarAngle)
	phi = common.Clamp(phi, minPolarEps, math32.Pi-minPolarEps)

	radius = common.Clamp(radius*oc.scale, oc.minDistance, oc.maxDistance)

	if oc.enableDamping {
		oc.target = common.Add3(oc.target, common.Scale3(oc.panOffset, oc.dampingFactor))
	} else {
		oc.target = common.Add3(oc.target, oc.panOffset)
	}

	sinPhi := math32.Sin(phi)
	offset = [3]float32{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
	next := common.Add3(oc.target, offset)

	oc.camera.SetPosition(next[0], next[1], next[2])
	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])

	if oc.enableDamping {
		decay := 1 - oc.dampingFactor
		oc.deltaTheta *= decay
		oc.deltaPhi *= decay
		oc.panOffset = common.Scale3(oc.panOffset, decay)
	} else {
		oc.deltaTheta = 0
		oc.deltaPhi = 0
		oc.panOffset = [3]float32{}
	}
	oc.scale = 1

	moved := common.Sub3(next, position)
	return common.Dot3(moved, moved) > changeEps
}

func (oc *orbitControlsImpl) Camera() Camera {
	return oc.camera
}

func (oc *orbitControlsImpl) Target() [3]float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControlsImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
}

func (oc *orbitControlsImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControlsImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.drag = dragNone
	}
}

func (oc *orbitControlsImpl) EnableDamping() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enableDamping
}

func (oc *orbitControlsImpl) SetEnableDamping(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableDamping = enabled
}

func (oc *orbitControlsImpl) DampingFactor() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.dampingFactor
}

func (oc *orbitControlsImpl) SetDampingFactor(factor float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.dampingFactor = common.Clamp(factor, 1e-4, 1)
}

func (oc *orbitControlsImpl) RotateLeft(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.deltaTheta -= angle
}

func (oc *orbitControlsImpl) RotateUp(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.deltaPhi -= angle
}

func (oc *orbitControlsImpl) Pan(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.pan(dx, dy)
}

func (oc *orbitControlsImpl) DollyIn(scale float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.scale *= scale
}

func (oc *orbitControlsImpl) DollyOut(scale float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.scale /= scale
}

func (oc *orbitControlsImpl) Distance() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return common.Length3(common.Sub3(oc.camera.Position(), oc.target))
}

func (oc *orbitControlsImpl) SetViewportSize(width, height int) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if width > 0 && height > 0 {
		oc.viewportWidth = width
		oc.viewportHeight = height
	}
}

func (oc *orbitControlsImpl) HandleMouseDown(button common.MouseButton, x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	switch button {
	case common.MouseButtonLeft:
		oc.drag = dragRotate
	case common.MouseButtonMiddle:
		oc.drag = dragDolly
	case common.MouseButtonRight:
		oc.drag = dragPan
	default:
		oc.drag = dragNone
	}
	oc.dragStartX, oc.dragStartY = x, y
}

func (oc *orbitControlsImpl) HandleMouseMove(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || oc.drag == dragNone {
		return
	}
	dx, dy := x-oc.dragStartX, y-oc.dragStartY
	oc.dragStartX, oc.dragStartY = x, y

	height := float32(oc.viewportHeight)
	switch oc.drag {
	case dragRotate:
		oc.deltaTheta -= 2 * math32.Pi * dx * oc.rotateSpeed / height
		oc.deltaPhi -= 2 * math32.Pi * dy * oc.rotateSpeed / height
	case dragDolly:
		if dy > 0 {
			oc.scale /= oc.zoomScale()
		} else if dy < 0 {
			oc.scale *= oc.zoomScale()
		}
	case dragPan:
		oc.pan(dx*oc.panSpeed, dy*oc.panSpeed)
	}
}

func (oc *orbitControlsImpl) HandleMouseUp(button common.MouseButton, x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.drag = dragNone
}

func (oc *orbitControlsImpl) HandleScroll(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	if delta > 0 {
		oc.scale *= oc.zoomScale()
	} else if delta < 0 {
		oc.scale /= oc.zoomScale()
	}
}

func (oc *orbitControlsImpl) HandleKeyDown(key common.Key) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	switch key {
	case common.KeyUp:
		oc.pan(0, oc.keyPanSpeed)
	case common.KeyDown:
		oc.pan(0, -oc.keyPanSpeed)
	case common.KeyLeft:
		oc.pan(oc.keyPanSpeed, 0)
	case common.KeyRight:
		oc.pan(-oc.keyPanSpeed, 0)
	}
}

func (oc *orbitControlsImpl) Attach(w window.Window) {
	oc.SetViewportSize(w.Width(), w.Height())
	w.AddResizeListener(oc.SetViewportSize)
	w.AddMouseDownListener(oc.HandleMouseDown)
	w.AddMouseMoveListener(oc.HandleMouseMove)
	w.AddMouseUpListener(oc.HandleMouseUp)
	w.AddScrollListener(oc.HandleScroll)
	w.AddKeyDownListener(oc.HandleKeyDown)
}

func (oc *orbitControlsImpl) SaveState() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.savedTarget = oc.target
	oc.savedPosition = oc.camera.Position()
}

func (oc *orbitControlsImpl) Reset() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = oc.savedTarget
	oc.camera.SetPosition(oc.savedPosition[0], oc.savedPosition[1], oc.savedPosition[2])
	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])
	oc.deltaTheta, oc.deltaPhi = 0, 0
	oc.panOffset = [3]float32{}
	oc.scale = 1
	oc.drag = dragNone
}

// --- internal helpers ---

// zoomScale is the per-notch dolly factor.
func (oc *orbitControlsImpl) zoomScale() float32 {
	return math32.Pow(0.95, oc.zoomSpeed)
}

// pan converts a pixel delta into a world-space pan along the camera's right and up axes.
// A full-height drag moves the target by the visible height at the target distance.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) pan(dx, dy float32) {
	view := oc.camera.ViewMatrix()
	right := [3]float32{view[0], view[4], view[8]}
	up := [3]float32{view[1], view[5], view[9]}

	distance := common.Length3(common.Sub3(oc.camera.Position(), oc.target))
	distance *= math32.Tan(common.DegToRad(oc.camera.Fov()) / 2)

	height := float32(oc.viewportHeight)
	left := 2 * dx * distance / height
	upward := 2 * dy * distance / height

	oc.panOffset = common.Add3(oc.panOffset, common.Scale3(right, -left))
	oc.panOffset = common.Add3(oc.panOffset, common.Scale3(up, upward))
}
