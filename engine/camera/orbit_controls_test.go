package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/window"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrbitControlsPanicsWithoutCamera(t *testing.T) {
	assert.Panics(t, func() { NewOrbitControls(nil) })
}

func TestUpdateWithoutInputKeepsCamera(t *testing.T) {
	cam := NewCamera(WithPosition(1, 1, 8), WithTarget(0, 0, 0))
	oc := NewOrbitControls(cam)

	moved := oc.Update()
	assert.False(t, moved)
	pos := cam.Position()
	assert.InDelta(t, 1, pos[0], 1e-4)
	assert.InDelta(t, 1, pos[1], 1e-4)
	assert.InDelta(t, 8, pos[2], 1e-4)
}

func TestRotateLeftWithoutDamping(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 5))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0))

	oc.RotateLeft(-math32.Pi / 2)
	require.True(t, oc.Update())

	pos := cam.Position()
	assert.InDelta(t, 5, pos[0], 1e-4)
	assert.InDelta(t, 0, pos[2], 1e-4)
	assert.InDelta(t, 5, oc.Distance(), 1e-4)

	// deltas are consumed without damping
	assert.False(t, oc.Update())
}

func TestDampingDecaysOverFrames(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 5))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0), WithDamping(0.25))
	require.True(t, oc.EnableDamping())

	oc.RotateLeft(-1)
	var steps []float32
	last := float32(0)
	for range 10 {
		oc.Update()
		pos := cam.Position()
		theta := math32.Atan2(pos[0], pos[2])
		steps = append(steps, theta-last)
		last = theta
	}

	assert.InDelta(t, 0.25, steps[0], 1e-4)
	for i := 1; i < len(steps); i++ {
		assert.Less(t, steps[i], steps[i-1], "frame %d should move less than frame %d", i, i-1)
	}
	assert.Less(t, last, float32(1))
}

func TestPolarAngleIsClamped(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 5))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0), WithPolarBounds(0.2, math32.Pi/2))

	oc.RotateUp(10)
	oc.Update()
	pos := cam.Position()
	phi := math32.Acos(pos[1] / common.Length3(pos))
	assert.InDelta(t, 0.2, phi, 1e-4)
}

func TestDollyRespectsDistanceBounds(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0), WithDistanceBounds(2, 20))

	oc.DollyIn(0.5)
	oc.Update()
	assert.InDelta(t, 5, oc.Distance(), 1e-4)

	oc.DollyIn(0.01)
	oc.Update()
	assert.InDelta(t, 2, oc.Distance(), 1e-4)

	oc.DollyOut(0.01)
	oc.Update()
	assert.InDelta(t, 20, oc.Distance(), 1e-3)
}

func TestScrollZoomsIn(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0))

	oc.HandleScroll(1)
	oc.Update()
	assert.InDelta(t, 9.5, oc.Distance(), 1e-4)

	oc.HandleScroll(-1)
	oc.Update()
	assert.InDelta(t, 10, oc.Distance(), 1e-3)
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 10), WithFov(90))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0), WithViewportSize(100, 100))

	// dragging right by half the viewport slides the target to the left by the visible half-height
	oc.Pan(50, 0)
	oc.Update()

	target := oc.Target()
	assert.InDelta(t, -10, target[0], 1e-3)
	assert.InDelta(t, 0, target[1], 1e-4)
	pos := cam.Position()
	assert.InDelta(t, -10, pos[0], 1e-3)
	assert.InDelta(t, 10, oc.Distance(), 1e-3)
}

func TestAttachRoutesWindowInput(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 5))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0))
	w := window.NewHeadlessWindow(window.WithSize(200, 100))
	oc.Attach(w)

	w.EmitMouseDown(common.MouseButtonLeft, 0, 0)
	w.EmitMouseMove(25, 0)
	w.EmitMouseUp(common.MouseButtonLeft, 25, 0)
	oc.Update()

	// 2*pi*25/100 is a quarter turn around the target
	pos := cam.Position()
	assert.InDelta(t, -5, pos[0], 1e-3)
	assert.InDelta(t, 0, pos[2], 1e-3)

	// moves after release are ignored
	w.EmitMouseMove(80, 0)
	assert.False(t, oc.Update())
}

func TestDisabledControlsIgnoreInput(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 5))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0))
	oc.SetEnabled(false)

	oc.HandleScroll(1)
	oc.HandleKeyDown(common.KeyLeft)
	assert.False(t, oc.Update())
}

func TestResetRestoresSavedState(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 5))
	oc := NewOrbitControls(cam, WithOrbitTarget(0, 0, 0))

	oc.RotateLeft(1)
	oc.Pan(10, 10)
	oc.Update()
	oc.Reset()

	assert.Equal(t, [3]float32{0, 0, 0}, oc.Target())
	assert.Equal(t, [3]float32{0, 0, 5}, cam.Position())
	assert.False(t, oc.Update())
}
