package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	c := Apply(WithTitle("demo"), WithSize(640, 480))
	assert.Equal(t, "demo", c.Title)
	assert.Equal(t, 640, c.Width)
	assert.Equal(t, 480, c.Height)
	assert.Equal(t, float32(1), c.DevicePixelRatio)
	assert.False(t, c.Fullscreen)
}

func TestHeadlessResizeNotifiesInOrder(t *testing.T) {
	w := NewHeadlessWindow(WithSize(800, 600), WithDevicePixelRatio(2))
	assert.Equal(t, float32(2), w.DevicePixelRatio())

	var calls []string
	w.AddResizeListener(func(width, height int) {
		calls = append(calls, "first")
		assert.Equal(t, 400, width)
		assert.Equal(t, 300, height)
	})
	w.AddResizeListener(func(width, height int) { calls = append(calls, "second") })

	w.Resize(400, 300)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 400, w.Width())
	assert.Equal(t, 300, w.Height())
}

func TestHeadlessInputEvents(t *testing.T) {
	w := NewHeadlessWindow()
	var keys []common.Key
	var clicks, doubleClicks int
	var scroll float32
	var button common.MouseButton = -1
	var moved [2]float32

	w.AddKeyDownListener(func(k common.Key) { keys = append(keys, k) })
	w.AddKeyUpListener(func(k common.Key) { keys = append(keys, -k) })
	w.AddClickListener(func(x, y float32) { clicks++ })
	w.AddDoubleClickListener(func(x, y float32) { doubleClicks++ })
	w.AddScrollListener(func(d float32) { scroll += d })
	w.AddMouseDownListener(func(b common.MouseButton, x, y float32) { button = b })
	w.AddMouseMoveListener(func(x, y float32) { moved = [2]float32{x, y} })

	w.EmitKeyDown(common.KeyF)
	w.EmitKeyUp(common.KeyF)
	w.EmitClick(1, 2)
	w.EmitDoubleClick(1, 2)
	w.EmitScroll(-3)
	w.EmitMouseDown(common.MouseButtonRight, 0, 0)
	w.EmitMouseMove(5, 6)

	assert.Equal(t, []common.Key{common.KeyF, -common.KeyF}, keys)
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 1, doubleClicks)
	assert.Equal(t, float32(-3), scroll)
	assert.Equal(t, common.MouseButtonRight, button)
	assert.Equal(t, [2]float32{5, 6}, moved)
}

func TestHeadlessFullscreenAndClose(t *testing.T) {
	w := NewHeadlessWindow(WithFullscreen(true))
	assert.True(t, w.IsFullscreen())
	assert.NoError(t, w.ExitFullscreen())
	assert.False(t, w.IsFullscreen())
	assert.NoError(t, w.RequestFullscreen())
	assert.True(t, w.IsFullscreen())

	assert.True(t, w.IsRunning())
	assert.NoError(t, w.Close())
	assert.False(t, w.IsRunning())
	assert.ErrorIs(t, w.Close(), ErrClosed)
	assert.ErrorIs(t, w.RequestFullscreen(), ErrClosed)
	assert.ErrorIs(t, w.ExitFullscreen(), ErrClosed)
}

func TestHeadlessRequestClose(t *testing.T) {
	w := NewHeadlessWindow()
	w.RequestClose()
	assert.False(t, w.IsRunning())
	assert.NoError(t, w.RequestFullscreen(), "a closing window is still usable")

	assert.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrClosed)
	w.RequestClose()
	assert.False(t, w.IsRunning())
}
