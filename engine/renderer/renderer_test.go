package renderer

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewport/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube(name string, c common.Color, z float32, options ...material.MaterialBuilderOption) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithPosition(0, 0, z),
		game_object.WithMesh(geometry.NewBoxGeometry(1, 1, 1), material.NewBasicMaterial(append([]material.MaterialBuilderOption{material.WithColor(c)}, options...)...)),
	)
}

func testCamera() camera.Camera {
	return camera.NewCamera(camera.WithPosition(0, 0, 3), camera.WithTarget(0, 0, 0), camera.WithFov(60))
}

func pixel(img image.Image, x, y int) [3]uint8 {
	c := img.(*image.RGBA).RGBAAt(x, y)
	return [3]uint8{c.R, c.G, c.B}
}

func TestPixelRatio(t *testing.T) {
	r := NewRenderer(WithSize(100, 50), WithPixelRatio(3), WithWorkers(1))
	assert.Equal(t, float32(3), r.PixelRatio(), "uncapped by default")
	w, h := r.DrawingBufferSize()
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)

	r.SetPixelRatio(4)
	assert.Equal(t, float32(4), r.PixelRatio())

	r.SetPixelRatio(0)
	assert.Equal(t, float32(1), r.PixelRatio())

	r = NewRenderer(WithPixelRatio(3), WithMaxPixelRatio(1.5), WithWorkers(1))
	assert.Equal(t, float32(1.5), r.PixelRatio())
	r.SetPixelRatio(1.25)
	assert.Equal(t, float32(1.25), r.PixelRatio())
	r.SetPixelRatio(3)
	assert.Equal(t, float32(1.5), r.PixelRatio(), "an explicit cap still clamps")

	r = NewRenderer(WithMaxPixelRatio(0), WithWorkers(1))
	r.SetPixelRatio(3)
	assert.Equal(t, float32(3), r.PixelRatio(), "a zero cap means uncapped")
}

func TestResizeReachesBackend(t *testing.T) {
	backend := NewHeadlessBackend()
	r := NewRenderer(WithBackend(backend), WithWorkers(1))
	r.SetSize(40, 30)
	r.SetPixelRatio(2)

	w, h := backend.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 60, h)
	w, h = r.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
}

func TestRenderRequiresSize(t *testing.T) {
	r := NewRenderer(WithWorkers(1))
	assert.Error(t, r.Render(scene.NewScene("empty"), testCamera()))
	assert.Error(t, r.Render(nil, testCamera()))
	assert.Nil(t, r.Frame())
	assert.ErrorIs(t, r.CaptureWebP(&bytes.Buffer{}), ErrNoFrame)
}

func TestRenderDrawsVisibleObjects(t *testing.T) {
	backend := NewHeadlessBackend()
	r := NewRenderer(WithBackend(backend), WithSize(32, 32), WithWorkers(2))
	s := scene.NewScene("test", scene.WithBackgroundColor(common.ColorBlue))
	green := cube("green", common.ColorGreen, 0)
	s.Add(green)

	require.NoError(t, r.Render(s, testCamera()))
	assert.Equal(t, 1, backend.Presented())
	assert.Equal(t, uint64(1), r.Frames())

	frame := r.Frame()
	assert.Equal(t, [3]uint8{0, 255, 0}, pixel(frame, 16, 16))
	assert.Equal(t, [3]uint8{0, 0, 255}, pixel(frame, 0, 0))

	green.SetVisible(false)
	require.NoError(t, r.Render(s, testCamera()))
	assert.Equal(t, [3]uint8{0, 0, 255}, pixel(r.Frame(), 16, 16))
}

func TestRenderDepthOrder(t *testing.T) {
	r := NewRenderer(WithSize(32, 32), WithWorkers(3))
	s := scene.NewScene("test")
	// added far to near and near to far: the nearer cube wins either way
	s.Add(cube("back", common.ColorGreen, -1), cube("front", common.ColorRed, 1))
	require.NoError(t, r.Render(s, testCamera()))
	assert.Equal(t, [3]uint8{255, 0, 0}, pixel(r.Frame(), 16, 16))

	s = scene.NewScene("test")
	s.Add(cube("front", common.ColorRed, 1), cube("back", common.ColorGreen, -1))
	require.NoError(t, r.Render(s, testCamera()))
	assert.Equal(t, [3]uint8{255, 0, 0}, pixel(r.Frame(), 16, 16))
}

func TestRenderBlendsTransparent(t *testing.T) {
	r := NewRenderer(WithSize(16, 16), WithWorkers(1))
	s := scene.NewScene("test", scene.WithBackgroundColor(common.ColorBlue))
	s.Add(cube("glass", common.ColorRed, 0, material.WithTransparent(true), material.WithOpacity(0.5)))
	require.NoError(t, r.Render(s, testCamera()))

	p := pixel(r.Frame(), 8, 8)
	assert.InDelta(t, 128, int(p[0]), 2)
	assert.Equal(t, uint8(0), p[1])
	assert.InDelta(t, 128, int(p[2]), 2)
}

func TestFrameIsLogicalSize(t *testing.T) {
	backend := NewHeadlessBackend()
	r := NewRenderer(WithBackend(backend), WithSize(20, 10), WithPixelRatio(2), WithWorkers(1))
	require.NoError(t, r.Render(scene.NewScene("test", scene.WithBackgroundColor(common.ColorBlue)), testCamera()))

	assert.Equal(t, image.Rect(0, 0, 40, 20), backend.Last().Bounds())
	frame := r.Frame()
	assert.Equal(t, image.Rect(0, 0, 20, 10), frame.Bounds())
	assert.Equal(t, [3]uint8{0, 0, 255}, pixel(frame, 10, 5))
}

func TestCaptureWebP(t *testing.T) {
	r := NewRenderer(WithSize(16, 16), WithWorkers(1))
	require.NoError(t, r.Render(scene.NewScene("test"), testCamera()))

	var buf bytes.Buffer
	require.NoError(t, r.CaptureWebP(&buf))
	assert.Equal(t, "RIFF", string(buf.Bytes()[:4]))
	assert.Equal(t, "WEBP", string(buf.Bytes()[8:12]))
}

type failingBackend struct {
	HeadlessBackend
}

func (failingBackend) Present(*image.RGBA) error {
	return errors.New("surface lost")
}

func TestPresentErrorIsReturned(t *testing.T) {
	r := NewRenderer(WithBackend(failingBackend{NewHeadlessBackend()}), WithSize(8, 8), WithWorkers(1))
	err := r.Render(scene.NewScene("test"), testCamera())
	assert.ErrorContains(t, err, "surface lost")
	assert.Equal(t, uint64(0), r.Frames())
}
