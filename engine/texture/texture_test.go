package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

// solid returns a w×h image of one color.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// redBlue is a 2x1 image: red on the left, blue on the right.
func redBlue() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)
	return img
}

func assertRGBA(t *testing.T, want color.NRGBA, got [4]float32) {
	t.Helper()
	assert.InDelta(t, float32(want.R)/255, got[0], 1e-4, "red")
	assert.InDelta(t, float32(want.G)/255, got[1], 1e-4, "green")
	assert.InDelta(t, float32(want.B)/255, got[2], 1e-4, "blue")
	assert.InDelta(t, float32(want.A)/255, got[3], 1e-4, "alpha")
}

func TestEmptyTextureSamplesWhite(t *testing.T) {
	tex := NewTexture()
	assert.False(t, tex.Ready())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, tex.Sample(0.3, 0.7))
}

func TestDefaults(t *testing.T) {
	tex := NewTexture(WithName("map.png"))
	assert.Equal(t, "map.png", tex.Name())
	assert.Equal(t, [2]float32{1, 1}, tex.Repeat())
	assert.True(t, tex.FlipY())
	s, w := tex.Wrap()
	assert.Equal(t, ClampToEdgeWrapping, s)
	assert.Equal(t, ClampToEdgeWrapping, w)
	assert.Equal(t, UVMapping, tex.Mapping())
}

func TestSampleTexelCenters(t *testing.T) {
	tex := NewTexture(WithImage(redBlue()))
	require.True(t, tex.Ready())

	assertRGBA(t, red, tex.Sample(0.25, 0.5))
	assertRGBA(t, blue, tex.Sample(0.75, 0.5))

	mid := tex.Sample(0.5, 0.5)
	assert.InDelta(t, 0.5, mid[0], 1e-4)
	assert.InDelta(t, 0.5, mid[2], 1e-4)
}

func TestSampleWrapping(t *testing.T) {
	tests := []struct {
		name string
		wrap Wrapping
		u    float32
		want color.NRGBA
	}{
		{"clamp below", ClampToEdgeWrapping, -3, red},
		{"clamp above", ClampToEdgeWrapping, 3, blue},
		{"repeat", RepeatWrapping, 1.25, red},
		{"repeat negative", RepeatWrapping, -0.25, blue},
		{"mirrored", MirroredRepeatWrapping, 1.25, blue},
		{"mirrored twice", MirroredRepeatWrapping, 2.25, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := NewTexture(WithImage(redBlue()), WithWrap(tt.wrap, ClampToEdgeWrapping))
			assertRGBA(t, tt.want, tex.Sample(tt.u, 0.5))
		})
	}
}

func TestSampleFlipY(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(0, 1, green)
	tex := NewTexture(WithImage(img))

	// v=0 addresses the bottom row by default
	assertRGBA(t, green, tex.Sample(0.5, 0.25))
	assertRGBA(t, red, tex.Sample(0.5, 0.75))

	tex.SetFlipY(false)
	assertRGBA(t, red, tex.Sample(0.5, 0.25))
}

func TestRepeatAndOffset(t *testing.T) {
	tex := NewTexture(WithImage(redBlue()), WithRepeat(2, 1), WithWrap(RepeatWrapping, RepeatWrapping))
	// u=0.625 tiles to 1.25, the red texel of the second copy
	assertRGBA(t, red, tex.Sample(0.625, 0.5))

	tex.SetRepeat(1, 1)
	tex.SetOffset(0.5, 0)
	assertRGBA(t, blue, tex.Sample(0.25, 0.5))
}

func TestRotationAroundCenter(t *testing.T) {
	tex := NewTexture(WithImage(redBlue()))
	tex.SetCenter(0.5, 0.5)
	tex.SetRotation(math32.Pi)

	// a half turn around the center swaps left and right
	assertRGBA(t, blue, tex.Sample(0.25, 0.5))
	assertRGBA(t, red, tex.Sample(0.75, 0.5))
}

func TestVersionBumpsOnChange(t *testing.T) {
	tex := NewTexture()
	v0 := tex.Version()
	tex.SetOffset(0.1, 0)
	tex.SetImage(redBlue())
	assert.Equal(t, v0+2, tex.Version())
}

func TestWrapIndex(t *testing.T) {
	assert.Equal(t, 0, wrapIndex(-1, 4, ClampToEdgeWrapping))
	assert.Equal(t, 3, wrapIndex(9, 4, ClampToEdgeWrapping))
	assert.Equal(t, 3, wrapIndex(-1, 4, RepeatWrapping))
	assert.Equal(t, 1, wrapIndex(5, 4, RepeatWrapping))
	assert.Equal(t, 3, wrapIndex(4, 4, MirroredRepeatWrapping))
	assert.Equal(t, 0, wrapIndex(-1, 4, MirroredRepeatWrapping))
	assert.Equal(t, 0, wrapIndex(7, 4, MirroredRepeatWrapping))
}

func TestCubeFaceSelection(t *testing.T) {
	tests := []struct {
		dir  [3]float32
		face int
	}{
		{[3]float32{1, 0.1, 0.2}, 0},
		{[3]float32{-1, 0.1, 0.2}, 1},
		{[3]float32{0.1, 1, 0.2}, 2},
		{[3]float32{0.1, -1, 0.2}, 3},
		{[3]float32{0.1, 0.2, 1}, 4},
		{[3]float32{0.1, 0.2, -1}, 5},
	}
	for _, tt := range tests {
		face, s, tc := cubeFace(tt.dir)
		assert.Equal(t, tt.face, face, "dir %v", tt.dir)
		assert.True(t, s >= 0 && s <= 1)
		assert.True(t, tc >= 0 && tc <= 1)
	}

	_, s, tc := cubeFace([3]float32{0, 0, 1})
	assert.InDelta(t, 0.5, s, 1e-6)
	assert.InDelta(t, 0.5, tc, 1e-6)
}

func TestCubeSampleDirection(t *testing.T) {
	colors := []color.NRGBA{red, green, blue, {255, 255, 0, 255}, {0, 255, 255, 255}, {255, 0, 255, 255}}
	var faces [6]image.Image
	for i, c := range colors {
		faces[i] = solid(4, 4, c)
	}

	tex := NewTexture()
	require.NoError(t, tex.SetCubeFaces(faces))
	assert.Equal(t, KindCube, tex.Kind())
	assert.Equal(t, CubeReflectionMapping, tex.Mapping())

	got := tex.SampleDirection([3]float32{0, -3, 0})
	assert.InDelta(t, 1, got.R, 1e-4)
	assert.InDelta(t, 1, got.G, 1e-4)
	assert.InDelta(t, 0, got.B, 1e-4)
}

func TestCubeFacesMustMatch(t *testing.T) {
	var faces [6]image.Image
	for i := range faces {
		faces[i] = solid(4, 4, red)
	}
	faces[3] = solid(2, 2, red)
	assert.Error(t, NewTexture().SetCubeFaces(faces))

	faces[3] = nil
	assert.Error(t, NewTexture().SetCubeFaces(faces))
}

func TestHDREquirectLookup(t *testing.T) {
	// 4x2 panorama: top row bright, bottom row dark
	rgb := make([]float32, 4*2*3)
	for i := 0; i < 4*3; i++ {
		rgb[i] = 4
	}
	tex := NewTexture()
	require.NoError(t, tex.SetHDR(4, 2, rgb))
	assert.Equal(t, KindHDR, tex.Kind())

	up := tex.SampleDirection([3]float32{0, 1, 0})
	down := tex.SampleDirection([3]float32{0, -1, 0})
	assert.InDelta(t, 4, up.R, 1e-4)
	assert.InDelta(t, 0, down.R, 1e-4)

	assert.Error(t, tex.SetHDR(4, 2, rgb[:5]))
}
