package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], [3]float32{1, 2, 3}, [3]float32{0.3, 0.2, 0.1}, [3]float32{2, 2, 2})

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, out [16]float32
	BuildModelMatrix(m[:], [3]float32{1, -2, 3}, [3]float32{0.5, 1, -0.25}, [3]float32{1, 2, 0.5})

	require.True(t, Invert4(inv[:], m[:]))
	Mul4(out[:], m[:], inv[:])
	for i := range 16 {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		assert.InDelta(t, want, out[i], 1e-4, "element %d", i)
	}

	var singular [16]float32
	assert.False(t, Invert4(inv[:], singular[:]))
}

func TestBuildModelMatrixTransformsPoint(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{0, 0, 5}, [3]float32{0, math32.Pi / 2, 0}, [3]float32{1, 1, 1})

	// a quarter turn around Y maps +X onto -Z before translation
	p := TransformPoint4(m[:], [3]float32{1, 0, 0}, 1)
	assert.InDelta(t, 0, p[0], 1e-6)
	assert.InDelta(t, 4, p[2], 1e-6)
	assert.Equal(t, float32(1), p[3])
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], DegToRad(60), 1, 1, 10)

	nearClip := TransformPoint4(proj[:], [3]float32{0, 0, -1}, 1)
	farClip := TransformPoint4(proj[:], [3]float32{0, 0, -10}, 1)
	assert.InDelta(t, 0, nearClip[2]/nearClip[3], 1e-5)
	assert.InDelta(t, 1, farClip[2]/farClip[3], 1e-5)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], [3]float32{3, 2, 5}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})

	p := TransformPoint4(view[:], [3]float32{3, 2, 5}, 1)
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)

	// the target sits straight ahead on -Z
	q := TransformPoint4(view[:], [3]float32{0, 0, 0}, 1)
	assert.InDelta(t, -Length3([3]float32{3, 2, 5}), q[2], 1e-5)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		err  bool
	}{
		{"#00ff00", Color{0, 1, 0}, false},
		{"#0f0", Color{0, 1, 0}, false},
		{"0xffff00", Color{1, 1, 0}, false},
		{"yellow", Color{1, 1, 0}, false},
		{"  RED ", Color{1, 0, 0}, false},
		{"#12", Color{}, true},
		{"#gggggg", Color{}, true},
		{"teal", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := ColorFromHex(0xf5f5f5)
	assert.Equal(t, "#f5f5f5", c.Hex())
	assert.Equal(t, "#ffffff", Color{2, 3, 4}.Hex())
}

func TestVec3Ref(t *testing.T) {
	v := [3]float32{1, 2, 3}
	ref := Vec3Ref{Load: func() [3]float32 { return v }, Store: func(n [3]float32) { v = n }}

	got, ok := ref.Get("y")
	assert.True(t, ok)
	assert.Equal(t, float32(2), got)

	assert.True(t, ref.Set("z", 9))
	assert.Equal(t, [3]float32{1, 2, 9}, v)

	_, ok = ref.Get("w")
	assert.False(t, ok)
	assert.False(t, ref.Set("w", 1))
}

func TestBoundedAxisResetsToStart(t *testing.T) {
	x := float32(0)
	wraps := 0
	for range 260 {
		var wrapped bool
		x, wrapped = BoundedAxis(x, 0.02, 5, 0)
		if wrapped {
			wraps++
			assert.Equal(t, float32(0), x)
		}
		assert.LessOrEqual(t, x, float32(5.02)+1e-3)
	}
	assert.GreaterOrEqual(t, wraps, 1)

	// every reset lands on the same value regardless of overshoot
	a, _ := BoundedAxis(5.5, 0.02, 5, 0)
	b, _ := BoundedAxis(500, 0.02, 5, 0)
	assert.Equal(t, a, b)
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
