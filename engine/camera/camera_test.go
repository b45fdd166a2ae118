package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraComputesProjectionOnce(t *testing.T) {
	cam := NewCamera(WithFov(75), WithAspect(800.0/600.0), WithClipPlanes(0.1, 1000), WithPosition(1, 1, 8))

	assert.Equal(t, uint64(1), cam.ProjectionVersion())
	assert.Equal(t, float32(75), cam.Fov())
	assert.Equal(t, [3]float32{1, 1, 8}, cam.Position())

	proj := cam.ProjectionMatrix()
	assert.InDelta(t, -1, proj[11], 1e-6)
}

func TestSetAspectDefersProjection(t *testing.T) {
	cam := NewCamera(WithAspect(2))
	before := cam.ProjectionMatrix()

	cam.SetAspect(1)
	assert.Equal(t, before, cam.ProjectionMatrix(), "projection must not change until UpdateProjectionMatrix")
	assert.Equal(t, uint64(1), cam.ProjectionVersion())

	cam.UpdateProjectionMatrix()
	after := cam.ProjectionMatrix()
	assert.Equal(t, uint64(2), cam.ProjectionVersion())
	assert.InDelta(t, before[0]*2, after[0], 1e-5)
	assert.Equal(t, before[5], after[5])
}

func TestViewMatrixFollowsPosition(t *testing.T) {
	cam := NewCamera(WithPosition(0, 0, 5), WithTarget(0, 0, 0))

	v := cam.ViewMatrix()
	p := common.TransformPoint4(v[:], [3]float32{0, 0, 0}, 1)
	assert.InDelta(t, -5, p[2], 1e-5)

	cam.SetPosition(0, 0, 10)
	v = cam.ViewMatrix()
	p = common.TransformPoint4(v[:], [3]float32{0, 0, 0}, 1)
	assert.InDelta(t, -10, p[2], 1e-5)
}

func TestInverseProjection(t *testing.T) {
	cam := NewCamera(WithFov(45), WithAspect(1.5), WithClipPlanes(0.5, 50))
	proj := cam.ProjectionMatrix()
	inv := cam.InverseProjectionMatrix()

	var id [16]float32
	common.Mul4(id[:], proj[:], inv[:])
	for i := range 16 {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		require.InDelta(t, want, id[i], 1e-4, "element %d", i)
	}
}
