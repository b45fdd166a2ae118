package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sink []byte

func TestTickLogsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var buf bytes.Buffer
	p := NewProfiler(
		WithLogger(zerolog.New(&buf)),
		WithInterval(500*time.Millisecond),
		WithNow(func() time.Time { return now }),
	)

	for range 9 {
		now = now.Add(50 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	now = now.Add(50 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 20, p.FPS(), 1e-6)
	assert.Contains(t, buf.String(), `"fps":20`)
	assert.Contains(t, buf.String(), `"message":"profiler"`)

	buf.Reset()
	now = now.Add(100 * time.Millisecond)
	assert.False(t, p.Tick())
	assert.Empty(t, buf.String())
}

func TestResetDropsPendingFrames(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithNow(func() time.Time { return now }), WithInterval(0))

	now = now.Add(10 * time.Second)
	p.Reset()
	now = now.Add(time.Second / 2)
	assert.False(t, p.Tick(), "the window restarted at Reset")
	now = now.Add(time.Second / 2)
	assert.True(t, p.Tick())
	assert.InDelta(t, 2, p.FPS(), 1e-6)
}

func TestFirstReportOnlyCountsItsOwnAllocations(t *testing.T) {
	sink = make([]byte, 64<<20)
	defer func() { sink = nil }()

	now := time.Unix(0, 0)
	var buf bytes.Buffer
	p := NewProfiler(WithLogger(zerolog.New(&buf)), WithNow(func() time.Time { return now }))

	now = now.Add(time.Second)
	require.True(t, p.Tick())
	var report struct {
		AllocRate float64 `json:"alloc_rate_mb_s"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Less(t, report.AllocRate, 32.0, "allocations made before the profiler existed are not counted")
}
