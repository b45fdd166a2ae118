package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestDeltaAutoStarts(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := NewClock(WithNow(ft.now))

	assert.False(t, c.Running())
	assert.Equal(t, float32(0), c.Delta())
	assert.True(t, c.Running())

	ft.advance(250 * time.Millisecond)
	assert.InDelta(t, 0.25, c.Delta(), 1e-6)

	ft.advance(100 * time.Millisecond)
	assert.InDelta(t, 0.1, c.Delta(), 1e-6)
	assert.InDelta(t, 0.35, c.Elapsed(), 1e-6)
}

func TestElapsedAdvancesDeltaReference(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(WithNow(ft.now))
	c.Start()

	ft.advance(time.Second)
	assert.InDelta(t, 1, c.Elapsed(), 1e-6)

	ft.advance(500 * time.Millisecond)
	assert.InDelta(t, 0.5, c.Delta(), 1e-6)
}

func TestStopFreezesElapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(WithNow(ft.now), WithAutoStart(false))

	assert.Equal(t, float32(0), c.Delta(), "a stopped clock without auto-start reports no time")
	assert.False(t, c.Running())

	c.Start()
	ft.advance(2 * time.Second)
	c.Stop()
	ft.advance(5 * time.Second)

	assert.InDelta(t, 2, c.Elapsed(), 1e-6)
	assert.Equal(t, float32(0), c.Delta())
}

func TestYWrapDrivenByDelta(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := NewClock(WithNow(ft.now))
	c.Start()

	y := float32(0)
	wrapped := false
	for range 400 {
		ft.advance(time.Second / 60)
		y += c.Delta()
		if y > 5 {
			y = 0
			wrapped = true
		}
	}
	assert.True(t, wrapped)
	assert.LessOrEqual(t, y, float32(5))
}
