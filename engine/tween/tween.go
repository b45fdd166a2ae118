// Package tween interpolates named properties over time, independently of the per-frame logic
// of the render loop. A Timeline owns running tweens and is advanced once per frame.
//
// Tweens and timelines have no locking: create, control and update them on the frame goroutine.
package tween

import (
	"math"
	"sort"

	"github.com/Carmen-Shannon/oxy-viewport/common"
)

// Tween animates properties of one target toward end values.
// Control methods take effect immediately and are safe to call from lifecycle callbacks.
type Tween interface {
	// Target returns the animated object.
	//
	// Returns:
	//   - common.Animatable: the target
	Target() common.Animatable

	// Pause freezes the playhead.
	Pause()

	// Resume continues from the paused playhead in the current direction.
	Resume()

	// Paused reports whether the tween is paused.
	Paused() bool

	// Reverse flips the playback direction. A completed tween starts playing back toward its start.
	Reverse()

	// Reversed reports whether the tween is playing backwards.
	Reversed() bool

	// Restart jumps to the beginning, skips any delay and plays forwards.
	// It has no effect on a killed tween.
	Restart()

	// Seek moves the playhead to a time measured from the first iteration, clamped to the
	// tween's total duration, and renders that point.
	//
	// Parameters:
	//   - seconds: the playhead position
	Seek(seconds float32)

	// Time returns the playhead position in seconds from the start of the first iteration.
	//
	// Returns:
	//   - float32: playhead position
	Time() float32

	// Progress returns the linear position inside the current iteration in [0, 1].
	// During the backwards half of a yoyo it decreases.
	//
	// Returns:
	//   - float32: iteration progress
	Progress() float32

	// SetProgress moves the playhead inside the current iteration and renders that point.
	//
	// Parameters:
	//   - p: iteration progress, clamped to [0, 1]
	SetProgress(p float32)

	// TimeScale returns the playback speed multiplier.
	//
	// Returns:
	//   - float32: the multiplier (1 = normal speed)
	TimeScale() float32

	// SetTimeScale changes the playback speed multiplier. Negative values are ignored.
	//
	// Parameters:
	//   - scale: the multiplier
	SetTimeScale(scale float32)

	// Kill removes the tween from its timeline. The target keeps its current values.
	Kill()

	// Killed reports whether Kill was called.
	Killed() bool

	// IsActive reports whether the tween is moving its target right now: started, past its
	// delay, not paused, not finished and not killed.
	//
	// Returns:
	//   - bool: true while animating
	IsActive() bool

	// Done reports whether the tween reached an end (its end playing forwards, or its start
	// playing backwards).
	Done() bool
}

type tweenImpl struct {
	timeline *timeline
	target   common.Animatable

	props []string
	start []float32
	end   []float32

	duration float64
	repeat   int
	yoyo     bool
	delay    float64
	ease     EaseFunc

	time      float64
	delayLeft float64
	timeScale float64

	started  bool
	paused   bool
	reversed bool
	killed   bool
	done     bool

	onStart           func()
	onUpdate          func()
	onComplete        func()
	onRepeat          func()
	onReverseComplete func()
}

var _ Tween = &tweenImpl{}

func newTween(tl *timeline, target common.Animatable, props map[string]float32, options ...TweenBuilderOption) *tweenImpl {
	t := &tweenImpl{
		timeline:  tl,
		target:    target,
		duration:  0.5,
		ease:      defaultEase(),
		timeScale: 1,
	}
	for _, opt := range options {
		opt(t)
	}

	t.props = make([]string, 0, len(props))
	for name := range props {
		t.props = append(t.props, name)
	}
	sort.Strings(t.props)
	t.end = make([]float32, len(t.props))
	for i, name := range t.props {
		t.end[i] = props[name]
	}
	t.start = make([]float32, len(t.props))
	t.delayLeft = t.delay
	return t
}

// totalDuration is +Inf for tweens that repeat forever.
func (t *tweenImpl) totalDuration() float64 {
	if t.repeat < 0 {
		return math.Inf(1)
	}
	return t.duration * float64(t.repeat+1)
}

// iteration returns the zero-based iteration the playhead at time x falls into.
func (t *tweenImpl) iteration(x float64) int {
	if t.duration <= 0 {
		return 0
	}
	i := int(math.Floor(x / t.duration))
	if t.repeat >= 0 {
		i = min(i, t.repeat)
	}
	return max(i, 0)
}

// progressAt returns the linear iteration progress at time x, folded for yoyo.
func (t *tweenImpl) progressAt(x float64) float64 {
	if t.duration <= 0 {
		return 1
	}
	i := t.iteration(x)
	p := (x - float64(i)*t.duration) / t.duration
	p = min(max(p, 0), 1)
	if t.yoyo && i%2 == 1 {
		p = 1 - p
	}
	return p
}

// capture reads the start values from the target. Unknown properties start at their end value
// so they never move.
func (t *tweenImpl) capture() {
	for i, name := range t.props {
		v, ok := t.target.Get(name)
		if !ok {
			v = t.end[i]
		}
		t.start[i] = v
	}
	t.started = true
}

func (t *tweenImpl) render() {
	e := t.ease(float32(t.progressAt(t.time)))
	for i, name := range t.props {
		t.target.Set(name, t.start[i]+(t.end[i]-t.start[i])*e)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// update advances the playhead by dt seconds of timeline time.
func (t *tweenImpl) update(dt float64) {
	if t.killed || t.paused || t.done {
		return
	}
	dt *= t.timeScale
	if dt <= 0 {
		return
	}

	if t.reversed {
		t.time -= dt
		finished := t.time <= 0
		if finished {
			t.time = 0
		}
		t.render()
		call(t.onUpdate)
		if finished {
			t.done = true
			call(t.onReverseComplete)
		}
		return
	}

	if t.delayLeft > 0 {
		t.delayLeft -= dt
		if t.delayLeft > 0 {
			return
		}
		dt = -t.delayLeft
		t.delayLeft = 0
	}
	if !t.started {
		t.capture()
		call(t.onStart)
	}

	prev := t.iteration(t.time)
	t.time += dt
	total := t.totalDuration()
	finished := t.time >= total
	if finished {
		t.time = total
	}
	t.render()
	for range t.iteration(t.time) - prev {
		call(t.onRepeat)
	}
	call(t.onUpdate)
	if finished {
		t.done = true
		call(t.onComplete)
	}
}

// revive adds a tween the timeline dropped on completion back to it.
func (t *tweenImpl) revive() {
	if !t.killed && t.timeline != nil {
		t.timeline.add(t)
	}
}

// ensureStarted skips the delay and captures start values if the tween has not rendered yet.
func (t *tweenImpl) ensureStarted() {
	t.delayLeft = 0
	if !t.started {
		t.capture()
		call(t.onStart)
	}
}

func (t *tweenImpl) Target() common.Animatable {
	return t.target
}

func (t *tweenImpl) Pause() {
	t.paused = true
}

func (t *tweenImpl) Resume() {
	t.paused = false
}

func (t *tweenImpl) Paused() bool {
	return t.paused
}

func (t *tweenImpl) Reverse() {
	t.reversed = !t.reversed
	if t.done {
		t.done = false
	}
	if t.reversed {
		t.ensureStarted()
	}
	t.revive()
}

func (t *tweenImpl) Reversed() bool {
	return t.reversed
}

func (t *tweenImpl) Restart() {
	if t.killed {
		return
	}
	t.ensureStarted()
	t.time = 0
	t.paused = false
	t.reversed = false
	t.done = false
	t.revive()
	t.render()
}

func (t *tweenImpl) Seek(seconds float32) {
	if t.killed {
		return
	}
	t.ensureStarted()
	total := t.totalDuration()
	t.time = min(max(float64(seconds), 0), total)
	t.done = t.time >= total
	t.revive()
	t.render()
}

func (t *tweenImpl) Time() float32 {
	return float32(t.time)
}

func (t *tweenImpl) Progress() float32 {
	return float32(t.progressAt(t.time))
}

func (t *tweenImpl) SetProgress(p float32) {
	if t.killed {
		return
	}
	t.ensureStarted()
	local := min(max(float64(p), 0), 1)
	i := t.iteration(t.time)
	if t.yoyo && i%2 == 1 {
		local = 1 - local
	}
	t.time = (float64(i) + local) * t.duration
	t.done = t.time >= t.totalDuration()
	t.revive()
	t.render()
}

func (t *tweenImpl) TimeScale() float32 {
	return float32(t.timeScale)
}

func (t *tweenImpl) SetTimeScale(scale float32) {
	if scale < 0 {
		return
	}
	t.timeScale = float64(scale)
}

func (t *tweenImpl) Kill() {
	if t.killed {
		return
	}
	t.killed = true
	if t.timeline != nil {
		t.timeline.remove(t)
	}
}

func (t *tweenImpl) Killed() bool {
	return t.killed
}

func (t *tweenImpl) IsActive() bool {
	return t.started && !t.paused && !t.done && !t.killed && t.delayLeft <= 0
}

func (t *tweenImpl) Done() bool {
	return t.done
}
