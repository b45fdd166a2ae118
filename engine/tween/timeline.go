package tween

import (
	"reflect"
	"slices"

	"github.com/Carmen-Shannon/oxy-viewport/common"
)

// Timeline owns a set of tweens and advances them together.
type Timeline interface {
	// To creates a tween that animates target's properties from their current values to props
	// and adds it to the timeline. Start values are read when the tween first renders, after
	// any delay.
	//
	// Parameters:
	//   - target: the object to animate
	//   - props: end value per property name
	//   - options: duration, ease, repeat, yoyo, delay and lifecycle callbacks
	//
	// Returns:
	//   - Tween: the control handle
	To(target common.Animatable, props map[string]float32, options ...TweenBuilderOption) Tween

	// Update advances every tween by dt seconds, scaled by the timeline's time scale.
	// Tweens run in creation order. Tweens that finish are dropped from the timeline afterwards;
	// Restart, Seek, SetProgress or Reverse on a dropped tween adds it back.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Update(dt float32)

	// Tweens returns the tweens that have neither been killed nor finished, in creation order.
	//
	// Returns:
	//   - []Tween: the tweens
	Tweens() []Tween

	// Len returns the number of tweens that have neither been killed nor finished.
	//
	// Returns:
	//   - int: the count
	Len() int

	// KillTweensOf kills every tween animating target. Targets are matched with ==, so
	// targets whose type is not comparable (such as value adapters holding funcs) never match.
	//
	// Parameters:
	//   - target: the animated object
	KillTweensOf(target common.Animatable)

	// Clear kills every tween.
	Clear()

	// TimeScale returns the speed multiplier applied to every tween.
	//
	// Returns:
	//   - float32: the multiplier
	TimeScale() float32

	// SetTimeScale changes the speed multiplier applied to every tween. Negative values are ignored.
	//
	// Parameters:
	//   - scale: the multiplier
	SetTimeScale(scale float32)
}

type timeline struct {
	tweens    []*tweenImpl
	timeScale float64
}

var _ Timeline = &timeline{}

// NewTimeline creates an empty Timeline.
//
// Returns:
//   - Timeline: the timeline
func NewTimeline() Timeline {
	return &timeline{timeScale: 1}
}

func (tl *timeline) To(target common.Animatable, props map[string]float32, options ...TweenBuilderOption) Tween {
	t := newTween(tl, target, props, options...)
	tl.tweens = append(tl.tweens, t)
	return t
}

func (tl *timeline) Update(dt float32) {
	if dt <= 0 {
		return
	}
	// callbacks may add or kill tweens, so iterate over a snapshot
	for _, t := range slices.Clone(tl.tweens) {
		t.update(float64(dt) * tl.timeScale)
	}
	tl.tweens = slices.DeleteFunc(tl.tweens, func(t *tweenImpl) bool { return t.done })
}

func (tl *timeline) Tweens() []Tween {
	out := make([]Tween, len(tl.tweens))
	for i, t := range tl.tweens {
		out[i] = t
	}
	return out
}

func (tl *timeline) Len() int {
	return len(tl.tweens)
}

func (tl *timeline) KillTweensOf(target common.Animatable) {
	for _, t := range slices.Clone(tl.tweens) {
		if sameTarget(t.target, target) {
			t.Kill()
		}
	}
}

func (tl *timeline) Clear() {
	for _, t := range slices.Clone(tl.tweens) {
		t.Kill()
	}
}

func (tl *timeline) TimeScale() float32 {
	return float32(tl.timeScale)
}

func (tl *timeline) SetTimeScale(scale float32) {
	if scale < 0 {
		return
	}
	tl.timeScale = float64(scale)
}

// sameTarget compares two targets without panicking on uncomparable dynamic types.
func sameTarget(a, b common.Animatable) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// add puts a finished tween back on the timeline.
func (tl *timeline) add(t *tweenImpl) {
	if !slices.Contains(tl.tweens, t) {
		tl.tweens = append(tl.tweens, t)
	}
}

func (tl *timeline) remove(t *tweenImpl) {
	tl.tweens = slices.DeleteFunc(tl.tweens, func(o *tweenImpl) bool { return o == t })
}
