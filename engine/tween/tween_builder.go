package tween

// TweenBuilderOption is a functional option for configuring a Tween created by Timeline.To.
type TweenBuilderOption func(*tweenImpl)

// WithDuration sets how long one iteration takes. Defaults to 0.5 seconds.
//
// Parameters:
//   - seconds: iteration length, values <= 0 finish on the first update
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithDuration(seconds float32) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.duration = max(float64(seconds), 0)
	}
}

// WithEase selects an ease by name, for example "power1.inOut". Unknown names keep the
// default ease.
//
// Parameters:
//   - name: the ease name, see LookupEase
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithEase(name string) TweenBuilderOption {
	return func(t *tweenImpl) {
		if fn, ok := LookupEase(name); ok {
			t.ease = fn
		}
	}
}

// WithEaseFunc sets a custom ease.
//
// Parameters:
//   - fn: the ease
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithEaseFunc(fn EaseFunc) TweenBuilderOption {
	return func(t *tweenImpl) {
		if fn != nil {
			t.ease = fn
		}
	}
}

// WithRepeat sets how many times the tween repeats after the first iteration.
// Pass -1 to repeat forever.
//
// Parameters:
//   - count: repeat count, or -1
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithRepeat(count int) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.repeat = max(count, -1)
	}
}

// WithYoyo makes every other iteration run backwards.
//
// Parameters:
//   - yoyo: true to alternate direction
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithYoyo(yoyo bool) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.yoyo = yoyo
	}
}

// WithDelay waits before the first iteration starts. Start values are read when the delay ends.
//
// Parameters:
//   - seconds: the delay
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithDelay(seconds float32) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.delay = max(float64(seconds), 0)
	}
}

// OnStart registers a function called once when the tween first renders.
func OnStart(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onStart = fn
	}
}

// OnUpdate registers a function called after every update that moved the tween.
func OnUpdate(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onUpdate = fn
	}
}

// OnComplete registers a function called when the tween reaches its end playing forwards.
// Tweens that repeat forever never complete.
func OnComplete(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onComplete = fn
	}
}

// OnRepeat registers a function called each time a new iteration begins.
func OnRepeat(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onRepeat = fn
	}
}

// OnReverseComplete registers a function called when a reversed tween reaches its start.
func OnReverseComplete(fn func()) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.onReverseComplete = fn
	}
}
