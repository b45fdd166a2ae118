package common

// Animatable exposes named float32 properties so tweens and debug controllers can drive
// values without knowing the concrete type that owns them.
type Animatable interface {
	// Get returns the current value of a property.
	//
	// Parameters:
	//   - prop: the property name
	//
	// Returns:
	//   - float32: the value
	//   - bool: false if the property does not exist
	Get(prop string) (float32, bool)

	// Set writes a property.
	//
	// Parameters:
	//   - prop: the property name
	//   - v: the new value
	//
	// Returns:
	//   - bool: false if the property does not exist
	Set(prop string, v float32) bool
}

// Vec3Ref adapts a getter/setter pair over a [3]float32 into an Animatable with properties "x", "y" and "z".
type Vec3Ref struct {
	Load  func() [3]float32
	Store func([3]float32)
}

var _ Animatable = Vec3Ref{}

func axisIndex(prop string) int {
	switch prop {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	}
	return -1
}

func (r Vec3Ref) Get(prop string) (float32, bool) {
	i := axisIndex(prop)
	if i < 0 {
		return 0, false
	}
	return r.Load()[i], true
}

func (r Vec3Ref) Set(prop string, v float32) bool {
	i := axisIndex(prop)
	if i < 0 {
		return false
	}
	cur := r.Load()
	cur[i] = v
	r.Store(cur)
	return true
}

// FloatRef adapts a single getter/setter pair into an Animatable with one named property.
type FloatRef struct {
	Name  string
	Load  func() float32
	Store func(float32)
}

var _ Animatable = FloatRef{}

func (r FloatRef) Get(prop string) (float32, bool) {
	if prop != r.Name {
		return 0, false
	}
	return r.Load(), true
}

func (r FloatRef) Set(prop string, v float32) bool {
	if prop != r.Name {
		return false
	}
	r.Store(v)
	return true
}

// BoundedAxis advances v by step while v has not passed bound, and resets it to start on the
// first call after it has. Every reset lands on the same start value no matter how far past the
// bound v overshot.
//
// Parameters:
//   - v: the current value
//   - step: increment applied while v <= bound
//   - bound: the value that must be exceeded to reset
//   - start: the value to reset to
//
// Returns:
//   - float32: the next value
//   - bool: true if the value was reset
func BoundedAxis(v, step, bound, start float32) (float32, bool) {
	if v <= bound {
		return v + step, false
	}
	return start, true
}
