package tween

import (
	"strings"

	"github.com/chewxy/math32"
)

// EaseFunc maps linear progress in [0, 1] to eased progress. f(0) must be 0 and f(1) must be 1.
type EaseFunc func(t float32) float32

// DefaultEase is used when no ease is given or the name is unknown.
const DefaultEase = "power1.out"

// easeVariants builds the in, out and inOut variants from an ease-in curve.
func easeVariants(in EaseFunc) map[string]EaseFunc {
	out := func(t float32) float32 { return 1 - in(1-t) }
	inOut := func(t float32) float32 {
		if t < 0.5 {
			return in(t*2) / 2
		}
		return 1 - in((1-t)*2)/2
	}
	return map[string]EaseFunc{"in": in, "out": out, "inout": inOut}
}

func power(n float32) EaseFunc {
	return func(t float32) float32 { return math32.Pow(t, n) }
}

var easeFamilies = map[string]map[string]EaseFunc{
	"power1": easeVariants(power(2)),
	"power2": easeVariants(power(3)),
	"power3": easeVariants(power(4)),
	"power4": easeVariants(power(5)),
	"sine": easeVariants(func(t float32) float32 {
		return 1 - math32.Cos(t*math32.Pi/2)
	}),
	"expo": easeVariants(func(t float32) float32 {
		if t == 0 {
			return 0
		}
		return math32.Pow(2, 10*(t-1))
	}),
	"circ": easeVariants(func(t float32) float32 {
		return 1 - math32.Sqrt(1-t*t)
	}),
	"back": easeVariants(func(t float32) float32 {
		const s = 1.70158
		return t * t * ((s+1)*t - s)
	}),
}

// aliases for the families' names without a power number
var easeAliases = map[string]string{
	"quad":   "power1",
	"cubic":  "power2",
	"quart":  "power3",
	"quint":  "power4",
	"strong": "power4",
}

func linear(t float32) float32 { return t }

// LookupEase resolves an ease name such as "power1.inOut", "sine.in" or "none".
// A family without a variant ("power2") uses its out variant. Matching ignores case.
//
// Parameters:
//   - name: the ease name
//
// Returns:
//   - EaseFunc: the ease
//   - bool: false if the name is not known
func LookupEase(name string) (EaseFunc, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "none", "linear", "power0", "power0.in", "power0.out", "power0.inout":
		return linear, true
	}

	family, variant, found := strings.Cut(name, ".")
	if !found {
		variant = "out"
	}
	if alias, ok := easeAliases[family]; ok {
		family = alias
	}
	variants, ok := easeFamilies[family]
	if !ok {
		return nil, false
	}
	fn, ok := variants[variant]
	return fn, ok
}

func defaultEase() EaseFunc {
	fn, _ := LookupEase(DefaultEase)
	return fn
}
