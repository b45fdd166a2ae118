package gui

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
)

// ControllerKind identifies the widget a controller stands for.
type ControllerKind int

const (
	KindNumber ControllerKind = iota
	KindBool
	KindColor
	KindFunc
)

// String returns the kind name.
func (k ControllerKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Controller is one row of a panel, bound to a live value.
type Controller interface {
	// Name returns the label shown for the controller.
	Name() string

	// Kind returns the widget kind.
	Kind() ControllerKind

	// Value returns the bound value: float32, bool, a "#rrggbb" string, or nil for functions.
	Value() any

	// apply sets the value from a preset entry and fires both change callbacks.
	apply(v any) error
}

// NumberController binds a float property to a slider or number box.
type NumberController interface {
	Controller

	// SetName changes the label.
	SetName(name string) NumberController

	// SetMin sets the lower bound values are clamped to.
	SetMin(v float32) NumberController

	// SetMax sets the upper bound values are clamped to.
	SetMax(v float32) NumberController

	// SetStep sets the increment values are rounded to.
	SetStep(v float32) NumberController

	// OnChange registers a function called for every change, including during a drag.
	OnChange(fn func(v float32)) NumberController

	// OnFinishChange registers a function called when an edit is committed.
	OnFinishChange(fn func(v float32)) NumberController

	// Number returns the bound value.
	Number() float32

	// Bounds returns the configured min, max and step; unset values are NaN.
	Bounds() (min, max, step float32)

	// SetValue clamps and rounds v, writes it to the target and fires OnChange then OnFinishChange.
	SetValue(v float32)

	// Slide writes v like SetValue but only fires OnChange, as a drag in progress would.
	Slide(v float32)

	// Release fires OnFinishChange with the current value, as releasing a drag would.
	Release()
}

// BoolController binds a boolean to a checkbox.
type BoolController interface {
	Controller

	SetName(name string) BoolController
	OnChange(fn func(v bool)) BoolController

	// Bool returns the bound value.
	Bool() bool

	// SetValue writes v and fires OnChange.
	SetValue(v bool)

	// Toggle inverts the value and fires OnChange.
	Toggle()
}

// ColorController binds a color to a color picker.
type ColorController interface {
	Controller

	SetName(name string) ColorController
	OnChange(fn func(c common.Color)) ColorController
	OnFinishChange(fn func(c common.Color)) ColorController

	// Color returns the picked color.
	Color() common.Color

	// SetValue parses s (see common.ParseColor) and fires OnChange then OnFinishChange.
	//
	// Returns:
	//   - error: error if s is not a color; the value is unchanged
	SetValue(s string) error
}

// FuncController is a button.
type FuncController interface {
	Controller

	SetName(name string) FuncController

	// Press calls the bound function.
	Press()
}

// numberController is the implementation of NumberController.
type numberController struct {
	logger zerolog.Logger
	target common.Animatable
	prop   string
	name   string

	min, max, step float32

	onChange       func(float32)
	onFinishChange func(float32)
}

var _ NumberController = &numberController{}

func newNumberController(logger zerolog.Logger, target common.Animatable, prop string) *numberController {
	return &numberController{
		logger: logger,
		target: target,
		prop:   prop,
		name:   prop,
		min:    math32.NaN(),
		max:    math32.NaN(),
		step:   math32.NaN(),
	}
}

func (c *numberController) Name() string        { return c.name }
func (c *numberController) Kind() ControllerKind { return KindNumber }
func (c *numberController) Value() any           { return c.Number() }

func (c *numberController) SetName(name string) NumberController {
	c.name = name
	return c
}

func (c *numberController) SetMin(v float32) NumberController {
	c.min = v
	return c
}

func (c *numberController) SetMax(v float32) NumberController {
	c.max = v
	return c
}

func (c *numberController) SetStep(v float32) NumberController {
	if v > 0 {
		c.step = v
	}
	return c
}

func (c *numberController) OnChange(fn func(v float32)) NumberController {
	c.onChange = fn
	return c
}

func (c *numberController) OnFinishChange(fn func(v float32)) NumberController {
	c.onFinishChange = fn
	return c
}

func (c *numberController) Number() float32 {
	v, _ := c.target.Get(c.prop)
	return v
}

func (c *numberController) Bounds() (float32, float32, float32) {
	return c.min, c.max, c.step
}

// constrain rounds to the step and clamps to whichever bounds are set.
func (c *numberController) constrain(v float32) float32 {
	if !math32.IsNaN(c.step) {
		v = math32.Floor(v/c.step+0.5) * c.step
	}
	if !math32.IsNaN(c.min) && v < c.min {
		v = c.min
	}
	if !math32.IsNaN(c.max) && v > c.max {
		v = c.max
	}
	return v
}

func (c *numberController) Slide(v float32) {
	v = c.constrain(v)
	c.target.Set(c.prop, v)
	if c.onChange != nil {
		c.onChange(v)
	}
}

func (c *numberController) Release() {
	v := c.Number()
	c.logger.Debug().Str("controller", c.name).Float32("value", v).Msg("change finished")
	if c.onFinishChange != nil {
		c.onFinishChange(v)
	}
}

func (c *numberController) SetValue(v float32) {
	c.Slide(v)
	c.Release()
}

func (c *numberController) apply(v any) error {
	f, err := toFloat(v)
	if err != nil {
		return fmt.Errorf("controller %q: %w", c.name, err)
	}
	c.SetValue(f)
	return nil
}

func toFloat(v any) (float32, error) {
	switch n := v.(type) {
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	case int64:
		return float32(n), nil
	case int:
		return float32(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// boolController is the implementation of BoolController.
type boolController struct {
	logger   zerolog.Logger
	name     string
	get      func() bool
	set      func(bool)
	onChange func(bool)
}

var _ BoolController = &boolController{}

func (c *boolController) Name() string        { return c.name }
func (c *boolController) Kind() ControllerKind { return KindBool }
func (c *boolController) Value() any           { return c.get() }
func (c *boolController) Bool() bool           { return c.get() }

func (c *boolController) SetName(name string) BoolController {
	c.name = name
	return c
}

func (c *boolController) OnChange(fn func(v bool)) BoolController {
	c.onChange = fn
	return c
}

func (c *boolController) SetValue(v bool) {
	c.set(v)
	c.logger.Debug().Str("controller", c.name).Bool("value", v).Msg("value changed")
	if c.onChange != nil {
		c.onChange(v)
	}
}

func (c *boolController) Toggle() {
	c.SetValue(!c.get())
}

func (c *boolController) apply(v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("controller %q: expected a bool, got %T", c.name, v)
	}
	c.SetValue(b)
	return nil
}

// colorController is the implementation of ColorController.
type colorController struct {
	logger         zerolog.Logger
	name           string
	color          common.Color
	onChange       func(common.Color)
	onFinishChange func(common.Color)
}

var _ ColorController = &colorController{}

func (c *colorController) Name() string        { return c.name }
func (c *colorController) Kind() ControllerKind { return KindColor }
func (c *colorController) Value() any           { return c.color.Hex() }
func (c *colorController) Color() common.Color  { return c.color }

func (c *colorController) SetName(name string) ColorController {
	c.name = name
	return c
}

func (c *colorController) OnChange(fn func(col common.Color)) ColorController {
	c.onChange = fn
	return c
}

func (c *colorController) OnFinishChange(fn func(col common.Color)) ColorController {
	c.onFinishChange = fn
	return c
}

func (c *colorController) SetValue(s string) error {
	col, err := common.ParseColor(s)
	if err != nil {
		return err
	}
	c.color = col
	c.logger.Debug().Str("controller", c.name).Str("value", col.Hex()).Msg("color changed")
	if c.onChange != nil {
		c.onChange(col)
	}
	if c.onFinishChange != nil {
		c.onFinishChange(col)
	}
	return nil
}

func (c *colorController) apply(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("controller %q: expected a color string, got %T", c.name, v)
	}
	if err := c.SetValue(s); err != nil {
		return fmt.Errorf("controller %q: %w", c.name, err)
	}
	return nil
}

// funcController is the implementation of FuncController.
type funcController struct {
	logger zerolog.Logger
	name   string
	fn     func()
}

var _ FuncController = &funcController{}

func (c *funcController) Name() string        { return c.name }
func (c *funcController) Kind() ControllerKind { return KindFunc }
func (c *funcController) Value() any           { return nil }

func (c *funcController) SetName(name string) FuncController {
	c.name = name
	return c
}

func (c *funcController) Press() {
	c.logger.Debug().Str("controller", c.name).Msg("pressed")
	if c.fn != nil {
		c.fn()
	}
}

func (c *funcController) apply(any) error {
	return nil
}
