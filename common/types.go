// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a linear RGB color with components nominally in [0, 1].
// Lighting math is done on Color; conversion to 8-bit happens only when writing pixels.
type Color struct {
	R, G, B float32
}

// Named colors used by the demos and helpers.
var (
	ColorWhite  = Color{1, 1, 1}
	ColorBlack  = Color{0, 0, 0}
	ColorRed    = Color{1, 0, 0}
	ColorGreen  = Color{0, 1, 0}
	ColorBlue   = Color{0, 0, 1}
	ColorYellow = Color{1, 1, 0}
)

var namedColors = map[string]Color{
	"white":  ColorWhite,
	"black":  ColorBlack,
	"red":    ColorRed,
	"green":  ColorGreen,
	"blue":   ColorBlue,
	"yellow": ColorYellow,
}

// ColorFromHex converts a packed 0xRRGGBB value into a Color.
//
// Parameters:
//   - hex: the packed color (e.g. 0x00ff00)
//
// Returns:
//   - Color: the unpacked color
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// ParseColor parses a CSS-style color string: "#rrggbb", "#rgb", "0xrrggbb" or one of the named colors.
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a recognized color
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	var digits string
	switch {
	case strings.HasPrefix(s, "#"):
		digits = s[1:]
	case strings.HasPrefix(s, "0x"):
		digits = s[2:]
	default:
		return Color{}, fmt.Errorf("unrecognized color %q", s)
	}

	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("unrecognized color %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("unrecognized color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// Hex returns the color as a "#rrggbb" string, clamping each channel to [0, 1].
func (c Color) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Bytes returns the color as clamped 8-bit channels.
func (c Color) Bytes() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

// RGBA returns the color as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.Bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Mul returns the component-wise product of two colors.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Add returns the component-wise sum of two colors.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Lerp linearly interpolates between c and o.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

func toByte(v float32) uint8 {
	return uint8(Clamp(v, 0, 1)*255 + 0.5)
}
