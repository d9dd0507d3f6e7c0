package layout

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// shadeFloor is the interpolation fraction of the first question in a
// category; the last question gets the full base color.
const shadeFloor = 0.3

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var white = colorful.Color{R: 1, G: 1, B: 1}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the #rrggbb form, ignoring alpha.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// RGBA8 returns the channels scaled to 0..255.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ParseHex parses a #rrggbb color with full opacity.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var tab10 = []Color{
	mustHex("#1f77b4"),
	mustHex("#ff7f0e"),
	mustHex("#2ca02c"),
	mustHex("#d62728"),
	mustHex("#9467bd"),
	mustHex("#8c564b"),
	mustHex("#e377c2"),
	mustHex("#7f7f7f"),
	mustHex("#bcbd22"),
	mustHex("#17becf"),
}

// Tab10 returns the default ten-color categorical palette.
func Tab10() []Color {
	out := make([]Color, len(tab10))
	copy(out, tab10)
	return out
}

// ShadeFraction is the white-to-base interpolation fraction for question j of
// q. Fractions run linearly from 0.3 to 1.0; a single question gets 1.0.
func ShadeFraction(j, q int) float64 {
	if q <= 1 {
		return 1
	}
	return shadeFloor + (1-shadeFloor)*float64(j)/float64(q-1)
}

// Shade linearly interpolates from white to base at fraction t.
func Shade(base Color, t float64) Color {
	c := white.BlendRgb(base.colorful(), t)
	return Color{R: c.R, G: c.G, B: c.B, A: base.A}
}
