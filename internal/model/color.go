package model

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB line color.
type Color struct {
	R, G, B uint8
}

// DefaultLineColor is the first series color of the chart palette.
var DefaultLineColor = Color{R: 0x20, G: 0x9f, B: 0xdf}

// ParseColor accepts "#rrggbb" (or the short "#rgb") in any case.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex renders the color as lower-case "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func (c Color) String() string { return c.Hex() }

// Tint blends c toward white by t in [0,1], in Lab space.
func (c Color) Tint(t float64) Color {
	if t <= 0 {
		return c
	}
	if t > 1 {
		t = 1
	}
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
