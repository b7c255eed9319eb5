package theme

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA formats c with alpha a the way engine configurations carry colors.
func RGBA(c colorful.Color, a float64) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(a))
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.3f", math.Max(0, math.Min(1, f)))
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ParseColor accepts #rgb, #rrggbb, rgb(...) and rgba(...).
func ParseColor(s string) (colorful.Color, float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, 0, err
		}
		return c, 1, nil
	case strings.HasPrefix(s, "rgba("):
		var r, g, b uint8
		var a float64
		if _, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err != nil {
			return colorful.Color{}, 0, fmt.Errorf("color %q: %w", s, err)
		}
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, a, nil
	case strings.HasPrefix(s, "rgb("):
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "rgb(%d, %d, %d)", &r, &g, &b); err != nil {
			return colorful.Color{}, 0, fmt.Errorf("color %q: %w", s, err)
		}
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, 1, nil
	}
	return colorful.Color{}, 0, fmt.Errorf("color %q: unsupported format", s)
}

// WithAlpha replaces the alpha of a color string. Unparsable input is
// returned unchanged.
func WithAlpha(s string, a float64) string {
	c, _, err := ParseColor(s)
	if err != nil {
		return s
	}
	return RGBA(c, a)
}

// Darken lowers the lightness of s by amount (0..1), keeping its alpha.
func Darken(s string, amount float64) string {
	c, a, err := ParseColor(s)
	if err != nil {
		return s
	}
	return RGBA(darken(c, amount), a)
}

func darken(c colorful.Color, amount float64) colorful.Color {
	h, ch, l := c.Hcl()
	return colorful.Hcl(h, ch, l*(1-amount)).Clamped()
}

// Flatten composes s over bg and returns an opaque hex color, for outputs
// without transparency such as terminals.
func Flatten(s string, bg colorful.Color) (string, bool) {
	c, a, err := ParseColor(s)
	if err != nil {
		return "", false
	}
	return bg.BlendRgb(c, a).Clamped().Hex(), true
}
