// Package theme is the shared, read-only source of chart colors.
//
// Colors are looked up from style rules keyed by selector and property, the
// way a stylesheet would provide them. A Theme is built once and never
// mutated, so it can be shared by every chart instance.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Variant selects one derived color of a palette entry.
type Variant string

const (
	Fill        Variant = "fill"
	Stroke      Variant = "stroke"
	Hover       Variant = "hover"
	HoverStroke Variant = "hover-stroke"
	Checked     Variant = "checked"
	Unchecked   Variant = "unchecked"
	Legend      Variant = "legend"
)

var variants = []Variant{Fill, Stroke, Hover, HoverStroke, Checked, Unchecked, Legend}

// Qualitative palettes. "default" is Paul Tol's colorblind-safe set.
var schemes = map[string][]string{
	"default": {
		"#4477AA", "#EE6677", "#228833", "#CCBB44", "#66CCEE",
		"#AA3377", "#BBBBBB", "#EE8866", "#44BB99", "#FFAABB",
	},
	"alternative": {
		"#0077BB", "#33BBEE", "#009988", "#EE7733", "#CC3311", "#EE3377",
	},
	"rainbow": {
		"#E8601C", "#F1932D", "#F6C141", "#CAE0AB", "#90C987",
		"#4EB265", "#7BAFDE", "#5289C7", "#1965B0", "#882E72",
	},
}

// Theme holds palettes and base colors.
type Theme struct {
	Name       string
	Background colorful.Color
	Foreground colorful.Color
	Muted      colorful.Color
	rules      map[string]string
	sizes      map[string]int
}

// Default is the light theme.
func Default() *Theme {
	return build("default", "#FFFFFF", "#1F2933", "#9AA5B1", 0.0)
}

// Dark is tuned for dark terminals.
func Dark() *Theme {
	return build("dark", "#0B0F14", "#E6E6E6", "#6B7280", 0.15)
}

// ByName returns the named theme, falling back to Dark.
func ByName(name string) *Theme {
	if name == "default" || name == "light" {
		return Default()
	}
	return Dark()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func build(name, bg, fg, muted string, lighten float64) *Theme {
	t := &Theme{
		Name:       name,
		Background: mustHex(bg),
		Foreground: mustHex(fg),
		Muted:      mustHex(muted),
		rules:      map[string]string{},
		sizes:      map[string]int{},
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	for scheme, hexes := range schemes {
		t.sizes[scheme] = len(hexes)
		for i, h := range hexes {
			base := mustHex(h)
			if lighten > 0 {
				base = base.BlendLab(white, lighten).Clamped()
			}
			values := map[Variant]string{
				Fill:        RGBA(base, 0.8),
				Stroke:      RGBA(base, 1),
				Hover:       RGBA(darken(base, 0.1), 0.9),
				HoverStroke: RGBA(darken(base, 0.1), 1),
				Checked:     RGBA(darken(base, 0.2), 1),
				Unchecked:   RGBA(base, 0.4),
				Legend:      RGBA(base, 1),
			}
			for _, v := range variants {
				t.rules[selector(scheme, i, v)] = values[v]
			}
		}
	}
	return t
}

func selector(scheme string, index int, v Variant) string {
	return fmt.Sprintf("%s color-%d %s", scheme, index, v)
}

// Rule looks up a style rule by selector.
func (t *Theme) Rule(sel string) (string, bool) {
	v, ok := t.rules[sel]
	return v, ok
}

// PaletteSize returns the number of colors in scheme.
func (t *Theme) PaletteSize(scheme string) int {
	if n, ok := t.sizes[scheme]; ok {
		return n
	}
	return t.sizes["default"]
}

// AutoColor returns the variant color of the palette entry for index.
func (t *Theme) AutoColor(scheme string, index int, v Variant) string {
	if _, ok := t.sizes[scheme]; !ok {
		scheme = "default"
	}
	n := t.sizes[scheme]
	i := ((index % n) + n) % n
	c, _ := t.Rule(selector(scheme, i, v))
	return c
}

// ClassColor resolves a CSS-class style color such as "color-3". Unknown
// classes yield false.
func (t *Theme) ClassColor(scheme, class string, v Variant) (string, bool) {
	var i int
	if _, err := fmt.Sscanf(class, "color-%d", &i); err != nil {
		return "", false
	}
	return t.AutoColor(scheme, i, v), true
}

// Lip converts a color string to a lipgloss color flattened over the
// background.
func (t *Theme) Lip(s string) lipgloss.Color {
	if hex, ok := Flatten(s, t.Background); ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(t.Foreground.Hex())
}

func (t *Theme) ForegroundColor() lipgloss.Color { return lipgloss.Color(t.Foreground.Hex()) }
func (t *Theme) MutedColor() lipgloss.Color { return lipgloss.Color(t.Muted.Hex()) }
