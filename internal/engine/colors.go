package engine

import (
	"chartui/internal/chart"
	"chartui/internal/theme"
)

// perSegmentColors reports kinds that color each data index instead of each
// dataset.
func perSegmentColors(t chart.Type) bool {
	switch t {
	case chart.Pie, chart.Doughnut, chart.PolarArea:
		return true
	}
	return false
}

// lineLike reports series drawn as outlines, whose fill is more transparent.
func lineLike(t chart.Type) bool {
	return t == chart.Line || t == chart.Radar
}

// colorSet holds the variants of one color.
type colorSet struct {
	fill, stroke, hover, hoverStroke, checked, unchecked, legend string
}

func autoColors(th *theme.Theme, scheme string, index int) colorSet {
	return colorSet{
		fill:        th.AutoColor(scheme, index, theme.Fill),
		stroke:      th.AutoColor(scheme, index, theme.Stroke),
		hover:       th.AutoColor(scheme, index, theme.Hover),
		hoverStroke: th.AutoColor(scheme, index, theme.HoverStroke),
		checked:     th.AutoColor(scheme, index, theme.Checked),
		unchecked:   th.AutoColor(scheme, index, theme.Unchecked),
		legend:      th.AutoColor(scheme, index, theme.Legend),
	}
}

func classColors(th *theme.Theme, scheme, class string) (colorSet, bool) {
	var s colorSet
	for _, v := range []struct {
		dst *string
		v   theme.Variant
	}{
		{&s.fill, theme.Fill}, {&s.stroke, theme.Stroke}, {&s.hover, theme.Hover},
		{&s.hoverStroke, theme.HoverStroke}, {&s.checked, theme.Checked},
		{&s.unchecked, theme.Unchecked}, {&s.legend, theme.Legend},
	} {
		c, ok := th.ClassColor(scheme, class, v.v)
		if !ok {
			return colorSet{}, false
		}
		*v.dst = c
	}
	return s, true
}

// explicitColors derives the variants from a hex value. Line-like series
// get a lighter fill and a lighter unchecked state.
func explicitColors(hex string, t chart.Type) colorSet {
	fillAlpha, uncheckedAlpha := 0.8, 0.4
	if lineLike(t) {
		fillAlpha, uncheckedAlpha = 0.3, 0.2
	}
	return colorSet{
		fill:        theme.WithAlpha(hex, fillAlpha),
		stroke:      theme.WithAlpha(hex, 1),
		hover:       theme.Darken(hex, 0.1),
		hoverStroke: theme.Darken(hex, 0.2),
		checked:     theme.Darken(hex, 0.2),
		unchecked:   theme.WithAlpha(hex, uncheckedAlpha),
		legend:      theme.WithAlpha(hex, 1),
	}
}

// expandColors repeats colors to length n, the last color filling the rest.
func expandColors(colors []string, n int) []string {
	if len(colors) == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = colors[min(i, len(colors)-1)]
	}
	return out
}

// ApplyColors fills the color arrays of every dataset. Auto color and
// explicit colors are exclusive; a CSS class takes the class rules.
func ApplyColors(cfg *Config, groups []chart.ValueGroup, o chart.Options, th *theme.Theme) {
	segment := perSegmentColors(cfg.Type)
	for i, ds := range cfg.Datasets {
		var g chart.ValueGroup
		if i < len(groups) {
			g = groups[i]
		}
		n := max(ds.Len(), 1)
		explicit := expandColors(g.Colors, n)
		sets := make([]colorSet, n)
		for k := range sets {
			idx := i
			if segment {
				idx = k
			}
			switch {
			case o.AutoColorEnabled():
				sets[k] = autoColors(th, o.ColorScheme, idx)
			case g.CSSClass != "":
				cs, ok := classColors(th, o.ColorScheme, g.CSSClass)
				if !ok {
					cs = autoColors(th, o.ColorScheme, idx)
				}
				sets[k] = cs
			case explicit != nil:
				hex := explicit[0]
				if segment {
					hex = explicit[k]
				}
				sets[k] = explicitColors(hex, ds.Type)
			default:
				sets[k] = autoColors(th, o.ColorScheme, idx)
			}
		}
		ds.BackgroundColor = ds.BackgroundColor[:0]
		ds.BorderColor = ds.BorderColor[:0]
		ds.HoverBackgroundColor = ds.HoverBackgroundColor[:0]
		ds.HoverBorderColor = ds.HoverBorderColor[:0]
		ds.CheckedBackgroundColor = ds.CheckedBackgroundColor[:0]
		ds.UncheckedBackgroundColor = ds.UncheckedBackgroundColor[:0]
		for _, s := range sets {
			ds.BackgroundColor = append(ds.BackgroundColor, s.fill)
			ds.BorderColor = append(ds.BorderColor, s.stroke)
			ds.HoverBackgroundColor = append(ds.HoverBackgroundColor, s.hover)
			ds.HoverBorderColor = append(ds.HoverBorderColor, s.hoverStroke)
			ds.CheckedBackgroundColor = append(ds.CheckedBackgroundColor, s.checked)
			ds.UncheckedBackgroundColor = append(ds.UncheckedBackgroundColor, s.unchecked)
		}
		ds.LegendColor = sets[0].legend
	}
}

// SwapChecked writes the checked or unchecked shadow color of every element
// into the live BackgroundColor array in place.
func SwapChecked(cfg *Config, checked []chart.ClickObject) {
	for i, ds := range cfg.Datasets {
		for k := range ds.BackgroundColor {
			if k >= len(ds.CheckedBackgroundColor) || k >= len(ds.UncheckedBackgroundColor) {
				break
			}
			if chart.IsChecked(checked, i, k) {
				ds.BackgroundColor[k] = ds.CheckedBackgroundColor[k]
			} else {
				ds.BackgroundColor[k] = ds.UncheckedBackgroundColor[k]
			}
		}
	}
}

// ColorAt returns colors[i], wrapping around, or "" for an empty slice.
func ColorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[i%len(colors)]
}
