package vector

import (
	"fmt"
	"math"
	"time"

	"chartui/internal/anim"
	"chartui/internal/chart"
	"chartui/internal/render"
	"chartui/internal/surface"
	"chartui/internal/theme"
)

// maxFunnelDelta caps the width step between normalized funnel bars.
const maxFunnelDelta = 0.1

// Funnel draws one horizontal bar per value group, narrowing top to bottom,
// with the conversion rate between consecutive bars.
type Funnel struct {
	base
	// widths are the currently drawn bar widths as fractions of the full width.
	widths []float64
}

func NewFunnel(ctx *render.Context) *Funnel {
	return &Funnel{base: base{ctx: ctx}}
}

func (f *Funnel) Valid(d *chart.Data) bool {
	for _, g := range d.Groups {
		if g.Len() == 0 {
			return false
		}
	}
	return true
}

func (f *Funnel) values() []float64 {
	vs := make([]float64, len(f.ctx.Data.Groups))
	for i, g := range f.ctx.Data.Groups {
		if g.Len() > 0 {
			vs[i] = g.Value(0)
		}
	}
	return vs
}

// FunnelWidths returns the bar widths as fractions of the full width. With
// normalized set each bar is narrower than the previous one by a fixed delta
// such that the last bar keeps minRatio; otherwise widths are proportional to
// the values.
func FunnelWidths(values []float64, normalized bool, minRatio float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if normalized {
		delta := 0.0
		if n > 1 {
			delta = math.Min(maxFunnelDelta, (1-clamp01(minRatio))/float64(n-1))
		}
		for i := range out {
			out[i] = 1 - float64(i)*delta
		}
		return out
	}
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v)
	}
	for i, v := range values {
		if top > 0 {
			out[i] = clamp01(v / top)
		}
	}
	return out
}

// ConversionRates returns the rounded percentage of each value relative to its
// predecessor. Entry 0 and entries whose predecessor is zero are not ok.
func ConversionRates(values []float64) (rates []int, ok []bool) {
	rates = make([]int, len(values))
	ok = make([]bool, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		rates[i] = int(math.Round(values[i] / values[i-1] * 100))
		ok[i] = true
	}
	return rates, ok
}

func (f *Funnel) targetWidths() []float64 {
	s := f.ctx.Config.Options.Salesfunnel
	return FunnelWidths(f.values(), chart.Bool(s.Normalized, true), s.MinWidthRatio)
}

func (f *Funnel) Draw(d time.Duration) error {
	return f.transition(make([]float64, len(f.ctx.Data.Groups)), f.targetWidths(), d)
}

// UpdateData morphs the drawn bars into the new widths. Bars that did not
// exist before grow from zero.
func (f *Funnel) UpdateData(d time.Duration) error {
	to := f.targetWidths()
	from := make([]float64, len(to))
	copy(from, f.widths)
	for i := len(to); i < len(f.widths); i++ {
		f.ctx.Scene.Remove(barID(i))
		f.ctx.Scene.Remove(labelID(i))
		f.ctx.Scene.Remove(conversionID(i))
	}
	return f.transition(from, to, d)
}

func (f *Funnel) transition(from, to []float64, d time.Duration) error {
	return f.animate(d, func(p float64) error {
		cur := make([]float64, len(to))
		for i := range to {
			cur[i] = anim.Lerp(from[i], to[i], p)
		}
		return f.drawAt(cur)
	})
}

func (f *Funnel) Redraw() error {
	return f.drawAt(f.targetWidths())
}

func (f *Funnel) Erase(d time.Duration, done func(stopped bool)) {
	from := append([]float64(nil), f.widths...)
	f.erase(d, func(p float64) error {
		cur := make([]float64, len(from))
		for i := range from {
			cur[i] = anim.Lerp(from[i], 0, p)
		}
		return f.drawAt(cur)
	}, f.clear, done)
}

func (f *Funnel) clear() {
	for i := range f.widths {
		f.ctx.Scene.Remove(barID(i))
		f.ctx.Scene.Remove(labelID(i))
		f.ctx.Scene.Remove(conversionID(i))
	}
	f.widths = nil
}

func barID(i int) string        { return fmt.Sprintf("funnel-bar-%d", i) }
func labelID(i int) string      { return fmt.Sprintf("funnel-label-%d", i) }
func conversionID(i int) string { return fmt.Sprintf("funnel-conversion-%d", i) }

func (f *Funnel) drawAt(widths []float64) error {
	f.widths = widths
	n := len(widths)
	if n == 0 {
		return nil
	}
	w, h := f.ctx.Scene.Size()
	// Left column for names, right column for conversion rates.
	labelW := w * 0.2
	full := w - 2*labelW
	gap := math.Min(4, h/float64(4*n))
	barH := (h - gap*float64(n-1)) / float64(n)
	values := f.values()
	rates, ok := ConversionRates(values)
	calc := chart.Bool(f.ctx.Config.Options.Salesfunnel.CalcConversionRate, true)
	for i, bw := range widths {
		y := float64(i) * (barH + gap)
		width := bw * full
		x := labelW + (full-width)/2
		p := surface.Rect(x, y, width, barH)
		if err := p.Validate(); err != nil {
			return err
		}
		// Bars beyond the current data only occur while an exit animation
		// shrinks the previous data.
		var g chart.ValueGroup
		name := ""
		if i < len(values) {
			g = f.ctx.Data.Groups[i]
			name = g.GroupName
			if name != "" {
				name += " "
			}
			name += f.ctx.Format.Format(values[i])
			if g.Len() > 1 {
				name += " / " + f.ctx.Format.Format(g.Value(1))
			}
		}
		f.ctx.Scene.Put(&surface.Shape{
			ID:     barID(i),
			Class:  g.CSSClass,
			Path:   p,
			Fill:   f.groupColor(i, theme.Fill),
			Stroke: f.groupColor(i, theme.Stroke),
		})
		f.ctx.Scene.PutText(&surface.Text{
			ID:    labelID(i),
			X:     0,
			Y:     y + barH/2,
			Value: name,
			Color: f.textColor(),
		})
		if calc && i < len(ok) && ok[i] {
			f.ctx.Scene.PutText(&surface.Text{
				ID:     conversionID(i),
				X:      w,
				Y:      y - gap/2,
				Value:  fmt.Sprintf("%d%%", rates[i]),
				Color:  f.textColor(),
				Anchor: surface.AnchorEnd,
			})
		} else {
			f.ctx.Scene.Remove(conversionID(i))
		}
	}
	return nil
}
