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

// maxSweep keeps a full ring from degenerating into a zero length arc.
const maxSweep = 0.999999

const (
	fulfillmentBackgroundID = "fulfillment-background"
	fulfillmentRingID       = "fulfillment-ring"
	fulfillmentLabelID      = "fulfillment-label"
)

// Fulfillment draws value/total as a partially filled ring with the
// percentage in its center. Group 0 holds the value, group 1 the total.
type Fulfillment struct {
	base
	// fraction is the currently drawn fill.
	fraction float64
	drawn    bool
}

func NewFulfillment(ctx *render.Context) *Fulfillment {
	return &Fulfillment{base: base{ctx: ctx}}
}

func (f *Fulfillment) Valid(d *chart.Data) bool {
	return len(d.Groups) >= 2 && d.Groups[0].Len() > 0 && d.Groups[1].Len() > 0
}

// FulfillmentFraction returns value/total, zero when total is zero.
func FulfillmentFraction(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total
}

func (f *Fulfillment) target() (fraction, total float64) {
	g := f.ctx.Data.Groups
	total = g[1].Value(0)
	return FulfillmentFraction(g[0].Value(0), total), total
}

// Sweep returns the currently drawn arc sweep as a fraction of a circle.
func (f *Fulfillment) Sweep() float64 {
	return math.Min(clamp01(f.fraction), maxSweep)
}

func (f *Fulfillment) Draw(d time.Duration) error {
	to, total := f.target()
	from := 0.0
	if sv := f.ctx.Config.Options.Fulfillment.StartValue; sv != nil {
		from = FulfillmentFraction(*sv, total)
	}
	return f.transition(from, to, d)
}

// UpdateData animates from the drawn fill to the new one.
func (f *Fulfillment) UpdateData(d time.Duration) error {
	to, _ := f.target()
	from := f.fraction
	if !f.drawn {
		from = 0
	}
	return f.transition(from, to, d)
}

func (f *Fulfillment) transition(from, to float64, d time.Duration) error {
	label := fmt.Sprintf("%d%%", int(math.Round(to*100)))
	f.drawn = true
	return f.animate(d, func(p float64) error {
		return f.drawAt(anim.Lerp(from, to, p), label)
	})
}

func (f *Fulfillment) Redraw() error {
	to, _ := f.target()
	f.drawn = true
	return f.drawAt(to, fmt.Sprintf("%d%%", int(math.Round(to*100))))
}

func (f *Fulfillment) Erase(d time.Duration, done func(stopped bool)) {
	from := f.fraction
	label := ""
	if t := f.ctx.Scene.Text(fulfillmentLabelID); t != nil {
		label = t.Value
	}
	f.erase(d, func(p float64) error {
		return f.drawAt(anim.Lerp(from, 0, p), label)
	}, f.clear, done)
}

func (f *Fulfillment) clear() {
	f.ctx.Scene.Remove(fulfillmentBackgroundID)
	f.ctx.Scene.Remove(fulfillmentRingID)
	f.ctx.Scene.Remove(fulfillmentLabelID)
	f.fraction = 0
	f.drawn = false
}

func (f *Fulfillment) drawAt(fraction float64, label string) error {
	f.fraction = fraction
	w, h := f.ctx.Scene.Size()
	cx, cy := w/2, h/2
	outer := math.Min(w, h) / 2 * 0.9
	inner := outer * 0.75
	start := -math.Pi / 2
	ring := surface.Sector(cx, cy, inner, outer, start, start+2*math.Pi*f.Sweep())
	if err := ring.Validate(); err != nil {
		return err
	}
	f.ctx.Scene.Put(&surface.Shape{
		ID:   fulfillmentBackgroundID,
		Path: surface.Ring(cx, cy, inner, outer),
		Fill: f.mutedColor(0.3),
	})
	f.ctx.Scene.Put(&surface.Shape{
		ID:     fulfillmentRingID,
		Class:  "fulfillment",
		Path:   ring,
		Fill:   f.groupColor(0, theme.Fill),
		Stroke: f.groupColor(0, theme.Stroke),
	})
	f.ctx.Scene.PutText(&surface.Text{
		ID:     fulfillmentLabelID,
		X:      cx,
		Y:      cy,
		Value:  label,
		Color:  f.textColor(),
		Anchor: surface.AnchorMiddle,
	})
	return nil
}
