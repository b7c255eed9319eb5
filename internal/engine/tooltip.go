package engine

import (
	"fmt"
	"math"
	"time"

	"chartui/internal/chart"
	"chartui/internal/render"
)

// tooltipOffset keeps the tooltip clear of the element it describes.
const tooltipOffset = 2

func tooltipDelay(o chart.Options) time.Duration {
	return o.TooltipDelay()
}

// Placement is a tooltip anchor and the side it opens to.
type Placement struct {
	X, Y      float64
	Direction render.Direction
}

// PlaceTooltip positions a tooltip so that it does not overlap el.
func PlaceTooltip(el Element, area Rect) Placement {
	switch el.Kind {
	case KindBar:
		if el.Horizontal {
			if el.Value >= 0 {
				return Placement{el.X + tooltipOffset, el.Y, render.Right}
			}
			return Placement{el.X - tooltipOffset, el.Y, render.Left}
		}
		if el.Value >= 0 {
			return Placement{el.X, el.Y - tooltipOffset, render.Above}
		}
		return Placement{el.X, el.Y + tooltipOffset, render.Below}
	case KindArc:
		mid := (el.StartAngle + el.EndAngle) / 2
		r := el.OuterRadius + tooltipOffset
		return radial(el.CX+r*math.Cos(mid), el.CY+r*math.Sin(mid), mid)
	case KindRadialPoint:
		a := math.Atan2(el.Y-el.CY, el.X-el.CX)
		r := el.Radius + tooltipOffset
		return radial(el.X+r*math.Cos(a), el.Y+r*math.Sin(a), a)
	}
	r := el.Radius + tooltipOffset
	if el.X < area.X+area.W/2 {
		return Placement{el.X + r, el.Y, render.Right}
	}
	return Placement{el.X - r, el.Y, render.Left}
}

// radial picks the direction pointing away from the center along angle a.
// Screen y grows downwards.
func radial(x, y, a float64) Placement {
	c, s := math.Cos(a), math.Sin(a)
	d := render.Left
	switch {
	case math.Abs(s) > math.Abs(c) && s > 0:
		d = render.Below
	case math.Abs(s) > math.Abs(c):
		d = render.Above
	case c >= 0:
		d = render.Right
	}
	return Placement{x, y, d}
}

// TooltipContent returns the title and lines for el.
func TooltipContent(cfg *Config, el Element, f chart.Formatter) (string, []string) {
	format := func(v float64) string { return fmt.Sprint(v) }
	if f != nil {
		format = f.Format
	}
	ds := cfg.Datasets[el.DatasetIndex]
	title := ""
	if el.Index < len(cfg.Labels) {
		title = cfg.Labels[el.Index]
	}
	if len(ds.Points) > 0 && el.Index < len(ds.Points) {
		p := ds.Points[el.Index]
		title = ds.Label
		line := fmt.Sprintf("x: %s, y: %s", format(p.X), format(p.Y))
		if cfg.Type == chart.Bubble {
			line += ", size: " + format(p.Z)
		}
		return title, []string{line}
	}
	label := ds.Label
	if label == "" {
		label = title
	}
	return title, []string{fmt.Sprintf("%s: %s", label, format(el.Value))}
}

// PickElement chooses the front-most element among overlapping hits: the
// smaller radius wins and the later element wins exact ties.
func PickElement(els []Element) (Element, bool) {
	if len(els) == 0 {
		return Element{}, false
	}
	best := els[0]
	for _, e := range els[1:] {
		if e.Radius <= best.Radius {
			best = e
		}
	}
	return best, true
}
