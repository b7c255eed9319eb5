package term

import (
	"fmt"
	"math"

	"chartui/internal/chart"
	"chartui/internal/engine"
	"chartui/internal/surface"
	"chartui/internal/theme"
)

// startAngle puts the first segment at twelve o'clock.
const startAngle = -math.Pi / 2

func (e *Engine) center() (cx, cy, r float64) {
	a := e.area
	return a.X + a.W/2, a.Y + a.H/2, math.Min(a.W, a.H) / 2
}

// drawArcs draws one ring per visible dataset; a doughnut keeps its center
// empty.
func (e *Engine) drawArcs() error {
	cx, cy, outer := e.center()
	inner := 0.0
	if e.cfg.Type == chart.Doughnut {
		inner = outer * 0.5
	}
	var rings []int
	for i, ds := range e.cfg.Datasets {
		if !ds.Hidden {
			rings = append(rings, i)
		}
	}
	if len(rings) == 0 {
		return nil
	}
	width := (outer - inner) / float64(len(rings))
	for j, di := range rings {
		ds := e.cfg.Datasets[di]
		r0, r1 := inner+float64(j)*width, inner+float64(j+1)*width
		vals := e.cur[ds].data
		total := 0.0
		for k, v := range vals {
			if !e.cfg.SegmentHidden(k) {
				total += math.Abs(v)
			}
		}
		if total == 0 {
			continue
		}
		a := startAngle
		for k, v := range vals {
			if e.cfg.SegmentHidden(k) {
				continue
			}
			sweep := math.Abs(v) / total * 2 * math.Pi * e.sweep
			if sweep <= 0 {
				continue
			}
			id := fmt.Sprintf("arc-%d-%d", di, k)
			p := surface.Sector(cx, cy, r0, r1, a, a+sweep)
			if err := e.put(&surface.Shape{ID: id, Class: "arc", Path: p, Fill: e.fill(ds, di, k), Stroke: e.stroke(ds, di, k)}); err != nil {
				return err
			}
			el := engine.Element{
				DatasetIndex: di,
				Index:        k,
				Kind:         engine.KindArc,
				Value:        target(ds, k),
				CX:           cx,
				CY:           cy,
				StartAngle:   a,
				EndAngle:     a + sweep,
				InnerRadius:  r0,
				OuterRadius:  r1,
			}
			e.els = append(e.els, el)
			mid, rm := a+sweep/2, (r0+r1)/2
			e.dataLabel("label-"+id, cx+rm*math.Cos(mid), cy+rm*math.Sin(mid), el.Value)
			a += sweep
		}
	}
	return nil
}

// drawPolar draws equal angle segments whose radius follows the value.
func (e *Engine) drawPolar() error {
	cx, cy, outer := e.center()
	s := e.scale(engine.ScaleR)
	n := e.categories()
	step := 2 * math.Pi / float64(n)
	for di, ds := range e.cfg.Datasets {
		if ds.Hidden {
			continue
		}
		for k, v := range e.cur[ds].data {
			if e.cfg.SegmentHidden(k) {
				continue
			}
			r := outer * fraction(s, v) * e.sweep
			if r <= 0 {
				continue
			}
			a := startAngle + float64(k)*step
			id := fmt.Sprintf("arc-%d-%d", di, k)
			if err := e.put(&surface.Shape{ID: id, Class: "arc", Path: surface.Sector(cx, cy, 0, r, a, a+step), Fill: e.fill(ds, di, k), Stroke: e.stroke(ds, di, k)}); err != nil {
				return err
			}
			e.els = append(e.els, engine.Element{
				DatasetIndex: di,
				Index:        k,
				Kind:         engine.KindArc,
				Value:        target(ds, k),
				CX:           cx,
				CY:           cy,
				StartAngle:   a,
				EndAngle:     a + step,
				OuterRadius:  r,
			})
			e.dataLabel("label-"+id, cx+r/2*math.Cos(a+step/2), cy+r/2*math.Sin(a+step/2), target(ds, k))
		}
	}
	return nil
}

// drawRadar draws the spokes and one polygon per visible dataset.
func (e *Engine) drawRadar() error {
	cx, cy, outer := e.center()
	s := e.scale(engine.ScaleR)
	n := e.categories()
	angle := func(k int) float64 { return startAngle + 2*math.Pi*float64(k)/float64(n) }
	for k := 0; k < n; k++ {
		a := angle(k)
		spoke := surface.Line([]surface.Point{{X: cx, Y: cy}, {X: cx + outer*math.Cos(a), Y: cy + outer*math.Sin(a)}})
		if err := e.put(&surface.Shape{ID: fmt.Sprintf("spoke-%d", k), Class: "axis", Path: spoke, Stroke: e.muted()}); err != nil {
			return err
		}
		if k < len(e.cfg.Labels) {
			anchor := surface.AnchorMiddle
			switch c := math.Cos(a); {
			case c > 0.3:
				anchor = surface.AnchorStart
			case c < -0.3:
				anchor = surface.AnchorEnd
			}
			r := outer + 2
			e.text(fmt.Sprintf("cat-%d", k), cx+r*math.Cos(a), cy+r*math.Sin(a), e.cfg.Labels[k], anchor)
		}
	}
	for di, ds := range e.cfg.Datasets {
		if ds.Hidden {
			continue
		}
		var pts []surface.Point
		for k, v := range e.cur[ds].data {
			r := outer * fraction(s, v) * e.sweep
			pts = append(pts, surface.Point{X: cx + r*math.Cos(angle(k)), Y: cy + r*math.Sin(angle(k))})
		}
		if len(pts) == 0 {
			continue
		}
		fill := engine.ColorAt(ds.BackgroundColor, 0)
		if e.highlighted(di, -1) {
			fill = engine.ColorAt(ds.HoverBackgroundColor, 0)
		}
		if err := e.put(&surface.Shape{ID: fmt.Sprintf("radar-%d", di), Class: "radar", Path: surface.Polygon(pts), Fill: theme.WithAlpha(fill, 0.3), Stroke: e.stroke(ds, di, 0)}); err != nil {
			return err
		}
		for k, pt := range pts {
			e.els = append(e.els, engine.Element{
				DatasetIndex: di,
				Index:        k,
				Kind:         engine.KindRadialPoint,
				Value:        target(ds, k),
				X:            pt.X,
				Y:            pt.Y,
				Radius:       1,
				CX:           cx,
				CY:           cy,
			})
			e.dataLabel(fmt.Sprintf("label-radar-%d-%d", di, k), pt.X, pt.Y, target(ds, k))
		}
	}
	return nil
}
