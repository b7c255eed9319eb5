package term

import (
	"fmt"
	"math"

	"chartui/internal/chart"
	"chartui/internal/engine"
	"chartui/internal/surface"
)

func (e *Engine) scale(id string) *engine.Scale {
	if s := e.cfg.Scale(id); s != nil {
		return s
	}
	if s := e.cfg.Scale(engine.ScaleY); s != nil {
		return s
	}
	return &engine.Scale{ID: id, Min: 0, Max: 1}
}

func fraction(s *engine.Scale, v float64) float64 {
	if s.Max == s.Min {
		return 0
	}
	return (math.Max(s.Min, math.Min(s.Max, v)) - s.Min) / (s.Max - s.Min)
}

// valuePos maps v on the value axis to a scene coordinate.
func (e *Engine) valuePos(s *engine.Scale, v float64) float64 {
	f := fraction(s, v)
	if e.cfg.Horizontal {
		return e.area.X + f*e.area.W
	}
	return e.area.Y + e.area.H*(1-f)
}

func (e *Engine) categories() int {
	n := len(e.cfg.Labels)
	for _, ds := range e.cfg.Datasets {
		n = max(n, ds.Len())
	}
	return max(n, 1)
}

func (e *Engine) drawAxes() error {
	a := e.area
	axis := surface.Line([]surface.Point{{X: a.X, Y: a.Y}, {X: a.X, Y: a.Y + a.H}, {X: a.X + a.W, Y: a.Y + a.H}})
	if err := e.put(&surface.Shape{ID: "axis", Class: "axis", Path: axis, Stroke: e.muted()}); err != nil {
		return err
	}
	format := e.abbreviate()
	for _, s := range e.cfg.Scales {
		ticks := []float64{s.Min, (s.Min + s.Max) / 2, s.Max}
		for i, v := range ticks {
			id := fmt.Sprintf("tick-%s-%d", s.ID, i)
			switch {
			case s.ID == engine.ScaleX || (e.cfg.Horizontal && s.ID == engine.ScaleY):
				x := a.X + fraction(s, v)*a.W
				e.text(id, x, a.Y+a.H+rowHeight, format(v), surface.AnchorMiddle)
			case s.ID == engine.ScaleY2:
				e.text(id, a.X+a.W+2, a.Y+a.H*(1-fraction(s, v)), format(v), surface.AnchorStart)
			default:
				e.text(id, a.X-2, a.Y+a.H*(1-fraction(s, v)), format(v), surface.AnchorEnd)
			}
		}
	}
	if e.cfg.Type == chart.Scatter || e.cfg.Type == chart.Bubble {
		return nil
	}
	e.drawCategoryLabels()
	return nil
}

func (e *Engine) abbreviate() func(float64) string {
	if e.ctx.Format != nil {
		return e.ctx.Format.Abbreviate
	}
	return func(v float64) string { return fmt.Sprint(v) }
}

// drawCategoryLabels writes as many category labels as fit without
// overlapping.
func (e *Engine) drawCategoryLabels() {
	n := e.categories()
	a := e.area
	longest := 1
	for _, l := range e.cfg.Labels {
		longest = max(longest, len([]rune(l)))
	}
	if e.cfg.Horizontal {
		slot := a.H / float64(n)
		step := max(1, int(math.Ceil(rowHeight/slot)))
		for k := 0; k < len(e.cfg.Labels); k += step {
			e.text(fmt.Sprintf("cat-%d", k), a.X-2, a.Y+slot*(float64(k)+0.5), e.cfg.Labels[k], surface.AnchorEnd)
		}
		return
	}
	slot := a.W / float64(n)
	step := max(1, int(math.Ceil(float64(longest*2+2)/slot)))
	for k := 0; k < len(e.cfg.Labels); k += step {
		e.text(fmt.Sprintf("cat-%d", k), a.X+slot*(float64(k)+0.5), a.Y+a.H+2*rowHeight, e.cfg.Labels[k], surface.AnchorMiddle)
	}
}

func isBar(ds *engine.Dataset) bool {
	return ds.Type == chart.Bar || ds.Type == chart.BarHorizontal
}

func (e *Engine) drawBars() error {
	var bars []int
	for i, ds := range e.cfg.Datasets {
		if !ds.Hidden && isBar(ds) {
			bars = append(bars, i)
		}
	}
	if len(bars) == 0 {
		return nil
	}
	n := e.categories()
	span := e.area.W
	origin := e.area.X
	if e.cfg.Horizontal {
		span, origin = e.area.H, e.area.Y
	}
	slot := span / float64(n)
	primary := e.scale(engine.ScaleY)
	stacked := primary.Stacked
	bw := slot * 0.8
	if !stacked {
		bw /= float64(len(bars))
	}
	pos := make([]float64, n)
	neg := make([]float64, n)
	for j, di := range bars {
		ds := e.cfg.Datasets[di]
		s := e.scale(ds.YAxisID)
		for k, v := range e.cur[ds].data {
			base := math.Max(s.Min, math.Min(s.Max, 0))
			if stacked {
				if v >= 0 {
					base = pos[k]
					pos[k] += v
				} else {
					base = neg[k]
					neg[k] += v
				}
			}
			b0, b1 := e.valuePos(s, base), e.valuePos(s, base+v)
			off := origin + slot*float64(k) + slot*0.1
			if !stacked {
				off += float64(j) * bw
			}
			thick := bw * 0.9
			el := engine.Element{
				DatasetIndex: di,
				Index:        k,
				Kind:         engine.KindBar,
				Value:        target(ds, k),
				Base:         b0,
				Width:        thick,
				Horizontal:   e.cfg.Horizontal,
			}
			var p *surface.Path
			if e.cfg.Horizontal {
				p = surface.Rect(math.Min(b0, b1), off, math.Abs(b1-b0), thick)
				el.X, el.Y = b1, off+thick/2
			} else {
				p = surface.Rect(off, math.Min(b0, b1), thick, math.Abs(b1-b0))
				el.X, el.Y = off+thick/2, b1
			}
			id := fmt.Sprintf("bar-%d-%d", di, k)
			if err := e.put(&surface.Shape{ID: id, Class: "bar", Path: p, Fill: e.fill(ds, di, k), Stroke: e.stroke(ds, di, k)}); err != nil {
				return err
			}
			e.els = append(e.els, el)
			e.dataLabel("label-"+id, el.X, el.Y, el.Value)
		}
	}
	return nil
}

// target is the value the element animates to.
func target(ds *engine.Dataset, k int) float64 {
	if k < ds.Len() {
		return ds.Value(k)
	}
	return 0
}

func (e *Engine) drawLines() error {
	slot := e.area.W / float64(e.categories())
	for di, ds := range e.cfg.Datasets {
		if ds.Hidden || ds.Type != chart.Line {
			continue
		}
		s := e.scale(ds.YAxisID)
		var pts []surface.Point
		for k, v := range e.cur[ds].data {
			pts = append(pts, surface.Point{X: e.area.X + slot*(float64(k)+0.5), Y: e.valuePos(s, v)})
		}
		if len(pts) == 0 {
			continue
		}
		if err := e.put(&surface.Shape{ID: fmt.Sprintf("line-%d", di), Class: "line", Path: surface.Line(pts), Stroke: e.stroke(ds, di, 0)}); err != nil {
			return err
		}
		for k, pt := range pts {
			id := fmt.Sprintf("point-%d-%d", di, k)
			if err := e.put(&surface.Shape{ID: id, Path: surface.Circle(pt.X, pt.Y, 1), Fill: e.stroke(ds, di, k)}); err != nil {
				return err
			}
			el := engine.Element{DatasetIndex: di, Index: k, Kind: engine.KindPoint, Value: target(ds, k), X: pt.X, Y: pt.Y, Radius: 1}
			e.els = append(e.els, el)
			e.dataLabel("label-"+id, pt.X, pt.Y-rowHeight, el.Value)
		}
	}
	return nil
}

func (e *Engine) drawPoints() error {
	sx, sy := e.scale(engine.ScaleX), e.scale(engine.ScaleY)
	a := e.area
	for di, ds := range e.cfg.Datasets {
		if ds.Hidden {
			continue
		}
		for k, p := range e.cur[ds].points {
			x := a.X + fraction(sx, p.X)*a.W
			y := a.Y + a.H*(1-fraction(sy, p.Y))
			r := 1.5
			if e.cfg.Type == chart.Bubble {
				r = p.R
			}
			if r <= 0 {
				continue
			}
			id := fmt.Sprintf("point-%d-%d", di, k)
			if err := e.put(&surface.Shape{ID: id, Class: "point", Path: surface.Circle(x, y, r), Fill: e.fill(ds, di, k), Stroke: e.stroke(ds, di, k)}); err != nil {
				return err
			}
			el := engine.Element{DatasetIndex: di, Index: k, Kind: engine.KindPoint, Value: target(ds, k), X: x, Y: y, Radius: r}
			e.els = append(e.els, el)
			e.dataLabel("label-"+id, x, y, el.Value)
		}
	}
	return nil
}
