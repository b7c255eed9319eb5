// Package term is the terminal chart engine. It lays an engine.Config out
// into the scene that the host rasterizes into braille cells.
package term

import (
	"fmt"
	"math"
	"slices"
	"time"

	"chartui/internal/anim"
	"chartui/internal/chart"
	"chartui/internal/engine"
	"chartui/internal/render"
	"chartui/internal/surface"
	"chartui/internal/theme"
)

// minHitRadius makes small points reachable with a terminal mouse.
const minHitRadius = 3

// state is the displayed, possibly interpolated, values of one dataset.
type state struct {
	data   []float64
	points []engine.Point
}

// Engine draws charts with terminal resolution.
type Engine struct {
	ctx    *render.Context
	cfg    *engine.Config
	cur    map[*engine.Dataset]*state
	sweep  float64
	handle *anim.Handle
	area   engine.Rect
	els    []engine.Element
}

// New is an engine.Factory.
func New(ctx *render.Context) engine.Engine {
	return &Engine{ctx: ctx, cur: make(map[*engine.Dataset]*state)}
}

// Update animates the displayed values of every dataset from their current
// state to cfg. Datasets drawn for the first time grow from zero.
func (e *Engine) Update(cfg *engine.Config, d time.Duration, done func(stopped bool)) error {
	e.handle.Stop()
	e.cfg = cfg

	type span struct{ from, to state }
	spans := make(map[*engine.Dataset]span, len(cfg.Datasets))
	live := make(map[*engine.Dataset]*state, len(cfg.Datasets))
	nonZero := false
	for _, ds := range cfg.Datasets {
		prev, ok := e.cur[ds]
		if !ok {
			prev = &state{}
		}
		to := state{data: slices.Clone(ds.Data), points: slices.Clone(ds.Points)}
		from := state{data: make([]float64, len(to.data)), points: make([]engine.Point, len(to.points))}
		copy(from.data, prev.data)
		for i, p := range to.points {
			if i < len(prev.points) {
				from.points[i] = prev.points[i]
			} else {
				from.points[i] = engine.Point{X: p.X, Y: p.Y, Z: p.Z}
			}
		}
		for _, v := range to.data {
			nonZero = nonZero || v != 0
		}
		nonZero = nonZero || len(to.points) > 0
		spans[ds] = span{from, to}
		live[ds] = prev
	}
	e.cur = live
	fromSweep, toSweep := e.sweep, 0.0
	if nonZero {
		toSweep = 1
	}

	h, err := e.ctx.Runner.Start(anim.Animation{
		Duration: d,
		Step: func(p float64) error {
			for ds, sp := range spans {
				s := live[ds]
				s.data = lerpSlice(s.data, sp.from.data, sp.to.data, p)
				s.points = lerpPoints(s.points, sp.from.points, sp.to.points, p)
			}
			e.sweep = anim.Lerp(fromSweep, toSweep, p)
			return e.draw()
		},
		Done: done,
	})
	e.handle = h
	return err
}

func lerpSlice(dst, from, to []float64, p float64) []float64 {
	dst = dst[:0]
	for i := range to {
		dst = append(dst, anim.Lerp(from[i], to[i], p))
	}
	return dst
}

func lerpPoints(dst, from, to []engine.Point, p float64) []engine.Point {
	dst = dst[:0]
	for i, t := range to {
		f := from[i]
		dst = append(dst, engine.Point{
			X: anim.Lerp(f.X, t.X, p),
			Y: anim.Lerp(f.Y, t.Y, p),
			Z: t.Z,
			R: anim.Lerp(f.R, t.R, p),
		})
	}
	return dst
}

// Destroy stops running transitions and clears the scene.
func (e *Engine) Destroy() {
	e.handle.Stop()
	e.ctx.Scene.Clear()
	e.cfg = nil
	e.els = nil
	e.sweep = 0
	clear(e.cur)
}

func (e *Engine) Layout(cfg *engine.Config) engine.Rect {
	w, h := e.ctx.Scene.Size()
	return layout(cfg, w, h)
}

// HitTest returns the elements containing (x, y).
func (e *Engine) HitTest(x, y float64) []engine.Element {
	var out []engine.Element
	for _, el := range e.els {
		if hit(el, x, y) {
			out = append(out, el)
		}
	}
	return out
}

func between(v, a, b float64) bool {
	return v >= math.Min(a, b) && v <= math.Max(a, b)
}

func hit(el engine.Element, x, y float64) bool {
	switch el.Kind {
	case engine.KindBar:
		if el.Horizontal {
			return math.Abs(y-el.Y) <= el.Width/2 && between(x, el.Base, el.X)
		}
		return math.Abs(x-el.X) <= el.Width/2 && between(y, el.Base, el.Y)
	case engine.KindArc:
		dx, dy := x-el.CX, y-el.CY
		r := math.Hypot(dx, dy)
		if r < el.InnerRadius || r > el.OuterRadius {
			return false
		}
		a := math.Atan2(dy, dx)
		for a < el.StartAngle {
			a += 2 * math.Pi
		}
		for a >= el.StartAngle+2*math.Pi {
			a -= 2 * math.Pi
		}
		return a <= el.EndAngle
	}
	return math.Hypot(x-el.X, y-el.Y) <= math.Max(el.Radius, minHitRadius)
}

func (e *Engine) put(sh *surface.Shape) error {
	if err := sh.Path.Validate(); err != nil {
		return fmt.Errorf("%s: %w", sh.ID, err)
	}
	e.ctx.Scene.Put(sh)
	return nil
}

func (e *Engine) text(id string, x, y float64, s string, a surface.Anchor) {
	e.ctx.Scene.PutText(&surface.Text{
		ID:     id,
		X:      x,
		Y:      y,
		Value:  s,
		Color:  theme.RGBA(e.ctx.Theme.Foreground, 1),
		Anchor: a,
	})
}

func (e *Engine) muted() string {
	return theme.RGBA(e.ctx.Theme.Muted, 1)
}

// highlighted reports whether element k of dataset di is hovered, directly
// or through the legend.
func (e *Engine) highlighted(di, k int) bool {
	if a := e.cfg.Active; a != nil && a.DatasetIndex == di && a.DataIndex == k {
		return true
	}
	if h := e.cfg.Highlight; h != nil {
		if segmentKind(e.cfg.Type) {
			return *h == k
		}
		return *h == di
	}
	return false
}

func (e *Engine) fill(ds *engine.Dataset, di, k int) string {
	if e.highlighted(di, k) {
		return engine.ColorAt(ds.HoverBackgroundColor, k)
	}
	return engine.ColorAt(ds.BackgroundColor, k)
}

func (e *Engine) stroke(ds *engine.Dataset, di, k int) string {
	if e.highlighted(di, k) {
		return engine.ColorAt(ds.HoverBorderColor, k)
	}
	return engine.ColorAt(ds.BorderColor, k)
}

func segmentKind(t chart.Type) bool {
	return t == chart.Pie || t == chart.Doughnut || t == chart.PolarArea
}

func (e *Engine) dataLabel(id string, x, y, v float64) {
	dl := e.cfg.Plugins.DataLabels
	if !dl.Display || dl.Formatter == nil {
		return
	}
	e.text(id, x, y, dl.Formatter(v), surface.AnchorMiddle)
}

// draw lays out the current state. It runs on every animation frame.
func (e *Engine) draw() error {
	if e.cfg == nil {
		return nil
	}
	e.ctx.Scene.Clear()
	e.els = e.els[:0]
	w, h := e.ctx.Scene.Size()
	e.area = layout(e.cfg, w, h)
	switch e.cfg.Type {
	case chart.Pie, chart.Doughnut:
		return e.drawArcs()
	case chart.PolarArea:
		return e.drawPolar()
	case chart.Radar:
		return e.drawRadar()
	case chart.Scatter, chart.Bubble:
		if err := e.drawAxes(); err != nil {
			return err
		}
		return e.drawPoints()
	}
	if err := e.drawAxes(); err != nil {
		return err
	}
	if err := e.drawBars(); err != nil {
		return err
	}
	return e.drawLines()
}

// Margins in scene units: 2 per cell horizontally, 4 per row vertically.
const (
	tickWidth = 16
	rowHeight = 4
)

func layout(cfg *engine.Config, w, h float64) engine.Rect {
	r := engine.Rect{X: 2, Y: 2, W: w - 4, H: h - 4}
	if !cfg.Type.IsCartesian() {
		if cfg.Type == chart.Radar {
			// room for the spoke labels
			r = engine.Rect{X: tickWidth, Y: rowHeight, W: w - 2*tickWidth, H: h - 2*rowHeight}
		}
	} else {
		right := 4.0
		if cfg.Scale(engine.ScaleY2) != nil {
			right = tickWidth
		}
		r = engine.Rect{X: tickWidth, Y: rowHeight, W: w - tickWidth - right, H: h - 3*rowHeight}
	}
	r.W = math.Max(r.W, 1)
	r.H = math.Max(r.H, 1)
	return r
}
