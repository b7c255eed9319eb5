package engine

import (
	"time"

	"chartui/internal/chart"
	"chartui/internal/render"
)

// Adapter renders chart data through a generic Engine. It owns the live
// engine configuration and patches it in place on data updates so that the
// engine can animate from its retained state.
type Adapter struct {
	ctx     *render.Context
	factory Factory
	engine  Engine
	live    *Config
	// exiting is set while an animated erase runs.
	exiting bool
}

func NewAdapter(ctx *render.Context, factory Factory) *Adapter {
	return &Adapter{ctx: ctx, factory: factory}
}

// Live returns the live configuration, nil when nothing is drawn.
func (a *Adapter) Live() *Config { return a.live }

// Engine returns the active engine, nil when nothing is drawn.
func (a *Adapter) Engine() Engine { return a.engine }

func (a *Adapter) SupportsDetach() bool { return true }

func (a *Adapter) source() Source {
	return Source{
		Data:    a.ctx.Data,
		Config:  a.ctx.Config,
		Theme:   a.ctx.Theme,
		Checked: a.ctx.CheckedItems(),
		Format:  a.ctx.Format,
	}
}

func (a *Adapter) Draw(d time.Duration) error {
	if a.engine == nil {
		a.engine = a.factory(a.ctx)
	}
	a.live = Build(a.source())
	a.rescale()
	return a.engine.Update(a.live, d, nil)
}

// UpdateData diffs a freshly built configuration into the live one.
func (a *Adapter) UpdateData(d time.Duration) error {
	if a.live == nil || a.engine == nil {
		return a.Draw(d)
	}
	ApplyDiff(a.live, Build(a.source()))
	a.rescale()
	return a.engine.Update(a.live, d, nil)
}

// Redraw swaps the checked colors in place and redraws without animation.
func (a *Adapter) Redraw() error {
	if a.live == nil || a.engine == nil {
		return nil
	}
	if a.ctx.Config.Options.Checkable {
		SwapChecked(a.live, a.ctx.CheckedItems())
	}
	a.rescale()
	return a.engine.Update(a.live, 0, nil)
}

// rescale recomputes what depends on dataset visibility and plot area.
func (a *Adapter) rescale() {
	o := a.ctx.Config.Options
	if a.live.Type == chart.Bubble {
		ScaleBubbles(a.live.Datasets, o.Bubble.SizeOfLargestBubble, o.Bubble.MinBubbleSize, a.engine.Layout(a.live))
	}
	ComputeScales(a.live, o)
}

// Erase animates all values to zero and then destroys the engine.
func (a *Adapter) Erase(d time.Duration, done func(stopped bool)) {
	if a.engine == nil {
		done(false)
		return
	}
	if d <= 0 {
		a.destroy()
		done(false)
		return
	}
	if a.exiting {
		a.ctx.Logger().Debug("erase ignored, exit animation running")
		return
	}
	a.exiting = true
	for _, ds := range a.live.Datasets {
		clear(ds.Data)
		for i := range ds.Points {
			ds.Points[i].R = 0
		}
	}
	err := a.engine.Update(a.live, d, func(stopped bool) {
		a.exiting = false
		a.destroy()
		done(stopped)
	})
	if err != nil {
		a.ctx.Logger().Error("exit animation", "err", err)
	}
}

func (a *Adapter) destroy() {
	if a.engine != nil {
		a.engine.Destroy()
		a.engine = nil
	}
	a.live = nil
}

func (a *Adapter) update() {
	if a.exiting || a.engine == nil {
		return
	}
	if err := a.engine.Update(a.live, 0, nil); err != nil {
		a.ctx.Logger().Error("engine update", "err", err)
	}
}

func (a *Adapter) hit(x, y float64) (Element, bool) {
	if a.engine == nil || a.live == nil || a.exiting {
		return Element{}, false
	}
	return PickElement(a.engine.HitTest(x, y))
}

// Hover highlights the element under (x, y) and returns its tooltip when
// tooltips are enabled.
func (a *Adapter) Hover(x, y float64) (*render.Tooltip, bool) {
	el, ok := a.hit(x, y)
	if !ok {
		a.Leave()
		return nil, false
	}
	obj := chart.ClickObject{DatasetIndex: el.DatasetIndex, DataIndex: el.Index}
	if a.live.Active == nil || !a.live.Active.Same(obj) {
		a.live.Active = &obj
		a.update()
	}
	if !a.live.Plugins.Tooltip.Enabled {
		return nil, true
	}
	title, lines := TooltipContent(a.live, el, a.ctx.Format)
	pl := PlaceTooltip(el, a.engine.Layout(a.live))
	return &render.Tooltip{
		Key:       obj,
		Title:     title,
		Lines:     lines,
		X:         pl.X,
		Y:         pl.Y,
		Direction: pl.Direction,
	}, true
}

func (a *Adapter) Leave() {
	if a.live == nil || a.live.Active == nil {
		return
	}
	a.live.Active = nil
	a.update()
}

// Click resolves the clicked value. The collapsed "other" segment is not
// clickable unless configured so.
func (a *Adapter) Click(x, y float64) (chart.ClickObject, bool) {
	o := a.ctx.Config.Options
	if !o.Clickable && !o.Checkable {
		return chart.ClickObject{}, false
	}
	el, ok := a.hit(x, y)
	if !ok {
		return chart.ClickObject{}, false
	}
	if a.live.Collapsed && el.Index == len(a.live.Labels)-1 && !o.OtherSegmentClickable {
		a.ctx.Logger().Debug("click on collapsed segment suppressed")
		return chart.ClickObject{}, false
	}
	return chart.ClickObject{DatasetIndex: el.DatasetIndex, DataIndex: el.Index}, true
}

// Legend lists one entry per segment for segment colored kinds and one per
// dataset otherwise.
func (a *Adapter) Legend() []render.LegendItem {
	if a.live == nil || !a.live.Plugins.Legend.Display {
		return nil
	}
	var items []render.LegendItem
	if perSegmentColors(a.live.Type) {
		if len(a.live.Datasets) == 0 {
			return nil
		}
		ds := a.live.Datasets[0]
		for i, l := range a.live.Labels {
			items = append(items, render.LegendItem{
				Index:  i,
				Label:  l,
				Color:  ColorAt(ds.BorderColor, i),
				Hidden: a.live.SegmentHidden(i),
			})
		}
		return items
	}
	for i, ds := range a.live.Datasets {
		items = append(items, render.LegendItem{
			Index:  i,
			Label:  ds.Label,
			Color:  ds.LegendColor,
			Hidden: ds.Hidden,
		})
	}
	return items
}

// LegendClick toggles the visibility of entry i. A clickable legend on a
// segment colored chart emits a value click instead.
func (a *Adapter) LegendClick(i int) {
	if a.live == nil || a.exiting {
		return
	}
	if perSegmentColors(a.live.Type) {
		if i < 0 || i >= len(a.live.Labels) {
			return
		}
		if a.ctx.Config.Options.Plugins.Legend.Clickable {
			if a.ctx.Events.ValueClick != nil {
				a.ctx.Events.ValueClick(render.ClickEvent{Object: chart.ClickObject{DataIndex: i}})
			}
			return
		}
		for len(a.live.HiddenSegments) < len(a.live.Labels) {
			a.live.HiddenSegments = append(a.live.HiddenSegments, false)
		}
		a.live.HiddenSegments[i] = !a.live.HiddenSegments[i]
	} else {
		if i < 0 || i >= len(a.live.Datasets) {
			return
		}
		a.live.Datasets[i].Hidden = !a.live.Datasets[i].Hidden
	}
	a.rescale()
	a.update()
}

func (a *Adapter) LegendHover(i int) {
	if a.live == nil {
		return
	}
	a.live.Highlight = &i
	a.update()
}

func (a *Adapter) LegendLeave() {
	if a.live == nil || a.live.Highlight == nil {
		return
	}
	a.live.Highlight = nil
	a.update()
}
