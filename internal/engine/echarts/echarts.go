// Package echarts is an engine that turns the engine configuration into a
// standalone HTML page rendered by Apache ECharts.
package echarts

import (
	"errors"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"chartui/internal/chart"
	"chartui/internal/engine"
	"chartui/internal/render"
)

// ErrNothingRendered is returned by WriteHTML before the first update.
var ErrNothingRendered = errors.New("echarts: nothing rendered")

type page interface {
	Render(w io.Writer) error
}

// Engine keeps the last built page. It has no pointer interaction.
type Engine struct {
	ctx    *render.Context
	title  string
	width  string
	height string
	page   page
}

// New returns a factory for pages titled title.
func New(title string) engine.Factory {
	return func(ctx *render.Context) engine.Engine {
		return &Engine{ctx: ctx, title: title, width: "900px", height: "500px"}
	}
}

// Update rebuilds the page. There is no animation to wait for.
func (e *Engine) Update(cfg *engine.Config, _ time.Duration, done func(stopped bool)) error {
	e.page = e.build(cfg)
	if done != nil {
		done(false)
	}
	return nil
}

func (e *Engine) Destroy() { e.page = nil }

func (e *Engine) HitTest(x, y float64) []engine.Element { return nil }

// Layout is empty: the page lays itself out in the browser.
func (e *Engine) Layout(*engine.Config) engine.Rect { return engine.Rect{} }

// WriteHTML writes the page of the last update.
func (e *Engine) WriteHTML(w io.Writer) error {
	if e.page == nil {
		return ErrNothingRendered
	}
	return e.page.Render(w)
}

func (e *Engine) global() []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: e.title, Width: e.width, Height: e.height}),
		charts.WithTitleOpts(opts.Title{Title: e.title}),
	}
}

func (e *Engine) build(cfg *engine.Config) page {
	switch cfg.Type {
	case chart.Pie, chart.Doughnut, chart.PolarArea:
		return e.pie(cfg)
	case chart.Scatter, chart.Bubble:
		return e.scatter(cfg)
	case chart.Line, chart.Radar:
		return e.line(cfg)
	}
	return e.bar(cfg)
}

func visible(cfg *engine.Config) []*engine.Dataset {
	var out []*engine.Dataset
	for _, ds := range cfg.Datasets {
		if !ds.Hidden {
			out = append(out, ds)
		}
	}
	return out
}

func (e *Engine) bar(cfg *engine.Config) page {
	bar := charts.NewBar()
	bar.SetGlobalOptions(e.global()...)
	bar.SetXAxis(cfg.Labels)
	for _, ds := range visible(cfg) {
		if ds.Type == chart.Line {
			continue
		}
		data := make([]opts.BarData, len(ds.Data))
		for i, v := range ds.Data {
			data[i] = opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: engine.ColorAt(ds.BackgroundColor, i)}}
		}
		bar.AddSeries(ds.Label, data)
	}
	if lines := e.lineSeries(cfg); lines != nil {
		bar.Overlap(lines)
	}
	if cfg.Horizontal {
		bar.XYReversal()
	}
	return bar
}

// lineSeries returns the line datasets of a combo chart, or nil.
func (e *Engine) lineSeries(cfg *engine.Config) *charts.Line {
	if cfg.Type != chart.ComboBarLine {
		return nil
	}
	line := charts.NewLine()
	line.SetXAxis(cfg.Labels)
	n := 0
	for _, ds := range visible(cfg) {
		if ds.Type != chart.Line {
			continue
		}
		line.AddSeries(ds.Label, lineData(ds), charts.WithItemStyleOpts(opts.ItemStyle{Color: engine.ColorAt(ds.BorderColor, 0)}))
		n++
	}
	if n == 0 {
		return nil
	}
	return line
}

func lineData(ds *engine.Dataset) []opts.LineData {
	data := make([]opts.LineData, len(ds.Data))
	for i, v := range ds.Data {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

// line also renders radar charts, as one line per dataset over the spokes.
func (e *Engine) line(cfg *engine.Config) page {
	line := charts.NewLine()
	line.SetGlobalOptions(e.global()...)
	line.SetXAxis(cfg.Labels)
	for _, ds := range visible(cfg) {
		line.AddSeries(ds.Label, lineData(ds), charts.WithItemStyleOpts(opts.ItemStyle{Color: engine.ColorAt(ds.BorderColor, 0)}))
	}
	return line
}

func (e *Engine) pie(cfg *engine.Config) page {
	pie := charts.NewPie()
	pie.SetGlobalOptions(e.global()...)
	for _, ds := range visible(cfg) {
		var data []opts.PieData
		for i, v := range ds.Data {
			if cfg.SegmentHidden(i) {
				continue
			}
			name := ""
			if i < len(cfg.Labels) {
				name = cfg.Labels[i]
			}
			data = append(data, opts.PieData{Name: name, Value: v, ItemStyle: &opts.ItemStyle{Color: engine.ColorAt(ds.BackgroundColor, i)}})
		}
		var so []charts.SeriesOpts
		switch cfg.Type {
		case chart.Doughnut:
			so = append(so, charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "75%"}}))
		case chart.PolarArea:
			so = append(so, charts.WithPieChartOpts(opts.PieChart{RoseType: "radius"}))
		}
		pie.AddSeries(ds.Label, data, so...)
	}
	return pie
}

func (e *Engine) scatter(cfg *engine.Config) page {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(e.global(), charts.WithXAxisOpts(opts.XAxis{Type: "value"}))...)
	for _, ds := range visible(cfg) {
		data := make([]opts.ScatterData, len(ds.Points))
		for i, p := range ds.Points {
			size := 6
			if cfg.Type == chart.Bubble {
				size = max(1, int(2*p.R))
			}
			data[i] = opts.ScatterData{Value: []float64{p.X, p.Y}, SymbolSize: size}
		}
		sc.AddSeries(ds.Label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: engine.ColorAt(ds.BackgroundColor, 0)}))
	}
	return sc
}
