// Package engine adapts chart data to a generic charting engine. It builds
// the declarative engine configuration, patches it in place across data
// updates and turns engine hit tests back into chart events.
package engine

import (
	"time"

	"chartui/internal/chart"
	"chartui/internal/render"
)

// OtherLabel names the segment that sums collapsed radial segments.
const OtherLabel = "Other"

// Point is one scatter or bubble value. R is the scaled bubble radius.
type Point struct {
	X, Y, Z, R float64
}

// Dataset is one engine series. The adapter keeps dataset pointers and their
// slices stable across incremental updates.
type Dataset struct {
	ID     string
	Label  string
	Type   chart.Type
	Data   []float64
	Points []Point

	BackgroundColor      []string
	BorderColor          []string
	HoverBackgroundColor []string
	HoverBorderColor     []string
	// Shadow arrays swapped into BackgroundColor on checked item changes.
	CheckedBackgroundColor   []string
	UncheckedBackgroundColor []string
	LegendColor              string

	YAxisID string
	// Hidden is toggled from the legend and survives data updates.
	Hidden bool
}

// Len returns the number of values of the dataset.
func (d *Dataset) Len() int {
	if len(d.Points) > 0 {
		return len(d.Points)
	}
	return len(d.Data)
}

// Value returns the i-th value; the y value for points.
func (d *Dataset) Value(i int) float64 {
	if len(d.Points) > 0 {
		return d.Points[i].Y
	}
	return d.Data[i]
}

// Scale ids.
const (
	ScaleX  = "x"
	ScaleY  = "y"
	ScaleY2 = "y2"
	ScaleR  = "r"
)

type Scale struct {
	ID       string
	Min, Max float64
	Stacked  bool
	// Position is left, right or bottom.
	Position string
}

type Plugins struct {
	Legend     LegendPlugin
	Tooltip    TooltipPlugin
	DataLabels DataLabelsPlugin
}

type LegendPlugin struct {
	Display  bool
	Position string
}

type TooltipPlugin struct {
	Enabled bool
	Delay   time.Duration
}

type DataLabelsPlugin struct {
	Display   bool
	Formatter func(v float64) string
}

// Config is the engine configuration.
type Config struct {
	Type       chart.Type
	Horizontal bool
	Labels     []string
	Datasets   []*Dataset
	Scales     []*Scale
	Plugins    Plugins
	// Collapsed is set when the last label is the summed "other" segment.
	Collapsed bool
	// HiddenSegments hides single segments of radial charts.
	HiddenSegments []bool
	// Active is the hovered element, Highlight the legend hovered entry.
	Active    *chart.ClickObject
	Highlight *int
}

// Scale returns the scale with id, or nil.
func (c *Config) Scale(id string) *Scale {
	for _, s := range c.Scales {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SegmentHidden reports whether radial segment i is hidden.
func (c *Config) SegmentHidden(i int) bool {
	return i < len(c.HiddenSegments) && c.HiddenSegments[i]
}

// ElementKind tells how an element was drawn.
type ElementKind int

const (
	KindBar ElementKind = iota
	KindArc
	KindPoint
	KindRadialPoint
)

// Element is one drawn data point as reported by hit testing.
type Element struct {
	DatasetIndex int
	Index        int
	Kind         ElementKind
	Value        float64

	// X, Y is the point, or the value end of a bar.
	X, Y float64
	// Base is the bar base coordinate, Width its thickness.
	Base       float64
	Width      float64
	Horizontal bool
	Radius     float64

	// Arc and radial point geometry.
	CX, CY                   float64
	StartAngle, EndAngle     float64
	InnerRadius, OuterRadius float64
}

// Rect is an area in scene units.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Engine is a generic chart engine consuming a Config.
type Engine interface {
	// Update renders cfg, animating from the previous state over d. done, if
	// set, runs once when the transition settles.
	Update(cfg *Config, d time.Duration, done func(stopped bool)) error
	// Destroy releases everything the engine drew.
	Destroy()
	// HitTest returns the elements under (x, y) in drawing order.
	HitTest(x, y float64) []Element
	// Layout is the plot area cfg gets at the current surface size. It does
	// not need a prior Update.
	Layout(cfg *Config) Rect
}

// Factory creates an engine drawing for ctx.
type Factory func(ctx *render.Context) Engine
