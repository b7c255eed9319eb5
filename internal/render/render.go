// Package render holds the lifecycle shared by every chart renderer and the
// capability interfaces concrete renderers implement.
package render

import (
	"errors"
	"log/slog"
	"time"

	"chartui/internal/anim"
	"chartui/internal/chart"
	"chartui/internal/surface"
	"chartui/internal/theme"
)

// ErrNotUpdatable is returned by UpdateData when the renderer can only be
// redrawn from scratch.
var ErrNotUpdatable = errors.New("renderer does not support data updates")

// Host is the widget that contains the chart.
type Host interface {
	Attached() bool
}

// ClickEvent is emitted when a value is clicked.
type ClickEvent struct {
	Object chart.ClickObject
	// X and Y are the pointer position in scene units.
	X, Y float64
}

// Events are the notifications a chart sends to its host.
type Events struct {
	ValueClick func(ClickEvent)
	Rendered   func()
}

// Context is everything a renderer needs. It is owned by the chart widget
// and shared with the active renderer.
type Context struct {
	Data    *chart.Data
	Config  chart.Config
	Checked *[]chart.ClickObject
	Scene   *surface.Scene
	Runner  *anim.Runner
	Theme   *theme.Theme
	Format  chart.Formatter
	Host    Host
	Events  Events
	Log     *slog.Logger
}

// CheckedItems returns the current checked items.
func (c *Context) CheckedItems() []chart.ClickObject {
	if c.Checked == nil {
		return nil
	}
	return *c.Checked
}

// MeasureText returns the size of s in scene units. A detached host cannot
// measure and yields zero.
func (c *Context) MeasureText(s string) (w, h float64) {
	if c.Host == nil || !c.Host.Attached() {
		return 0, 0
	}
	return float64(len([]rune(s))) * 2, 4
}

// Logger returns the context logger or a discarding one.
func (c *Context) Logger() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}

// Drawer is implemented by every concrete renderer.
type Drawer interface {
	// Draw renders the current data, animating over d when d > 0.
	Draw(d time.Duration) error
	// Erase removes everything drawn; done runs exactly once, with stopped
	// true when an animation was cut short.
	Erase(d time.Duration, done func(stopped bool))
	// Redraw re-renders stored data without animation.
	Redraw() error
}

// DataUpdater is implemented by renderers that can update in place.
type DataUpdater interface {
	UpdateData(d time.Duration) error
}

// DetachAware is implemented by renderers that survive their host being
// detached without a full rerender.
type DetachAware interface {
	SupportsDetach() bool
}

// Validator adds renderer specific data checks.
type Validator interface {
	Valid(data *chart.Data) bool
}

// Tooltip is a hover tooltip computed by an interactive renderer.
type Tooltip struct {
	Key       chart.ClickObject
	Title     string
	Lines     []string
	X, Y      float64
	Direction Direction
}

// Direction is where a tooltip sits relative to its anchor.
type Direction int

const (
	Above Direction = iota
	Below
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Below:
		return "below"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "above"
}

// LegendItem is one legend entry.
type LegendItem struct {
	Index  int
	Label  string
	Color  string
	Hidden bool
}

// Interactive is implemented by renderers that react to pointer input.
type Interactive interface {
	Hover(x, y float64) (*Tooltip, bool)
	Leave()
	Click(x, y float64) (chart.ClickObject, bool)
}

// Legended is implemented by renderers with a clickable legend.
type Legended interface {
	Legend() []LegendItem
	LegendClick(index int)
	LegendHover(index int)
	LegendLeave()
}
