// Package widget is the chart widget embedded by the host program. It owns
// the renderer context, schedules updates and routes pointer input to the
// active renderer.
package widget

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chartui/internal/anim"
	"chartui/internal/chart"
	"chartui/internal/engine"
	"chartui/internal/render"
	"chartui/internal/surface"
	"chartui/internal/theme"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Settings configure a Chart. Zero values take defaults.
type Settings struct {
	Theme         *theme.Theme
	Format        chart.Formatter
	FrameInterval time.Duration
	Debounce      time.Duration
	// Engine draws the engine backed kinds; nil selects the terminal engine.
	Engine       engine.Factory
	Logger       *slog.Logger
	OnValueClick func(render.ClickEvent)
	OnRendered   func()
}

// ErrMsg carries an error raised while updating a chart.
type ErrMsg struct {
	ID  int
	Err error
}

func (e ErrMsg) Error() string { return e.Err.Error() }

type tooltipMsg struct {
	id, tag int
}

// Chart is one chart instance. All methods must be called from the
// bubbletea update loop.
type Chart struct {
	id    int
	set   Settings
	ctx   *render.Context
	life  *render.Lifecycle
	sched *Scheduler

	attached   bool
	cols, rows int
	checked    []chart.ClickObject

	// queued waits for attach, deferred for the running removal.
	queued   *UpdateOptions
	deferred *UpdateOptions

	tip     *render.Tooltip
	nextTip *render.Tooltip
	tipTag  int

	errs []error

	view        string
	viewVersion int
	viewCols    int
	viewRows    int
}

func New(s Settings) *Chart {
	if s.Theme == nil {
		s.Theme = theme.Default()
	}
	if s.Format == nil {
		s.Format = chart.NewFormatter("en")
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	c := &Chart{id: nextID(), set: s, viewVersion: -1}
	c.sched = NewScheduler(c.id, s.Debounce)
	c.ctx = &render.Context{
		Data:    &chart.Data{},
		Checked: &c.checked,
		Scene:   surface.NewScene(0, 0),
		Runner:  anim.NewRunner(s.FrameInterval),
		Theme:   s.Theme,
		Format:  s.Format,
		Host:    c,
		Events:  render.Events{ValueClick: c.valueClick, Rendered: s.OnRendered},
		Log:     s.Logger.With("chart", c.id),
	}
	return c
}

func (c *Chart) ID() int { return c.id }

// Attached implements render.Host.
func (c *Chart) Attached() bool { return c.attached }

func (c *Chart) Context() *render.Context     { return c.ctx }
func (c *Chart) Scene() *surface.Scene        { return c.ctx.Scene }
func (c *Chart) Lifecycle() *render.Lifecycle { return c.life }
func (c *Chart) Data() *chart.Data            { return c.ctx.Data }
func (c *Chart) Type() chart.Type             { return c.ctx.Config.Type }
func (c *Chart) Checked() []chart.ClickObject { return c.checked }

// Tooltip returns the visible tooltip, nil while none is shown.
func (c *Chart) Tooltip() *render.Tooltip { return c.tip }

func (c *Chart) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Chart) logger() *slog.Logger { return c.ctx.Logger() }

// Drawer returns the active renderer, nil before the first SetConfig.
func (c *Chart) Drawer() render.Drawer {
	if c.life == nil {
		return nil
	}
	return c.life.Drawer()
}

// SetData replaces the chart data. Checked items that no longer exist are
// dropped. Nothing is drawn until the next update.
func (c *Chart) SetData(d *chart.Data) {
	if d == nil {
		d = &chart.Data{}
	}
	c.ctx.Data = d
	c.checked = chart.FilterChecked(c.checked, d.Lens())
}

// SetConfig resolves cfg over the defaults of its kind. A kind change
// discards the current renderer and its scene.
func (c *Chart) SetConfig(cfg chart.Config) error {
	resolved, err := chart.Resolve(cfg)
	if err != nil {
		return err
	}
	if c.life != nil && resolved.Type == c.ctx.Config.Type {
		c.ctx.Config = resolved
		return nil
	}
	if !Supported(resolved.Type) {
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, resolved.Type)
	}
	if c.life != nil {
		c.logger().Debug("renderer switch", "from", c.ctx.Config.Type, "to", resolved.Type)
		c.teardown()
		c.ctx.Scene = surface.NewScene(float64(c.cols*2), float64(c.rows*4))
	}
	c.ctx.Config = resolved
	d, err := NewDrawer(c.ctx, c.set.Engine)
	if err != nil {
		return err
	}
	c.life = render.NewLifecycle(c.ctx, d)
	return nil
}

// teardown stops everything the current renderer runs and erases it.
// Completion callbacks see a different lifecycle and do nothing.
func (c *Chart) teardown() {
	l := c.life
	c.life = nil
	c.hideTooltip()
	c.ctx.Runner.StopAll()
	if l != nil {
		l.Remove(false, nil)
	}
}

// UpdateChart schedules an update. Immediate requests run now.
func (c *Chart) UpdateChart(o UpdateOptions) tea.Cmd {
	run, now, cmd := c.sched.Request(o)
	if !now {
		return cmd
	}
	return c.execute(run)
}

func (c *Chart) execute(o UpdateOptions) tea.Cmd {
	if c.life == nil {
		c.logger().Debug("update without renderer")
		return nil
	}
	if c.deferred != nil && !c.life.Removing() {
		o = c.deferred.merge(o)
		c.deferred = nil
	}
	if !c.attached {
		c.logger().Debug("update queued until attach")
		mergeInto(&c.queued, o)
		return nil
	}
	if c.life.Removing() {
		c.logger().Debug("update deferred until removal completes")
		mergeInto(&c.deferred, o)
		return nil
	}
	l := c.life
	if o.OnlyUpdateData && !l.IsDataUpdatable() {
		o.OnlyUpdateData = false
	}
	switch {
	case o.OnlyUpdateData:
		err := l.UpdateData(o.RequestAnimation)
		if errors.Is(err, render.ErrNotUpdatable) {
			c.rerender(l, o.RequestAnimation)
		} else if err != nil {
			c.errs = append(c.errs, err)
		}
	case !o.enforceRerender():
		if err := l.Refresh(); err != nil {
			c.errs = append(c.errs, err)
		}
	default:
		c.rerender(l, o.RequestAnimation)
	}
	return tea.Batch(c.ctx.Runner.Frame(), c.flushErrors())
}

// rerender removes the chart and renders it again once the removal settles.
func (c *Chart) rerender(l *render.Lifecycle, animate bool) {
	l.Remove(animate, func(bool) {
		if l != c.life {
			return
		}
		if _, err := l.Render(animate); err != nil {
			c.errs = append(c.errs, err)
		}
	})
}

// Update handles the chart's own messages: debounce timers, animation
// frames and tooltip delays.
func (c *Chart) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TimerMsg:
		if o, ok := c.sched.Fire(msg); ok {
			cmds = append(cmds, c.execute(o))
		}
	case tooltipMsg:
		if msg.id == c.id && msg.tag == c.tipTag && c.nextTip != nil {
			c.tip, c.nextTip = c.nextTip, nil
		}
	case anim.FrameMsg:
		cmd, err := c.ctx.Runner.Update(msg)
		cmds = append(cmds, cmd)
		if err != nil {
			c.errs = append(c.errs, err)
		}
		if c.deferred != nil && c.life != nil && !c.life.Removing() {
			cmds = append(cmds, c.execute(UpdateOptions{}))
		}
	}
	cmds = append(cmds, c.flushErrors())
	return tea.Batch(cmds...)
}

func (c *Chart) flushErrors() tea.Cmd {
	if len(c.errs) == 0 {
		return nil
	}
	err := errors.Join(c.errs...)
	c.errs = nil
	c.logger().Error("chart update", "err", err)
	id := c.id
	return func() tea.Msg { return ErrMsg{ID: id, Err: err} }
}

// Render draws the chart now.
func (c *Chart) Render(animate bool) tea.Cmd {
	if c.life == nil {
		return nil
	}
	if _, err := c.life.Render(animate); err != nil {
		c.errs = append(c.errs, err)
	}
	return tea.Batch(c.ctx.Runner.Frame(), c.flushErrors())
}

// UpdateData patches the chart with the current data, falling back to a
// full rerender for renderers without incremental update.
func (c *Chart) UpdateData(animate bool) tea.Cmd {
	return c.UpdateChart(UpdateOptions{RequestAnimation: animate, OnlyUpdateData: true})
}

// Refresh redraws from stored data.
func (c *Chart) Refresh() tea.Cmd {
	if c.life == nil {
		return nil
	}
	if err := c.life.Refresh(); err != nil {
		c.errs = append(c.errs, err)
	}
	return c.flushErrors()
}

// Remove erases the chart; after runs once the removal settles.
func (c *Chart) Remove(animate bool, after func(stopped bool)) tea.Cmd {
	if c.life == nil {
		if after != nil {
			after(false)
		}
		return nil
	}
	c.hideTooltip()
	c.life.Remove(animate, after)
	return c.ctx.Runner.Frame()
}

// RenderCheckedItems restyles the chart for the current checked items.
func (c *Chart) RenderCheckedItems() error {
	if c.life == nil {
		return nil
	}
	return c.life.Refresh()
}

// SetChecked replaces the checked items and restyles the chart.
func (c *Chart) SetChecked(items []chart.ClickObject) tea.Cmd {
	c.checked = chart.FilterChecked(items, c.ctx.Data.Lens())
	if err := c.RenderCheckedItems(); err != nil {
		c.errs = append(c.errs, err)
	}
	return c.flushErrors()
}

func (c *Chart) valueClick(ev render.ClickEvent) {
	if c.ctx.Config.Options.Checkable {
		c.checked = chart.ToggleChecked(c.checked, ev.Object)
		if err := c.RenderCheckedItems(); err != nil {
			c.errs = append(c.errs, err)
		}
	}
	if c.set.OnValueClick != nil {
		c.set.OnValueClick(ev)
	}
}

// Attach makes the chart visible at the given cell size and runs the
// update queued while detached, together with one deferred by a removal
// that has since ended.
func (c *Chart) Attach(cols, rows int) tea.Cmd {
	c.attached = true
	c.resize(cols, rows)
	if c.queued == nil && c.deferred == nil {
		return nil
	}
	var o UpdateOptions
	if c.queued != nil {
		o = *c.queued
		c.queued = nil
	}
	return c.execute(o)
}

// Detach hides the chart. Renderers that cannot survive detaching are
// removed and rendered again on attach.
func (c *Chart) Detach() {
	c.attached = false
	c.hideTooltip()
	if c.life == nil || !c.life.Rendered() || c.life.IsDetachSupported() {
		return
	}
	c.logger().Debug("renderer removed on detach")
	c.ctx.Runner.StopAll()
	c.life.Remove(false, nil)
	mergeInto(&c.queued, UpdateOptions{})
}

func (c *Chart) resize(cols, rows int) bool {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == c.cols && rows == c.rows {
		return false
	}
	c.cols, c.rows = cols, rows
	c.ctx.Scene.Resize(float64(cols*2), float64(rows*4))
	return true
}

// Resize relayouts a rendered chart for a new cell size.
func (c *Chart) Resize(cols, rows int) tea.Cmd {
	if !c.resize(cols, rows) {
		return nil
	}
	if c.life == nil || !c.attached || !c.life.Rendered() || !c.ctx.Config.Options.HandleResizeEnabled() {
		return nil
	}
	c.hideTooltip()
	return c.Refresh()
}

// Destroy cancels timers, stops animations and erases the chart.
func (c *Chart) Destroy() {
	c.sched.Cancel()
	c.queued, c.deferred = nil, nil
	c.teardown()
	c.ctx.Scene.Clear()
}

// View rasterizes the scene. The result is cached per scene version.
func (c *Chart) View() string {
	if c.cols <= 0 || c.rows <= 0 {
		return ""
	}
	s := c.ctx.Scene
	if s.Version() != c.viewVersion || c.cols != c.viewCols || c.rows != c.viewRows {
		c.view = strings.Join(surface.Rasterize(s, c.cols, c.rows, c.set.Theme), "\n")
		c.viewVersion, c.viewCols, c.viewRows = s.Version(), c.cols, c.rows
	}
	return c.view
}

func (c *Chart) interactive() (render.Interactive, bool) {
	if c.life == nil || !c.life.Rendered() {
		return nil, false
	}
	in, ok := c.life.Drawer().(render.Interactive)
	return in, ok
}

// cellCenter maps a terminal cell to the center of its braille block.
func cellCenter(x, y int) (float64, float64) {
	return float64(x*2 + 1), float64(y*4 + 2)
}

// HandleMouse routes a mouse event at cell (x, y) relative to the chart.
func (c *Chart) HandleMouse(msg tea.MouseMsg, x, y int) tea.Cmd {
	in, ok := c.interactive()
	if !ok {
		return nil
	}
	sx, sy := cellCenter(x, y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if obj, ok := in.Click(sx, sy); ok {
			c.valueClick(render.ClickEvent{Object: obj, X: sx, Y: sy})
		}
		return c.flushErrors()
	case msg.Action == tea.MouseActionMotion:
		return c.hover(in, sx, sy)
	}
	return nil
}

func (c *Chart) hover(in render.Interactive, x, y float64) tea.Cmd {
	tip, ok := in.Hover(x, y)
	if !ok || tip == nil {
		c.hideTooltip()
		return nil
	}
	if c.tip != nil && c.tip.Key.Same(tip.Key) {
		c.tip = tip
		return nil
	}
	if c.nextTip != nil && c.nextTip.Key.Same(tip.Key) {
		c.nextTip = tip
		return nil
	}
	c.tip = nil
	c.tipTag++
	delay := c.ctx.Config.Options.TooltipDelay()
	if delay <= 0 {
		c.tip, c.nextTip = tip, nil
		return nil
	}
	c.nextTip = tip
	id, tag := c.id, c.tipTag
	return tea.Tick(delay, func(time.Time) tea.Msg { return tooltipMsg{id: id, tag: tag} })
}

// MouseLeave clears hover state when the pointer leaves the chart.
func (c *Chart) MouseLeave() {
	if in, ok := c.interactive(); ok {
		in.Leave()
	}
	c.hideTooltip()
}

func (c *Chart) hideTooltip() {
	c.tip, c.nextTip = nil, nil
	c.tipTag++
}

func (c *Chart) legended() (render.Legended, bool) {
	if c.life == nil || !c.life.Rendered() {
		return nil, false
	}
	l, ok := c.life.Drawer().(render.Legended)
	return l, ok
}

// Legend returns the legend entries of the active renderer.
func (c *Chart) Legend() []render.LegendItem {
	if l, ok := c.legended(); ok {
		return l.Legend()
	}
	return nil
}

func (c *Chart) LegendClick(i int) tea.Cmd {
	if l, ok := c.legended(); ok {
		l.LegendClick(i)
	}
	return c.flushErrors()
}

func (c *Chart) LegendHover(i int) {
	if l, ok := c.legended(); ok {
		l.LegendHover(i)
	}
}

func (c *Chart) LegendLeave() {
	if l, ok := c.legended(); ok {
		l.LegendLeave()
	}
}
