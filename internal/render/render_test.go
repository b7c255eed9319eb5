package render

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartui/internal/chart"
	"chartui/internal/surface"
)

type host struct{ attached bool }

func (h *host) Attached() bool { return h.attached }

// fakeDrawer records calls. An animated erase keeps its callback until
// finish is called.
type fakeDrawer struct {
	ctx     *Context
	draws   []time.Duration
	erases  []time.Duration
	pending func(bool)
	drawErr error
	valid   bool
}

func (f *fakeDrawer) Draw(d time.Duration) error {
	f.draws = append(f.draws, d)
	if f.drawErr != nil {
		return f.drawErr
	}
	f.ctx.Scene.Put(&surface.Shape{ID: "body", Path: surface.Rect(0, 0, 4, 4), Fill: "#000000"})
	return nil
}

func (f *fakeDrawer) Erase(d time.Duration, done func(bool)) {
	f.erases = append(f.erases, d)
	if d <= 0 {
		f.ctx.Scene.Clear()
		done(false)
		return
	}
	f.pending = done
}

func (f *fakeDrawer) finish() {
	f.ctx.Scene.Clear()
	done := f.pending
	f.pending = nil
	done(false)
}

func (f *fakeDrawer) Redraw() error { return nil }

func (f *fakeDrawer) Valid(*chart.Data) bool { return f.valid }

type updatable struct{ fakeDrawer }

func (u *updatable) UpdateData(time.Duration) error { return nil }
func (u *updatable) SupportsDetach() bool         { return true }

func fiveByTwo() *chart.Data {
	labels := make([]chart.AxisLabel, 5)
	return &chart.Data{
		Groups: []chart.ValueGroup{
			{Values: []float64{1, 2, 3, 4, 5}},
			{Values: []float64{5, 4, 3, 2, 1}},
		},
		Axes: [][]chart.AxisLabel{labels},
	}
}

func setup(t *testing.T) (*Lifecycle, *fakeDrawer, *host, *int) {
	t.Helper()
	h := &host{attached: true}
	rendered := 0
	ctx := &Context{
		Data:   fiveByTwo(),
		Config: chart.Defaults(chart.Bar),
		Scene:  surface.NewScene(100, 50),
		Host:   h,
		Events: Events{Rendered: func() { rendered++ }},
	}
	d := &fakeDrawer{ctx: ctx, valid: true}
	return NewLifecycle(ctx, d), d, h, &rendered
}

func TestRenderWithoutAnimation(t *testing.T) {
	l, d, _, rendered := setup(t)
	require.True(t, l.Validate())

	ok, err := l.Render(false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, l.Rendered())
	assert.False(t, l.Rendering())
	assert.Equal(t, []time.Duration{0}, d.draws)
	assert.Equal(t, 1, *rendered)
}

func TestRenderAnimationDuration(t *testing.T) {
	l, d, _, _ := setup(t)
	_, err := l.Render(true)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{600 * time.Millisecond}, d.draws)
}

func TestZeroDurationDisablesAnimation(t *testing.T) {
	l, d, _, _ := setup(t)
	cfg, err := chart.Resolve(chart.Config{
		Type:    chart.Bar,
		Options: chart.Options{Animation: chart.AnimationOptions{Duration: chart.Ptr(0)}},
	})
	require.NoError(t, err)
	l.Context().Config = cfg

	assert.Zero(t, l.AnimationDuration(true))
	_, err = l.Render(true)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0}, d.draws)
}

func TestInvalidDataIsNotDrawn(t *testing.T) {
	l, d, _, rendered := setup(t)
	l.Context().Data.Groups[1].Values = []float64{1}

	ok, err := l.Render(false)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, l.Rendered())
	assert.Empty(t, d.draws)
	assert.Zero(t, *rendered)
}

func TestRendererValidation(t *testing.T) {
	l, d, _, _ := setup(t)
	d.valid = false
	assert.False(t, l.Validate())
	ok, _ := l.Render(false)
	assert.False(t, ok)
}

func TestDetachedHostSkipsRender(t *testing.T) {
	l, d, h, _ := setup(t)
	h.attached = false
	ok, err := l.Render(false)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, d.draws)

	w, ht := l.Context().MeasureText("abc")
	assert.Zero(t, w)
	assert.Zero(t, ht)
}

func TestDrawErrorPropagates(t *testing.T) {
	l, d, _, _ := setup(t)
	d.drawErr = errors.New("broken path")
	_, err := l.Render(false)
	assert.ErrorContains(t, err, "broken path")
	assert.False(t, l.Rendered())
	assert.False(t, l.Rendering())
}

func TestRenderRemoveRenderIsIdempotent(t *testing.T) {
	l, _, _, _ := setup(t)
	_, err := l.Render(false)
	require.NoError(t, err)
	first := *l.Context().Scene.Shape("body")

	l.Remove(false, nil)
	assert.False(t, l.Rendered())
	assert.Nil(t, l.Context().Scene.Shape("body"))

	_, err = l.Render(false)
	require.NoError(t, err)
	again := l.Context().Scene.Shape("body")
	require.NotNil(t, again)
	assert.Equal(t, first.Path.String(), again.Path.String())
	assert.Equal(t, first.Fill, again.Fill)
}

func TestDoubleAnimatedRemoveCallsBackOnce(t *testing.T) {
	l, d, _, _ := setup(t)
	_, err := l.Render(false)
	require.NoError(t, err)

	calls := 0
	after := func(bool) { calls++ }
	l.Remove(true, after)
	require.True(t, l.Removing())
	l.Remove(true, after)
	assert.Len(t, d.erases, 1)

	d.finish()
	assert.Equal(t, 1, calls)
	assert.False(t, l.Removing())
	assert.False(t, l.Rendered())
}

func TestRemoveWhenNotRenderedCompletesAtOnce(t *testing.T) {
	l, d, _, _ := setup(t)
	stopped := true
	l.Remove(true, func(s bool) { stopped = s })
	assert.False(t, stopped)
	assert.Equal(t, []time.Duration{0}, d.erases)
}

func TestUpdateData(t *testing.T) {
	l, _, _, _ := setup(t)
	_, _ = l.Render(false)
	assert.ErrorIs(t, l.UpdateData(false), ErrNotUpdatable)
	assert.False(t, l.IsDataUpdatable())
	assert.False(t, l.IsDetachSupported())

	ctx := l.Context()
	u := &updatable{fakeDrawer{ctx: ctx, valid: true}}
	lu := NewLifecycle(ctx, u)
	assert.True(t, lu.IsDataUpdatable())
	assert.True(t, lu.IsDetachSupported())

	// first update renders
	require.NoError(t, lu.UpdateData(false))
	assert.True(t, lu.Rendered())
	assert.Len(t, u.draws, 1)

	require.NoError(t, lu.UpdateData(false))
	assert.Len(t, u.draws, 1)

	// invalid data removes the chart
	ctx.Data.Groups[0].Values = nil
	require.NoError(t, lu.UpdateData(false))
	assert.False(t, lu.Rendered())
}

func TestCheckedItemsAndLogger(t *testing.T) {
	var ctx Context
	assert.Nil(t, ctx.CheckedItems())
	assert.NotNil(t, ctx.Logger())

	items := []chart.ClickObject{{DataIndex: 2}}
	ctx.Checked = &items
	assert.Equal(t, items, ctx.CheckedItems())
}

func TestTooltipDirectionString(t *testing.T) {
	assert.Equal(t, "above", Above.String())
	assert.Equal(t, "right", Right.String())
}
