package term

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartui/internal/anim"
	"chartui/internal/chart"
	"chartui/internal/engine"
	"chartui/internal/render"
	"chartui/internal/surface"
	"chartui/internal/theme"
)

func setup(t *testing.T, typ chart.Type, values ...float64) (*Engine, *engine.Config, *render.Context) {
	t.Helper()
	cfg, err := chart.Resolve(chart.Config{Type: typ})
	require.NoError(t, err)
	ctx := &render.Context{
		Data:   &chart.Data{Groups: []chart.ValueGroup{{GroupName: "g", Values: values}}},
		Config: cfg,
		Scene:  surface.NewScene(100, 60),
		Runner: anim.NewRunner(0),
		Theme:  theme.Default(),
		Format: chart.NewFormatter("en"),
	}
	ec := engine.Build(engine.Source{Data: ctx.Data, Config: cfg, Theme: ctx.Theme, Format: ctx.Format})
	return New(ctx).(*Engine), ec, ctx
}

func TestLayoutBeforeFirstDraw(t *testing.T) {
	e, cfg, _ := setup(t, chart.Bar, 10, 20)
	before := e.Layout(cfg)
	assert.Equal(t, engine.Rect{X: tickWidth, Y: rowHeight, W: 80, H: 48}, before)

	require.NoError(t, e.Update(cfg, 0, nil))
	assert.Equal(t, before, e.area)
}

func TestBarsAreLaidOut(t *testing.T) {
	e, cfg, ctx := setup(t, chart.Bar, 10, 20)
	require.NoError(t, e.Update(cfg, 0, nil))

	assert.NotNil(t, ctx.Scene.Shape("bar-0-0"))
	assert.NotNil(t, ctx.Scene.Shape("bar-0-1"))
	assert.NotNil(t, ctx.Scene.Shape("axis"))
	require.Len(t, e.els, 2)
	assert.InDelta(t, 28, e.els[0].Y, 1e-9)
	assert.InDelta(t, 4, e.els[1].Y, 1e-9)

	hits := e.HitTest(74, 30)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Index)
	assert.Equal(t, 20.0, hits[0].Value)
	assert.Empty(t, e.HitTest(99, 59))
}

func TestUpdateAnimatesFromZero(t *testing.T) {
	e, cfg, ctx := setup(t, chart.Bar, 10, 20)
	var stopped []bool
	require.NoError(t, e.Update(cfg, time.Second, func(s bool) { stopped = append(stopped, s) }))
	assert.True(t, ctx.Runner.Active())

	t0 := time.Now()
	require.NoError(t, ctx.Runner.Advance(t0))
	require.Len(t, e.els, 2)
	assert.InDelta(t, 52, e.els[1].Y, 1e-9)

	require.NoError(t, ctx.Runner.Advance(t0.Add(time.Second)))
	assert.InDelta(t, 4, e.els[1].Y, 1e-9)
	assert.Equal(t, []bool{false}, stopped)
}

func TestUpdateStopsRunningTransition(t *testing.T) {
	e, cfg, _ := setup(t, chart.Line, 1, 2, 3)
	var stopped []bool
	require.NoError(t, e.Update(cfg, time.Second, func(s bool) { stopped = append(stopped, s) }))
	require.NoError(t, e.Update(cfg, 0, nil))
	assert.Equal(t, []bool{true}, stopped)
	assert.NotNil(t, e.ctx.Scene.Shape("line-0"))
}

func TestPieHitTest(t *testing.T) {
	e, cfg, ctx := setup(t, chart.Pie, 1, 1)
	require.NoError(t, e.Update(cfg, 0, nil))
	assert.NotNil(t, ctx.Scene.Shape("arc-0-0"))

	right := e.HitTest(60, 30)
	require.Len(t, right, 1)
	assert.Equal(t, 0, right[0].Index)
	left := e.HitTest(40, 30)
	require.Len(t, left, 1)
	assert.Equal(t, 1, left[0].Index)
}

func TestDoughnutCenterIsEmpty(t *testing.T) {
	e, cfg, _ := setup(t, chart.Doughnut, 1, 1)
	require.NoError(t, e.Update(cfg, 0, nil))
	assert.Empty(t, e.HitTest(55, 30))
	assert.Len(t, e.HitTest(75, 30), 1)
}

func TestHiddenSegmentIsSkipped(t *testing.T) {
	e, cfg, ctx := setup(t, chart.Pie, 1, 1)
	cfg.HiddenSegments = []bool{true, false}
	require.NoError(t, e.Update(cfg, 0, nil))
	assert.Nil(t, ctx.Scene.Shape("arc-0-0"))
	assert.NotNil(t, ctx.Scene.Shape("arc-0-1"))
}

func TestRadarDrawsSpokes(t *testing.T) {
	e, cfg, ctx := setup(t, chart.Radar, 1, 2, 3)
	require.NoError(t, e.Update(cfg, 0, nil))
	for _, id := range []string{"spoke-0", "spoke-1", "spoke-2", "radar-0"} {
		assert.NotNil(t, ctx.Scene.Shape(id), id)
	}
	assert.NotNil(t, ctx.Scene.Text("cat-0"))
}

func TestDestroyClearsScene(t *testing.T) {
	e, cfg, ctx := setup(t, chart.Bar, 10, 20)
	require.NoError(t, e.Update(cfg, 0, nil))
	e.Destroy()
	assert.Empty(t, ctx.Scene.Shapes())
	assert.Empty(t, e.HitTest(74, 30))
}

func TestPointHitRadius(t *testing.T) {
	el := engine.Element{Kind: engine.KindPoint, X: 10, Y: 10, Radius: 1}
	assert.True(t, hit(el, 12, 10))
	assert.False(t, hit(el, 14, 10))
	el.Radius = 6
	assert.True(t, hit(el, 15, 10))
}
