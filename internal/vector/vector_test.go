package vector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartui/internal/anim"
	"chartui/internal/chart"
	"chartui/internal/render"
	"chartui/internal/surface"
	"chartui/internal/theme"
)

type attached bool

func (a attached) Attached() bool { return bool(a) }

func newContext(t *testing.T, typ chart.Type, groups ...[]float64) *render.Context {
	t.Helper()
	cfg, err := chart.Resolve(chart.Config{Type: typ})
	require.NoError(t, err)
	d := &chart.Data{}
	for _, vs := range groups {
		d.Groups = append(d.Groups, chart.ValueGroup{Values: vs})
	}
	return &render.Context{
		Data:   d,
		Config: cfg,
		Scene:  surface.NewScene(80, 40),
		Runner: anim.NewRunner(0),
		Theme:  theme.Default(),
		Format: chart.NewFormatter("en"),
		Host:   attached(true),
	}
}

func TestFulfillmentQuarter(t *testing.T) {
	ctx := newContext(t, chart.Fulfillment, []float64{30}, []float64{120})
	f := NewFulfillment(ctx)
	require.True(t, f.Valid(ctx.Data))
	require.NoError(t, f.Draw(0))

	assert.InDelta(t, 0.25, f.Sweep(), 1e-9)
	lbl := ctx.Scene.Text(fulfillmentLabelID)
	require.NotNil(t, lbl)
	assert.Equal(t, "25%", lbl.Value)
}

func TestFulfillmentFullRingIsCapped(t *testing.T) {
	ctx := newContext(t, chart.Fulfillment, []float64{150}, []float64{100})
	f := NewFulfillment(ctx)
	require.NoError(t, f.Draw(0))

	assert.Equal(t, maxSweep, f.Sweep())
	assert.Equal(t, "150%", ctx.Scene.Text(fulfillmentLabelID).Value)
	assert.NoError(t, ctx.Scene.Shape(fulfillmentRingID).Path.Validate())
}

func TestFulfillmentZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, FulfillmentFraction(5, 0))
}

func TestFulfillmentUpdateAnimatesFromPrevious(t *testing.T) {
	ctx := newContext(t, chart.Fulfillment, []float64{25}, []float64{100})
	f := NewFulfillment(ctx)
	require.NoError(t, f.Draw(0))

	ctx.Data.Groups[0].Values = []float64{75}
	require.NoError(t, f.UpdateData(100*time.Millisecond))

	t0 := time.Now()
	require.NoError(t, ctx.Runner.Advance(t0))
	assert.InDelta(t, 0.25, f.Sweep(), 1e-9)
	assert.Equal(t, "75%", ctx.Scene.Text(fulfillmentLabelID).Value)

	require.NoError(t, ctx.Runner.Advance(t0.Add(100*time.Millisecond)))
	assert.InDelta(t, 0.75, f.Sweep(), 1e-9)
	assert.False(t, ctx.Runner.Active())
}

func TestFulfillmentStartValue(t *testing.T) {
	ctx := newContext(t, chart.Fulfillment, []float64{80}, []float64{100})
	sv := 40.0
	ctx.Config.Options.Fulfillment.StartValue = &sv
	f := NewFulfillment(ctx)
	require.NoError(t, f.Draw(time.Second))

	t0 := time.Now()
	require.NoError(t, ctx.Runner.Advance(t0))
	assert.InDelta(t, 0.4, f.Sweep(), 1e-9)
}

func TestEraseWhileExitRunningIsIgnored(t *testing.T) {
	ctx := newContext(t, chart.Fulfillment, []float64{25}, []float64{100})
	f := NewFulfillment(ctx)
	require.NoError(t, f.Draw(0))

	var first, second int
	f.Erase(100*time.Millisecond, func(bool) { first++ })
	f.Erase(100*time.Millisecond, func(bool) { second++ })

	t0 := time.Now()
	require.NoError(t, ctx.Runner.Advance(t0))
	require.NoError(t, ctx.Runner.Advance(t0.Add(200*time.Millisecond)))

	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second)
	assert.Nil(t, ctx.Scene.Text(fulfillmentLabelID))
	assert.Nil(t, ctx.Scene.Shape(fulfillmentRingID))
}

func TestEraseWithoutAnimationClearsAtOnce(t *testing.T) {
	ctx := newContext(t, chart.Speedo, []float64{0, 50, 100})
	s := NewSpeedo(ctx)
	require.NoError(t, s.Draw(0))
	require.NotEmpty(t, ctx.Scene.Shapes())

	stopped := true
	s.Erase(0, func(st bool) { stopped = st })
	assert.False(t, stopped)
	assert.Empty(t, ctx.Scene.Shapes())
	assert.Empty(t, ctx.Scene.Texts())
}

func TestFunnelConversionLabels(t *testing.T) {
	ctx := newContext(t, chart.Salesfunnel, []float64{100}, []float64{80}, []float64{50}, []float64{10})
	f := NewFunnel(ctx)
	require.NoError(t, f.Draw(0))

	assert.Nil(t, ctx.Scene.Text(conversionID(0)))
	for i, want := range []string{"80%", "63%", "20%"} {
		txt := ctx.Scene.Text(conversionID(i + 1))
		require.NotNil(t, txt, "conversion %d", i+1)
		assert.Equal(t, want, txt.Value)
	}
}

func TestFunnelConversionDisabled(t *testing.T) {
	ctx := newContext(t, chart.Salesfunnel, []float64{100}, []float64{80})
	off := false
	ctx.Config.Options.Salesfunnel.CalcConversionRate = &off
	f := NewFunnel(ctx)
	require.NoError(t, f.Draw(0))
	assert.Nil(t, ctx.Scene.Text(conversionID(1)))
}

func TestConversionRatesSkipZeroPredecessor(t *testing.T) {
	rates, ok := ConversionRates([]float64{0, 10, 5})
	assert.Equal(t, []bool{false, false, true}, ok)
	assert.Equal(t, 50, rates[2])
}

func TestFunnelWidths(t *testing.T) {
	assert.InDeltaSlice(t, []float64{1, 0.9, 0.8, 0.7}, FunnelWidths([]float64{100, 80, 50, 10}, true, 0.3), 1e-9)

	many := FunnelWidths(make([]float64, 10), true, 0.3)
	assert.InDelta(t, 0.3, many[9], 1e-9)

	assert.InDeltaSlice(t, []float64{1, 0.5, 0}, FunnelWidths([]float64{100, 50, 0}, false, 0.3), 1e-9)
	assert.Equal(t, []float64{0, 0}, FunnelWidths([]float64{0, 0}, false, 0))
}

func TestFunnelUpdateShrinksBars(t *testing.T) {
	ctx := newContext(t, chart.Salesfunnel, []float64{100}, []float64{80}, []float64{50})
	f := NewFunnel(ctx)
	require.NoError(t, f.Draw(0))
	require.NotNil(t, ctx.Scene.Shape(barID(2)))

	ctx.Data.Groups = ctx.Data.Groups[:2]
	require.NoError(t, f.UpdateData(0))
	assert.Nil(t, ctx.Scene.Shape(barID(2)))
	assert.Nil(t, ctx.Scene.Text(conversionID(2)))
	assert.NotNil(t, ctx.Scene.Shape(barID(1)))
}

func TestSpeedoParts(t *testing.T) {
	assert.Len(t, SpeedoParts(chart.GreenLeft), 4)
	assert.Len(t, SpeedoParts(chart.GreenRight), 4)
	assert.Len(t, SpeedoParts(chart.GreenCenter), 7)
	assert.Equal(t, speedoGreen, SpeedoParts(chart.GreenCenter)[3])
}

func TestSpeedoPointerSnaps(t *testing.T) {
	assert.InDelta(t, 0.35, SnapToSegment(0.33, 20), 1e-9)
	assert.Equal(t, 1.0, SnapToSegment(1.7, 20))

	ctx := newContext(t, chart.Speedo, []float64{0, 33, 100})
	s := NewSpeedo(ctx)
	require.NoError(t, s.Draw(0))
	assert.InDelta(t, 12.0/35, s.Pointer(), 1e-9)
	assert.Equal(t, speedoRed, ctx.Scene.Shape(segmentID(0)).Fill)
	assert.NotEqual(t, speedoGreen, ctx.Scene.Shape(segmentID(34)).Fill)
}

func TestSpeedoInvalidWithoutRange(t *testing.T) {
	ctx := newContext(t, chart.Speedo, []float64{0, 33})
	assert.False(t, NewSpeedo(ctx).Valid(ctx.Data))
}
