package widget

import (
	"errors"
	"fmt"
	"slices"

	"chartui/internal/chart"
	"chartui/internal/engine"
	"chartui/internal/engine/term"
	"chartui/internal/render"
	"chartui/internal/vector"
)

// ErrUnsupportedKind is returned for chart kinds without a renderer.
var ErrUnsupportedKind = errors.New("unsupported chart kind")

// NewDrawer selects the renderer for the chart kind of ctx. Engine backed
// kinds use factory, or the terminal engine when factory is nil.
func NewDrawer(ctx *render.Context, factory engine.Factory) (render.Drawer, error) {
	if factory == nil {
		factory = term.New
	}
	switch ctx.Config.Type {
	case chart.Fulfillment:
		return vector.NewFulfillment(ctx), nil
	case chart.Speedo:
		return vector.NewSpeedo(ctx), nil
	case chart.Salesfunnel:
		return vector.NewFunnel(ctx), nil
	case chart.Pie, chart.Doughnut, chart.PolarArea, chart.Radar,
		chart.Bar, chart.BarHorizontal, chart.Line, chart.ComboBarLine,
		chart.Scatter, chart.Bubble:
		return engine.NewAdapter(ctx, factory), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, ctx.Config.Type)
}

// Supported reports whether NewDrawer has a renderer for t.
func Supported(t chart.Type) bool {
	return slices.Contains(chart.Types(), t)
}
