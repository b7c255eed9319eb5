package engine

import (
	"math"

	"chartui/internal/chart"
)

// niceTolerance keeps already rounded values fixed under repeated rounding.
const niceTolerance = 1e-9

// secondaryAxisRatio is the magnitude ratio above which a dataset moves to
// the secondary axis.
const secondaryAxisRatio = 10

// roundNice rounds v outward to a multiple of 5·10^(p-1), p being the order
// of magnitude of v.
func roundNice(v float64, up bool) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if v < 0 {
		return -roundNice(-v, !up)
	}
	p := math.Floor(math.Log10(v))
	step := 5 * math.Pow(10, p-1)
	q := v / step
	if r := math.Round(q); math.Abs(q-r) < niceTolerance {
		return r * step
	}
	if up {
		return math.Ceil(q) * step
	}
	return math.Floor(q) * step
}

// NiceBoundary rounds min down and max up unless exact is set.
func NiceBoundary(min, max float64, exact bool) chart.Boundary {
	if exact {
		return chart.Boundary{Min: min, Max: max}
	}
	return chart.Boundary{Min: roundNice(min, false), Max: roundNice(max, true)}
}

// ComputeBoundary returns the boundary of all visible dataset values. ok is
// false when there is no value at all.
func ComputeBoundary(datasets []*Dataset, exact bool) (b chart.Boundary, ok bool) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, ds := range datasets {
		if ds.Hidden {
			continue
		}
		for i := 0; i < ds.Len(); i++ {
			v := ds.Value(i)
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return chart.Boundary{}, false
	}
	return NiceBoundary(min, max, exact), true
}

func extent(vs []float64) (min, max float64, ok bool) {
	if len(vs) == 0 {
		return 0, 0, false
	}
	min, max = vs[0], vs[0]
	for _, v := range vs[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max, true
}

// CollapsesSegments reports whether max segment collapsing applies to t.
func CollapsesSegments(t chart.Type) bool {
	switch t {
	case chart.Pie, chart.Doughnut, chart.PolarArea:
		return true
	}
	return false
}

// UsesExactBoundary reports whether the value axis of t keeps raw extrema.
// This is the radius channel of the radial kinds.
func UsesExactBoundary(t chart.Type) bool {
	return t == chart.PolarArea || t == chart.Radar
}

// BeginsAtZero reports whether the value axis includes zero.
func BeginsAtZero(t chart.Type, o chart.Options) bool {
	switch t {
	case chart.PolarArea, chart.Radar:
		return true
	case chart.Scatter, chart.Bubble:
		return chart.Bool(o.Scales.Y.BeginAtZero, false)
	}
	return chart.Bool(o.Scales.Y.BeginAtZero, t != chart.Line)
}

// UsesSecondaryAxis reports whether t may get a synthesized y2 axis.
func UsesSecondaryAxis(t chart.Type, o chart.Options) bool {
	switch t {
	case chart.Bar, chart.BarHorizontal, chart.Line, chart.ComboBarLine:
		return !o.Scales.Y.Stacked
	}
	return false
}

// SecondaryDatasets returns the indexes of the visible datasets whose
// magnitude is more than ten times smaller than the largest one. It returns
// nil unless both axes end up with at least one dataset.
func SecondaryDatasets(datasets []*Dataset) []int {
	mags := make([]float64, len(datasets))
	top := 0.0
	visible := 0
	for i, ds := range datasets {
		if ds.Hidden {
			continue
		}
		visible++
		for j := 0; j < ds.Len(); j++ {
			mags[i] = math.Max(mags[i], math.Abs(ds.Value(j)))
		}
		top = math.Max(top, mags[i])
	}
	if visible < 2 || top == 0 {
		return nil
	}
	var out []int
	for i, ds := range datasets {
		if !ds.Hidden && mags[i]*secondaryAxisRatio < top {
			out = append(out, i)
		}
	}
	if len(out) == 0 || len(out) == visible {
		return nil
	}
	return out
}

// ComputeScales rebuilds the scales of cfg from its visible datasets.
func ComputeScales(cfg *Config, o chart.Options) {
	cfg.Scales = cfg.Scales[:0]
	t := cfg.Type
	switch {
	case t == chart.Scatter || t == chart.Bubble:
		var xs, ys []float64
		for _, ds := range cfg.Datasets {
			if ds.Hidden {
				continue
			}
			for _, p := range ds.Points {
				xs = append(xs, p.X)
				ys = append(ys, p.Y)
			}
		}
		cfg.Scales = append(cfg.Scales,
			axisScale(ScaleX, "bottom", xs, false, o.Scales.X, false),
			axisScale(ScaleY, "left", ys, BeginsAtZero(t, o), o.Scales.Y, false))
	case t == chart.PolarArea || t == chart.Radar:
		cfg.Scales = append(cfg.Scales, axisScale(ScaleR, "", values(cfg.Datasets, nil), true, o.Scales.Y, true))
	case t.IsCartesian():
		var secondary []int
		if UsesSecondaryAxis(t, o) {
			secondary = SecondaryDatasets(cfg.Datasets)
		}
		onY2 := make(map[int]bool, len(secondary))
		for _, i := range secondary {
			onY2[i] = true
		}
		for i, ds := range cfg.Datasets {
			ds.YAxisID = ScaleY
			if onY2[i] {
				ds.YAxisID = ScaleY2
			}
		}
		pos := "left"
		if cfg.Horizontal {
			pos = "bottom"
		}
		primary := axisScale(ScaleY, pos, values(cfg.Datasets, func(i int) bool { return !onY2[i] }),
			BeginsAtZero(t, o), o.Scales.Y, false)
		primary.Stacked = o.Scales.Y.Stacked
		if primary.Stacked {
			stackedExtent(cfg, primary)
		}
		cfg.Scales = append(cfg.Scales, primary)
		if len(secondary) > 0 {
			cfg.Scales = append(cfg.Scales, axisScale(ScaleY2, "right",
				values(cfg.Datasets, func(i int) bool { return onY2[i] }), BeginsAtZero(t, o), chart.Axis{}, false))
		}
	}
}

func values(datasets []*Dataset, keep func(i int) bool) []float64 {
	var out []float64
	for i, ds := range datasets {
		if ds.Hidden || (keep != nil && !keep(i)) {
			continue
		}
		for j := 0; j < ds.Len(); j++ {
			out = append(out, ds.Value(j))
		}
	}
	return out
}

// axisScale builds one scale from raw values, honoring user min/max.
func axisScale(id, pos string, vs []float64, zero bool, ax chart.Axis, exact bool) *Scale {
	min, max, ok := extent(vs)
	if !ok {
		min, max = 0, 1
	}
	if zero {
		min = math.Min(min, 0)
		max = math.Max(max, 0)
	}
	b := NiceBoundary(min, max, exact)
	if ax.Min != nil {
		b.Min = *ax.Min
	}
	if ax.Max != nil {
		b.Max = *ax.Max
	}
	if b.Max <= b.Min {
		b.Max = b.Min + 1
	}
	return &Scale{ID: id, Min: b.Min, Max: b.Max, Position: pos}
}

// stackedExtent widens s to the per-index sums of stacked bars.
func stackedExtent(cfg *Config, s *Scale) {
	var pos, neg []float64
	for _, ds := range cfg.Datasets {
		if ds.Hidden {
			continue
		}
		for j := 0; j < ds.Len(); j++ {
			for len(pos) <= j {
				pos = append(pos, 0)
				neg = append(neg, 0)
			}
			if v := ds.Value(j); v >= 0 {
				pos[j] += v
			} else {
				neg[j] += v
			}
		}
	}
	lo, _, ok1 := extent(neg)
	_, hi, ok2 := extent(pos)
	if !ok1 || !ok2 {
		return
	}
	b := NiceBoundary(math.Min(lo, s.Min), math.Max(hi, s.Max), false)
	s.Min, s.Max = b.Min, b.Max
}
