package engine

import (
	"fmt"

	"chartui/internal/chart"
	"chartui/internal/theme"
)

// Source is the input of Build.
type Source struct {
	Data    *chart.Data
	Config  chart.Config
	Theme   *theme.Theme
	Checked []chart.ClickObject
	Format  chart.Formatter
	// Area is the plot area, zero when unknown.
	Area Rect
}

// DatasetID returns the identifier used to match datasets across updates.
func DatasetID(g chart.ValueGroup, index int) string {
	if g.ID != "" {
		return g.ID
	}
	return fmt.Sprintf("ds-%d", index)
}

// datasetType is the series kind of group g in a chart of kind t.
func datasetType(t chart.Type, g chart.ValueGroup) chart.Type {
	if t != chart.ComboBarLine {
		return t
	}
	if g.Type == chart.Line {
		return chart.Line
	}
	return chart.Bar
}

// Build derives a fresh engine configuration.
func Build(src Source) *Config {
	t := src.Config.Type
	o := src.Config.Options
	cfg := &Config{
		Type:       t,
		Horizontal: t == chart.BarHorizontal,
	}
	axis := 0
	if cfg.Horizontal && len(src.Data.Axes) > 1 {
		axis = 1
	}
	cfg.Labels = src.Data.AxisLabels(axis)

	for i, g := range src.Data.Groups {
		ds := &Dataset{
			ID:    DatasetID(g, i),
			Label: g.GroupName,
			Type:  datasetType(t, g),
		}
		if t == chart.Scatter || t == chart.Bubble {
			ds.Points = points(g)
		} else {
			ds.Data = make([]float64, g.Len())
			for k := range ds.Data {
				ds.Data[k] = g.Value(k)
			}
		}
		cfg.Datasets = append(cfg.Datasets, ds)
	}
	if len(cfg.Labels) == 0 && len(cfg.Datasets) > 0 {
		for k := 0; k < cfg.Datasets[0].Len(); k++ {
			cfg.Labels = append(cfg.Labels, fmt.Sprint(k+1))
		}
	}

	if n := o.SegmentLimit(); CollapsesSegments(t) && n > 0 {
		cfg.Collapsed = CollapseSegments(cfg, n)
	}
	if t == chart.Bubble {
		ScaleBubbles(cfg.Datasets, o.Bubble.SizeOfLargestBubble, o.Bubble.MinBubbleSize, src.Area)
	}
	ApplyColors(cfg, src.Data.Groups, o, src.Theme)
	if o.Checkable {
		SwapChecked(cfg, src.Checked)
	}
	ComputeScales(cfg, o)

	cfg.Plugins = Plugins{
		Legend: LegendPlugin{
			Display:  o.LegendDisplayed(),
			Position: o.Plugins.Legend.Position,
		},
		Tooltip: TooltipPlugin{
			Enabled: o.TooltipEnabled(),
			Delay:   tooltipDelay(o),
		},
		DataLabels: DataLabelsPlugin{Display: o.Plugins.DataLabels.Display},
	}
	if src.Format != nil {
		cfg.Plugins.DataLabels.Formatter = src.Format.Abbreviate
	}
	return cfg
}

func points(g chart.ValueGroup) []Point {
	if len(g.Points) == 0 {
		out := make([]Point, len(g.Values))
		for i, v := range g.Values {
			out[i] = Point{X: float64(i), Y: v, Z: 1}
		}
		return out
	}
	out := make([]Point, len(g.Points))
	for i, p := range g.Points {
		out[i] = Point{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

// CollapseSegments sums all segments from max-1 on into one trailing
// "other" segment. It reports whether anything was collapsed.
func CollapseSegments(cfg *Config, max int) bool {
	if max < 1 || len(cfg.Labels) <= max {
		return false
	}
	keep := max - 1
	cfg.Labels = append(cfg.Labels[:keep:keep], OtherLabel)
	for _, ds := range cfg.Datasets {
		if len(ds.Data) <= keep {
			continue
		}
		sum := 0.0
		for _, v := range ds.Data[keep:] {
			sum += v
		}
		ds.Data = append(ds.Data[:keep], sum)
	}
	return true
}
