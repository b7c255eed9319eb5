package chart

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LabeledValue is one point of a scatter or bubble series.
type LabeledValue struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z,omitempty"`
}

// AxisLabel is one entry of an axis.
type AxisLabel struct {
	Label string `yaml:"label"`
}

func (a *AxisLabel) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		a.Label = n.Value
		return nil
	}
	type plain AxisLabel
	return n.Decode((*plain)(a))
}

// ValueGroup is one named series. Either Values or Points is set.
type ValueGroup struct {
	Type      Type           `yaml:"type,omitempty"`
	GroupName string         `yaml:"groupName"`
	ID        string         `yaml:"id,omitempty"`
	Values    []float64      `yaml:"-"`
	Points    []LabeledValue `yaml:"-"`
	Colors    []string       `yaml:"colorHexValue,omitempty"`
	CSSClass  string         `yaml:"cssClass,omitempty"`
}

// Len returns the number of values in the group.
func (g ValueGroup) Len() int {
	if len(g.Points) > 0 {
		return len(g.Points)
	}
	return len(g.Values)
}

// Value returns the i-th scalar value; for point groups the y value.
func (g ValueGroup) Value(i int) float64 {
	if len(g.Points) > 0 {
		return g.Points[i].Y
	}
	return g.Values[i]
}

// UnmarshalYAML accepts numeric or {x,y,z} values and a single color or a list.
func (g *ValueGroup) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Type      Type      `yaml:"type"`
		GroupName string    `yaml:"groupName"`
		ID        string    `yaml:"id"`
		Values    yaml.Node `yaml:"values"`
		Color     yaml.Node `yaml:"colorHexValue"`
		CSSClass  string    `yaml:"cssClass"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	g.Type, g.GroupName, g.ID, g.CSSClass = raw.Type, raw.GroupName, raw.ID, raw.CSSClass
	g.Values, g.Points, g.Colors = nil, nil, nil
	if raw.Values.Kind == yaml.SequenceNode && len(raw.Values.Content) > 0 {
		if raw.Values.Content[0].Kind == yaml.MappingNode {
			if err := raw.Values.Decode(&g.Points); err != nil {
				return fmt.Errorf("group %q: %w", g.GroupName, err)
			}
		} else if err := raw.Values.Decode(&g.Values); err != nil {
			return fmt.Errorf("group %q: %w", g.GroupName, err)
		}
	}
	switch raw.Color.Kind {
	case yaml.ScalarNode:
		if raw.Color.Value != "" {
			g.Colors = []string{raw.Color.Value}
		}
	case yaml.SequenceNode:
		if err := raw.Color.Decode(&g.Colors); err != nil {
			return err
		}
	}
	return nil
}

// Data is the abstract chart data owned by the host.
type Data struct {
	Groups []ValueGroup  `yaml:"chartValueGroups"`
	Axes   [][]AxisLabel `yaml:"axes,omitempty"`
}

// Lens returns the value count of every group.
func (d *Data) Lens() []int {
	if d == nil {
		return nil
	}
	out := make([]int, len(d.Groups))
	for i, g := range d.Groups {
		out[i] = g.Len()
	}
	return out
}

// AxisLabels returns the labels of axis i, or nil.
func (d *Data) AxisLabels(i int) []string {
	if d == nil || i < 0 || i >= len(d.Axes) {
		return nil
	}
	out := make([]string, len(d.Axes[i]))
	for j, a := range d.Axes[i] {
		out[j] = a.Label
	}
	return out
}

// ClickObject identifies a single data point.
type ClickObject struct {
	DatasetIndex int
	DataIndex    int
	XIndex       *int
	YIndex       *int
}

// Same reports whether both refer to the same data point.
func (c ClickObject) Same(o ClickObject) bool {
	return c.DatasetIndex == o.DatasetIndex && c.DataIndex == o.DataIndex
}

// ToggleChecked adds obj to items, or removes it if already present.
func ToggleChecked(items []ClickObject, obj ClickObject) []ClickObject {
	for i, it := range items {
		if it.Same(obj) {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return append(items, obj)
}

// FilterChecked drops duplicates and items outside the given dataset lengths.
// Order is preserved.
func FilterChecked(items []ClickObject, lens []int) []ClickObject {
	out := make([]ClickObject, 0, len(items))
	for _, it := range items {
		if it.DatasetIndex < 0 || it.DatasetIndex >= len(lens) {
			continue
		}
		if it.DataIndex < 0 || it.DataIndex >= lens[it.DatasetIndex] {
			continue
		}
		dup := false
		for _, o := range out {
			if o.Same(it) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, it)
		}
	}
	return out
}

// IsChecked reports whether (dataset, index) is among items.
func IsChecked(items []ClickObject, dataset, index int) bool {
	for _, it := range items {
		if it.DatasetIndex == dataset && it.DataIndex == index {
			return true
		}
	}
	return false
}

// Boundary is a computed axis range.
type Boundary struct {
	Min float64
	Max float64
}
