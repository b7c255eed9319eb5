package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseTypeRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("histogram")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Len(t, Types(), 13)
}

func TestTypeFamilies(t *testing.T) {
	for _, typ := range Types() {
		n := 0
		for _, f := range []bool{typ.IsRadial(), typ.IsCartesian(), typ.IsVector()} {
			if f {
				n++
			}
		}
		assert.Equal(t, 1, n, "%s belongs to exactly one family", typ)
	}
}

func TestParseChartFile(t *testing.T) {
	f, err := Parse([]byte(`
type: doughnut
options:
  maxSegments: 3
  clickable: true
  plugins:
    legend:
      display: false
data:
  axes:
    - [a, b, {label: c}]
  chartValueGroups:
    - groupName: g
      colorHexValue: "#ff0000"
      values: [1, 2, 3]
`))
	require.NoError(t, err)
	assert.Equal(t, Doughnut, f.Config.Type)
	assert.Equal(t, 3, f.Config.Options.SegmentLimit())
	assert.True(t, f.Config.Options.Clickable)
	assert.False(t, f.Config.Options.LegendDisplayed())
	assert.Equal(t, "right", f.Config.Options.Plugins.Legend.Position)
	assert.Equal(t, 600*time.Millisecond, f.Config.Options.AnimationDuration())

	require.Len(t, f.Data.Groups, 1)
	assert.Equal(t, []float64{1, 2, 3}, f.Data.Groups[0].Values)
	assert.Equal(t, []string{"#ff0000"}, f.Data.Groups[0].Colors)
	assert.Equal(t, []string{"a", "b", "c"}, f.Data.AxisLabels(0))
	assert.Nil(t, f.Data.AxisLabels(1))
}

func TestParsePointValues(t *testing.T) {
	f, err := Parse([]byte(`
type: bubble
data:
  chartValueGroups:
    - values: [{x: 1, y: 2, z: 3}, {x: 4, y: 5}]
`))
	require.NoError(t, err)
	g := f.Data.Groups[0]
	assert.Nil(t, g.Values)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 5.0, g.Value(1))
	assert.Equal(t, 3.0, g.Points[0].Z)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("options: {}\n"))
	assert.ErrorContains(t, err, "missing type")

	_, err = Parse([]byte("type: histogram\n"))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = Parse([]byte("type: bar\ndata:\n  chartValueGroups:\n    - values: [a]\n"))
	assert.Error(t, err)
}

func TestLoadFileCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "r.csv")
	require.NoError(t, os.WriteFile(p, []byte("region, 2024, 2025\nNorth,1,2\nbad,x,3\nSouth,3,4\nshort\n"), 0o644))
	f, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, Bar, f.Config.Type)
	require.Len(t, f.Data.Groups, 2)
	assert.Equal(t, "2024", f.Data.Groups[0].GroupName)
	assert.Equal(t, []float64{1, 3}, f.Data.Groups[0].Values)
	assert.Equal(t, []float64{2, 4}, f.Data.Groups[1].Values)
	assert.Equal(t, []string{"North", "South"}, f.Data.AxisLabels(0))
	assert.True(t, Validate(&f.Data, f.Config.Options))
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(filepath.Join(dir, "x.png"))
	assert.ErrorContains(t, err, "unsupported format")

	p := filepath.Join(dir, "h.csv")
	require.NoError(t, os.WriteFile(p, []byte("label,a\n"), 0o644))
	_, err = LoadFile(p)
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveKeepsDefaults(t *testing.T) {
	cfg, err := Resolve(Config{Type: Pie, Options: Options{Clickable: true}})
	require.NoError(t, err)
	assert.True(t, cfg.Options.Clickable)
	assert.Equal(t, 5, cfg.Options.SegmentLimit())
	assert.True(t, cfg.Options.AutoColorEnabled())
	assert.True(t, cfg.Options.TooltipEnabled())

	cfg, err = Resolve(Config{Type: Speedo})
	require.NoError(t, err)
	assert.False(t, cfg.Options.LegendDisplayed())
	assert.Equal(t, GreenCenter, cfg.Options.Speedo.GreenAreaPosition)
}

func TestResolveKeepsExplicitZero(t *testing.T) {
	f, err := Parse([]byte("type: pie\noptions:\n  maxSegments: 0\n  animation: {duration: 0}\n  plugins: {tooltip: {delay: 0}}\n"))
	require.NoError(t, err)
	o := f.Config.Options
	assert.Zero(t, o.SegmentLimit())
	assert.Zero(t, o.AnimationDuration())
	assert.Zero(t, o.TooltipDelay())

	// a second resolve keeps them as well
	cfg, err := Resolve(f.Config)
	require.NoError(t, err)
	require.NotNil(t, cfg.Options.Animation.Duration)
	assert.Zero(t, cfg.Options.AnimationDuration())
	assert.Zero(t, cfg.Options.SegmentLimit())
}

func TestValidate(t *testing.T) {
	o := Defaults(Bar).Options
	assert.False(t, Validate(nil, o))
	assert.False(t, Validate(&Data{}, o))

	d := &Data{Groups: []ValueGroup{{Values: []float64{1, 2}}, {Values: []float64{3}}}}
	assert.False(t, Validate(d, o), "uneven groups")

	d = &Data{
		Groups: []ValueGroup{{Values: []float64{1, 2}}},
		Axes:   [][]AxisLabel{{{Label: "a"}}},
	}
	assert.False(t, Validate(d, o), "axis length")

	d.Axes = nil
	assert.True(t, Validate(d, o))

	o.AutoColor = new(bool)
	assert.False(t, Validate(d, o), "no color source")
	d.Groups[0].CSSClass = "brand"
	assert.True(t, Validate(d, o))
}

func TestCheckedItems(t *testing.T) {
	a := ClickObject{DatasetIndex: 0, DataIndex: 1}
	b := ClickObject{DatasetIndex: 1, DataIndex: 0}

	items := ToggleChecked(nil, a)
	items = ToggleChecked(items, b)
	assert.Equal(t, []ClickObject{a, b}, items)
	assert.True(t, IsChecked(items, 1, 0))

	items = ToggleChecked(items, a)
	assert.Equal(t, []ClickObject{b}, items)
	assert.False(t, IsChecked(items, 0, 1))

	got := FilterChecked([]ClickObject{b, a, b, {DatasetIndex: 2}, {DataIndex: -1}}, []int{2, 1})
	assert.Equal(t, []ClickObject{b, a}, got)
}

func TestFormatter(t *testing.T) {
	en := NewFormatter("en")
	assert.Equal(t, "1,200", en.Format(1200))
	assert.Equal(t, "3.14", en.Format(3.14159))
	assert.Equal(t, "25k", en.Abbreviate(25000))
	assert.Equal(t, "1.5M", en.Abbreviate(1.5e6))
	assert.Equal(t, "999", en.Abbreviate(999))

	de := NewFormatter("de")
	assert.Equal(t, "1.200,5", de.Format(1200.5))

	assert.Equal(t, "1,200", NewFormatter("").Format(1200))
}

func TestTypeYAML(t *testing.T) {
	b, err := yaml.Marshal(struct {
		T Type `yaml:"t"`
	}{ComboBarLine})
	require.NoError(t, err)
	assert.Equal(t, "t: combo_bar_line\n", string(b))
}

func TestLoadFixtures(t *testing.T) {
	combo, err := LoadFile(filepath.Join("testdata", "combo.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ComboBarLine, combo.Config.Type)
	assert.True(t, combo.Config.Options.Checkable)
	assert.Equal(t, Line, combo.Data.Groups[1].Type)
	assert.Equal(t, []string{"#336699"}, combo.Data.Groups[1].Colors)
	assert.True(t, Validate(&combo.Data, combo.Config.Options))

	radar, err := LoadFile(filepath.Join("testdata", "radar.json"))
	require.NoError(t, err)
	assert.Equal(t, Radar, radar.Config.Type)
	assert.Equal(t, []string{"#aa0000"}, radar.Data.Groups[1].Colors)
	assert.Len(t, radar.Data.AxisLabels(0), 5)
	assert.True(t, Validate(&radar.Data, radar.Config.Options))

	uneven, err := LoadFile(filepath.Join("testdata", "uneven.yaml"))
	require.NoError(t, err)
	assert.False(t, Validate(&uneven.Data, uneven.Config.Options))
}
