package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartui/internal/chart"
	"chartui/internal/config"
	"chartui/internal/widget"
)

const barYAML = `type: bar
options:
  animation:
    duration: 0
data:
  axes:
    - [Jan, Feb, Mar]
  chartValueGroups:
    - groupName: sales
      values: [10, 20, 30]
    - groupName: costs
      values: [5, 15, 25]
`

func testConfig(dir string) *config.Config {
	cfg := &config.Config{}
	cfg.UI.Theme = "dark"
	cfg.UI.Locale = "en"
	cfg.UI.FrameIntervalMS = 16
	cfg.UI.ChartDir = dir
	return cfg
}

func writeChart(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func loaded(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	p := writeChart(t, dir, "bar.yaml", barYAML)
	m := NewWithPath(testConfig(dir), nil, p)
	require.Contains(t, m.Status(), "loaded: bar.yaml")
	return step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func TestLoadRendersOnFirstResize(t *testing.T) {
	m := loaded(t)
	c := m.Chart()
	require.True(t, c.Attached())
	require.NotNil(t, c.Lifecycle())
	assert.True(t, c.Lifecycle().Rendered())
	assert.Positive(t, m.events.rendered)

	cols, rows := c.Size()
	assert.Equal(t, 100, cols)
	assert.Equal(t, 26, rows)

	legend := c.Legend()
	require.Len(t, legend, 2)
	assert.Equal(t, "sales", legend[0].Label)
	assert.Contains(t, m.View(), "chartui ─ bar")
}

func TestLoadErrorKeepsChart(t *testing.T) {
	m := loaded(t)
	m.loadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, strings.HasPrefix(m.Status(), "load error"))
	assert.Equal(t, chart.Bar, m.Chart().Type())
}

func TestRefreshDirListsChartFiles(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, "b.csv", "label,a\nx,1\n")
	writeChart(t, dir, "a.yaml", barYAML)
	writeChart(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	m := New(testConfig(dir), nil)
	require.Len(t, m.items, 2)
	assert.Equal(t, "a.yaml", m.items[0].(fileItem).Title())
	assert.Equal(t, "b.csv", m.items[1].(fileItem).Title())
}

func TestDataViewDetachesChart(t *testing.T) {
	m := loaded(t)
	m = step(t, m, keyMsg("d"))
	require.True(t, m.showData)
	assert.False(t, m.Chart().Attached())
	assert.Len(t, m.tbl.Rows(), 3)
	assert.Len(t, m.tbl.Columns(), 4)

	m = step(t, m, keyMsg("d"))
	assert.False(t, m.showData)
	assert.True(t, m.Chart().Attached())
	assert.True(t, m.Chart().Lifecycle().Rendered())
}

func TestLegendKeyTogglesDataset(t *testing.T) {
	m := loaded(t)
	m = step(t, m, keyMsg("2"))
	legend := m.Chart().Legend()
	require.Len(t, legend, 2)
	assert.False(t, legend[0].Hidden)
	assert.True(t, legend[1].Hidden)
	assert.Equal(t, "legend: costs", m.Status())
}

// scanned renders the view and waits until the zone manager has indexed
// the given zones.
func scanned(t *testing.T, m Model, ids ...string) {
	t.Helper()
	m.View()
	require.Eventually(t, func() bool {
		for _, id := range ids {
			if m.zones.Get(id).IsZero() {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestLegendRowClick(t *testing.T) {
	m := loaded(t)
	scanned(t, m, legendZone(0), legendZone(1))

	first := m.zones.Get(legendZone(0))
	m = step(t, m, press(first.StartX, first.StartY))
	assert.True(t, m.Chart().Legend()[0].Hidden)

	// right of the last entry nothing is hit
	last := m.zones.Get(legendZone(1))
	m = step(t, m, press(last.EndX+5, last.StartY))
	assert.False(t, m.Chart().Legend()[1].Hidden)
}

func TestErrMsgShownInStatus(t *testing.T) {
	m := loaded(t)
	m = step(t, m, widget.ErrMsg{ID: m.Chart().ID(), Err: errors.New("boom")})
	assert.Equal(t, "error: boom", m.Status())
}

func TestQuitDestroysChart(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Nil(t, m.Chart().Lifecycle())
}

func TestDataTable(t *testing.T) {
	d := &chart.Data{
		Axes: [][]chart.AxisLabel{{{Label: "a"}}},
		Groups: []chart.ValueGroup{
			{GroupName: "v", Values: []float64{1200, 3}},
			{Points: []chart.LabeledValue{{X: 1, Y: 2}}},
		},
	}
	cols, rows := dataTable(d, chart.NewFormatter("en"))
	assert.Equal(t, []string{"label", "v", "group 2"}, cols)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "1,200", "(1, 2)"}, rows[0])
	assert.Equal(t, []string{"2", "3", ""}, rows[1])

	cols, rows = dataTable(&chart.Data{}, chart.NewFormatter("en"))
	assert.Nil(t, cols)
	assert.Nil(t, rows)
}

func TestLegendZones(t *testing.T) {
	m := loaded(t)
	scanned(t, m, legendZone(0), legendZone(1))

	second := m.zones.Get(legendZone(1))
	i, ok := m.legendAt(press(second.StartX, second.StartY))
	require.True(t, ok)
	assert.Equal(t, 1, i)

	// the separator belongs to no entry
	_, ok = m.legendAt(press(second.StartX-1, second.StartY))
	assert.False(t, ok)

	lo := m.layout()
	assert.Equal(t, lo.chartY+lo.chartH, second.StartY)
}

func TestChartZoneRoutesMouse(t *testing.T) {
	m := loaded(t)
	scanned(t, m, chartZone)

	z := m.zones.Get(chartZone)
	lo := m.layout()
	assert.Equal(t, lo.chartX, z.StartX)
	assert.Equal(t, lo.chartY, z.StartY)

	m = step(t, m, tea.MouseMsg{X: z.StartX + 10, Y: z.StartY + 5, Action: tea.MouseActionMotion})
	assert.True(t, m.inChart)

	m = step(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, m.inChart)
}
