package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"chartui/internal/widget"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmds = append(cmds, m.fitChart())
	case tea.KeyMsg:
		// filtering list and table navigation swallow global keys
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.chart.Destroy()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Sidebar):
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			cmds = append(cmds, m.fitChart())
		case key.Matches(msg, m.keys.Open):
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					cmds = append(cmds, m.loadPath(it.path))
				}
			}
		case key.Matches(msg, m.keys.Data):
			cmds = append(cmds, m.toggleData())
		case key.Matches(msg, m.keys.Replay):
			cmds = append(cmds, m.chart.UpdateChart(widget.UpdateOptions{RequestAnimation: true}))
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		case key.Matches(msg, m.keys.Hide):
			m.chart.MouseLeave()
		case key.Matches(msg, m.keys.Legend):
			n := int(msg.String()[0] - '1')
			if items := m.chart.Legend(); n < len(items) {
				cmds = append(cmds, m.chart.LegendClick(items[n].Index))
				m.status = fmt.Sprintf("legend: %s", items[n].Label)
			}
		default:
			if m.showData {
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	case widget.ErrMsg:
		m.status = "error: " + msg.Err.Error()
		m.log.Error("chart update", "chart", msg.ID, "err", msg.Err)
	default:
		cmds = append(cmds, m.chart.Update(msg))
	}
	m.drainEvents()

	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// fitChart attaches the chart to the current layout, or resizes it when it
// is already attached.
func (m *Model) fitChart() tea.Cmd {
	if m.showData || m.width == 0 || m.height == 0 {
		return nil
	}
	lo := m.layout()
	if m.chart.Attached() {
		return m.chart.Resize(lo.chartW, lo.chartH)
	}
	return m.chart.Attach(lo.chartW, lo.chartH)
}

// toggleData swaps the chart for the data table. The chart is detached while
// hidden and attached again afterwards.
func (m *Model) toggleData() tea.Cmd {
	if m.showData {
		m.showData = false
		return m.fitChart()
	}
	m.showData = true
	m.refreshTable()
	if !m.showData {
		return nil
	}
	m.chart.MouseLeave()
	m.chart.Detach()
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showData {
		return nil
	}
	if z := m.zones.Get(chartZone); z.InBounds(msg) {
		m.inChart = true
		x, y := z.Pos(msg)
		return m.chart.HandleMouse(msg, x, y)
	}
	if m.inChart {
		m.inChart = false
		m.chart.MouseLeave()
	}

	idx, onLegend := m.legendAt(msg)
	if !onLegend {
		if m.inLegend {
			m.inLegend = false
			m.chart.LegendLeave()
		}
		return nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return m.chart.LegendClick(idx)
	}
	m.inLegend = true
	m.chart.LegendHover(idx)
	return nil
}

// drainEvents turns widget callbacks into status text.
func (m *Model) drainEvents() {
	ev := m.events
	if ev.click != nil {
		o := ev.click.Object
		m.status = fmt.Sprintf("clicked: dataset %d index %d", o.DatasetIndex, o.DataIndex)
		if d := m.chart.Data(); d != nil && o.DatasetIndex < len(d.Groups) && o.DataIndex < d.Groups[o.DatasetIndex].Len() {
			v := d.Groups[o.DatasetIndex].Value(o.DataIndex)
			m.status += "  value " + m.chart.Context().Format.Format(v)
		}
		if n := len(m.chart.Checked()); n > 0 {
			m.status += fmt.Sprintf("  checked %d", n)
		}
		ev.click = nil
	}
}
