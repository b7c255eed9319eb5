package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chartui/internal/render"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse routing.
type layout struct {
	contentW, contentH int
	chartX, chartY     int
	chartW, chartH     int
}

func (m Model) layout() layout {
	lo := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		chartY:   headerHeight,
	}
	if m.showSidebar {
		lo.chartX = sidebarWidth + 1
	}
	lo.chartW = max(10, lo.contentW-lo.chartX)
	lo.chartH = max(3, lo.contentH-1)
	return lo
}

// Mouse zone ids.
const chartZone = "chart"

func legendZone(i int) string { return "legend-" + strconv.Itoa(i) }

const legendSep = "  "

func legendLabel(it render.LegendItem) string { return "■ " + it.Label }

// legendAt returns the legend entry under the pointer.
func (m Model) legendAt(msg tea.MouseMsg) (int, bool) {
	for _, it := range m.chart.Legend() {
		if m.zones.Get(legendZone(it.Index)).InBounds(msg) {
			return it.Index, true
		}
	}
	return 0, false
}

func (m Model) renderLegend(items []render.LegendItem, width int) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.Hidden {
			parts = append(parts, m.zones.Mark(legendZone(it.Index), m.st.hidden.Render(legendLabel(it))))
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(m.theme.Lip(it.Color)).Render("■")
		parts = append(parts, m.zones.Mark(legendZone(it.Index), swatch+" "+it.Label))
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(strings.Join(parts, legendSep))
}

func tooltipText(t *render.Tooltip) string {
	if t == nil {
		return ""
	}
	parts := append([]string{t.Title}, t.Lines...)
	return strings.Join(parts, " · ")
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	title := " chartui ─ terminal charts "
	if m.file != nil {
		title = " chartui ─ " + m.file.Config.Type.String() + " "
	}
	header := lipgloss.NewStyle().Width(lo.contentW).Render(m.st.title.Render(title))

	var main string
	if m.showData {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.chartW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.contentH-2, 20))
		box := m.st.box.Width(maxW).Render(m.tbl.View())
		main = lipgloss.Place(lo.chartW, lo.contentH, lipgloss.Center, lipgloss.Center, box)
	} else {
		canvas := m.zones.Mark(chartZone, lipgloss.NewStyle().Width(lo.chartW).Height(lo.chartH).Render(m.chart.View()))
		legend := m.renderLegend(m.chart.Legend(), lo.chartW)
		main = lipgloss.JoinVertical(lipgloss.Left, canvas, legend)
	}

	body := main
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	}

	status := m.st.dim.Render(" " + m.status + " ")
	if strings.HasPrefix(m.status, "error") {
		status = m.st.err.Render(" " + m.status + " ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	tip := ""
	if t := tooltipText(m.chart.Tooltip()); t != "" {
		tip = m.st.title.Render(" " + t + " ")
	}
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(tip))
	right := lipgloss.Place(spacerW+lipgloss.Width(tip), 1, lipgloss.Right, lipgloss.Center, tip)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return m.zones.Scan(m.st.app.Width(lo.contentW).Height(m.height).Render(ui))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	m.help.Width = max(0, m.width-lipgloss.Width(m.status)-4)
	return "  " + m.help.View(m.keys)
}
