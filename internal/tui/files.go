package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"chartui/internal/chart"
	"chartui/internal/widget"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func isChartFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json", ".csv":
		return true
	}
	return false
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() || !isChartFile(e.Name()) {
			continue
		}
		name := e.Name()
		items = append(items, fileItem{title: name, desc: filepath.Ext(name), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no chart files in " + m.cwd
	}
}

// loadPath loads a chart file into the widget and schedules an animated
// render. While the chart is detached the render waits for the next attach.
func (m *Model) loadPath(p string) tea.Cmd {
	f, err := chart.LoadFile(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Warn("load chart file", "path", p, "err", err)
		return nil
	}
	m.cfg.Chart.Apply(&f.Config)
	if err := m.chart.SetConfig(f.Config); err != nil {
		m.status = "config error: " + err.Error()
		m.log.Warn("chart config", "path", p, "err", err)
		return nil
	}
	m.selPath = p
	m.file = f
	m.chart.SetData(&f.Data)
	m.status = fmt.Sprintf("loaded: %s  type=%s groups=%d", filepath.Base(p), f.Config.Type, len(f.Data.Groups))
	m.log.Info("chart loaded", "path", p, "type", f.Config.Type.String())
	if m.showData {
		m.refreshTable()
	}
	return m.chart.UpdateChart(widget.UpdateOptions{RequestAnimation: true})
}
