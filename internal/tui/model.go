// Package tui is the terminal host for a single chart widget.
package tui

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"chartui/internal/chart"
	"chartui/internal/config"
	"chartui/internal/render"
	"chartui/internal/theme"
	"chartui/internal/widget"
)

// events collects widget callbacks. The model is copied on every update, so
// the callbacks write through a pointer.
type events struct {
	click    *render.ClickEvent
	rendered int
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	keys        keyMap
	help        help.Model

	status string

	cfg   *config.Config
	log   *slog.Logger
	theme *theme.Theme
	st    styles

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	file   *chart.File
	chart  *widget.Chart
	events *events

	// mouse zones of the chart canvas and legend entries
	zones *zone.Manager
	// pointer was inside the chart area on the last mouse event
	inChart  bool
	inLegend bool

	// data table
	showData bool
	tbl      table.Model
}

// New returns a host model. cfg and log may be nil.
func New(cfg *config.Config, log *slog.Logger) Model {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.UI.Theme = "dark"
		cfg.UI.Locale = "en"
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	th := theme.ByName(cfg.UI.Theme)
	m := Model{
		helpVisible: true,
		keys:        newKeyMap(),
		help:        help.New(),
		status:      "chartui ready",
		cfg:         cfg,
		log:         log,
		theme:       th,
		st:          newStyles(th),
		events:      &events{},
		zones:       zone.New(),
		cwd:         cfg.UI.ChartDir,
	}
	if m.cwd == "" || m.cwd == "." {
		m.cwd, _ = os.Getwd()
	}
	ev := m.events
	m.chart = widget.New(widget.Settings{
		Theme:         th,
		Format:        chart.NewFormatter(cfg.UI.Locale),
		FrameInterval: cfg.UI.FrameInterval(),
		Debounce:      cfg.UI.Debounce(),
		Logger:        log,
		OnValueClick:  func(e render.ClickEvent) { ev.click = &e },
		OnRendered:    func() { ev.rendered++ },
	})

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Charts"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a chart file at launch.
func NewWithPath(cfg *config.Config, log *slog.Logger, path string) Model {
	m := New(cfg, log)
	m.loadPath(path)
	return m
}

// Chart exposes the hosted widget.
func (m Model) Chart() *widget.Chart { return m.chart }

func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd { return nil }
