package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chartui/internal/chart"
	"chartui/internal/config"
	"chartui/internal/engine"
	"chartui/internal/engine/echarts"
	"chartui/internal/surface"
	"chartui/internal/theme"
	"chartui/internal/widget"
)

var exportCmd = &cobra.Command{
	Use:   "export <chart-file>",
	Short: "Render a chart file to SVG or HTML",
	Long: `Render a chart file without the terminal UI.
  svg   the braille scene as vector graphics, for every chart kind
  html  a standalone Apache ECharts page, for axis and radial kinds`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")
		cols, _ := cmd.Flags().GetInt("cols")
		rows, _ := cmd.Flags().GetInt("rows")

		var w io.Writer = cmd.OutOrStdout()
		if out != "" && out != "-" {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return exportChart(w, args[0], exportOptions{
			Format: format,
			Cols:   cols,
			Rows:   rows,
			Config: cfg,
			Logger: logger,
		})
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "svg", "output format (svg, html)")
	exportCmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
	exportCmd.Flags().Int("cols", 120, "canvas width in terminal cells")
	exportCmd.Flags().Int("rows", 40, "canvas height in terminal cells")
}

type exportOptions struct {
	Format     string
	Cols, Rows int
	Config     *config.Config
	Logger     *slog.Logger
}

var errNotRendered = errors.New("export: chart did not render (check its data)")

func exportChart(w io.Writer, path string, o exportOptions) error {
	f, err := chart.LoadFile(path)
	if err != nil {
		return err
	}
	if o.Config != nil {
		o.Config.Chart.Apply(&f.Config)
	}
	s := widget.Settings{Logger: o.Logger}
	if o.Config != nil {
		s.Theme = theme.ByName(o.Config.UI.Theme)
		s.Format = chart.NewFormatter(o.Config.UI.Locale)
	}

	format := strings.ToLower(o.Format)
	switch format {
	case "svg":
	case "html":
		if f.Config.Type.IsVector() {
			return fmt.Errorf("export: %s charts have no html rendering", f.Config.Type)
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.Engine = echarts.New(title)
	default:
		return fmt.Errorf("export: unknown format %q", o.Format)
	}

	c := widget.New(s)
	defer c.Destroy()
	if err := c.SetConfig(f.Config); err != nil {
		return err
	}
	c.SetData(&f.Data)
	c.Attach(o.Cols, o.Rows)
	c.Render(false)
	if !c.Lifecycle().Rendered() {
		return errNotRendered
	}

	if format == "svg" {
		return surface.WriteSVG(w, c.Scene())
	}
	a, ok := c.Drawer().(*engine.Adapter)
	if !ok {
		return errNotRendered
	}
	page, ok := a.Engine().(*echarts.Engine)
	if !ok {
		return errNotRendered
	}
	return page.WriteHTML(w)
}
