package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartui/internal/config"
)

func chartFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sales.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

const lineChart = `type: line
data:
  axes:
    - [q1, q2, q3]
  chartValueGroups:
    - groupName: revenue
      values: [3, 7, 5]
`

func TestExportSVG(t *testing.T) {
	var buf bytes.Buffer
	err := exportChart(&buf, chartFile(t, lineChart), exportOptions{Format: "svg", Cols: 60, Rows: 20})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), `width="120"`)
}

func TestExportHTML(t *testing.T) {
	var buf bytes.Buffer
	err := exportChart(&buf, chartFile(t, lineChart), exportOptions{Format: "HTML", Cols: 60, Rows: 20})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), "sales")
}

func TestExportVectorChartHasNoHTML(t *testing.T) {
	p := chartFile(t, "type: fulfillment\ndata:\n  chartValueGroups:\n    - values: [30]\n    - values: [120]\n")
	err := exportChart(&bytes.Buffer{}, p, exportOptions{Format: "html", Cols: 40, Rows: 10})
	assert.ErrorContains(t, err, "no html rendering")

	var buf bytes.Buffer
	require.NoError(t, exportChart(&buf, p, exportOptions{Format: "svg", Cols: 40, Rows: 10}))
	assert.Contains(t, buf.String(), "25%")
}

func TestExportErrors(t *testing.T) {
	p := chartFile(t, lineChart)
	assert.ErrorContains(t, exportChart(&bytes.Buffer{}, p, exportOptions{Format: "png"}), "unknown format")

	empty := chartFile(t, "type: line\n")
	assert.ErrorIs(t, exportChart(&bytes.Buffer{}, empty, exportOptions{Format: "svg", Cols: 40, Rows: 10}), errNotRendered)
}

func TestNewLogger(t *testing.T) {
	l, closer, err := newLogger(config.LoggingConfig{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.NoError(t, closer())

	path := filepath.Join(t.TempDir(), "chartui.log")
	l, closer, err = newLogger(config.LoggingConfig{Level: "warn", File: path})
	require.NoError(t, err)
	l.Info("dropped")
	l.Warn("kept")
	require.NoError(t, closer())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dropped")
	assert.Contains(t, string(b), "kept")

	_, _, err = newLogger(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}
