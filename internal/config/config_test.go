package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartui/internal/chart"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chartui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, 16*time.Millisecond, cfg.UI.FrameInterval())
	assert.Equal(t, 100*time.Millisecond, cfg.UI.Debounce())
	assert.Equal(t, 600, cfg.Chart.AnimationMS)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.File)
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, `
ui:
  theme: light
  locale: de
  debounce_ms: 250
chart:
  tooltip_delay_ms: 50
logging:
  level: debug
  file: /tmp/chartui.log
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "de", cfg.UI.Locale)
	assert.Equal(t, 250*time.Millisecond, cfg.UI.Debounce())
	assert.Equal(t, 50, cfg.Chart.TooltipDelayMS)
	assert.Equal(t, 600, cfg.Chart.AnimationMS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/chartui.log", cfg.Logging.File)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "ui:\n  theme: light\n")
	t.Setenv("CHARTUI_UI_THEME", "dark")
	t.Setenv("CHARTUI_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"theme":    "ui:\n  theme: neon\n",
		"interval": "ui:\n  frame_interval_ms: 0\n",
		"negative": "chart:\n  animation_ms: -5\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestChartConfigApply(t *testing.T) {
	c := ChartConfig{AnimationMS: 300, TooltipDelayMS: 20}

	cfg := chart.Defaults(chart.Bar)
	c.Apply(&cfg)
	assert.Equal(t, 300*time.Millisecond, cfg.Options.AnimationDuration())
	assert.Equal(t, 20*time.Millisecond, cfg.Options.TooltipDelay())

	cfg = chart.Defaults(chart.Bar)
	cfg.Options.Animation.Duration = chart.Ptr(900)
	c.Apply(&cfg)
	assert.Equal(t, 900*time.Millisecond, cfg.Options.AnimationDuration())
}

func TestChartConfigApplyZeroDisablesAnimation(t *testing.T) {
	cfg := chart.Defaults(chart.Line)
	ChartConfig{AnimationMS: 0, TooltipDelayMS: 0}.Apply(&cfg)

	cfg, err := chart.Resolve(cfg)
	require.NoError(t, err)
	assert.Zero(t, cfg.Options.AnimationDuration())
	assert.Zero(t, cfg.Options.TooltipDelay())
}
