// Package config loads chartui settings from a YAML file and CHARTUI_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"chartui/internal/chart"
)

// EnvPrefix prefixes every environment override, e.g. CHARTUI_UI_THEME.
const EnvPrefix = "CHARTUI"

type Config struct {
	UI      UIConfig      `mapstructure:"ui"      yaml:"ui"`
	Chart   ChartConfig   `mapstructure:"chart"   yaml:"chart"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type UIConfig struct {
	Theme           string `mapstructure:"theme"             yaml:"theme"` // "light" or "dark"
	Locale          string `mapstructure:"locale"            yaml:"locale"`
	FrameIntervalMS int    `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms"`
	DebounceMS      int    `mapstructure:"debounce_ms"       yaml:"debounce_ms"`
	ChartDir        string `mapstructure:"chart_dir"         yaml:"chart_dir"`
}

// ChartConfig holds option defaults applied to charts that leave them unset.
type ChartConfig struct {
	AnimationMS    int `mapstructure:"animation_ms"     yaml:"animation_ms"`
	TooltipDelayMS int `mapstructure:"tooltip_delay_ms" yaml:"tooltip_delay_ms"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
	File  string `mapstructure:"file"  yaml:"file"`
}

func (c UIConfig) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

func (c UIConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Apply replaces the built-in animation duration and tooltip delay of cfg.
// Values a chart file sets to anything but the built-in default are kept.
// A configured 0 turns the feature off.
func (c ChartConfig) Apply(cfg *chart.Config) {
	def := chart.Defaults(cfg.Type).Options
	if d := cfg.Options.Animation.Duration; d == nil || *d == chart.Int(def.Animation.Duration) {
		cfg.Options.Animation.Duration = chart.Ptr(c.AnimationMS)
	}
	if d := cfg.Options.Plugins.Tooltip.Delay; d == nil || *d == chart.Int(def.Plugins.Tooltip.Delay) {
		cfg.Options.Plugins.Tooltip.Delay = chart.Ptr(c.TooltipDelayMS)
	}
}

// Load reads the config file at path, or searches ./chartui.yaml and
// ~/.chartui/chartui.yaml when path is empty. A missing file in the search
// path is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("chartui")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homeDir(), ".chartui"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.frame_interval_ms", 16)
	v.SetDefault("ui.debounce_ms", 100)
	v.SetDefault("ui.chart_dir", ".")

	v.SetDefault("chart.animation_ms", 600)
	v.SetDefault("chart.tooltip_delay_ms", 600)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

func (c *Config) validate() error {
	switch c.UI.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("config: unknown theme %q", c.UI.Theme)
	}
	if c.UI.FrameIntervalMS <= 0 {
		return fmt.Errorf("config: frame_interval_ms must be positive, got %d", c.UI.FrameIntervalMS)
	}
	if c.UI.DebounceMS < 0 || c.Chart.AnimationMS < 0 || c.Chart.TooltipDelayMS < 0 {
		return errors.New("config: durations must not be negative")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
