package chart

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config selects the chart kind and its options.
type Config struct {
	Type    Type    `yaml:"type"`
	Options Options `yaml:"options,omitempty"`
}

// Options mirrors the generic engine's option tree plus per-kind sub-options.
// Fields left at their zero value take the kind's default when resolved.
// Pointer fields are set explicitly, so a pointer to zero is kept.
type Options struct {
	AutoColor             *bool  `yaml:"autoColor,omitempty"`
	ColorScheme           string `yaml:"colorScheme,omitempty"`
	MaxSegments           *int   `yaml:"maxSegments,omitempty"`
	Clickable             bool   `yaml:"clickable,omitempty"`
	Checkable             bool   `yaml:"checkable,omitempty"`
	OtherSegmentClickable bool   `yaml:"otherSegmentClickable,omitempty"`
	HandleResize          *bool  `yaml:"handleResize,omitempty"`

	Animation   AnimationOptions   `yaml:"animation,omitempty"`
	Scales      Scales             `yaml:"scales,omitempty"`
	Plugins     Plugins            `yaml:"plugins,omitempty"`
	Bubble      BubbleOptions      `yaml:"bubble,omitempty"`
	Fulfillment FulfillmentOptions `yaml:"fulfillment,omitempty"`
	Salesfunnel SalesfunnelOptions `yaml:"salesfunnel,omitempty"`
	Speedo      SpeedoOptions      `yaml:"speedo,omitempty"`
}

type AnimationOptions struct {
	// Duration in milliseconds. Zero disables animation.
	Duration *int `yaml:"duration,omitempty"`
}

type Scales struct {
	X Axis `yaml:"x,omitempty"`
	Y Axis `yaml:"y,omitempty"`
}

type Axis struct {
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
	BeginAtZero *bool    `yaml:"beginAtZero,omitempty"`
	Stacked     bool     `yaml:"stacked,omitempty"`
}

type Plugins struct {
	Legend     LegendOptions     `yaml:"legend,omitempty"`
	Tooltip    TooltipOptions    `yaml:"tooltip,omitempty"`
	DataLabels DataLabelsOptions `yaml:"datalabels,omitempty"`
}

type LegendOptions struct {
	Display   *bool  `yaml:"display,omitempty"`
	Position  string `yaml:"position,omitempty"`
	Clickable bool   `yaml:"clickable,omitempty"`
}

type TooltipOptions struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	// Delay in milliseconds before a hover tooltip appears.
	Delay *int `yaml:"delay,omitempty"`
}

type DataLabelsOptions struct {
	Display bool `yaml:"display,omitempty"`
}

type BubbleOptions struct {
	SizeOfLargestBubble float64 `yaml:"sizeOfLargestBubble,omitempty"`
	MinBubbleSize       float64 `yaml:"minBubbleSize,omitempty"`
}

type FulfillmentOptions struct {
	StartValue *float64 `yaml:"startValue,omitempty"`
}

type SalesfunnelOptions struct {
	Normalized         *bool   `yaml:"normalized,omitempty"`
	CalcConversionRate *bool   `yaml:"calcConversionRate,omitempty"`
	MinWidthRatio      float64 `yaml:"minWidthRatio,omitempty"`
}

// Green area positions of the speedo gauge.
const (
	GreenLeft   = "left"
	GreenCenter = "center"
	GreenRight  = "right"
)

type SpeedoOptions struct {
	GreenAreaPosition string `yaml:"greenAreaPosition,omitempty"`
}

// Bool returns *p, or def when p is nil.
func Bool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Int returns *p, or 0 when p is nil.
func Int(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

func (o Options) AutoColorEnabled() bool { return Bool(o.AutoColor, true) }
func (o Options) LegendDisplayed() bool { return Bool(o.Plugins.Legend.Display, true) }
func (o Options) TooltipEnabled() bool { return Bool(o.Plugins.Tooltip.Enabled, true) }
func (o Options) HandleResizeEnabled() bool { return Bool(o.HandleResize, true) }

// AnimationDuration returns the configured duration.
func (o Options) AnimationDuration() time.Duration {
	return time.Duration(Int(o.Animation.Duration)) * time.Millisecond
}

// TooltipDelay is the hover time before a tooltip shows.
func (o Options) TooltipDelay() time.Duration {
	return time.Duration(Int(o.Plugins.Tooltip.Delay)) * time.Millisecond
}

// SegmentLimit is the number of segments kept before collapsing, 0 for none.
func (o Options) SegmentLimit() int { return Int(o.MaxSegments) }

// Defaults returns the default configuration for a chart kind.
func Defaults(t Type) Config {
	o := Options{
		AutoColor:    Ptr(true),
		ColorScheme:  "default",
		HandleResize: Ptr(true),
		Animation:    AnimationOptions{Duration: Ptr(600)},
		Plugins: Plugins{
			Legend:  LegendOptions{Display: Ptr(true), Position: "bottom"},
			Tooltip: TooltipOptions{Enabled: Ptr(true), Delay: Ptr(600)},
		},
	}
	switch t {
	case Pie, Doughnut:
		o.MaxSegments = Ptr(5)
		o.Plugins.Legend.Position = "right"
	case PolarArea, Radar:
		o.Plugins.Legend.Position = "right"
	case Bar, BarHorizontal, ComboBarLine:
		o.Scales.Y.BeginAtZero = Ptr(true)
	case Line:
		o.Scales.Y.BeginAtZero = Ptr(false)
	case Bubble:
		o.Bubble = BubbleOptions{SizeOfLargestBubble: 30, MinBubbleSize: 4}
	case Fulfillment, Speedo, Salesfunnel:
		o.Plugins.Legend.Display = Ptr(false)
		o.Plugins.Tooltip.Enabled = Ptr(false)
		o.Salesfunnel = SalesfunnelOptions{
			Normalized:         Ptr(true),
			CalcConversionRate: Ptr(true),
			MinWidthRatio:      0.3,
		}
		o.Speedo.GreenAreaPosition = GreenCenter
	}
	return Config{Type: t, Options: o}
}

// Resolve deep-merges c over the defaults of its type. Zero-valued option
// fields keep the default; non-nil pointers replace it.
func Resolve(c Config) (Config, error) {
	def := Defaults(c.Type)
	b, err := yaml.Marshal(c.Options)
	if err != nil {
		return Config{}, fmt.Errorf("resolve options: %w", err)
	}
	if err := yaml.Unmarshal(b, &def.Options); err != nil {
		return Config{}, fmt.Errorf("resolve options: %w", err)
	}
	return def, nil
}
