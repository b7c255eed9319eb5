package chart

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a chart type name is not recognized.
var ErrUnknownType = errors.New("unknown chart type")

// Type is the closed set of chart kinds.
type Type int

const (
	Unknown Type = iota
	Pie
	Doughnut
	PolarArea
	Radar
	Bar
	BarHorizontal
	Line
	ComboBarLine
	Scatter
	Bubble
	Fulfillment
	Speedo
	Salesfunnel
)

var typeNames = map[Type]string{
	Pie:           "pie",
	Doughnut:      "doughnut",
	PolarArea:     "polarArea",
	Radar:         "radar",
	Bar:           "bar",
	BarHorizontal: "bar_horizontal",
	Line:          "line",
	ComboBarLine:  "combo_bar_line",
	Scatter:       "scatter",
	Bubble:        "bubble",
	Fulfillment:   "fulfillment",
	Speedo:        "speedo",
	Salesfunnel:   "salesfunnel",
}

// Types lists every known chart kind in declaration order.
func Types() []Type {
	out := make([]Type, 0, len(typeNames))
	for t := Pie; t <= Salesfunnel; t++ {
		out = append(out, t)
	}
	return out
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseType resolves a chart type name as used in chart files.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func (t Type) MarshalText() ([]byte, error) {
	if t == Unknown {
		return []byte{}, nil
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = Unknown
		return nil
	}
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// IsRadial reports kinds drawn as segments around a center.
func (t Type) IsRadial() bool {
	return t == Pie || t == Doughnut || t == PolarArea || t == Radar
}

// IsCartesian reports kinds with x/y scales.
func (t Type) IsCartesian() bool {
	switch t {
	case Bar, BarHorizontal, Line, ComboBarLine, Scatter, Bubble:
		return true
	}
	return false
}

// IsVector reports kinds that draw their own geometry instead of using the engine.
func (t Type) IsVector() bool {
	return t == Fulfillment || t == Speedo || t == Salesfunnel
}
