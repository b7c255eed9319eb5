package chart

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter turns values into display text. It stands in for the host's
// locale services.
type Formatter interface {
	Format(v float64) string
	Abbreviate(v float64) string
}

type localeFormatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for the given BCP 47 locale tag.
func NewFormatter(locale string) Formatter {
	tag := language.Make(locale)
	if tag == language.Und {
		tag = language.English
	}
	return localeFormatter{p: message.NewPrinter(tag)}
}

func (f localeFormatter) Format(v float64) string {
	return f.p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Abbreviate shortens large values with k/M/G suffixes.
func (f localeFormatter) Abbreviate(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return f.p.Sprint(number.Decimal(v/1e9, number.MaxFractionDigits(1))) + "G"
	case abs >= 1e6:
		return f.p.Sprint(number.Decimal(v/1e6, number.MaxFractionDigits(1))) + "M"
	case abs >= 1e4:
		return f.p.Sprint(number.Decimal(v/1e3, number.MaxFractionDigits(1))) + "k"
	}
	return f.Format(v)
}
