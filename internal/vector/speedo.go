package vector

import (
	"fmt"
	"math"
	"time"

	"chartui/internal/anim"
	"chartui/internal/chart"
	"chartui/internal/render"
	"chartui/internal/surface"
)

// Band colors of the speedo scale, from good to bad.
const (
	speedoGreen  = "#228833"
	speedoYellow = "#CCBB44"
	speedoOrange = "#EE8866"
	speedoRed    = "#EE6677"
)

// segmentsPerPart is the number of scale segments in one colored part.
const segmentsPerPart = 5

// SpeedoParts returns the band colors for a green area position: four parts
// for the left and right layouts, seven centered ones otherwise.
func SpeedoParts(greenArea string) []string {
	switch greenArea {
	case chart.GreenLeft:
		return []string{speedoGreen, speedoYellow, speedoOrange, speedoRed}
	case chart.GreenRight:
		return []string{speedoRed, speedoOrange, speedoYellow, speedoGreen}
	}
	return []string{speedoRed, speedoOrange, speedoYellow, speedoGreen, speedoYellow, speedoOrange, speedoRed}
}

// SnapToSegment rounds f to the nearest segment boundary.
func SnapToSegment(f float64, segments int) float64 {
	if segments <= 0 {
		return clamp01(f)
	}
	n := float64(segments)
	return math.Round(clamp01(f)*n) / n
}

// Speedo draws a semicircular gauge. Group 0 holds [min, value, max].
type Speedo struct {
	base
	pointer float64
}

func NewSpeedo(ctx *render.Context) *Speedo {
	return &Speedo{base: base{ctx: ctx}}
}

func (s *Speedo) Valid(d *chart.Data) bool {
	return len(d.Groups) > 0 && d.Groups[0].Len() >= 3
}

func (s *Speedo) parts() []string {
	return SpeedoParts(s.ctx.Config.Options.Speedo.GreenAreaPosition)
}

func (s *Speedo) segments() int {
	return len(s.parts()) * segmentsPerPart
}

func (s *Speedo) reading() (lo, value, hi float64) {
	if len(s.ctx.Data.Groups) == 0 || s.ctx.Data.Groups[0].Len() < 3 {
		return 0, 0, 0
	}
	g := s.ctx.Data.Groups[0]
	return g.Value(0), g.Value(1), g.Value(2)
}

func (s *Speedo) target() float64 {
	lo, v, hi := s.reading()
	if hi == lo {
		return 0
	}
	return SnapToSegment((v-lo)/(hi-lo), s.segments())
}

// Pointer returns the drawn pointer position as a fraction of the scale.
func (s *Speedo) Pointer() float64 { return s.pointer }

func (s *Speedo) Draw(d time.Duration) error {
	return s.transition(0, s.target(), d)
}

func (s *Speedo) UpdateData(d time.Duration) error {
	return s.transition(s.pointer, s.target(), d)
}

func (s *Speedo) transition(from, to float64, d time.Duration) error {
	return s.animate(d, func(p float64) error {
		return s.drawAt(anim.Lerp(from, to, p))
	})
}

func (s *Speedo) Redraw() error {
	return s.drawAt(s.target())
}

func (s *Speedo) Erase(d time.Duration, done func(stopped bool)) {
	from := s.pointer
	s.erase(d, func(p float64) error {
		return s.drawAt(anim.Lerp(from, 0, p))
	}, s.clear, done)
}

func (s *Speedo) clear() {
	for i := 0; i < s.segments(); i++ {
		s.ctx.Scene.Remove(segmentID(i))
	}
	for _, id := range []string{"speedo-pointer", "speedo-hub", "speedo-min", "speedo-max", "speedo-value"} {
		s.ctx.Scene.Remove(id)
	}
	s.pointer = 0
}

func segmentID(i int) string { return fmt.Sprintf("speedo-segment-%d", i) }

// drawAt redraws every segment; a segment is filled when it lies below the
// pointer.
func (s *Speedo) drawAt(pointer float64) error {
	s.pointer = pointer
	w, h := s.ctx.Scene.Size()
	cx, cy := w/2, h*0.8
	outer := math.Min(w/2, h*0.75)
	inner := outer * 0.7
	parts := s.parts()
	n := s.segments()
	gap := math.Pi / float64(n) * 0.08
	for i := 0; i < n; i++ {
		a0 := math.Pi + math.Pi*float64(i)/float64(n) + gap
		a1 := math.Pi + math.Pi*float64(i+1)/float64(n) - gap
		color := parts[i/segmentsPerPart]
		fill := color
		if float64(i+1)/float64(n) > pointer+1e-9 {
			fill = s.mutedColor(0.25)
		}
		p := surface.Sector(cx, cy, inner, outer, a0, a1)
		if err := p.Validate(); err != nil {
			return err
		}
		s.ctx.Scene.Put(&surface.Shape{ID: segmentID(i), Class: "speedo-segment", Path: p, Fill: fill})
	}
	a := math.Pi + math.Pi*clamp01(pointer)
	tip := surface.Point{X: cx + outer*0.95*math.Cos(a), Y: cy + outer*0.95*math.Sin(a)}
	s.ctx.Scene.Put(&surface.Shape{
		ID:     "speedo-pointer",
		Path:   surface.Line([]surface.Point{{X: cx, Y: cy}, tip}),
		Stroke: s.textColor(),
	})
	s.ctx.Scene.Put(&surface.Shape{
		ID:   "speedo-hub",
		Path: surface.Circle(cx, cy, outer*0.06),
		Fill: s.textColor(),
	})
	lo, v, hi := s.reading()
	label := func(id string, x float64, value float64, anchor surface.Anchor) {
		s.ctx.Scene.PutText(&surface.Text{
			ID:     id,
			X:      x,
			Y:      cy + 4,
			Value:  s.ctx.Format.Abbreviate(value),
			Color:  s.textColor(),
			Anchor: anchor,
		})
	}
	label("speedo-min", cx-outer, lo, surface.AnchorStart)
	label("speedo-max", cx+outer, hi, surface.AnchorEnd)
	label("speedo-value", cx, v, surface.AnchorMiddle)
	return nil
}
