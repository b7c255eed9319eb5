package surface

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadGeometry is returned for paths with non-finite coordinates.
var ErrBadGeometry = errors.New("bad geometry")

type Point struct {
	X, Y float64
}

type segKind int

const (
	segMove segKind = iota
	segLine
	segArc
	segClose
)

type segment struct {
	kind   segKind
	p      Point
	c      Point
	r      float64
	a0, a1 float64
}

// Path is a vector path in scene units. Angles are radians, measured
// clockwise from the positive x axis (screen coordinates, y down).
type Path struct {
	segs []segment
	cur  Point
	open bool
}

func NewPath() *Path { return &Path{} }

func (p *Path) MoveTo(x, y float64) *Path {
	p.segs = append(p.segs, segment{kind: segMove, p: Point{x, y}})
	p.cur = Point{x, y}
	p.open = true
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	if !p.open {
		return p.MoveTo(x, y)
	}
	p.segs = append(p.segs, segment{kind: segLine, p: Point{x, y}})
	p.cur = Point{x, y}
	return p
}

// Arc continues the path along a circle from angle a0 to a1. A line is drawn
// to the arc start first, or a new subpath begins there.
func (p *Path) Arc(cx, cy, r, a0, a1 float64) *Path {
	start := Point{cx + r*math.Cos(a0), cy + r*math.Sin(a0)}
	if !p.open {
		p.MoveTo(start.X, start.Y)
	} else if start != p.cur {
		p.LineTo(start.X, start.Y)
	}
	end := Point{cx + r*math.Cos(a1), cy + r*math.Sin(a1)}
	p.segs = append(p.segs, segment{kind: segArc, p: end, c: Point{cx, cy}, r: r, a0: a0, a1: a1})
	p.cur = end
	return p
}

func (p *Path) Close() *Path {
	if p.open {
		p.segs = append(p.segs, segment{kind: segClose})
		p.open = false
	}
	return p
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool { return p == nil || len(p.segs) == 0 }

// Validate reports ErrBadGeometry for NaN or infinite values.
func (p *Path) Validate() error {
	bad := func(f float64) bool { return math.IsNaN(f) || math.IsInf(f, 0) }
	for i, s := range p.segs {
		if bad(s.p.X) || bad(s.p.Y) || bad(s.c.X) || bad(s.c.Y) || bad(s.r) || bad(s.a0) || bad(s.a1) {
			return fmt.Errorf("%w: segment %d", ErrBadGeometry, i)
		}
	}
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// String renders the path as SVG path data.
func (p *Path) String() string {
	var b strings.Builder
	for _, s := range p.segs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch s.kind {
		case segMove:
			fmt.Fprintf(&b, "M%s %s", num(s.p.X), num(s.p.Y))
		case segLine:
			fmt.Fprintf(&b, "L%s %s", num(s.p.X), num(s.p.Y))
		case segArc:
			large, sweep := 0, 1
			if math.Abs(s.a1-s.a0) > math.Pi {
				large = 1
			}
			if s.a1 < s.a0 {
				sweep = 0
			}
			fmt.Fprintf(&b, "A%s %s 0 %d %d %s %s", num(s.r), num(s.r), large, sweep, num(s.p.X), num(s.p.Y))
		case segClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten approximates arcs with segments no longer than step.
func (p *Path) Flatten(step float64) []Polyline {
	if step <= 0 {
		step = 1
	}
	var out []Polyline
	var cur *Polyline
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			out = append(out, Polyline{Points: []Point{s.p}})
			cur = &out[len(out)-1]
		case segLine:
			if cur != nil {
				cur.Points = append(cur.Points, s.p)
			}
		case segArc:
			if cur == nil {
				continue
			}
			n := int(math.Ceil(math.Abs(s.a1-s.a0) * s.r / step))
			if n < 2 {
				n = 2
			}
			for i := 1; i <= n; i++ {
				a := s.a0 + (s.a1-s.a0)*float64(i)/float64(n)
				cur.Points = append(cur.Points, Point{s.c.X + s.r*math.Cos(a), s.c.Y + s.r*math.Sin(a)})
			}
		case segClose:
			if cur != nil {
				cur.Closed = true
			}
			cur = nil
		}
	}
	return out
}

// Rect returns a closed rectangle path. Negative sizes are normalized.
func Rect(x, y, w, h float64) *Path {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return NewPath().MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Sector returns an annular sector between radii inner and outer. With inner
// zero it is a pie slice.
func Sector(cx, cy, inner, outer, a0, a1 float64) *Path {
	p := NewPath()
	if inner <= 0 {
		p.MoveTo(cx, cy)
		p.Arc(cx, cy, outer, a0, a1)
		return p.Close()
	}
	p.Arc(cx, cy, outer, a0, a1)
	p.Arc(cx, cy, inner, a1, a0)
	return p.Close()
}

// Circle returns a closed circle path, as two half arcs so that the SVG
// form has distinct arc endpoints.
func Circle(cx, cy, r float64) *Path {
	return NewPath().Arc(cx, cy, r, 0, math.Pi).Arc(cx, cy, r, math.Pi, 2*math.Pi).Close()
}

// Ring returns the area between two concentric circles.
func Ring(cx, cy, inner, outer float64) *Path {
	p := Circle(cx, cy, outer)
	if inner > 0 {
		p.Arc(cx, cy, inner, 2*math.Pi, math.Pi).Arc(cx, cy, inner, math.Pi, 0).Close()
	}
	return p
}

// Polygon returns a closed path through pts.
func Polygon(pts []Point) *Path {
	p := NewPath()
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	return p.Close()
}

// Line returns an open polyline path through pts.
func Line(pts []Point) *Path {
	p := NewPath()
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	return p
}
