// Package surface is the drawing area a renderer owns: a retained scene of
// paths and texts, plus its terminal (braille) and SVG outputs.
package surface

// Anchor aligns a text horizontally around its position.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Shape is a filled and/or stroked path.
type Shape struct {
	ID     string
	Class  string
	Path   *Path
	Fill   string
	Stroke string
	Hidden bool
}

// Text is a label at a scene position.
type Text struct {
	ID     string
	Class  string
	X, Y   float64
	Value  string
	Color  string
	Anchor Anchor
	Hidden bool
}

// Scene is an ordered set of shapes and texts. Units are micro pixels of the
// terminal grid (2 per cell horizontally, 4 vertically).
type Scene struct {
	w, h    float64
	shapes  []*Shape
	texts   []*Text
	version int
}

func NewScene(w, h float64) *Scene {
	return &Scene{w: w, h: h}
}

func (s *Scene) Size() (w, h float64) { return s.w, s.h }

// Resize changes the scene size; content is kept.
func (s *Scene) Resize(w, h float64) {
	if s.w == w && s.h == h {
		return
	}
	s.w, s.h = w, h
	s.version++
}

// Version changes whenever the scene content changes.
func (s *Scene) Version() int { return s.version }

// Clear removes all content.
func (s *Scene) Clear() {
	s.shapes = nil
	s.texts = nil
	s.version++
}

// Put adds sh, replacing a shape with the same ID in place.
func (s *Scene) Put(sh *Shape) {
	s.version++
	if sh.ID != "" {
		for i, o := range s.shapes {
			if o.ID == sh.ID {
				s.shapes[i] = sh
				return
			}
		}
	}
	s.shapes = append(s.shapes, sh)
}

// PutText adds t, replacing a text with the same ID in place.
func (s *Scene) PutText(t *Text) {
	s.version++
	if t.ID != "" {
		for i, o := range s.texts {
			if o.ID == t.ID {
				s.texts[i] = t
				return
			}
		}
	}
	s.texts = append(s.texts, t)
}

func (s *Scene) Shape(id string) *Shape {
	for _, sh := range s.shapes {
		if sh.ID == id {
			return sh
		}
	}
	return nil
}

func (s *Scene) Text(id string) *Text {
	for _, t := range s.texts {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Remove deletes the shape or text with id.
func (s *Scene) Remove(id string) {
	for i, sh := range s.shapes {
		if sh.ID == id {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			s.version++
			return
		}
	}
	for i, t := range s.texts {
		if t.ID == id {
			s.texts = append(s.texts[:i], s.texts[i+1:]...)
			s.version++
			return
		}
	}
}

// Shapes returns the shapes in drawing order.
func (s *Scene) Shapes() []*Shape { return s.shapes }

// Texts returns the texts in drawing order.
func (s *Scene) Texts() []*Text { return s.texts }

// Touch marks the scene as changed after shapes were mutated in place.
func (s *Scene) Touch() { s.version++ }
