package surface

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"chartui/internal/theme"
)

// WriteSVG writes the scene as a standalone SVG document.
func WriteSVG(w io.Writer, s *Scene) error {
	width, height := s.Size()
	canvas := svg.New(w)
	canvas.Start(int(math.Ceil(width)), int(math.Ceil(height)))
	for _, sh := range s.Shapes() {
		if sh.Hidden || sh.Path.Empty() {
			continue
		}
		if err := sh.Path.Validate(); err != nil {
			return fmt.Errorf("shape %q: %w", sh.ID, err)
		}
		fill := "none"
		if sh.Fill != "" {
			fill = sh.Fill
		}
		style := "fill:" + fill + ";fill-rule:evenodd"
		if sh.Stroke != "" {
			style += ";stroke:" + sh.Stroke
		}
		attrs := []string{style}
		if sh.Class != "" {
			attrs = append(attrs, fmt.Sprintf(`class="%s"`, sh.Class))
		}
		canvas.Path(sh.Path.String(), attrs...)
	}
	for _, t := range s.Texts() {
		if t.Hidden || t.Value == "" {
			continue
		}
		anchor := "start"
		switch t.Anchor {
		case AnchorMiddle:
			anchor = "middle"
		case AnchorEnd:
			anchor = "end"
		}
		style := "font-family:sans-serif;font-size:8px;text-anchor:" + anchor
		if t.Color != "" {
			if c, a, err := theme.ParseColor(t.Color); err == nil {
				style += fmt.Sprintf(";fill:%s;fill-opacity:%g", c.Hex(), a)
			}
		}
		canvas.Text(int(math.Round(t.X)), int(math.Round(t.Y)), t.Value, style)
	}
	canvas.End()
	return nil
}
