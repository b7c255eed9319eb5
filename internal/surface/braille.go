package surface

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chartui/internal/theme"
)

type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	color [][]string
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, color: c}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, col string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	b.color[cy][cx] = col
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, col string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillEvenOdd fills rings with the even-odd rule per micro scanline, so
// holes (doughnut centers) stay empty.
func (b *brailleBuf) fillEvenOdd(rings [][][2]int, col string) {
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for _, ring := range rings {
			for i := 0; i < len(ring); i++ {
				a := ring[i]
				c := ring[(i+1)%len(ring)]
				if a[1] == c[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], c[1]
				x0, x1 := a[0], c[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				b.setPixel(xMic, yMic, col)
			}
		}
	}
}

// Rasterize draws the scene into cols x rows terminal cells. Colors are
// flattened over the theme background.
func Rasterize(s *Scene, cols, rows int, th *theme.Theme) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	br := newBrailleBuf(cols, rows)
	for _, sh := range s.Shapes() {
		if sh.Hidden || sh.Path.Empty() {
			continue
		}
		polys := sh.Path.Flatten(1.5)
		var rings [][][2]int
		for _, pl := range polys {
			var ring [][2]int
			for _, pt := range pl.Points {
				ring = append(ring, [2]int{int(math.Round(pt.X)), int(math.Round(pt.Y))})
			}
			if pl.Closed && len(ring) >= 3 {
				rings = append(rings, ring)
			}
			if sh.Stroke != "" || sh.Fill == "" {
				col := sh.Stroke
				if col == "" {
					col = sh.Fill
				}
				for i := 1; i < len(ring); i++ {
					br.drawLineMicro(ring[i-1][0], ring[i-1][1], ring[i][0], ring[i][1], col)
				}
				if pl.Closed && len(ring) > 2 {
					br.drawLineMicro(ring[len(ring)-1][0], ring[len(ring)-1][1], ring[0][0], ring[0][1], col)
				}
				if len(ring) == 1 {
					br.setPixel(ring[0][0], ring[0][1], col)
				}
			}
		}
		if sh.Fill != "" && len(rings) > 0 {
			br.fillEvenOdd(rings, sh.Fill)
		}
	}

	cells := make([][]rune, rows)
	colors := make([][]string, rows)
	for y := 0; y < rows; y++ {
		cells[y] = make([]rune, cols)
		colors[y] = make([]string, cols)
		for x := 0; x < cols; x++ {
			if mask := br.m[y][x]; mask == 0 {
				cells[y][x] = ' '
			} else {
				cells[y][x] = rune(0x2800 + int(mask))
				colors[y][x] = br.color[y][x]
			}
		}
	}
	for _, t := range s.Texts() {
		if t.Hidden || t.Value == "" {
			continue
		}
		runes := []rune(t.Value)
		cx := int(t.X / 2)
		cy := int(t.Y / 4)
		switch t.Anchor {
		case AnchorMiddle:
			cx -= len(runes) / 2
		case AnchorEnd:
			cx -= len(runes)
		}
		if cy < 0 || cy >= rows {
			continue
		}
		for i, r := range runes {
			x := cx + i
			if x < 0 || x >= cols {
				continue
			}
			cells[cy][x] = r
			colors[cy][x] = t.Color
		}
	}

	out := make([]string, rows)
	for y := 0; y < rows; y++ {
		out[y] = styleRow(cells[y], colors[y], th)
	}
	return out
}

// styleRow renders runs of equally colored cells with one style each.
func styleRow(cells []rune, colors []string, th *theme.Theme) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && colors[i] == colors[start] {
			continue
		}
		run := string(cells[start:i])
		if colors[start] == "" || th == nil {
			b.WriteString(run)
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(th.Lip(colors[start])).Render(run))
		}
		start = i
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
