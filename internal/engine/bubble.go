package engine

import "math"

// BubbleScale maps raw radii (sqrt of the size value) to screen radii as
// Offset + Factor·r.
type BubbleScale struct {
	Factor, Offset float64
}

func (s BubbleScale) Apply(r float64) float64 {
	return s.Offset + s.Factor*r
}

// SolveBubbleScale returns the scale that maps maxR to maxSize and keeps minR
// at least minSize. maxSize is clamped to a sixth of the smaller side of area
// when area is known. Equal radii get a fixed offset.
func SolveBubbleScale(minR, maxR, maxSize, minSize float64, area Rect) BubbleScale {
	if area.W > 0 && area.H > 0 {
		maxSize = math.Min(maxSize, math.Min(area.W, area.H)/6)
	}
	minSize = math.Min(minSize, maxSize)
	if maxR <= 0 || maxR == minR {
		return BubbleScale{Offset: maxSize}
	}
	s := BubbleScale{Factor: maxSize / maxR}
	if minSize > 0 && s.Apply(minR) < minSize {
		// offset + factor·minR = minSize, offset + factor·maxR = maxSize
		s.Factor = (maxSize - minSize) / (maxR - minR)
		s.Offset = minSize - s.Factor*minR
	}
	return s
}

// ScaleBubbles sets R on every point of the visible datasets from the
// square root of its Z value.
func ScaleBubbles(datasets []*Dataset, maxSize, minSize float64, area Rect) {
	minR, maxR := math.Inf(1), math.Inf(-1)
	for _, ds := range datasets {
		if ds.Hidden {
			continue
		}
		for _, p := range ds.Points {
			r := math.Sqrt(math.Abs(p.Z))
			minR = math.Min(minR, r)
			maxR = math.Max(maxR, r)
		}
	}
	if math.IsInf(minR, 1) {
		return
	}
	s := SolveBubbleScale(minR, maxR, maxSize, minSize, area)
	for _, ds := range datasets {
		for i := range ds.Points {
			ds.Points[i].R = s.Apply(math.Sqrt(math.Abs(ds.Points[i].Z)))
		}
	}
}
