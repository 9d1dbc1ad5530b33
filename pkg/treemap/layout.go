package treemap

import "math"

// sum adds up a slice of normalized weights.
func sum(weights []float64) float64 {
	var s float64
	for _, w := range weights {
		s += w
	}
	return s
}

// layoutStrip lays out a single strip of already-normalized weights inside
// target. When the target is at least as wide as it is tall the strip is a
// vertical band along the left edge: every rectangle shares the band's
// width (sum/height) and the weights divide the target height top to
// bottom. Otherwise the strip is a horizontal band along the top edge with
// the roles of the axes swapped.
//
// Widths and heights are truncated to integers per rectangle. The shared
// band breadth is truncated once so the strip tiles exactly against the
// leftover rectangle computed by leftover.
func layoutStrip(weights []float64, origin Point, target Extent) []Rect {
	rects := make([]Rect, len(weights))
	pt := origin

	if target.Width >= target.Height {
		strip := sum(weights) / float64(target.Height)
		width := int(strip)
		for i, w := range weights {
			var h int
			if strip > 0 {
				h = int(w / strip)
			}
			rects[i] = Rect{Origin: pt, Extent: Extent{Width: width, Height: h}}
			pt = pt.Offset(0, h)
		}
		return rects
	}

	strip := sum(weights) / float64(target.Width)
	height := int(strip)
	for i, w := range weights {
		var wd int
		if strip > 0 {
			wd = int(w / strip)
		}
		rects[i] = Rect{Origin: pt, Extent: Extent{Width: wd, Height: height}}
		pt = pt.Offset(wd, 0)
	}
	return rects
}

// leftover returns the origin and extent of the portion of target not
// covered by a strip of the given weights, on the same orientation rule as
// layoutStrip. The covered breadth is the truncated strip breadth, so the
// strip and its leftover tile the target without overlap.
func leftover(weights []float64, origin Point, target Extent) (Point, Extent) {
	if target.Width >= target.Height {
		covered := int(sum(weights) / float64(target.Height))
		return origin.Offset(covered, 0), Extent{Width: target.Width - covered, Height: target.Height}
	}
	covered := int(sum(weights) / float64(target.Width))
	return origin.Offset(0, covered), Extent{Width: target.Width, Height: target.Height - covered}
}

// worstRatio returns the worst aspect-ratio distortion the given weights
// would produce if laid out as a single strip right now. A result of 1.0
// is a perfect square; larger is worse. Rectangles that truncate to a zero
// dimension count as infinitely bad so the driver never prefers them.
//
// The ratio is always re-derived from layoutStrip rather than computed
// separately, so the two cannot drift.
func worstRatio(weights []float64, origin Point, target Extent) float64 {
	worst := 1.0
	for _, r := range layoutStrip(weights, origin, target) {
		w, h := float64(r.Extent.Width), float64(r.Extent.Height)
		if w <= 0 || h <= 0 {
			return math.Inf(1)
		}
		ratio := math.Max(w/h, h/w)
		if ratio > worst {
			worst = ratio
		}
	}
	return worst
}
