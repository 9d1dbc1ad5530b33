package treemap

// Pad shrinks a rectangle by inset on each side, leaving it unchanged when
// either resulting dimension would drop to zero or below. It is a stateless
// per-rectangle transform applied after layout; padded rectangles never
// feed back into the algorithm.
func Pad(r Rect, inset int) Rect {
	if inset <= 0 {
		return r
	}
	w := r.Extent.Width - 2*inset
	h := r.Extent.Height - 2*inset
	if w <= 0 || h <= 0 {
		return r
	}
	return Rect{
		Origin: r.Origin.Offset(inset, inset),
		Extent: Extent{Width: w, Height: h},
	}
}
