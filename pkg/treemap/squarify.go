package treemap

import "github.com/matzehuels/mosaic/pkg/errors"

// Squarify partitions target into one rectangle per weight, with areas
// proportional to the weights and aspect ratios kept as close to 1:1 as the
// ordering allows. Weights must be normalized (summing to target.Area(),
// see [Normalize]) and sorted in descending order; neither precondition is
// re-validated. Output order matches input order.
//
// An empty input yields an empty result. A target with a non-positive
// dimension while weights remain fails with DEGENERATE_RECTANGLE; no
// partial result is returned.
//
// The driver runs as a loop over an explicit work position instead of call
// recursion, so pathological inputs with thousands of weights cannot
// exhaust the stack. Each iteration consumes at least one weight, which
// bounds the loop by the input length.
func Squarify(weights []float64, origin Point, target Extent) ([]Rect, error) {
	if len(weights) == 0 {
		return nil, nil
	}

	rects := make([]Rect, 0, len(weights))
	remaining := weights
	pt, ext := origin, target

	for len(remaining) > 0 {
		// A zero-sum remainder has no area to claim. Zero weights are
		// valid input, so emit zero-extent rectangles to keep one output
		// per weight rather than failing on the exhausted target.
		if sum(remaining) == 0 {
			for range remaining {
				rects = append(rects, Rect{Origin: pt})
			}
			break
		}

		if !ext.Positive() {
			return nil, errors.New(errors.ErrCodeDegenerateRect,
				"cannot lay out %d remaining weights into %s target", len(remaining), ext)
		}

		// A single remaining weight always fills the whole target.
		if len(remaining) == 1 {
			rects = append(rects, Rect{Origin: pt, Extent: ext})
			break
		}

		n := stripLen(remaining, pt, ext)
		strip := remaining[:n]
		rects = append(rects, layoutStrip(strip, pt, ext)...)
		pt, ext = leftover(strip, pt, ext)
		remaining = remaining[n:]
	}

	return rects, nil
}

// stripLen decides how many leading weights enter the current strip: the
// prefix keeps growing as long as adding the next weight does not strictly
// worsen the strip's worst aspect ratio. Ties grow the strip, favoring
// fewer, larger strips.
func stripLen(weights []float64, origin Point, target Extent) int {
	n := 1
	for n < len(weights) && worstRatio(weights[:n], origin, target) >= worstRatio(weights[:n+1], origin, target) {
		n++
	}
	return n
}
