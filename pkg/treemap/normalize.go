package treemap

import "github.com/matzehuels/mosaic/pkg/errors"

// Normalize rescales raw weights into area units that sum to the target
// rectangle's area. Relative proportions between weights are preserved
// exactly; the output sums to target.Area() up to floating-point rounding.
//
// An empty input returns an empty (nil) slice. A non-empty input whose
// weights sum to zero, or any negative weight, fails with INVALID_INPUT:
// a non-positive total makes the scale factor undefined.
func Normalize(weights []float64, target Extent) ([]float64, error) {
	if len(weights) == 0 {
		return nil, nil
	}

	var total float64
	for i, w := range weights {
		if w < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "weight %d is negative (%v)", i, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "weights sum to %v, need a positive total", total)
	}

	area := float64(target.Area())
	normalized := make([]float64, len(weights))
	for i, w := range weights {
		normalized[i] = w * area / total
	}
	return normalized, nil
}
