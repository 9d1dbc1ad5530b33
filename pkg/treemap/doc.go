// Package treemap computes squarified treemap layouts.
//
// Given a descending-sorted sequence of non-negative weights and a target
// rectangle, [Squarify] partitions the rectangle into sub-rectangles whose
// areas are proportional to the weights while keeping each sub-rectangle's
// aspect ratio as close to 1:1 as the ordering allows. The algorithm follows
// Bruls, Huizing and van Wijk, "Squarified Treemaps" (2000).
//
// # Pipeline
//
// The typical call sequence is:
//
//	normalized, err := treemap.Normalize(weights, target)
//	rects, err := treemap.Squarify(normalized, origin, target)
//
// [Normalize] rescales raw weights into area units summing to the target
// rectangle's area. [Squarify] consumes normalized weights and emits one
// rectangle per weight, in input order. Callers must sort weights in
// descending order beforehand; unsorted input produces a valid but poorly
// squarified tiling rather than an error.
//
// [SquarifyTree] extends the flat layout to hierarchical data, nesting each
// node's children inside its (optionally padded) rectangle.
//
// # Geometry
//
// All emitted geometry is integer-valued with the y-axis growing downward,
// matching raster conventions. Fractional widths and heights are truncated
// per rectangle; the accumulated shortfall shows up as thin slivers at strip
// boundaries and is an accepted approximation, bounded by the number of
// items in a strip.
package treemap
