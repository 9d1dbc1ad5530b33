package treemap

import "sort"

// Node is one item of a weight hierarchy. Leaf nodes carry their own
// weight; interior nodes weigh their own weight plus everything below them.
type Node struct {
	Label    string
	Weight   float64
	Children []Node
}

// EffectiveWeight returns the node's own weight plus the effective weights
// of all its children.
func (n Node) EffectiveWeight() float64 {
	w := n.Weight
	for _, c := range n.Children {
		w += c.EffectiveWeight()
	}
	return w
}

// Placement is one positioned node of a nested layout.
type Placement struct {
	Label string
	Rect  Rect
	Depth int
	Leaf  bool
}

// SquarifyTree lays out a hierarchy of weighted nodes as a nested mosaic.
// Each sibling group is squarified into its parent's rectangle shrunk by
// [Pad] with the given inset; children recurse inside their own rectangle.
// Placements are returned in pre-order, parents before children, with
// Depth starting at 0 for the top level.
//
// Unlike [Squarify], which requires pre-sorted input, SquarifyTree sorts
// every sibling group by descending effective weight itself (stable, so
// equal-weight siblings keep their relative order). Nodes whose rectangle
// truncates to a zero dimension are still emitted, but their children are
// skipped: there is no area left to subdivide.
func SquarifyTree(nodes []Node, origin Point, target Extent, inset int) ([]Placement, error) {
	var placements []Placement
	if err := squarifyLevel(nodes, origin, target, inset, 0, &placements); err != nil {
		return nil, err
	}
	return placements, nil
}

func squarifyLevel(nodes []Node, origin Point, target Extent, inset, depth int, out *[]Placement) error {
	if len(nodes) == 0 {
		return nil
	}

	ordered := make([]Node, len(nodes))
	copy(ordered, nodes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EffectiveWeight() > ordered[j].EffectiveWeight()
	})

	weights := make([]float64, len(ordered))
	for i, n := range ordered {
		weights[i] = n.EffectiveWeight()
	}

	normalized, err := Normalize(weights, target)
	if err != nil {
		return err
	}
	rects, err := Squarify(normalized, origin, target)
	if err != nil {
		return err
	}

	for i, n := range ordered {
		*out = append(*out, Placement{
			Label: n.Label,
			Rect:  rects[i],
			Depth: depth,
			Leaf:  len(n.Children) == 0,
		})

		if len(n.Children) == 0 {
			continue
		}
		inner := Pad(rects[i], inset)
		if !inner.Extent.Positive() {
			continue
		}
		if err := squarifyLevel(n.Children, inner.Origin, inner.Extent, inset, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}
