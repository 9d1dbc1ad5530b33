package pipeline

import (
	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/render"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// GenerateLayout computes a layout document for any visualization type.
// This is the unified entry point for generating serializable layout data.
//
// Treemap layouts carry positioned cells; nodelink layouts carry the DOT
// string for Graphviz. The dataset is sorted in place by descending value,
// which the squarified algorithm requires.
func GenerateLayout(d *dataset.Dataset, opts Options) (mosaic.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return mosaic.Layout{}, err
	}

	if opts.IsNodelink() {
		return generateNodelinkLayout(d, opts), nil
	}
	return generateTreemapLayout(d, opts)
}

func generateTreemapLayout(d *dataset.Dataset, opts Options) (mosaic.Layout, error) {
	d.SortDescending()

	l := mosaic.Layout{
		VizType: mosaic.VizTypeTreemap,
		Name:    d.Name,
		Width:   opts.Width,
		Height:  opts.Height,
		Inset:   opts.Inset,
	}

	if d.HasChildren() {
		cells, err := nestedCells(d, opts)
		if err != nil {
			return mosaic.Layout{}, err
		}
		l.Cells = cells
		return l, nil
	}

	cells, err := flatCells(d, opts)
	if err != nil {
		return mosaic.Layout{}, err
	}
	l.Cells = cells
	return l, nil
}

// flatCells squarifies a childless dataset directly. Items align with the
// returned rectangles by index, so labels and colors carry over one to one.
func flatCells(d *dataset.Dataset, opts Options) ([]mosaic.Cell, error) {
	target := treemap.NewExtent(opts.Width, opts.Height)

	normalized, err := treemap.Normalize(d.Values(), target)
	if err != nil {
		return nil, err
	}
	rects, err := treemap.Squarify(normalized, treemap.NewPoint(0, 0), target)
	if err != nil {
		return nil, err
	}

	cells := make([]mosaic.Cell, len(rects))
	for i, r := range rects {
		if opts.Inset > 0 {
			r = treemap.Pad(r, opts.Inset)
		}
		item := d.Items[i]
		cells[i] = mosaic.Cell{
			Label:  item.Label,
			Value:  item.Value,
			Color:  item.Color,
			X:      r.Origin.X,
			Y:      r.Origin.Y,
			Width:  r.Extent.Width,
			Height: r.Extent.Height,
			Leaf:   true,
		}
	}
	return cells, nil
}

// nestedCells lays out a hierarchical dataset. Placements come back in
// pre-order, so parents precede their children in the cell list and
// renderers can draw them back to front.
func nestedCells(d *dataset.Dataset, opts Options) ([]mosaic.Cell, error) {
	placements, err := treemap.SquarifyTree(
		d.Nodes(),
		treemap.NewPoint(0, 0),
		treemap.NewExtent(opts.Width, opts.Height),
		opts.Inset,
	)
	if err != nil {
		return nil, err
	}

	values := make(map[string]float64)
	colors := make(map[string]string)
	indexItems(d.Items, values, colors)

	cells := make([]mosaic.Cell, len(placements))
	for i, p := range placements {
		cells[i] = mosaic.Cell{
			Label:  p.Label,
			Value:  values[p.Label],
			Color:  colors[p.Label],
			X:      p.Rect.Origin.X,
			Y:      p.Rect.Origin.Y,
			Width:  p.Rect.Extent.Width,
			Height: p.Rect.Extent.Height,
			Depth:  p.Depth,
			Leaf:   p.Leaf,
		}
	}
	return cells, nil
}

// indexItems maps labels to effective values and colors. The first
// occurrence wins when labels repeat across the hierarchy.
func indexItems(items []dataset.Item, values map[string]float64, colors map[string]string) {
	for _, item := range items {
		if _, ok := values[item.Label]; !ok {
			values[item.Label] = dataset.EffectiveValue(item)
			if item.Color != "" {
				colors[item.Label] = item.Color
			}
		}
		indexItems(item.Children, values, colors)
	}
}

func generateNodelinkLayout(d *dataset.Dataset, opts Options) mosaic.Layout {
	return mosaic.Layout{
		VizType: mosaic.VizTypeNodelink,
		Name:    d.Name,
		Width:   opts.Width,
		Height:  opts.Height,
		DOT:     render.ToDOT(d, render.DOTOptions{Detailed: opts.ShowValues}),
	}
}
