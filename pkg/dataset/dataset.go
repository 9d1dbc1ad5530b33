// Package dataset loads weighted items for treemap layout from local files.
//
// A dataset is a flat or hierarchical list of labeled values, optionally
// carrying display colors. Loaders exist for JSON, CSV, and TOML; the
// format is inferred from the file extension or forced explicitly.
//
// Loading sorts items by descending value, which is the precondition the
// layout core expects, and rejects negative values up front so layout code
// never sees them.
package dataset

import (
	"sort"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Item is a single weighted entry. Value is the weight used for area
// allocation; Children, when present, nest inside the item's rectangle.
type Item struct {
	Label    string  `json:"label" toml:"label"`
	Value    float64 `json:"value" toml:"value"`
	Color    string  `json:"color,omitempty" toml:"color"`
	Children []Item  `json:"children,omitempty" toml:"children"`
}

// Dataset is a named collection of items.
type Dataset struct {
	Name  string `json:"name,omitempty" toml:"name"`
	Items []Item `json:"items" toml:"items"`
}

// Validate checks that every value in the dataset is non-negative and that
// at least one value is positive. Zero-valued leaf items are dropped: they
// claim no area and the layout core treats a zero-sum input as a caller
// error.
func (d *Dataset) Validate() error {
	if len(d.Items) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dataset %q has no items", d.Name)
	}
	var total float64
	var err error
	if d.Items, total, err = validateItems(d.Items); err != nil {
		return err
	}
	if total <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dataset %q has no positive values", d.Name)
	}
	return nil
}

func validateItems(items []Item) ([]Item, float64, error) {
	kept := items[:0]
	var total float64
	for _, it := range items {
		if it.Value < 0 {
			return nil, 0, errors.New(errors.ErrCodeInvalidInput,
				"item %q has negative value %v", it.Label, it.Value)
		}
		var childTotal float64
		var err error
		if it.Children, childTotal, err = validateItems(it.Children); err != nil {
			return nil, 0, err
		}
		if it.Value == 0 && len(it.Children) == 0 {
			continue
		}
		total += it.Value + childTotal
		kept = append(kept, it)
	}
	return kept, total, nil
}

// SortDescending stable-sorts items (and all nested children) by
// descending effective value, the order the layout core expects.
func (d *Dataset) SortDescending() {
	sortItems(d.Items)
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return EffectiveValue(items[i]) > EffectiveValue(items[j])
	})
	for i := range items {
		sortItems(items[i].Children)
	}
}

// EffectiveValue returns the item's own value plus the effective values of
// all its children, the weight the layout allocates area by.
func EffectiveValue(it Item) float64 {
	v := it.Value
	for _, c := range it.Children {
		v += EffectiveValue(c)
	}
	return v
}

// HasChildren reports whether any item nests children, i.e. whether the
// dataset needs the hierarchical layout path.
func (d *Dataset) HasChildren() bool {
	for _, it := range d.Items {
		if len(it.Children) > 0 {
			return true
		}
	}
	return false
}

// Values returns the top-level item values, in item order.
func (d *Dataset) Values() []float64 {
	values := make([]float64, len(d.Items))
	for i, it := range d.Items {
		values[i] = it.Value
	}
	return values
}

// Labels returns the top-level item labels, in item order.
func (d *Dataset) Labels() []string {
	labels := make([]string, len(d.Items))
	for i, it := range d.Items {
		labels[i] = it.Label
	}
	return labels
}

// Nodes converts the dataset into layout tree nodes.
func (d *Dataset) Nodes() []treemap.Node {
	return itemNodes(d.Items)
}

func itemNodes(items []Item) []treemap.Node {
	nodes := make([]treemap.Node, len(items))
	for i, it := range items {
		nodes[i] = treemap.Node{
			Label:    it.Label,
			Weight:   it.Value,
			Children: itemNodes(it.Children),
		}
	}
	return nodes
}

// ColorFor returns the configured color for a label, walking the whole
// hierarchy. Returns empty string when the dataset does not set one.
func (d *Dataset) ColorFor(label string) string {
	return colorFor(d.Items, label)
}

func colorFor(items []Item, label string) string {
	for _, it := range items {
		if it.Label == label && it.Color != "" {
			return it.Color
		}
		if c := colorFor(it.Children, label); c != "" {
			return c
		}
	}
	return ""
}
