// Package mosaic defines the serialized layout document shared by the CLI,
// the HTTP API, and the layout store.
//
// A Layout is the output of the treemap pipeline: positioned cells with
// their labels, values, and colors, plus the frame they tile. The same
// document serializes to JSON for files and API responses and to BSON for
// the MongoDB layout store, which is why both tag sets appear on every
// field.
package mosaic

import (
	"encoding/json"
	"fmt"
	"os"
)

// Visualization types for Layout.VizType.
const (
	// VizTypeTreemap is a squarified rectangle mosaic.
	VizTypeTreemap = "treemap"
	// VizTypeNodelink is a Graphviz node-link view of the hierarchy.
	VizTypeNodelink = "nodelink"
)

// Cell is one positioned rectangle of a treemap layout. Coordinates are
// integer user units with the origin at the top-left corner of the frame
// and y growing downward.
type Cell struct {
	Label  string  `json:"label" bson:"label"`
	Value  float64 `json:"value" bson:"value"`
	Color  string  `json:"color,omitempty" bson:"color,omitempty"`
	X      int     `json:"x" bson:"x"`
	Y      int     `json:"y" bson:"y"`
	Width  int     `json:"width" bson:"width"`
	Height int     `json:"height" bson:"height"`

	// Depth is the nesting level for hierarchical layouts, 0 for
	// top-level cells.
	Depth int `json:"depth,omitempty" bson:"depth,omitempty"`
	// Leaf marks cells with no nested children.
	Leaf bool `json:"leaf,omitempty" bson:"leaf,omitempty"`
}

// Layout is the unified serialization format for all visualizations.
//
// Check VizType to determine which fields are populated:
//
//	Treemap ("treemap"):
//	  - Cells: positioned rectangles with labels, values, colors
//	  - Inset: padding applied per cell (and per nesting level)
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//
// Width, Height, and Name are shared by both types.
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common frame dimensions and dataset name
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`

	// Treemap-specific
	Cells []Cell `json:"cells,omitempty" bson:"cells,omitempty"`
	Inset int    `json:"inset,omitempty" bson:"inset,omitempty"`

	// Nodelink-specific
	DOT string `json:"dot,omitempty" bson:"dot,omitempty"`
}

// IsTreemap returns true if this is a treemap layout.
func (l *Layout) IsTreemap() bool { return l.VizType == VizTypeTreemap }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeTreemap
	}

	if l.IsTreemap() && len(l.Cells) == 0 {
		return Layout{}, fmt.Errorf("treemap layout must contain cells")
	}
	if l.IsNodelink() && l.DOT == "" {
		return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
	}

	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
