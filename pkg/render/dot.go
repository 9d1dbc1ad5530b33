package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mosaic/pkg/dataset"
)

// DOTOptions configures node-link diagram generation.
type DOTOptions struct {
	// Detailed includes item values in node labels.
	// When false, only the label is shown.
	Detailed bool
}

// ToDOT converts a dataset hierarchy to Graphviz DOT format for node-link
// visualization. The dataset name becomes the root node; items and their
// children hang off it. The resulting DOT string can be rendered with
// [RenderDOT].
func ToDOT(d *dataset.Dataset, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := d.Name
	if root == "" {
		root = "dataset"
	}
	fmt.Fprintf(&buf, "  %q [style=\"rounded,filled\", fillcolor=lightgrey];\n", root)

	var walk func(parent string, items []dataset.Item)
	walk = func(parent string, items []dataset.Item) {
		for _, item := range items {
			label := item.Label
			if opts.Detailed {
				label = fmt.Sprintf("%s\n%s", item.Label, formatValue(item.Value))
			}
			attrs := fmt.Sprintf("label=%q", label)
			if item.Color != "" {
				attrs += fmt.Sprintf(", fillcolor=%q, fontcolor=white", item.Color)
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", item.Label, attrs)
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent, item.Label)
			walk(item.Label, item.Children)
		}
	}
	walk(root, d.Items)

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [ToPDF] or [ToPNG].
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
