package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/mosaic/pkg/mosaic"
)

// defaultPalette provides cell fills when the dataset carries no colors.
// Cells cycle through it in layout order.
var defaultPalette = []string{
	"#4c78a8", "#f58518", "#54a24b", "#e45756",
	"#72b7b2", "#eeca3b", "#b279a2", "#ff9da6",
	"#9d755d", "#bab0ac",
}

// Text is dropped for cells smaller than this; it would overflow.
const (
	minLabelWidth  = 40
	minLabelHeight = 16
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	showLabels bool
	showValues bool
	palette    []string
	background string
}

// WithLabels draws the cell label in the center of each cell large enough
// to hold it.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = true } }

// WithValues draws the cell value underneath the label. Implies nothing
// about labels; combine with [WithLabels] for both.
func WithValues() SVGOption { return func(r *svgRenderer) { r.showValues = true } }

// WithPalette replaces the default fill palette. Cells without an explicit
// color cycle through it in layout order.
func WithPalette(colors []string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// WithBackground fills the frame with the given color before drawing cells.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG renders a treemap layout as a standalone SVG document.
// Rendering is deterministic: the same layout and options always produce
// identical bytes.
func RenderSVG(l mosaic.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{palette: defaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
			l.Width, l.Height, r.background)
	}

	for i, cell := range l.Cells {
		r.renderCell(&buf, cell, i)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCell(buf *bytes.Buffer, cell mosaic.Cell, i int) {
	if cell.Width <= 0 || cell.Height <= 0 {
		// Zero-weight cells carry no area.
		return
	}

	fill := cell.Color
	if fill == "" {
		fill = r.palette[i%len(r.palette)]
	}

	// Parents of nested cells render translucent so children stay visible.
	fillOpacity := ""
	if !cell.Leaf {
		fillOpacity = ` fill-opacity="0.35"`
	}

	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"%s stroke="white" stroke-width="1"/>`+"\n",
		cell.X, cell.Y, cell.Width, cell.Height, fill, fillOpacity)

	if !r.showLabels && !r.showValues {
		return
	}
	if cell.Width < minLabelWidth || cell.Height < minLabelHeight {
		return
	}

	cx := cell.X + cell.Width/2
	cy := cell.Y + cell.Height/2

	if r.showLabels {
		if label := fitLabel(cell.Label, cell.Width-4, labelFontSize); label != "" {
			y := cy
			if r.showValues && cell.Height >= 2*minLabelHeight {
				y = cy - 8
			}
			fmt.Fprintf(buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%d" fill="white">%s</text>`+"\n",
				cx, y, labelFontSize, escape(label))
		}
	}
	if r.showValues && (!r.showLabels || cell.Height >= 2*minLabelHeight) {
		y := cy
		if r.showLabels {
			y = cy + 10
		}
		fmt.Fprintf(buf, `  <text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%d" fill="white">%s</text>`+"\n",
			cx, y, valueFontSize, formatValue(cell.Value))
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
