// Package render turns layout documents into output artifacts.
//
// # Overview
//
// This package contains the sinks that transform computed layouts into
// bytes a caller can write to disk or an HTTP response:
//
//   - SVG treemap rendering ([RenderSVG])
//   - JSON export ([RenderJSON])
//   - Generic format conversion (SVG to PDF/PNG)
//   - Node-link diagrams via Graphviz ([ToDOT], [RenderDOT])
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They are shared by the
// treemap and node-link renderers.
//
//	svg := render.RenderSVG(layout, render.WithLabels())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// [ToDOT] converts a dataset hierarchy to Graphviz DOT; [RenderDOT]
// renders the DOT string to SVG. PDF and PNG conversion requires librsvg
// (rsvg-convert).
package render
