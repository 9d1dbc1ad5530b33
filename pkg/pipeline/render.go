package pipeline

import (
	"context"

	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/render"
)

// RenderFromLayout renders a layout into every requested format.
//
// SVG is the base artifact: PNG and PDF are produced by converting it with
// rsvg-convert, so it is rendered once and shared. JSON is the layout
// document itself. The context is only consulted by the Graphviz renderer
// for nodelink layouts.
func RenderFromLayout(ctx context.Context, l mosaic.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	needsSVG := false
	for _, f := range opts.Formats {
		if f != FormatJSON {
			needsSVG = true
			break
		}
	}

	var svg []byte
	if needsSVG {
		var err error
		svg, err = renderSVG(ctx, l, opts)
		if err != nil {
			return nil, err
		}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[FormatSVG] = svg
		case FormatPNG:
			png, err := render.ToPNG(svg, opts.Scale)
			if err != nil {
				return nil, err
			}
			artifacts[FormatPNG] = png
		case FormatPDF:
			pdf, err := render.ToPDF(svg)
			if err != nil {
				return nil, err
			}
			artifacts[FormatPDF] = pdf
		case FormatJSON:
			data, err := render.RenderJSON(l)
			if err != nil {
				return nil, err
			}
			artifacts[FormatJSON] = data
		}
	}
	return artifacts, nil
}

func renderSVG(ctx context.Context, l mosaic.Layout, opts Options) ([]byte, error) {
	if l.IsNodelink() {
		return render.RenderDOT(ctx, l.DOT)
	}

	var svgOpts []render.SVGOption
	if opts.ShowLabels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.ShowValues {
		svgOpts = append(svgOpts, render.WithValues())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	return render.RenderSVG(l, svgOpts...), nil
}
