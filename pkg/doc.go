// Package pkg provides the core libraries for Mosaic treemap visualization.
//
// # Overview
//
// Mosaic turns weighted datasets into treemap visualizations: rectangles
// tile a frame so that each item's area is proportional to its value, with
// aspect ratios kept close to square. The pkg directory is organized by
// pipeline stage:
//
//  1. [dataset] - Input parsing (JSON, CSV, TOML) and validation
//  2. [treemap] - The squarified layout algorithm on integer geometry
//  3. [mosaic] - The serializable layout document shared by CLI and API
//  4. [render] - Output formats (SVG, PNG, PDF, JSON, Graphviz DOT)
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow through Mosaic:
//
//	Dataset file or URL
//	         ↓
//	    [dataset] package (parse + validate + sort)
//	         ↓
//	    [treemap] package (squarified layout)
//	         ↓
//	    [render] package (SVG/PNG/PDF/JSON output)
//
// # Quick Start
//
// Compute a layout and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/mosaic/pkg/dataset"
//	    "github.com/matzehuels/mosaic/pkg/pipeline"
//	)
//
//	d, _ := dataset.Load("usage.json")
//	opts := pipeline.Options{}
//	opts.SetLayoutDefaults()
//	layout, _ := pipeline.GenerateLayout(d, opts)
//	svg := render.RenderSVG(layout, render.WithLabels())
//
// Or run the whole pipeline with caching through a [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Path:    "usage.json",
//	    Formats: []string{"svg", "png"},
//	})
//
// # Supporting Packages
//
// [cache] - Content-addressed caching of datasets, layouts, and rendered
// artifacts with file, Redis, and null backends.
//
// [store] - Persistent layout storage for the HTTP API, with memory and
// MongoDB backends.
//
// [httputil] - Fetching remote datasets with retry and backoff.
//
// [errors] - Structured errors with stable machine-readable codes.
//
// [buildinfo] - Version metadata injected at build time.
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/dataset
// [treemap]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/treemap
// [mosaic]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/mosaic
// [render]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/store
// [httputil]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mosaic/pkg/buildinfo
package pkg
