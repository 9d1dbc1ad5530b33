package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// layoutCommand creates the layout command for computing treemap layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute a treemap layout from a weighted dataset",
		Long: `Compute a treemap layout from a weighted dataset.

The layout command takes a dataset file (JSON, CSV, or TOML) and computes
cell positions with the squarified treemap algorithm. The output is a
layout.json file (same format as 'render -f json') that can be rendered to
SVG/PNG/PDF using the 'visualize' command.

Supports both treemap (-t treemap) and nodelink (-t nodelink) visualization
types.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the dataset cache")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, csv, toml (default: by extension)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: treemap (default), nodelink")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().IntVar(&opts.Inset, "inset", opts.Inset, "padding inside each cell (and nesting level)")

	return cmd
}

// runLayout loads the dataset, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = loggerFromContext(ctx)

	d, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := mosaic.WriteFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(d.Items), len(layout.Cells), cacheHit)
	printNewline()
	printNextStep("Render", "mosaic visualize "+outputPath)

	return nil
}
