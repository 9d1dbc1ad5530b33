package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()
	opts.ShowLabels = true

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render visualization from a computed layout",
		Long: `Render visualization from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, or PDF format. The layout contains all positioning
information, so this step is purely about rendering.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a dataset to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "draw cell labels")
	cmd.Flags().BoolVar(&opts.ShowValues, "values", opts.ShowValues, "draw cell values")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "frame background color (e.g. #ffffff)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := mosaic.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	// Infer viz type from layout
	opts.VizType = layout.VizType
	opts.Width = layout.Width
	opts.Height = layout.Height
	opts.Inset = layout.Inset

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", layout.VizType))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
		cellCount: len(layout.Cells),
	})
}
