package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// renderCommand creates the render command: the full dataset → artifact
// pipeline in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.ShowLabels = true

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a weighted dataset to SVG, PNG, PDF, or JSON",
		Long: `Render a weighted dataset to SVG, PNG, PDF, or JSON.

The render command runs the complete load → layout → render pipeline:
it parses the dataset file (JSON, CSV, or TOML), computes the squarified
treemap layout, and writes the requested output formats.

PNG and PDF output require librsvg (rsvg-convert) to be installed.

Results are cached locally for faster subsequent runs. Use 'layout' and
'visualize' to run the stages separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the dataset cache")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, csv, toml (default: by extension)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: treemap (default), nodelink")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().IntVar(&opts.Inset, "inset", opts.Inset, "padding inside each cell (and nesting level)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "draw cell labels")
	cmd.Flags().BoolVar(&opts.ShowValues, "values", opts.ShowValues, "draw cell values")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "frame background color (e.g. #ffffff)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		itemCount: result.Stats.ItemCount,
		cellCount: result.Stats.CellCount,
	})
}
