package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		style      string
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render visual output from a computed layout",
		Long: `Render visual output from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF, or DOT format. The layout contains all
positioning information, so this step is purely about rendering.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from snapshot.json to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Formats: parseFormats(formatsStr),
				Style:   style,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if style != "" {
				if err := pipeline.ValidateStyle(style); err != nil {
					return err
				}
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&style, "style", "", "visual style: plain (default), zones")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	rec, err := layout.ReadRecordFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering relationship map...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, rec, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printStats(len(rec.Nodes), len(rec.Edges), cacheHit)
	return nil
}
