package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocamap/vocamap/pkg/ontology"
	"github.com/vocamap/vocamap/pkg/pipeline"
)

// renderCommand creates the render command for going directly from a
// snapshot to visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		selected   string
		formatsStr string
		style      string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [snapshot.json]",
		Short: "Render a project snapshot to SVG(s)",
		Long: `Render a project snapshot to one or more output formats.

The render command runs the full pipeline: it computes the relationship
map layout and renders it in the requested formats. Use 'layout' and
'visualize' separately when you want to inspect or reuse the layout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				SelectedClass: selected,
				Formats:       parseFormats(formatsStr),
				Style:         style,
				Refresh:       refresh,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if style != "" {
				if err := pipeline.ValidateStyle(style); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().StringVar(&selected, "class", "", "class URI to center the map on")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&style, "style", "", "visual style: plain (default), zones")

	return cmd
}

// runRender loads the snapshot and runs the full layout + render pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	snap, err := ontology.ReadSnapshotFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering relationship map...")
	spinner.Start()

	result, err := runner.Execute(ctx, snap, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printWarnings(result.Warnings)

	if err := writeArtifacts(result.Artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each rendered artifact to its own file. With a
// single format the output path is used as-is; with multiple formats the
// format is appended to the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		format := formats[0]
		path := output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printSuccess("Generated %s", path)
		return nil
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printSuccess("Generated %s", path)
	}
	return nil
}
