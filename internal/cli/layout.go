package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocamap/vocamap/pkg/cache"
	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/ontology"
	"github.com/vocamap/vocamap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing relationship maps.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		selected     string
		output       string
		noCache      bool
		refresh      bool
		gridColumns  int
		arcThreshold int
	)

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json]",
		Short: "Compute a relationship map layout from a project snapshot",
		Long: `Compute a relationship map layout from a project snapshot.

The layout command takes a snapshot.json file and computes positioned nodes,
edges, and fan cards for the relationship map. The output is a layout.json
file that can be rendered to SVG/PNG/PDF using the 'visualize' command.

Pass --class to center the map on a specific class. Without it, the hub
class is selected automatically.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], layoutParams{
				selected:     selected,
				output:       output,
				noCache:      noCache,
				refresh:      refresh,
				gridColumns:  gridColumns,
				arcThreshold: arcThreshold,
			})
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")

	// Layout flags
	cmd.Flags().StringVar(&selected, "class", "", "class URI to center the map on")
	cmd.Flags().IntVar(&gridColumns, "grid-columns", 0, "max columns for the scheme grid (0 = default)")
	cmd.Flags().IntVar(&arcThreshold, "arc-threshold", 0, "max schemes placed on an arc before falling back to the grid (0 = default)")

	return cmd
}

// layoutParams holds the resolved flags of the layout command.
type layoutParams struct {
	selected     string
	output       string
	noCache      bool
	refresh      bool
	gridColumns  int
	arcThreshold int
}

// geometry builds the layout geometry from the flag overrides.
func (p layoutParams) geometry() *layout.Config {
	if p.gridColumns == 0 && p.arcThreshold == 0 {
		return nil
	}
	cfg := layout.DefaultConfig()
	if p.gridColumns > 0 {
		cfg.GridMaxColumns = p.gridColumns
	}
	if p.arcThreshold > 0 {
		cfg.ArcThreshold = p.arcThreshold
	}
	return &cfg
}

// runLayout loads the snapshot, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, p layoutParams) error {
	snap, err := ontology.ReadSnapshotFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}
	printWarnings(snap.Validate())

	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		SelectedClass: p.selected,
		Geometry:      p.geometry(),
		Refresh:       p.refresh,
		Logger:        c.Logger,
	}

	var hash string
	if data, err := ontology.MarshalSnapshot(snap); err == nil {
		hash = cache.Hash(data)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	rec, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, snap, hash, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := p.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteRecordFile(rec, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(rec.Nodes), len(rec.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "vocamap visualize "+outputPath)

	return nil
}
