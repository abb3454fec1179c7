package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vocamap/vocamap/pkg/cache"
	"github.com/vocamap/vocamap/pkg/ontology"
)

func testSnapshot() ontology.Snapshot {
	inv := ontology.Class{URI: "http://example.org/Investigation", Label: "Investigation"}
	fin := ontology.Class{URI: "http://example.org/Finding", Label: "Finding"}
	out := ontology.Class{URI: "http://example.org/Outcome", Label: "Outcome"}

	return ontology.Snapshot{
		Project: "demo",
		Classes: []ontology.Class{inv, fin, out},
		Properties: []ontology.ObjectProperty{
			{URI: "http://example.org/hasFinding", Label: "has finding",
				Domain: []ontology.Class{inv}, Range: []ontology.Class{fin}},
			{URI: "http://example.org/hasOutcome", Label: "has outcome",
				Domain: []ontology.Class{fin}, Range: []ontology.Class{out}},
		},
		Schemes: []ontology.Scheme{
			{ID: "topics", Title: "Topics"},
		},
		ProjectProperties: []ontology.ProjectProperty{
			{ID: "pp1", Label: "topic", DomainClass: fin.URI, RangeSchemeID: "topics"},
		},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"Defaults", Options{}, ""},
		{"ValidFormats", Options{Formats: []string{"json", "dot"}}, ""},
		{"InvalidFormat", Options{Formats: []string{"bmp"}}, "invalid format"},
		{"InvalidStyle", Options{Style: "neon"}, "invalid style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Style != StylePlain {
		t.Errorf("Style = %q, want %q", opts.Style, StylePlain)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestExecuteProducesLayoutAndArtifacts(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	snap := testSnapshot()

	result, err := runner.Execute(context.Background(), snap, Options{
		SelectedClass: "http://example.org/Finding",
		Formats:       []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(result.Record.Nodes) == 0 {
		t.Error("Execute() produced empty layout")
	}
	if result.SnapshotHash == "" {
		t.Error("Execute() missing snapshot hash")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("Execute() missing json artifact")
	}
	dotOut, ok := result.Artifacts[FormatDOT]
	if !ok {
		t.Fatal("Execute() missing dot artifact")
	}
	if !strings.Contains(string(dotOut), "graph vocamap") {
		t.Error("dot artifact missing graph declaration")
	}
	if result.Stats.NodeCount != len(result.Record.Nodes) {
		t.Errorf("Stats.NodeCount = %d, want %d", result.Stats.NodeCount, len(result.Record.Nodes))
	}
}

func TestExecuteLayoutCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, quietLogger())
	snap := testSnapshot()
	opts := Options{
		SelectedClass: "http://example.org/Finding",
		Formats:       []string{FormatJSON},
	}

	first, err := runner.Execute(context.Background(), snap, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), snap, opts)
	if err != nil {
		t.Fatalf("Execute() second run error = %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if len(second.Record.Nodes) != len(first.Record.Nodes) {
		t.Error("cached layout differs from computed layout")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, quietLogger())
	snap := testSnapshot()

	opts := Options{Formats: []string{FormatJSON}}
	if _, err := runner.Execute(context.Background(), snap, opts); err != nil {
		t.Fatal(err)
	}

	refreshed, err := runner.Execute(context.Background(), snap, Options{
		Formats: []string{FormatJSON},
		Refresh: true,
	})
	if err != nil {
		t.Fatalf("Execute() refresh error = %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteSurfacesWarnings(t *testing.T) {
	snap := testSnapshot()
	snap.ProjectProperties = append(snap.ProjectProperties, ontology.ProjectProperty{
		ID: "bad", Label: "dangling", DomainClass: "http://example.org/Missing", RangeSchemeID: "topics",
	})

	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	result, err := runner.Execute(context.Background(), snap, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("Execute() should surface snapshot validation warnings")
	}
}

func TestExecuteEmptySnapshot(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())

	result, err := runner.Execute(context.Background(), ontology.Snapshot{}, Options{
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error on empty snapshot = %v", err)
	}
	if len(result.Record.Nodes) != 0 {
		t.Errorf("empty snapshot produced %d nodes", len(result.Record.Nodes))
	}
	if result.Record.Width <= 0 || result.Record.Height <= 0 {
		t.Error("empty snapshot should still produce a positive canvas")
	}
}

func TestComputeLayoutDistinctSelections(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	snap := testSnapshot()
	ctx := context.Background()

	recA, err := runner.ComputeLayout(ctx, snap, Options{SelectedClass: "http://example.org/Finding"})
	if err != nil {
		t.Fatal(err)
	}
	recB, err := runner.ComputeLayout(ctx, snap, Options{SelectedClass: "http://example.org/Investigation"})
	if err != nil {
		t.Fatal(err)
	}

	selA := recA.NodesInZone("selected")
	selB := recB.NodesInZone("selected")
	if len(selA) != 1 || len(selB) != 1 {
		t.Fatalf("selected zone sizes = %d, %d, want 1 each", len(selA), len(selB))
	}
	if selA[0].ID == selB[0].ID {
		t.Error("different selections yielded the same selected node")
	}
}
