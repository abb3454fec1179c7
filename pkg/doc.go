// Package pkg provides the core libraries for vocamap relationship maps.
//
// # Overview
//
// Vocamap turns a controlled-vocabulary project snapshot into a positioned
// hub-and-spoke relationship map. The pkg directory is organized into four
// main areas:
//
//  1. [ontology] - Domain model (classes, object properties, schemes)
//  2. [layout] - Layout engine (structural edges, hub selection, zones, placement)
//  3. [render] - Output generation (DOT, SVG, PNG, PDF)
//  4. [pipeline] - Orchestration with caching (layout → render)
//
// Supporting infrastructure lives in [cache] (layout and artifact caching),
// [store] (project snapshot persistence), [errors] (coded errors),
// [observability] (hooks), and [buildinfo] (version metadata).
//
// # Architecture
//
// The typical data flow through vocamap:
//
//	Project Snapshot (JSON)
//	         ↓
//	    [ontology] package (validate, derive class set)
//	         ↓
//	    [layout] package (structural edges → hub → zones → positions)
//	         ↓
//	    [render] package (DOT + Graphviz rendering)
//	         ↓
//	    JSON/DOT/SVG/PNG/PDF output
//
// # Quick Start
//
//	snap, err := ontology.ReadSnapshotFile("model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, snap, pipeline.Options{
//	    SelectedClass: "http://example.org/Finding",
//	    Formats:       []string{"svg"},
//	})
package pkg
