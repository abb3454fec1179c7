package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vocamap/vocamap/pkg/cache"
	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/observability"
	"github.com/vocamap/vocamap/pkg/ontology"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, snap ontology.Snapshot, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
		Warnings:  snap.Validate(),
	}

	snapData, err := ontology.MarshalSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}
	result.SnapshotHash = cache.Hash(snapData)

	// Stage 1: Layout
	layoutStart := time.Now()
	rec, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, snap, result.SnapshotHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Record = rec
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(rec.Nodes)
	result.Stats.EdgeCount = len(rec.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(rec.Nodes),
		"edges", len(rec.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, rec, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. snapshotHash keys the cache entry; pass the hash of the
// serialized snapshot, or "" to skip caching for this call.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, snap ontology.Snapshot, snapshotHash string, opts Options) (layout.Record, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	var cacheKey string
	if snapshotHash != "" {
		cacheKey = r.Keyer.LayoutKey(snapshotHash, opts.LayoutKeyOpts())

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				cached, err := layout.UnmarshalRecord(data)
				if err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return cached, true, nil // Cache hit
				}
				// If deserialization fails, fall through to recompute
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, snap.Project, opts.SelectedClass, len(snap.Classes))
	rec := layout.Build(layout.FromSnapshot(snap, opts.SelectedClass), opts.Config())
	observability.Pipeline().OnLayoutComplete(ctx, snap.Project, len(rec.Nodes), time.Since(start), nil)

	if cacheKey != "" {
		if data, err := layout.MarshalRecord(rec); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return rec, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that hashes the snapshot itself
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, snap ontology.Snapshot, opts Options) (layout.Record, error) {
	var hash string
	if data, err := ontology.MarshalSnapshot(snap); err == nil {
		hash = cache.Hash(data)
	}
	rec, _, err := r.ComputeLayoutWithCacheInfo(ctx, snap, hash, opts)
	return rec, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rec layout.Record, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	recData, err := layout.MarshalRecord(rec)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	recHash := cache.Hash(recData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(recHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(rec, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(recHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, rec layout.Record, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, rec, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
