package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crawlviz/pkg/cache"
	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
	"github.com/matzehuels/crawlviz/pkg/observability"
	"github.com/matzehuels/crawlviz/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Source source.Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner.
// src may be nil when only GenerateLayout and Render are used.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(src source.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Source: src,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.GraphHash = crawl.Hash(g)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded crawl graph",
		"job", g.JobID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"kind", l.Kind,
		"nodes", len(l.Nodes),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
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

// LoadWithCacheInfo loads the job's graph with caching and returns cache
// hit info. The graph is validated; malformed data is a MALFORMED_NODE error.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*crawl.Graph, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	if r.Source == nil {
		return nil, false, errs.New(errs.ErrCodeInvalidSource, "no source configured")
	}

	cacheKey := r.Keyer.GraphKey(r.Source.Name(), opts.JobID)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := crawl.UnmarshalGraph(data); err == nil {
				observability.Cache().OnCacheLookup(ctx, observability.StageLoad, true)
				return g, true, nil
			}
		}
		observability.Cache().OnCacheLookup(ctx, observability.StageLoad, false)
	}

	hooks := observability.Pipeline()
	ev := observability.Event{Stage: observability.StageLoad, JobID: opts.JobID, Detail: r.Source.Name()}
	hooks.OnStageStart(ctx, ev)
	start := time.Now()

	g, err := r.Source.Load(ctx, opts.JobID)
	if err == nil {
		g.Normalize()
		err = g.Validate()
	}
	if g != nil {
		ev.Nodes = g.NodeCount()
	}
	ev.Duration, ev.Err = time.Since(start), err
	hooks.OnStageDone(ctx, ev)
	if err != nil {
		return nil, false, err
	}

	if data, err := crawl.MarshalGraph(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph); err == nil {
			observability.Cache().OnCacheStore(ctx, observability.StageLoad, len(data))
		} else {
			r.Logger.Debug("cache write failed", "key", cacheKey, "err", err)
		}
	}

	return g, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*crawl.Graph, error) {
	g, _, err := r.LoadWithCacheInfo(ctx, opts)
	return g, err
}

// Close releases the source and the cache.
func (r *Runner) Close() error {
	var first error
	if r.Source != nil {
		first = r.Source.Close()
	}
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
