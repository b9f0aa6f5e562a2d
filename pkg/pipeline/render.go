package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/crawlviz/pkg/cache"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/observability"
	"github.com/matzehuels/crawlviz/pkg/render"
	"github.com/matzehuels/crawlviz/pkg/render/nodelink"
)

// =============================================================================
// Rendering
// =============================================================================

// RenderFromLayout renders l in every requested format without caching.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := nodelink.Render(ctx, l, render.Format(f), opts.RenderOptions())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Stale layouts are rendered but never cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	cacheable := !l.Stale

	if cacheable {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheLookup(ctx, observability.StageRender, true)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheLookup(ctx, observability.StageRender, false)
	}

	hooks := observability.Pipeline()
	ev := observability.Event{
		Stage:  observability.StageRender,
		JobID:  l.JobID,
		Detail: strings.Join(opts.Formats, ","),
		Nodes:  len(l.Nodes),
	}
	hooks.OnStageStart(ctx, ev)
	start := time.Now()
	rendered, err := RenderFromLayout(ctx, l, opts)
	ev.Duration, ev.Err = time.Since(start), err
	hooks.OnStageDone(ctx, ev)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheStore(ctx, observability.StageRender, len(data))
			}
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}
