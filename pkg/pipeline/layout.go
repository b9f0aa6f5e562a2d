package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/crawlviz/pkg/cache"
	"github.com/matzehuels/crawlviz/pkg/crawl"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/layout"
	"github.com/matzehuels/crawlviz/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout classifies the edges of g, computes positions for the
// requested kind and builds the rendering descriptor. It never touches the
// cache. An unknown kind is laid out with the fallback and recorded in
// Layout.Requested.
func GenerateLayout(g *crawl.Graph, opts Options) graph.Layout {
	opts.SetLayoutDefaults()
	kind, ok := opts.LayoutKind()
	l := graph.BuildFor(g, kind, opts.LayoutOptions()...)
	if !ok {
		l.Requested = opts.Kind
	}
	return l
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns
// cache hit info. g is validated first.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g *crawl.Graph, opts Options) (graph.Layout, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	if err := g.Validate(); err != nil {
		return graph.Layout{}, false, err
	}

	kind, ok := opts.LayoutKind()
	if !ok {
		opts.Logger.Warn("unknown layout kind, using fallback", "requested", opts.Kind, "kind", kind)
		observability.Pipeline().OnFallback(ctx, g.JobID, opts.Kind, string(kind))
	}

	cacheKey := r.Keyer.LayoutKey(crawl.Hash(g), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := graph.UnmarshalLayout(data); err == nil {
			observability.Cache().OnCacheLookup(ctx, observability.StageLayout, true)
			return withIdentity(cached, g, opts), true, nil
		}
	}
	observability.Cache().OnCacheLookup(ctx, observability.StageLayout, false)

	hooks := observability.Pipeline()
	ev := observability.Event{Stage: observability.StageLayout, JobID: g.JobID, Detail: string(kind), Nodes: g.NodeCount()}
	hooks.OnStageStart(ctx, ev)
	start := time.Now()
	l := GenerateLayout(g, opts)
	ev.Duration = time.Since(start)
	hooks.OnStageDone(ctx, ev)

	if l.Dangling > 0 {
		opts.Logger.Warn("edges reference unknown nodes", "job", g.JobID, "dropped", l.Dangling)
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheStore(ctx, observability.StageLayout, len(data))
		}
	}

	return l, false, nil
}

// GenerateLayout is a convenience wrapper that calls
// GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, g *crawl.Graph, opts Options) (graph.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// LayoutAll computes the layout of g for every kind concurrently.
func (r *Runner) LayoutAll(ctx context.Context, g *crawl.Graph, opts Options) (map[layout.Kind]graph.Layout, error) {
	kinds := layout.Kinds()
	out := make(map[layout.Kind]graph.Layout, len(kinds))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		kopts := opts
		kopts.Kind = string(kind)
		eg.Go(func() error {
			l, err := r.GenerateLayout(ctx, g, kopts)
			if err != nil {
				return err
			}
			mu.Lock()
			out[kind] = l
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// withIdentity restores the per-request fields of a cached layout. Layouts
// are cached by graph content, so the entry may come from another job or
// from another unknown kind that fell back to the same layout.
func withIdentity(l graph.Layout, g *crawl.Graph, opts Options) graph.Layout {
	l.JobID = g.JobID
	l.Requested = ""
	if _, ok := opts.LayoutKind(); !ok {
		l.Requested = opts.Kind
	}
	l.Stale, l.Error = false, ""
	return l
}
