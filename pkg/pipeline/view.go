package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/observability"
)

// View is the live visualization of one crawl job in one layout kind.
//
// A running crawl keeps adding pages, so surfaces poll [View.Refresh]. When
// a refresh fails the previous layout stays displayed: Refresh returns it
// with Stale set and Error describing the failure, together with the error.
// A View is safe for concurrent use.
type View struct {
	runner *Runner
	opts   Options

	mu        sync.Mutex
	last      *graph.Layout
	lastHash  string
	updatedAt time.Time

	// started numbers refreshes in start order; applied is the number of
	// the refresh that produced last.
	started uint64
	applied uint64
}

// NewView creates a view. opts.JobID and opts.Kind select what is shown;
// every refresh bypasses the graph cache.
func NewView(r *Runner, opts Options) *View {
	opts.Refresh = true
	opts.SetLayoutDefaults()
	return &View{runner: r, opts: opts}
}

// Refresh reloads the graph and recomputes the layout.
//
// On success it returns the new layout and nil. On failure with a previous
// layout it returns that layout marked stale plus the error. On failure
// without a previous layout it returns a zero Layout plus the error.
//
// Overlapping refreshes never move the view backwards: a refresh that
// finishes after a later-started one succeeded returns that newer layout
// instead of its own result.
func (v *View) Refresh(ctx context.Context) (graph.Layout, error) {
	v.mu.Lock()
	v.started++
	seq := v.started
	v.mu.Unlock()

	l, hash, err := v.compute(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq < v.applied {
		return *v.last, nil
	}
	if err != nil {
		if v.last == nil {
			return graph.Layout{}, err
		}
		stale := *v.last
		stale.Stale = true
		stale.Error = describe(err)
		observability.Pipeline().OnStale(ctx, v.opts.JobID, stale.Kind, err)
		return stale, err
	}

	v.last = &l
	v.lastHash = hash
	v.applied = seq
	v.updatedAt = time.Now()
	return l, nil
}

func (v *View) compute(ctx context.Context) (graph.Layout, string, error) {
	g, err := v.runner.Load(ctx, v.opts)
	if err != nil {
		return graph.Layout{}, "", err
	}
	l, err := v.runner.GenerateLayout(ctx, g, v.opts)
	if err != nil {
		return graph.Layout{}, "", err
	}
	return l, crawl.Hash(g), nil
}

// Current returns the last good layout, if any.
func (v *View) Current() (graph.Layout, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.last == nil {
		return graph.Layout{}, false
	}
	return *v.last, true
}

// GraphHash returns the content hash of the graph behind the last good
// layout. Pollers compare it to skip redraws.
func (v *View) GraphHash() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastHash
}

// UpdatedAt returns when the last good layout was computed.
func (v *View) UpdatedAt() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.updatedAt
}

// describe returns the indicator text shown next to a stale layout.
func describe(err error) string {
	if banner := errs.Banner(err); banner != "" {
		return banner
	}
	return errs.UserMessage(err)
}

// MaxViews bounds a [Views] registry; the least recently refreshed view is
// evicted when it is full.
const MaxViews = 1024

// Views holds one View per (job, kind) pair.
type Views struct {
	runner *Runner
	base   Options

	mu    sync.Mutex
	views map[viewKey]*View
}

type viewKey struct{ job, kind string }

// NewViews creates a registry. base supplies the spacing and render options
// shared by every view.
func NewViews(r *Runner, base Options) *Views {
	return &Views{runner: r, base: base, views: make(map[viewKey]*View)}
}

// Get returns the view for jobID and kind, creating it on first use. Kinds
// are normalized, so "" and the default kind share a view.
func (vs *Views) Get(jobID, kind string) *View {
	opts := vs.base
	opts.JobID = jobID
	opts.Kind = kind
	opts.SetLayoutDefaults()

	key := viewKey{job: jobID, kind: strings.ToLower(strings.TrimSpace(opts.Kind))}
	if resolved, ok := opts.LayoutKind(); ok {
		key.kind = string(resolved)
	}

	vs.mu.Lock()
	defer vs.mu.Unlock()
	if v, ok := vs.views[key]; ok {
		return v
	}
	if len(vs.views) >= MaxViews {
		vs.evictOldest()
	}
	v := NewView(vs.runner, opts)
	vs.views[key] = v
	return v
}

func (vs *Views) evictOldest() {
	var (
		oldest  viewKey
		oldestT time.Time
		found   bool
	)
	for k, v := range vs.views {
		t := v.UpdatedAt()
		if !found || t.Before(oldestT) {
			oldest, oldestT, found = k, t, true
		}
	}
	if found {
		delete(vs.views, oldest)
	}
}

// Len returns the number of views.
func (vs *Views) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.views)
}
