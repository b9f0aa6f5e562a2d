// Package observability reports what the visualization pipeline is doing.
//
// Libraries emit events through the registered hooks; main installs a
// backend once at startup with [Set]. Until then every event is dropped.
// [LogHooks] is the built-in backend, and any metrics or tracing system can
// be attached by implementing the three hook interfaces.
//
//	observability.Set(observability.Hooks{Pipeline: myMetrics, Cache: myMetrics})
//
// Emitting side:
//
//	ev := observability.Event{Stage: observability.StageLoad, JobID: id, Detail: "http"}
//	observability.Pipeline().OnStageStart(ctx, ev)
//	// ... fetch the crawl graph ...
//	ev.Nodes, ev.Duration, ev.Err = g.NodeCount(), time.Since(start), err
//	observability.Pipeline().OnStageDone(ctx, ev)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Stage is a step of the pipeline.
type Stage string

// Pipeline stages. Cache events are tagged with the stage whose output is
// cached.
const (
	StageLoad   Stage = "load"
	StageLayout Stage = "layout"
	StageRender Stage = "render"
)

// Event describes one run of a stage.
type Event struct {
	Stage Stage
	JobID string

	// Detail is what the stage ran with: the source kind for load, the
	// layout kind for layout and the comma separated formats for render.
	Detail string

	Nodes    int
	Duration time.Duration // zero on start events
	Err      error
}

// PipelineHooks receives stage events.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, ev Event)
	OnStageDone(ctx context.Context, ev Event)

	// OnFallback reports an unknown layout kind that was replaced.
	OnFallback(ctx context.Context, jobID, requested, used string)

	// OnStale reports a view that kept its previous layout because a
	// refresh failed.
	OnStale(ctx context.Context, jobID, kind string, err error)
}

// CacheHooks receives cache events.
type CacheHooks interface {
	OnCacheLookup(ctx context.Context, stage Stage, hit bool)
	OnCacheStore(ctx context.Context, stage Stage, size int)
}

// RoundTrip describes one outgoing HTTP exchange. Status is zero when Err
// is set.
type RoundTrip struct {
	Method   string
	Host     string
	Path     string
	Status   int
	Duration time.Duration
	Err      error
}

// HTTPHooks receives outgoing HTTP events.
type HTTPHooks interface {
	OnRoundTrip(ctx context.Context, rt RoundTrip)
}

// Hooks is a set of backends. A nil field drops that category.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

type discard struct{}

func (discard) OnStageStart(context.Context, Event)                {}
func (discard) OnStageDone(context.Context, Event)                 {}
func (discard) OnFallback(context.Context, string, string, string) {}
func (discard) OnStale(context.Context, string, string, error)     {}
func (discard) OnCacheLookup(context.Context, Stage, bool)         {}
func (discard) OnCacheStore(context.Context, Stage, int)           {}
func (discard) OnRoundTrip(context.Context, RoundTrip)             {}

var (
	none     = &Hooks{Pipeline: discard{}, Cache: discard{}, HTTP: discard{}}
	registry atomic.Pointer[Hooks]
)

// Set replaces the registered hooks.
func Set(h Hooks) {
	if h.Pipeline == nil {
		h.Pipeline = discard{}
	}
	if h.Cache == nil {
		h.Cache = discard{}
	}
	if h.HTTP == nil {
		h.HTTP = discard{}
	}
	registry.Store(&h)
}

// Reset drops all registered hooks.
func Reset() { registry.Store(nil) }

func current() *Hooks {
	if h := registry.Load(); h != nil {
		return h
	}
	return none
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current().Pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current().HTTP }

// Enabled reports whether any backend is registered.
func Enabled() bool { return registry.Load() != nil }
