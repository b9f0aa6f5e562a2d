package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/matzehuels/crawlviz/pkg/observability"
)

type eventLog struct {
	mu        sync.Mutex
	done      []observability.Event
	lookups   []string
	fallbacks []string
	stale     int
}

func (e *eventLog) OnStageStart(context.Context, observability.Event) {}

func (e *eventLog) OnStageDone(_ context.Context, ev observability.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.done = append(e.done, ev)
}

func (e *eventLog) OnFallback(_ context.Context, _, requested, used string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fallbacks = append(e.fallbacks, requested+"->"+used)
}

func (e *eventLog) OnStale(context.Context, string, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stale++
}

func (e *eventLog) OnCacheLookup(_ context.Context, stage observability.Stage, hit bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := string(stage) + ":miss"
	if hit {
		s = string(stage) + ":hit"
	}
	e.lookups = append(e.lookups, s)
}

func (e *eventLog) OnCacheStore(context.Context, observability.Stage, int) {}

func installEventLog(t *testing.T) *eventLog {
	t.Helper()
	rec := &eventLog{}
	observability.Set(observability.Hooks{Pipeline: rec, Cache: rec})
	t.Cleanup(observability.Reset)
	return rec
}

func TestExecuteReportsStages(t *testing.T) {
	rec := installEventLog(t)
	r, _ := newTestRunner(newMemCache())
	ctx := context.Background()
	opts := Options{JobID: "job-1", Kind: "spiral", Formats: []string{"dot"}}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}

	var stages []observability.Stage
	for _, ev := range rec.done {
		stages = append(stages, ev.Stage)
	}
	want := []observability.Stage{observability.StageLoad, observability.StageLayout, observability.StageRender}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v (second run fully cached)", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, stages[i], want[i])
		}
	}
	if load := rec.done[0]; load.Detail != "mem" || load.Nodes != 3 || load.JobID != "job-1" {
		t.Errorf("load event = %+v", load)
	}
	if layout := rec.done[1]; layout.Detail != "grid" {
		t.Errorf("layout event detail = %q, want grid", layout.Detail)
	}

	wantLookups := []string{
		"load:miss", "layout:miss", "render:miss",
		"load:hit", "layout:hit", "render:hit",
	}
	if len(rec.lookups) != len(wantLookups) {
		t.Fatalf("lookups = %v", rec.lookups)
	}
	for i := range wantLookups {
		if rec.lookups[i] != wantLookups[i] {
			t.Errorf("lookup %d = %s, want %s", i, rec.lookups[i], wantLookups[i])
		}
	}
	if len(rec.fallbacks) != 2 || rec.fallbacks[0] != "spiral->grid" {
		t.Errorf("fallbacks = %v", rec.fallbacks)
	}
}

func TestViewReportsStale(t *testing.T) {
	rec := installEventLog(t)
	r, src := newTestRunner(nil)
	ctx := context.Background()
	v := NewView(r, Options{JobID: "job-1"})

	if _, err := v.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	src.set("job-1", nil, errors.New("crawler unreachable"))
	if _, err := v.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}
	if rec.stale != 1 {
		t.Errorf("stale events = %d, want 1", rec.stale)
	}
}
