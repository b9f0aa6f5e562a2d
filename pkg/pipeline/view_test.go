package pipeline

import (
	"context"
	"io"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

func TestViewRefresh(t *testing.T) {
	r, src := newTestRunner(newMemCache())
	ctx := context.Background()
	v := NewView(r, Options{JobID: "job-1", Kind: "circular"})

	if _, ok := v.Current(); ok {
		t.Error("new view should have no layout")
	}

	l, err := v.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if l.Stale || len(l.Nodes) != 3 || l.Kind != "circular" {
		t.Errorf("layout = %+v", l)
	}
	hash := v.GraphHash()
	if hash == "" || v.UpdatedAt().IsZero() {
		t.Error("hash and timestamp should be recorded")
	}

	// The crawl grows; refresh must see it despite the graph cache.
	grown := sampleGraph("job-1")
	grown.Nodes = append(grown.Nodes, crawl.Node{ID: "d", URL: "https://example.com/d", Depth: 2, DiscoveryOrder: 3, SizeBytes: 1})
	src.set("job-1", grown, nil)
	l, err = v.Refresh(ctx)
	if err != nil || len(l.Nodes) != 4 {
		t.Fatalf("refresh after growth: %d nodes, err %v", len(l.Nodes), err)
	}
	if v.GraphHash() == hash {
		t.Error("graph hash should change")
	}
}

func TestViewKeepsLastLayoutOnFailure(t *testing.T) {
	r, src := newTestRunner(nil)
	ctx := context.Background()
	v := NewView(r, Options{JobID: "job-1"})

	good, err := v.Refresh(ctx)
	if err != nil {
		t.Fatal(err)
	}

	src.set("job-1", nil, errs.New(errs.ErrCodeNetwork, "crawler unreachable"))
	l, err := v.Refresh(ctx)
	if !errs.Is(err, errs.ErrCodeNetwork) {
		t.Errorf("err = %v, want NETWORK_ERROR", err)
	}
	if !l.Stale || l.Error != "crawler unreachable" {
		t.Errorf("stale/error = %v/%q", l.Stale, l.Error)
	}
	if len(l.Nodes) != len(good.Nodes) {
		t.Error("stale layout should keep the previous nodes")
	}
	if cur, _ := v.Current(); cur.Stale {
		t.Error("Current should hold the clean last good layout")
	}

	src.set("job-1", nil, nil)
	l, err = v.Refresh(ctx)
	if err != nil || l.Stale {
		t.Errorf("recovery: stale %v, err %v", l.Stale, err)
	}
}

func TestViewMalformedBanner(t *testing.T) {
	r, src := newTestRunner(nil)
	ctx := context.Background()
	v := NewView(r, Options{JobID: "job-1"})
	if _, err := v.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	bad := sampleGraph("job-1")
	bad.Nodes[1].Depth = -1
	src.set("job-1", bad, nil)

	l, err := v.Refresh(ctx)
	if !errs.Is(err, errs.ErrCodeMalformedNode) {
		t.Fatalf("err = %v, want MALFORMED_NODE", err)
	}
	if l.Error != errs.BannerIncomplete || !l.Stale {
		t.Errorf("error = %q, stale %v", l.Error, l.Stale)
	}
}

func TestViewFailureWithoutPrevious(t *testing.T) {
	r, _ := newTestRunner(nil)
	v := NewView(r, Options{JobID: "missing"})

	l, err := v.Refresh(context.Background())
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
	if l.Kind != "" || l.Stale {
		t.Errorf("layout should be zero, got %+v", l)
	}
}

func TestViewsGet(t *testing.T) {
	r, _ := newTestRunner(nil)
	vs := NewViews(r, Options{})

	a := vs.Get("job-1", "")
	if vs.Get("job-1", "hierarchical") != a {
		t.Error("empty kind and default kind should share a view")
	}
	if vs.Get("job-1", " Hierarchical ") != a {
		t.Error("kind should be normalized")
	}
	if vs.Get("job-1", "grid") == a || vs.Get("job-2", "") == a {
		t.Error("distinct job or kind should get a new view")
	}
	if vs.Len() != 3 {
		t.Errorf("Len = %d, want 3", vs.Len())
	}
}

// gatedSource holds its first load until release is closed and then
// returns old; later loads are served by the embedded memSource.
type gatedSource struct {
	*memSource
	old     *crawl.Graph
	first   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSource) Load(ctx context.Context, jobID string) (*crawl.Graph, error) {
	if s.first.CompareAndSwap(false, true) {
		close(s.entered)
		<-s.release
		clone := *s.old
		clone.Nodes = slices.Clone(s.old.Nodes)
		return &clone, nil
	}
	return s.memSource.Load(ctx, jobID)
}

func TestViewOverlappingRefreshKeepsNewest(t *testing.T) {
	grown := sampleGraph("job-1")
	grown.Nodes = append(grown.Nodes, crawl.Node{ID: "d", URL: "https://example.com/d", Depth: 2, DiscoveryOrder: 3})
	src := &gatedSource{
		memSource: &memSource{graphs: map[string]*crawl.Graph{"job-1": grown}},
		old:       sampleGraph("job-1"),
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	r := NewRunner(src, nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	v := NewView(r, Options{JobID: "job-1", Kind: "grid"})
	ctx := context.Background()

	type result struct {
		nodes int
		err   error
	}
	slow := make(chan result, 1)
	go func() {
		l, err := v.Refresh(ctx)
		slow <- result{len(l.Nodes), err}
	}()
	<-src.entered

	fresh, err := v.Refresh(ctx)
	if err != nil || len(fresh.Nodes) != 4 {
		t.Fatalf("second refresh: %d nodes, err %v", len(fresh.Nodes), err)
	}
	hash := v.GraphHash()

	close(src.release)
	res := <-slow
	if res.err != nil || res.nodes != 4 {
		t.Errorf("earlier refresh returned %d nodes, err %v; want the newer 4", res.nodes, res.err)
	}
	if cur, _ := v.Current(); len(cur.Nodes) != 4 {
		t.Errorf("Current has %d nodes, want 4", len(cur.Nodes))
	}
	if v.GraphHash() != hash {
		t.Error("an earlier refresh replaced the newer graph hash")
	}
}
