package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

const sampleGraph = `{
  "nodes": [
    {"id": "a", "url": "https://example.com/", "title": "Home", "depth": 0, "discovery_order": 0, "size": 512},
    {"id": "b", "url": "https://blog.example.com/post", "depth": 1, "discovery_order": 1, "size": 256},
    {"id": "c", "url": "https://other.org/", "depth": 1, "discovery_order": 2}
  ],
  "edges": [
    {"source": "a", "target": "b", "link_text": "Blog"},
    {"source": "a", "target": "c"}
  ]
}`

func writeJob(t *testing.T, dir, jobID, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, jobID+".json"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func checkSample(t *testing.T, g *crawl.Graph, jobID string) {
	t.Helper()
	if g.JobID != jobID {
		t.Errorf("JobID = %q, want %q", g.JobID, jobID)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes / %d edges, want 3 / 2", g.NodeCount(), g.EdgeCount())
	}
	if g.Nodes[1].Domain != "example.com" {
		t.Errorf("domain of b = %q, want example.com", g.Nodes[1].Domain)
	}
	if g.Edges[0].LinkText != "Blog" {
		t.Errorf("link text = %q", g.Edges[0].LinkText)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writeJob(t, dir, "job-1", sampleGraph)
	writeJob(t, dir, "job-2", `{"nodes": [], "edges": []}`)

	src, err := NewFileSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	g, err := src.Load(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	checkSample(t, g, "job-1")

	jobs, err := src.Jobs()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 || jobs[0] != "job-1" || jobs[1] != "job-2" {
		t.Errorf("Jobs() = %v", jobs)
	}
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()
	writeJob(t, dir, "broken", `{"nodes": [{"id": "a", "url": "https://a.com/", "depth": 0}]}`)

	src, err := NewFileSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tests := []struct {
		name  string
		jobID string
		want  errs.Code
	}{
		{"missing job", "nope", errs.ErrCodeNotFound},
		{"traversal", "../etc/passwd", errs.ErrCodeInvalidJobID},
		{"empty id", "", errs.ErrCodeInvalidJobID},
		{"missing field", "broken", errs.ErrCodeMalformedNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.Load(ctx, tt.jobID)
			if got := errs.GetCode(err); got != tt.want {
				t.Errorf("Load(%q) code = %s, want %s (err: %v)", tt.jobID, got, tt.want, err)
			}
		})
	}
}

func TestNewFileSourceRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileSource(path); !errs.Is(err, errs.ErrCodeInvalidSource) {
		t.Errorf("NewFileSource(file) err = %v, want INVALID_SOURCE", err)
	}
	if _, err := NewFileSource(filepath.Join(path, "missing")); err == nil {
		t.Error("NewFileSource(missing) should fail")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"default is file", Config{Dir: dir}, KindFile, false},
		{"file", Config{Kind: "FILE", Dir: dir}, KindFile, false},
		{"http", Config{Kind: "http", URL: "http://localhost:1"}, KindHTTP, false},
		{"http without url", Config{Kind: "http"}, "", true},
		{"sqlite without path", Config{Kind: "sqlite"}, "", true},
		{"mongo without uri", Config{Kind: "mongo"}, "", true},
		{"unknown", Config{Kind: "kafka"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(ctx, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errs.Is(err, errs.ErrCodeInvalidSource) {
					t.Errorf("Open() code = %s, want INVALID_SOURCE", errs.GetCode(err))
				}
				return
			}
			defer src.Close()
			if src.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.want)
			}
		})
	}
}
