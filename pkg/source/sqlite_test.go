package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

const crawlSchema = `
CREATE TABLE pages (
	id TEXT NOT NULL,
	url TEXT NOT NULL,
	title TEXT,
	depth INTEGER,
	discovery_order INTEGER,
	domain TEXT,
	size INTEGER,
	job_id TEXT NOT NULL
);
CREATE TABLE links (
	job_id TEXT NOT NULL,
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	link_text TEXT
);`

func newCrawlDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crawl.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stmts := []string{
		crawlSchema,
		`INSERT INTO pages VALUES ('c', 'https://other.org/', NULL, 1, 2, NULL, NULL, 'job-1')`,
		`INSERT INTO pages VALUES ('a', 'https://example.com/', 'Home', 0, 0, NULL, 512, 'job-1')`,
		`INSERT INTO pages VALUES ('b', 'https://blog.example.com/post', NULL, 1, 1, NULL, 256, 'job-1')`,
		`INSERT INTO links VALUES ('job-1', 'a', 'b', 'Blog')`,
		`INSERT INTO links VALUES ('job-1', 'a', 'c', NULL)`,
		`INSERT INTO pages VALUES ('x', 'https://x.com/', NULL, NULL, 0, NULL, 1, 'job-bad')`,
		`INSERT INTO pages VALUES ('y', 'https://y.com/', NULL, 0, 0, NULL, 1, 'job-lonely')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	return path
}

func TestSQLiteSource(t *testing.T) {
	src, err := NewSQLiteSource(newCrawlDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	ctx := context.Background()

	g, err := src.Load(ctx, "job-1")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	checkSample(t, g, "job-1")
	if g.Nodes[0].ID != "a" {
		t.Errorf("nodes should be ordered by discovery order, got %s first", g.Nodes[0].ID)
	}

	lonely, err := src.Load(ctx, "job-lonely")
	if err != nil {
		t.Fatal(err)
	}
	if lonely.Edges == nil || len(lonely.Edges) != 0 {
		t.Errorf("job without links should have empty edges, got %v", lonely.Edges)
	}

	jobs, err := src.Jobs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Errorf("Jobs() = %v", jobs)
	}
}

func TestSQLiteSourceErrors(t *testing.T) {
	src, err := NewSQLiteSource(newCrawlDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	ctx := context.Background()

	if _, err := src.Load(ctx, "job-missing"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("missing job err = %v", err)
	}
	if _, err := src.Load(ctx, "job-bad"); !errs.Is(err, errs.ErrCodeMalformedNode) {
		t.Errorf("NULL depth err = %v", err)
	}
	if _, err := src.Load(ctx, "a\nb"); !errs.Is(err, errs.ErrCodeInvalidJobID) {
		t.Errorf("invalid id err = %v", err)
	}
}

func TestSQLiteSourceMissingFile(t *testing.T) {
	_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "absent.db"))
	if !errs.Is(err, errs.ErrCodeInvalidSource) {
		t.Errorf("err = %v, want INVALID_SOURCE", err)
	}
}
