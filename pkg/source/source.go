// Package source loads crawl graphs from the services that produce them.
//
// # Overview
//
// The crawler, its job scheduler and its database are external systems.
// A [Source] only reads the nodes and edges of one crawl job from them:
//
//   - [FileSource]: JSON exports on disk, one file per job
//   - [HTTPSource]: the crawler's REST API
//   - [SQLiteSource]: a crawler database file
//   - [MongoSource]: a MongoDB collection of job documents
//
// Use [Open] to build a source from configuration:
//
//	src, err := source.Open(ctx, source.Config{Kind: source.KindHTTP, URL: "http://crawler:8080"})
//	defer src.Close()
//	g, err := src.Load(ctx, "job-42")
//
// # Errors
//
// All sources return coded errors from pkg/errors: INVALID_JOB_ID for bad
// identifiers, NOT_FOUND for unknown jobs, NETWORK_ERROR or TIMEOUT for
// transport failures and MALFORMED_NODE when a stored node lacks depth or
// discovery order.
package source

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// Source kinds accepted by [Open].
const (
	KindFile   = "file"
	KindHTTP   = "http"
	KindSQLite = "sqlite"
	KindMongo  = "mongo"
)

// Source loads the crawl graph of a job.
type Source interface {
	// Load returns the current graph of jobID. Graphs of running jobs may
	// grow between calls.
	Load(ctx context.Context, jobID string) (*crawl.Graph, error)

	// Name returns the source kind, used in cache keys and logs.
	Name() string

	Close() error
}

// Config selects and configures a source.
type Config struct {
	Kind string `toml:"kind"`

	// file
	Dir string `toml:"dir"`

	// http
	URL      string        `toml:"url"`
	Token    string        `toml:"token"`
	Timeout  time.Duration `toml:"timeout"`
	Attempts int           `toml:"attempts"`

	// sqlite
	Path string `toml:"path"`

	// mongo
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Open creates the source named by cfg.Kind. An empty kind means file.
func Open(ctx context.Context, cfg Config) (Source, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", KindFile:
		return NewFileSource(cfg.Dir)
	case KindHTTP:
		return NewHTTPSource(HTTPOptions{
			BaseURL:  cfg.URL,
			Token:    cfg.Token,
			Timeout:  cfg.Timeout,
			Attempts: cfg.Attempts,
		})
	case KindSQLite:
		return NewSQLiteSource(cfg.Path)
	case KindMongo:
		return NewMongoSource(ctx, MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
	}
	return nil, errs.New(errs.ErrCodeInvalidSource, "unknown source kind %q (want file, http, sqlite or mongo)", cfg.Kind)
}

// Kinds returns the supported source kinds.
func Kinds() []string {
	return []string{KindFile, KindHTTP, KindSQLite, KindMongo}
}

func notFound(jobID string) error {
	return errs.New(errs.ErrCodeNotFound, "crawl job %q not found", jobID)
}
