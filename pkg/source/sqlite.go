package source

import (
	"context"
	"database/sql"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// SQLiteSource reads crawl databases with the tables
//
//	pages(id, url, title, depth, discovery_order, domain, size, job_id)
//	links(job_id, source, target, link_text)
//
// The database is opened read-only; the crawler owns the schema.
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// NewSQLiteSource opens the database at path.
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	if path == "" {
		return nil, errs.New(errs.ErrCodeInvalidSource, "sqlite path is required")
	}

	dsn := "file:" + path + "?" + url.Values{
		"mode":          {"ro"},
		"_busy_timeout": {"5000"},
	}.Encode()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "open database %s", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "connect to database %s", path)
	}
	return &SQLiteSource{db: db, path: path}, nil
}

const (
	pagesQuery = `
		SELECT id, url, title, depth, discovery_order, domain, size
		FROM pages
		WHERE job_id = ?
		ORDER BY discovery_order, id`

	linksQuery = `
		SELECT source, target, link_text
		FROM links
		WHERE job_id = ?
		ORDER BY rowid`
)

func (s *SQLiteSource) Load(ctx context.Context, jobID string) (*crawl.Graph, error) {
	if err := errs.ValidateJobID(jobID); err != nil {
		return nil, err
	}

	raw := crawl.RawGraph{JobID: jobID}
	if err := s.loadPages(ctx, jobID, &raw); err != nil {
		return nil, err
	}
	if len(raw.Nodes) == 0 {
		return nil, notFound(jobID)
	}
	if err := s.loadLinks(ctx, jobID, &raw); err != nil {
		return nil, err
	}
	return raw.Graph()
}

func (s *SQLiteSource) loadPages(ctx context.Context, jobID string, raw *crawl.RawGraph) error {
	rows, err := s.db.QueryContext(ctx, pagesQuery, jobID)
	if err != nil {
		return queryError(err, "query pages")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			n             crawl.RawNode
			title, domain sql.NullString
			size          sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.URL, &title, &n.Depth, &n.DiscoveryOrder, &domain, &size); err != nil {
			return queryError(err, "scan page")
		}
		n.Title, n.Domain, n.Size = title.String, domain.String, size.Int64
		raw.Nodes = append(raw.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return queryError(err, "read pages")
	}
	return nil
}

func (s *SQLiteSource) loadLinks(ctx context.Context, jobID string, raw *crawl.RawGraph) error {
	rows, err := s.db.QueryContext(ctx, linksQuery, jobID)
	if err != nil {
		return queryError(err, "query links")
	}
	defer rows.Close()

	raw.Edges = []crawl.Edge{}
	for rows.Next() {
		var (
			e    crawl.Edge
			text sql.NullString
		)
		if err := rows.Scan(&e.Source, &e.Target, &text); err != nil {
			return queryError(err, "scan link")
		}
		e.LinkText = text.String
		raw.Edges = append(raw.Edges, e)
	}
	if err := rows.Err(); err != nil {
		return queryError(err, "read links")
	}
	return nil
}

// Jobs lists the distinct job ids in the database.
func (s *SQLiteSource) Jobs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT job_id FROM pages ORDER BY job_id`)
	if err != nil {
		return nil, queryError(err, "query jobs")
	}
	defer rows.Close()

	var jobs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, queryError(err, "scan job")
		}
		jobs = append(jobs, id)
	}
	return jobs, rows.Err()
}

func queryError(err error, what string) error {
	return errs.Wrap(errs.ErrCodeInternal, err, "%s", what)
}

func (s *SQLiteSource) Name() string { return KindSQLite }

func (s *SQLiteSource) Close() error { return s.db.Close() }

var _ Source = (*SQLiteSource)(nil)
