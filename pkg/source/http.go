package source

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/crawlviz/pkg/buildinfo"
	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
	"github.com/matzehuels/crawlviz/pkg/httputil"
	"github.com/matzehuels/crawlviz/pkg/observability"
)

// HTTPOptions configures an [HTTPSource].
type HTTPOptions struct {
	// BaseURL of the crawler API, e.g. "http://crawler:8080".
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Timeout per request; zero means httputil.DefaultTimeout.
	Timeout time.Duration
	// Attempts including the first; zero means httputil.DefaultPolicy.
	Attempts int
	// Backoff before the first retry; zero means httputil.DefaultPolicy.
	Backoff time.Duration
	// Client overrides the HTTP client. It is instrumented with
	// observability hooks either way.
	Client *http.Client
}

// HTTPSource fetches graphs from GET {base}/api/jobs/{id}/graph.
type HTTPSource struct {
	base   *url.URL
	token  string
	client *http.Client
	retry  httputil.Policy
}

// NewHTTPSource creates a REST source.
func NewHTTPSource(opts HTTPOptions) (*HTTPSource, error) {
	if err := errs.ValidateURL(opts.BaseURL); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "crawler url")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "parse crawler url")
	}

	client := opts.Client
	if client == nil {
		client = httputil.NewClient(opts.Timeout)
	}
	retry := httputil.DefaultPolicy
	if opts.Attempts > 0 {
		retry.Attempts = opts.Attempts
	}
	if opts.Backoff > 0 {
		retry.Backoff = opts.Backoff
	}

	return &HTTPSource{
		base:   base,
		token:  opts.Token,
		client: observability.InstrumentClient(client),
		retry:  retry,
	}, nil
}

func (s *HTTPSource) Load(ctx context.Context, jobID string) (*crawl.Graph, error) {
	if err := errs.ValidateJobID(jobID); err != nil {
		return nil, err
	}

	var g *crawl.Graph
	err := s.retry.Do(ctx, func() error {
		var err error
		g, err = s.fetch(ctx, jobID)
		return err
	})
	if err != nil {
		if errs.Is(err, errs.ErrCodeNotFound) {
			return nil, notFound(jobID)
		}
		return nil, err
	}
	if g.JobID == "" {
		g.JobID = jobID
	}
	return g, nil
}

func (s *HTTPSource) fetch(ctx context.Context, jobID string) (*crawl.Graph, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.GraphURL(jobID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &httputil.RetryableError{Err: errs.Wrap(errs.ErrCodeTimeout, err, "fetch job %s", jobID)}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: errs.Wrap(errs.ErrCodeNetwork, err, "fetch job %s", jobID)}
	}
	defer resp.Body.Close()

	if err := httputil.CheckResponse(resp); err != nil {
		return nil, err
	}
	return crawl.ReadGraph(resp.Body)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout())
}

// GraphURL returns the endpoint for jobID.
func (s *HTTPSource) GraphURL(jobID string) string {
	return s.base.JoinPath("api", "jobs", jobID, "graph").String()
}

func (s *HTTPSource) Name() string { return KindHTTP }

func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

var _ Source = (*HTTPSource)(nil)
