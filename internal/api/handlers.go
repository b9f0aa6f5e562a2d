package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/layout"
	"github.com/matzehuels/crawlviz/pkg/render"
)

// Headers describing a stale layout on non-JSON responses.
const (
	HeaderStale = "X-Layout-Stale"
	HeaderError = "X-Layout-Error"
)

// EdgesResponse is the body of GET /api/jobs/{jobID}/edges.
type EdgesResponse struct {
	JobID        string                 `json:"job_id"`
	Hierarchical int                    `json:"hierarchical"`
	CrossLinks   int                    `json:"cross_links"`
	Dangling     int                    `json:"dangling_edges"`
	Edges        []graph.ClassifiedEdge `json:"edges"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"kinds":     Kinds(),
	})
}

// jobID reads and validates the {jobID} path parameter.
func jobID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "jobID")
	if err := errs.ValidateJobID(id); err != nil {
		return "", err
	}
	return id, nil
}

// viewLayout refreshes the live view of a job. A stale layout is returned
// with a nil error: the caller serves it.
func (s *Server) viewLayout(r *http.Request) (graph.Layout, error) {
	id, err := jobID(r)
	if err != nil {
		return graph.Layout{}, err
	}
	l, err := s.views.Get(id, r.URL.Query().Get("kind")).Refresh(r.Context())
	if err != nil && !l.Stale {
		return graph.Layout{}, err
	}
	if err != nil {
		s.logger.Warn("serving stale layout", "job", id, "kind", l.Kind, "err", err)
	}
	return l, nil
}

func (s *Server) handleJobLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.viewLayout(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setFallback(w, l)
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleJobLayouts(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.base
	opts.JobID = id
	g, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	all, err := s.runner.LayoutAll(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make(map[string]graph.Layout, len(all))
	for kind, l := range all {
		out[string(kind)] = l
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleJobEdges(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.base
	opts.JobID = id
	g, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.runner.GenerateLayout(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EdgesResponse{
		JobID:        id,
		Hierarchical: l.CountEdges(graph.EdgeHierarchical),
		CrossLinks:   l.CountEdges(graph.EdgeCrossLink),
		Dangling:     l.Dangling,
		Edges:        l.Edges,
	})
}

func (s *Server) handleJobRender(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.viewLayout(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.base
	opts.Formats = []string{string(format)}
	artifacts, err := s.runner.Render(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setFallback(w, l)
	if l.Stale {
		w.Header().Set(HeaderStale, "true")
		w.Header().Set(HeaderError, l.Error)
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[string(format)])
}

// handleLayout lays out a graph posted in the crawler's wire format.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	g, err := crawl.ReadGraph(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.base
	if kind := r.URL.Query().Get("kind"); kind != "" {
		opts.Kind = kind
	}
	l, err := s.runner.GenerateLayout(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setFallback(w, l)
	writeJSON(w, http.StatusOK, l)
}

func setFallback(w http.ResponseWriter, l graph.Layout) {
	if l.IsFallback() {
		w.Header().Set(HeaderFallback, l.Kind)
	}
}

// Kinds lists the layout kinds the API accepts without falling back.
func Kinds() []string {
	kinds := layout.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
