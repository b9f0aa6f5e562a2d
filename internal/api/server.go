// Package api serves crawl-job layouts over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/jobs/{jobID}/layout?kind=
//	GET  /api/jobs/{jobID}/layouts
//	GET  /api/jobs/{jobID}/edges
//	GET  /api/jobs/{jobID}/render.{format}?kind=
//	POST /api/layout?kind=
//
// Job layouts are served from a live [pipeline.View] per (job, kind): when
// the crawl source fails after a successful load the last good layout is
// returned with stale set and the error text, instead of an error status.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/crawlviz/pkg/pipeline"
)

// HeaderFallback is set on layout responses when the requested kind was
// unknown; its value is the kind that was applied instead.
const HeaderFallback = "X-Layout-Fallback"

// maxBodyBytes bounds POST /api/layout request bodies.
const maxBodyBytes = 32 << 20

// Server exposes the pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	views  *pipeline.Views
	base   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// NewServer wires handlers onto a chi router. base supplies the layout and
// drawing defaults applied to every request.
func NewServer(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner: runner,
		views:  pipeline.NewViews(runner, base),
		base:   base,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP satisfies the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(requestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/jobs/{jobID}", func(r chi.Router) {
			r.Get("/layout", s.handleJobLayout)
			r.Get("/layouts", s.handleJobLayouts)
			r.Get("/edges", s.handleJobEdges)
			r.Get("/render.{format}", s.handleJobRender)
		})
		r.Post("/layout", s.handleLayout)
	})
}
