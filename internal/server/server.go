// Package server implements the vocamap HTTP API.
//
// The API exposes project snapshot CRUD on top of a store backend and
// layout computation through the shared pipeline Runner:
//
//	GET    /healthz                          liveness probe
//	GET    /v1/projects                      list stored projects
//	PUT    /v1/projects/{project}            upsert a project snapshot
//	GET    /v1/projects/{project}            fetch a project snapshot
//	DELETE /v1/projects/{project}            delete a project snapshot
//	GET    /v1/projects/{project}/layout     compute a layout for a stored project
//	POST   /v1/layout                        compute a layout for an ad-hoc snapshot
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/pipeline"
	"github.com/vocamap/vocamap/pkg/store"
)

// Server is the vocamap HTTP API server.
type Server struct {
	store    store.Store
	runner   *pipeline.Runner
	logger   *log.Logger
	geometry *layout.Config
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithGeometry overrides the default layout geometry for all requests.
func WithGeometry(cfg layout.Config) Option {
	return func(s *Server) { s.geometry = &cfg }
}

// New creates a server with the given store and pipeline runner.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:  st,
		runner: runner,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// routes builds the chi router with middleware and endpoints.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/projects", s.handleListProjects)
		v1.Put("/projects/{project}", s.handlePutProject)
		v1.Get("/projects/{project}", s.handleGetProject)
		v1.Delete("/projects/{project}", s.handleDeleteProject)
		v1.Get("/projects/{project}/layout", s.handleProjectLayout)
		v1.Post("/layout", s.handleAdhocLayout)
	})

	return r
}

// ListenAndServe starts the server and blocks until ctx is canceled.
// Shutdown drains in-flight requests for up to 10 seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
