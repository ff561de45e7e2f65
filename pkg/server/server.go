// Package server exposes the build pipeline over HTTP.
//
// Endpoints:
//
//	GET  /healthz                      liveness and version
//	GET  /v1/decoders                  the decoder table
//	GET  /v1/decoders/{name}           build report (json)
//	GET  /v1/decoders/{name}/{format}  one artifact of a table decoder
//	POST /v1/build?format=schem        one artifact of a posted decoder
//
// Artifact endpoints accept ?offset=x,y,z for schematic formats. Errors
// are JSON bodies carrying the error code, with 400 for invalid input, 404
// for unknown decoders and 500 otherwise.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/circuitgen/pkg/decoders"
	"github.com/matzehuels/circuitgen/pkg/pipeline"
)

// Defaults for Options.
const (
	DefaultMaxBodyBytes = 64 << 10
	DefaultTimeout      = 30 * time.Second
)

// Options configures a Server.
type Options struct {
	// Table serves the decoder endpoints. Defaults to the built-in RVC table.
	Table *decoders.Table

	// MaxBodyBytes limits POST bodies.
	MaxBodyBytes int64

	// Timeout bounds each request.
	Timeout time.Duration

	Logger *log.Logger
}

// Server is the HTTP build service.
type Server struct {
	runner *pipeline.Runner
	table  *decoders.Table
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New returns a server building with runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Table == nil {
		opts.Table = decoders.RVC()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	s := &Server{
		runner: runner,
		table:  opts.Table,
		opts:   opts,
		logger: opts.Logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/decoders", s.handleList)
		r.Get("/decoders/{name}", s.handleReport)
		r.Get("/decoders/{name}/{format}", s.handleArtifact)
		r.Post("/build", s.handleBuild)
	})
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
