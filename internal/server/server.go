// Package server wires the chi router: API routes, health endpoints,
// and the embedded UI.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/printdesk/jobtrack/internal/assets/webui"
	apperrors "github.com/printdesk/jobtrack/internal/errors"
	"github.com/printdesk/jobtrack/internal/formschema"
	"github.com/printdesk/jobtrack/internal/server/handlers"
	"github.com/printdesk/jobtrack/internal/server/middleware"
	"github.com/printdesk/jobtrack/internal/sheets"
)

// Options configures the server.
type Options struct {
	// Backend is the spreadsheet store (required).
	Backend sheets.Backend

	// Schema is the form field-descriptor list (required).
	Schema *formschema.Schema

	// Version is reported by /version and the health endpoints.
	Version string

	// RateLimitRPS/RateLimitBurst throttle POST /api/jobs when RPS > 0.
	RateLimitRPS   float64
	RateLimitBurst int

	// Now overrides the submission clock (tests).
	Now func() time.Time

	// ReadTimeout/WriteTimeout/IdleTimeout configure the http.Server.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server is the HTTP server.
type Server struct {
	host    string
	port    int
	opts    Options
	router  chi.Router
	httpSrv *http.Server
}

// New builds the server and its route table.
func New(host string, port int, opts Options) *Server {
	s := &Server{host: host, port: port, opts: opts}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recovery)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apperrors.Write(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		apperrors.Write(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	jobsHandler := handlers.NewJobsHandler(s.opts.Backend, s.opts.Now)
	schemaHandler := handlers.NewSchemaHandler(s.opts.Schema)

	submit := http.Handler(http.HandlerFunc(jobsHandler.Submit))
	if s.opts.RateLimitRPS > 0 {
		submit = middleware.RateLimit(s.opts.RateLimitRPS, s.opts.RateLimitBurst)(submit)
	}

	r.Route("/api", func(api chi.Router) {
		api.Method(http.MethodPost, "/jobs", submit)
		api.Get("/jobs", jobsHandler.List)
		api.Get("/jobs/export", jobsHandler.Export)
		api.Get("/schema", schemaHandler.Get)
		api.Get("/health", jobsHandler.Probe)
	})

	if manager := handlers.GetHealthManager(); manager != nil {
		r.Get("/health", manager.HealthHandler)
		r.Get("/health/live", manager.LiveHandler)
		r.Get("/health/ready", manager.ReadyHandler)
	}

	r.Get("/version", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"version":%q}`, s.opts.Version)
	})

	// Embedded UI at the root.
	ui := http.FileServer(http.FS(webui.FS))
	r.Handle("/", ui)
	r.Handle("/index.html", ui)
	r.Handle("/app.js", ui)
	r.Handle("/styles.css", ui)

	return r
}

// Start runs the server until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen on %s: %w", s.Addr(), err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
