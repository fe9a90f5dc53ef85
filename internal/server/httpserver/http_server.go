// Package httpserver wires the celerity-docs HTTP endpoints.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/newstack-cloud/celerity-docs/internal/config"
	derrors "github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/llmtext"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/server/handlers"
	smw "github.com/newstack-cloud/celerity-docs/internal/server/middleware"
)

// Server serves the plain-text route, search API and monitoring endpoints.
type Server struct {
	cfg          *config.Config
	opts         Options
	errorAdapter *derrors.HTTPErrorAdapter

	monitoringHandlers *handlers.MonitoringHandlers
	llmTextHandlers    *handlers.LLMTextHandlers
	searchHandlers     *handlers.SearchHandlers

	mchain func(http.Handler) http.Handler

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// New constructs a new HTTP server wiring instance.
func New(cfg *config.Config, opts Options) *Server {
	s := &Server{
		cfg:          cfg,
		opts:         opts,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}

	backend := ""
	if opts.Search != nil {
		backend = opts.Search.Backend().Name()
		s.searchHandlers = handlers.NewSearchHandlers(opts.Search)
	}
	s.monitoringHandlers = handlers.NewMonitoringHandlers(opts.Content, backend)
	renderer := llmtext.Renderer{SiteURL: cfg.Site.URL, DocsRoute: cfg.Site.DocsRoute}
	s.llmTextHandlers = handlers.NewLLMTextHandlers(opts.Content, renderer, cfg.Site.Title, cfg.Site.Tagline, opts.Recorder)

	s.mchain = smw.Chain(slog.Default(), s.errorAdapter, opts.Recorder)
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /llms.mdx", s.llmTextHandlers.HandlePage)
	mux.HandleFunc("GET /llms.mdx/{slug...}", s.llmTextHandlers.HandlePage)
	mux.HandleFunc("GET /"+llmtext.IndexFile, s.llmTextHandlers.HandleIndex)
	if s.searchHandlers != nil {
		mux.HandleFunc("GET /api/search", s.searchHandlers.HandleSearch)
	}
	mux.HandleFunc("GET /health", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /ready", s.monitoringHandlers.HandleReadiness)
	if s.opts.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.opts.MetricsHandler)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.errorAdapter.WriteErrorResponse(w, r, derrors.NotFoundError("no such endpoint").
			WithContext("path", r.URL.Path).
			Build())
	})
	return s.mchain(mux)
}

// Start binds the configured address and serves in the background. Binding
// happens before returning so address conflicts surface immediately.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "http startup failed").
			WithContext("addr", s.cfg.Server.Addr).
			Build()
	}

	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.Server.ReadTimeoutDuration(),
		ReadTimeout:       s.cfg.Server.ReadTimeoutDuration(),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", logfields.Error(err))
		}
	}()
	slog.Info("HTTP server started", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeoutDuration())
	defer cancel()
	start := time.Now()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.Info("HTTP server stopped", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}
