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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/speich/dGraph/pkg/config"
	"github.com/speich/dGraph/pkg/observability"
	"github.com/speich/dGraph/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithHooks sets the HTTP hooks. The default is [observability.HTTP].
func WithHooks(h observability.HTTPHooks) Option {
	return func(s *Server) {
		if h != nil {
			s.hooks = h
		}
	}
}

// Server serves the layout API.
type Server struct {
	runner   *pipeline.Runner
	cfg      config.ServerConfig
	defaults pipeline.Options
	logger   *log.Logger
	hooks    observability.HTTPHooks
	gatherer prometheus.Gatherer
	router   chi.Router
}

// New creates a server around runner. cfg supplies the listen settings and
// the default pipeline options for requests.
func New(runner *pipeline.Runner, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		cfg:      cfg.Server,
		defaults: cfg.PipelineOptions(0),
		logger:   log.New(io.Discard),
		hooks:    observability.HTTP(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.recoverer)

	r.Get("/healthz", s.instrument("/healthz", s.handleHealth))
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/layout", s.instrument("/v1/layout", s.handleLayout))
		r.Post("/render", s.instrument("/v1/render", s.handleRender))
		r.Post("/path", s.instrument("/v1/path", s.handlePath))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
