// Package web serves the dashboard over HTTP. Page routes pass through the
// authorization gate; the JSON API drives login, logout and the theme.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/dashshell/internal/client/gate"
	"github.com/dmitrijs2005/dashshell/internal/client/services"
	"github.com/dmitrijs2005/dashshell/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	router   chi.Router
	session  services.SessionService
	theme    services.ThemeService
	feed     services.FeedService
	logger   logging.Logger
	metrics  *metrics
	gatherer prometheus.Gatherer
}

// NewServer builds the router. A nil registry gets a private one, so
// several servers can live in one process.
func NewServer(address string, session services.SessionService, theme services.ThemeService, feed services.FeedService, logger logging.Logger, reg *prometheus.Registry) *Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		address:  address,
		session:  session,
		theme:    theme,
		feed:     feed,
		logger:   logger.With("module", "http_server"),
		metrics:  newMetrics(reg),
		gatherer: reg,
	}
	s.routes()
	return s
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Get(gate.HomePath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, gate.DashboardPath, http.StatusFound)
	})

	for _, route := range gate.Routes {
		if route.Protected {
			r.With(s.guard(route)).Get(route.Path, s.page(route))
		} else {
			r.Get(route.Path, s.page(route))
		}
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Get("/session", s.handleSession)
		r.Get("/theme", s.handleTheme)
		r.Post("/theme/toggle", s.handleThemeToggle)
		r.Put("/theme/{theme}", s.handleThemeSet)
	})

	r.NotFound(s.notFound)

	s.router = r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
