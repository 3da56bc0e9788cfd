// Package api serves the content tree over HTTP: it wires the router,
// parser and HTML writer into a request pipeline behind a chi mux.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gohashira/wtf/internal/config"
	"github.com/gohashira/wtf/internal/htmlwriter"
	"github.com/gohashira/wtf/internal/router"
)

// Server is the HTTP server for the markup site.
type Server struct {
	mux    chi.Router
	router *router.Router
	writer *htmlwriter.Writer
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(rt *router.Router, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		router: rt,
		writer: htmlwriter.NewWriter(),
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(RequestMetrics())

	r.Get("/healthz", s.handleHealth)
	if s.cfg.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	// Everything else is a content page.
	r.Get("/*", s.handlePage)

	s.mux = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
