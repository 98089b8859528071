package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anrid/lifecycle-stats/internal/metrics"
	"github.com/anrid/lifecycle-stats/pkg/stats"
)

// Server is the read-only HTTP layer over a loaded dataset. Handlers
// recompute everything per request and never modify the dataset.
type Server struct {
	ds       *stats.Dataset
	log      *slog.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

func New(ds *stats.Dataset, log *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	return &Server{ds: ds, log: log, metrics: m, gatherer: gatherer}
}

// NewHTTPServer builds an http.Server with the project's timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Router wires all endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/regions", s.handleRegions)
		r.Get("/bounds", s.handleBounds)
		r.Get("/benchmark", s.handleBenchmark)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/comparison", s.handleComparison)
		r.Get("/export.csv", s.handleExportCSV)
		r.Get("/export.xlsx", s.handleExportXLSX)
		r.Get("/charts/{name}.png", s.handleChart)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
