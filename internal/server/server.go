// Package server wires routes and HTTP middleware.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"task-analyzer-backend/internal/analytics"
	"task-analyzer-backend/internal/config"
	"task-analyzer-backend/internal/tasks"
)

// HealthHandler always answers 200 {"ok":true}.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

// limitBody caps request bodies; handlers see *http.MaxBytesError past the cap.
func limitBody(n int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		next.ServeHTTP(w, r)
	})
}

// NewHandler builds the full handler chain: routes, body cap, CORS, h2c.
func NewHandler(cfg *config.Config, svc *tasks.Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", HealthHandler())
	mux.HandleFunc("OPTIONS /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/analyzeTasks", tasks.AnalyzeTasksHandler(svc, logger))

	// allow all origins; the API has no credentials to protect
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: append([]string{"Content-Type", "Authorization", "Accept-Language"}, analytics.Headers()...),
	})

	handler := c.Handler(limitBody(cfg.MaxBodyBytes, mux))
	return h2c.NewHandler(handler, &http2.Server{})
}

// New returns an *http.Server listening on cfg.Addr().
func New(cfg *config.Config, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
