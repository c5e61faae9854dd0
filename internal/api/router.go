package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	// API v1 routes (read-only, no auth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		r.Route("/classification", func(r chi.Router) {
			r.Get("/", s.handleClassification)
			r.Get("/platforms", s.handleListPlatforms)
			r.Get("/platforms/{platform}", s.handlePlatformEntities)
			r.Get("/devices", s.handleListDevices)
			r.Get("/variables", s.handleListVariables)
		})

		r.Get("/history", s.handleHistory)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// handleMetrics returns basic process metrics for monitoring.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	writeJSON(w, http.StatusOK, map[string]any{
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"heap_alloc_mb":  mem.HeapAlloc / (1 << 20),
		"total_alloc_mb": mem.TotalAlloc / (1 << 20),
		"num_gc":         mem.NumGC,
		"go_version":     runtime.Version(),
		"bridge_version": s.version,
	})
}
