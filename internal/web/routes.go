package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codegate-sec/codegate/internal/web/api"
)

// registerRoutes mounts all route groups on the server's router.
func (s *Server) registerRoutes() {
	apiHandlers := api.NewHandlers(s.manager, s.history)

	// Health check
	s.router.Get("/health", s.handleHealth)

	// REST API
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/scans", apiHandlers.CreateScan)
		r.Get("/scans", apiHandlers.ListScans)
		r.Get("/scans/{id}", apiHandlers.GetScan)
		r.Get("/scans/{id}/report", apiHandlers.GetScanReport)
		r.Delete("/scans/{id}", apiHandlers.DeleteScan)
		r.Get("/history", apiHandlers.ListHistory)
		r.Get("/history/stats", apiHandlers.GetHistoryStats)
	})
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
