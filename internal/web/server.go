// Package web exposes the analysis pipeline as a JSON REST API.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/scan"
	"github.com/codegate-sec/codegate/internal/web/jobs"
)

// Server is the HTTP server for the CodeGate API.
type Server struct {
	router  chi.Router
	addr    string
	manager *jobs.Manager
	history *history.Store
}

// NewServer builds a new Server with middleware and routes configured.
// hist may be nil to disable the history endpoints.
func NewServer(addr string, service *scan.Service, hist *history.Store) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		addr:    addr,
		manager: jobs.NewManager(service),
		history: hist,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.registerRoutes()

	return s
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	return http.ListenAndServe(s.addr, s.router)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
