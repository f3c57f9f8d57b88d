// Package server exposes the dashboard HTTP API and the websocket session
// that streams built graphs and layout positions to the browser frontend.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/icdkit/icdgraph/internal/config"
	"github.com/icdkit/icdgraph/internal/hierarchy"
	"github.com/icdkit/icdgraph/internal/predict"
	"github.com/icdkit/icdgraph/internal/store"
)

var upgrader = websocket.Upgrader{}

func init() {
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
}

type Server struct {
	logger    *slog.Logger
	cfg       config.Config
	predictor predict.Predictor
	hier      *hierarchy.Manager
	cases     *store.Store
}

func New(logger *slog.Logger, cfg config.Config, predictor predict.Predictor, hier *hierarchy.Manager, cases *store.Store) *Server {
	return &Server{
		logger:    logger,
		cfg:       cfg,
		predictor: predictor,
		hier:      hier,
		cases:     cases,
	}
}

// Routes wires all handlers onto a fresh mux. Static files (the frontend) are
// served from the configured directory.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/predict", s.handlePredict)
	mux.HandleFunc("/api/predict/sample", s.handleSample)
	mux.HandleFunc("/api/graph/visualize", s.handleVisualize)
	mux.HandleFunc("/api/graph/explain", s.handleExplain)
	mux.HandleFunc("/api/graph/hierarchy", s.handleHierarchy)
	mux.HandleFunc("/api/graph/search", s.handleSearch)
	mux.HandleFunc("/api/graph/semantic-similarity", s.handleSemanticSimilarity)
	mux.HandleFunc("/api/cases", s.handleCases)
	mux.HandleFunc("/ws", s.handleSession)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "live"
	if _, isMock := s.predictor.(predict.Mock); isMock {
		mode = "mock"
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"mode":   mode,
	})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	cases, recommended := predict.SampleCases()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sample_cases": cases,
		"recommended":  recommended,
	})
}

func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	if s.cases == nil {
		s.writeError(w, http.StatusServiceUnavailable, "case store not configured")
		return
	}
	cases, err := s.cases.ListCases(50)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"cases": cases,
		"total": len(cases),
	})
}
