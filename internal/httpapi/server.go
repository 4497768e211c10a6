package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/sitewatch/internal/httpapi/middleware"
	"github.com/hamed0406/sitewatch/internal/store"
)

// Server exposes the current status records read-only. It never mutates
// the store; cycles own all writes.
type Server struct {
	Logger *zap.Logger
	Store  store.StatusStore
}

func NewServer(l *zap.Logger, st store.StatusStore) *Server {
	return &Server{Logger: l, Store: st}
}

func (s *Server) Router(apiKeys []string, rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rpm, burst))
		r.Use(middleware.RequireKey(apiKeys))
		r.Get("/api/status", s.handleStatus)
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	recs := s.Store.All()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(recs); err != nil {
		s.Logger.Warn("status_encode_error", zap.Error(err))
	}
}
