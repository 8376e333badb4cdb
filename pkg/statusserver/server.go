package statusserver

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Status is a snapshot of the coordinator's build progress.
type Status struct {
	Phase       string    `json:"phase"` // "table_init", "generating", "aggregating", "writing", "done"
	N           int       `json:"n"`
	World       int       `json:"world"`
	VertexCount int       `json:"vertex_count"`
	EdgeCount   int       `json:"edge_count"`
	TreesDone   int       `json:"trees_done"`
	TreesTotal  int       `json:"trees_total"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Server exposes the coordinator's current [Status] over HTTP.
type Server struct {
	router *chi.Mux
	status atomic.Pointer[Status]
}

// New builds a Server with healthz and status routes registered. Callers
// start it with http.ListenAndServe(addr, srv.Handler()) or equivalent.
func New() *Server {
	s := &Server{}
	s.status.Store(&Status{Phase: "starting"})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/status", s.handleStatus)
	s.router = r

	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetStatus updates the status snapshot returned by GET /status. Safe for
// concurrent use; the coordinator calls it from pkg/builder's phase
// transitions.
func (s *Server) SetStatus(st Status) {
	st.UpdatedAt = time.Now()
	s.status.Store(&st)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.status.Load()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}
