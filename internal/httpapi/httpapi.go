// Package httpapi is the thin HTTP transport over the interview engine. It
// translates requests into engine calls and engine errors into status codes;
// no interview logic lives here.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/engine"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/notify"
	"github.com/abhisek/intervue/internal/store"
)

// Server holds the transport dependencies.
type Server struct {
	engine *engine.Engine
	hub    *notify.Hub
	log    *zap.Logger
}

// New assembles the server.
func New(eng *engine.Engine, hub *notify.Hub, log *zap.Logger) *Server {
	return &Server{engine: eng, hub: hub, log: log}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)

	// Candidate-facing flow, keyed by opaque invite token.
	r.Route("/api/invite/{token}", func(r chi.Router) {
		r.Get("/", s.bootstrapInvite)
		r.Post("/profile", s.attachProfile)
		r.Post("/resume", s.attachResume)
		r.Post("/start", s.startInterview)
		r.Post("/answers", s.submitAnswer)
		r.Post("/complete", s.completeInterview)
	})

	// Interviewer-facing dashboard.
	r.Route("/api/interviews", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Post("/", s.createInvite)
		r.Get("/{id}", s.getSession)
		r.Post("/{id}/expire", s.expireSession)
	})

	r.Get("/ws/{sessionID}", s.observe)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return false
	}
	return true
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeError maps engine error kinds onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		profile     *interview.ProfileIncompleteError
		unavailable *llm.ErrProviderUnavailable
		rateLimited *llm.ErrRateLimit
	)
	switch {
	case errors.As(err, &profile):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":         "profile incomplete",
			"missingFields": profile.MissingFields,
		})
	case errors.Is(err, interview.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("session not found"))
	case errors.Is(err, interview.ErrSessionExpired):
		writeJSON(w, http.StatusGone, errorBody("session expired"))
	case errors.Is(err, interview.ErrSessionCompleted),
		errors.Is(err, interview.ErrInterviewNotActive),
		errors.Is(err, interview.ErrNoActiveQuestion):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.As(err, &unavailable), errors.As(err, &rateLimited):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("evaluation backend unavailable"))
	case errors.Is(err, store.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, errorBody("session was modified concurrently"))
	default:
		s.log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
