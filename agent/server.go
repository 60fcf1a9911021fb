package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"quoridor/codec"
	"quoridor/env"
	"quoridor/game"
)

const maxActBody = 64 * 1024

type ActRequest struct {
	PGN string `json:"pgn"`
}

type ActResponse struct {
	Action   int      `json:"action"`
	Move     string   `json:"move"`
	Strategy Strategy `json:"strategy,omitempty"`
}

// Server exposes one agent over HTTP. Requests are served one at a time since
// agents keep per-game state.
type Server struct {
	mu    sync.Mutex
	agent Agent
}

func NewServer(agent Agent) *Server {
	return &Server{agent: agent}
}

// Routes builds the HTTP router for the agent.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/act", s.handleAct)
	return r
}

func (s *Server) handleAct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxActBody)
	defer r.Body.Close()
	var payload ActRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	e, err := env.Load(payload.PGN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	obs, reward, terminated, _, info := e.Last()
	if terminated {
		writeError(w, http.StatusConflict, game.ErrGameOver.Error())
		return
	}

	s.mu.Lock()
	action, err := s.agent.Act(r.Context(), obs, reward, info)
	var report Report
	if reporter, ok := s.agent.(Reporter); ok {
		report = reporter.Report()
	}
	s.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Str("pgn", payload.PGN).Msg("agent failed to act")
		status := http.StatusInternalServerError
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}

	move, err := codec.ToStructured(action)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ActResponse{Action: action, Move: move, Strategy: report.Strategy})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
