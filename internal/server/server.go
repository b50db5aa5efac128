// Package server exposes the simulation engine over HTTP with JSON bodies.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"lifesim/internal/config"
	"lifesim/internal/sim"
)

type handler struct {
	logger   *zap.Logger
	engine   *sim.Engine
	scenario *config.Scenario
}

// NewHandler constructs the HTTP handler that serves the simulation API.
// scenario may be nil when no preset is configured.
func NewHandler(logger *zap.Logger, engine *sim.Engine, scenario *config.Scenario) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{logger: logger, engine: engine, scenario: scenario}

	mux := http.NewServeMux()
	mux.HandleFunc("/simulate", h.handleSimulate)
	mux.HandleFunc("/state", h.handleState)
	mux.HandleFunc("/scenario", h.handleScenario)

	return withCORS(mux)
}

type simulateRequest struct {
	Action  string       `json:"action"`
	Config  *sim.Config  `json:"config,omitempty"`
	Targets []sim.Target `json:"targets,omitempty"`
	Speed   int          `json:"speed,omitempty"`
}

type simulateResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message,omitempty"`
	Paused   *bool         `json:"paused,omitempty"`
	Finished *bool         `json:"finished,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Log      *sim.LogEntry `json:"log,omitempty"`
	State    *sim.Snapshot `json:"state,omitempty"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to decode request body", "server.handleSimulate")
		return
	}

	switch req.Action {
	case "start":
		h.handleStart(w, req)
	case "reset":
		snap := h.engine.Reset()
		h.writeJSON(w, http.StatusOK, simulateResponse{Success: true, Message: "reset", State: &snap})
	case "pause":
		snap := h.engine.Pause()
		h.writeJSON(w, http.StatusOK, simulateResponse{
			Success: true,
			Message: "pause requested, waiting for the current day to finish",
			State:   &snap,
		})
	case "resume":
		h.handleResume(w, req)
	case "step":
		h.handleStep(w, r)
	default:
		h.respondError(w, http.StatusBadRequest, "unknown action", "server.handleSimulate")
	}
}

func (h *handler) handleStart(w http.ResponseWriter, req simulateRequest) {
	if req.Config == nil {
		h.writeJSON(w, http.StatusBadRequest, simulateResponse{Success: false, Message: "start requires a config"})
		return
	}

	snap := h.engine.Start(*req.Config, req.Targets, req.Speed)
	h.writeJSON(w, http.StatusOK, simulateResponse{Success: true, Message: "simulation started", State: &snap})
}

func (h *handler) handleResume(w http.ResponseWriter, req simulateRequest) {
	snap, err := h.engine.Resume(req.Config, req.Targets)
	if err != nil {
		h.writeJSON(w, http.StatusOK, simulateResponse{Success: false, Message: err.Error(), State: &snap})
		return
	}
	h.writeJSON(w, http.StatusOK, simulateResponse{Success: true, Message: "simulation resumed", State: &snap})
}

func (h *handler) handleStep(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Step(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, sim.ErrPaused),
			errors.Is(err, sim.ErrNotRunning),
			errors.Is(err, sim.ErrWaitingForResume):
			paused := true
			h.writeJSON(w, http.StatusOK, simulateResponse{Success: false, Message: err.Error(), Paused: &paused})
		case errors.Is(err, sim.ErrStepInFlight):
			h.writeJSON(w, http.StatusConflict, simulateResponse{Success: false, Message: err.Error()})
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleStep")
		}
		return
	}

	if res.Finished {
		finished := true
		h.writeJSON(w, http.StatusOK, simulateResponse{
			Success:  true,
			Finished: &finished,
			Reason:   res.Reason,
			Message:  res.Message,
			State:    &res.Snapshot,
		})
		return
	}

	finished := false
	h.writeJSON(w, http.StatusOK, simulateResponse{
		Success:  true,
		Finished: &finished,
		Log:      res.Log,
		Paused:   &res.Paused,
		State:    &res.Snapshot,
	})
}

func (h *handler) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.scenario == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scenario preset configured"})
		return
	}
	h.writeJSON(w, http.StatusOK, h.scenario)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// withCORS applies permissive cross-origin headers and answers preflight
// requests, matching what the browser client expects.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
