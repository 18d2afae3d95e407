package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/pompeii/internal/middleware"
	"github.com/jwebster45206/pompeii/internal/storage"
	"github.com/jwebster45206/pompeii/pkg/state"
	"github.com/jwebster45206/pompeii/pkg/world"
)

const sessionPathPrefix = "/v1/session"

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse is returned by create, read and command requests.
// Output holds only the lines a command appended to the issuing console.
type SessionResponse struct {
	ID     uuid.UUID          `json:"id"`
	State  state.SessionState `json:"state"`
	Output []string           `json:"output,omitempty"`
}

// CommandRequest submits one line of input to one console.
// An empty timeline means the present.
type CommandRequest struct {
	Command  string `json:"command"`
	Timeline string `json:"timeline"`
}

type SessionHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewSessionHandler(logger *slog.Logger, storage storage.Storage) *SessionHandler {
	return &SessionHandler{
		logger:  logger,
		storage: storage,
	}
}

// ServeHTTP handles HTTP requests for game sessions
// Routes:
// POST /v1/session              - Create a new session
// GET /v1/session/{id}          - Read session by ID
// POST /v1/session/{id}/command - Submit a command to one console
// DELETE /v1/session/{id}       - Delete session by ID
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log := h.logger.With("request_id", middleware.RequestID(r.Context()))

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, sessionPathPrefix), "/"), "/")
	if len(parts) == 1 && parts[0] == "" {
		parts = nil
	}

	if len(parts) == 0 {
		if r.Method != http.MethodPost {
			h.writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r, log)
		return
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		log.Warn("Invalid session ID", "id", parts[0], "error", err)
		h.writeError(w, log, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleRead(w, r, log, id)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleDelete(w, r, log, id)
	case len(parts) == 1:
		h.writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	case len(parts) == 2 && parts[1] == "command" && r.Method == http.MethodPost:
		h.handleCommand(w, r, log, id)
	case len(parts) == 2 && parts[1] == "command":
		h.writeError(w, log, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
	default:
		h.writeError(w, log, http.StatusNotFound, "Not found")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	s := storage.NewSession()
	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		log.Error("Failed to save session", "error", err)
		h.writeError(w, log, http.StatusInternalServerError, "Failed to create session")
		return
	}

	log.Info("Session created", "session_id", s.ID)
	h.writeJSON(w, log, http.StatusCreated, SessionResponse{ID: s.ID, State: s.State})
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		log.Error("Failed to load session", "session_id", id, "error", err)
		h.writeError(w, log, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if s == nil {
		h.writeError(w, log, http.StatusNotFound, "Session not found")
		return
	}

	h.writeJSON(w, log, http.StatusOK, SessionResponse{ID: s.ID, State: s.State})
}

func (h *SessionHandler) handleCommand(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, log, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	tl := world.Present
	if req.Timeline != "" {
		parsed, ok := world.ParseTimeline(req.Timeline)
		if !ok {
			h.writeError(w, log, http.StatusBadRequest, "timeline must be \"present\" or \"past\"")
			return
		}
		tl = parsed
	}

	var output []string
	s, err := h.storage.UpdateSession(r.Context(), id, func(s *storage.Session) error {
		s.State, output = state.Step(s.State, req.Command, tl)
		return nil
	})
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, log, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		log.Error("Failed to apply command", "session_id", id, "error", err)
		h.writeError(w, log, http.StatusInternalServerError, "Failed to apply command")
		return
	}

	log.Debug("Command applied", "session_id", id, "timeline", tl, "command", req.Command, "location", s.State.CurrentLocation)
	h.writeJSON(w, log, http.StatusOK, SessionResponse{ID: s.ID, State: s.State, Output: output})
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, log *slog.Logger, id uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		log.Error("Failed to delete session", "session_id", id, "error", err)
		h.writeError(w, log, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) writeJSON(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, log *slog.Logger, status int, msg string) {
	h.writeJSON(w, log, status, ErrorResponse{Error: msg})
}
