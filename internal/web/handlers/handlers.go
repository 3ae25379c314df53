package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/alphalearn/alphalearn/internal/database"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db *database.DB
}

// New creates a new Handlers instance
func New(db *database.DB) *Handlers {
	return &Handlers{db: db}
}

// Health reports liveness and whether any user has been registered yet.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	firstRun, err := h.db.IsFirstRun()
	if err != nil {
		log.Error().Err(err).Msg("Failed to check first run")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"first_run": firstRun,
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handlers) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}

// urlID parses a positive integer URL parameter.
func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
