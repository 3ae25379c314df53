package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/alphalearn/alphalearn/internal/database"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse deliberately omits the stored credential.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserCreate registers a new user account
func (h *Handlers) UserCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateUsername(req.Username); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ValidatePassword(req.Password); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.db.CreateUser(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			h.jsonError(w, "Username is already registered", http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("Failed to create user")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

// UserGet returns a single user by ID
func (h *Handlers) UserGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		h.jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByID(id)
	if err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		h.jsonError(w, "User not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username})
}

// UserStats returns per-mode score averages and attempt counts
func (h *Handlers) UserStats(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		h.jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	stats, err := h.db.GetTrackingStats(id)
	if err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get tracking stats")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	out := make(map[string]map[string]int, len(stats))
	for mode, s := range stats {
		out[string(mode)] = map[string]int{
			"average": s.Average,
			"count":   s.Count,
		}
	}

	h.writeJSON(w, http.StatusOK, out)
}
