package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alphalearn/alphalearn/internal/database"
)

type wordRequest struct {
	Letter   string  `json:"letter"`
	WordText string  `json:"word_text"`
	Meaning  string  `json:"meaning"`
	Example  *string `json:"example,omitempty"`
}

type saveSessionRequest struct {
	Mode         string          `json:"mode"`
	ScorePercent int             `json:"score_percent"`
	Words        []wordRequest   `json:"words"`
	Quiz         json.RawMessage `json:"quiz"`
}

type sessionResponse struct {
	ID           int64     `json:"id"`
	Mode         string    `json:"mode"`
	ScorePercent int       `json:"score_percent"`
	Date         time.Time `json:"date"`
}

type wordResponse struct {
	ID       int64   `json:"id"`
	Letter   string  `json:"letter"`
	WordText string  `json:"word_text"`
	Meaning  string  `json:"meaning"`
	Example  *string `json:"example"`
}

type sessionDetailResponse struct {
	ID           int64           `json:"id"`
	Mode         string          `json:"mode"`
	ScorePercent int             `json:"score_percent"`
	Date         time.Time       `json:"date"`
	Words        []wordResponse  `json:"words"`
	Quiz         json.RawMessage `json:"quiz"`
}

// SessionSave stores a finished learning session with its word list and
// quiz payload in one transaction
func (h *Handlers) SessionSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(r, "id")
	if !ok {
		h.jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req saveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateMode(req.Mode); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ValidateScorePercent(req.ScorePercent); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Quiz) == 0 {
		h.jsonError(w, "quiz: quiz payload is required", http.StatusBadRequest)
		return
	}
	words := make([]database.WordEntry, 0, len(req.Words))
	for i, word := range req.Words {
		if err := ValidateWord(i, word.Letter, word.WordText, word.Meaning); err != nil {
			h.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		words = append(words, database.WordEntry{
			Letter:   word.Letter,
			WordText: word.WordText,
			Meaning:  word.Meaning,
			Example:  word.Example,
		})
	}

	// Check the user up front so a missing user surfaces as 404 rather
	// than a constraint failure.
	user, err := h.db.GetUserByID(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get user")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		h.jsonError(w, "User not found", http.StatusNotFound)
		return
	}

	session, err := h.db.SaveSessionResults(userID, &database.SessionResults{
		Mode:         database.Mode(req.Mode),
		ScorePercent: req.ScorePercent,
		Words:        words,
		QuizData:     string(req.Quiz),
	})
	if err != nil {
		if errors.Is(err, database.ErrForeignKey) {
			h.jsonError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save session results")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, sessionResponse{
		ID:           session.ID,
		Mode:         string(session.Mode),
		ScorePercent: session.ScorePercent,
		Date:         session.Date,
	})
}

// UserSessions lists a user's sessions, most recent first
func (h *Handlers) UserSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(r, "id")
	if !ok {
		h.jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	sessions, err := h.db.ListSessionsByUser(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list sessions")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionResponse{
			ID:           s.ID,
			Mode:         string(s.Mode),
			ScorePercent: s.ScorePercent,
			Date:         s.Date,
		})
	}

	h.writeJSON(w, http.StatusOK, out)
}

// SessionDetail returns one session with its words and quiz payload,
// only for the owning user
func (h *Handlers) SessionDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlID(r, "id")
	if !ok {
		h.jsonError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	sessionID, ok := urlID(r, "session_id")
	if !ok {
		h.jsonError(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	session, err := h.db.GetSessionForUser(userID, sessionID)
	if err != nil {
		log.Error().Err(err).Int64("session_id", sessionID).Msg("Failed to get session")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if session == nil {
		h.jsonError(w, "Session not found", http.StatusNotFound)
		return
	}

	words, err := h.db.ListWordsBySession(session.ID)
	if err != nil {
		log.Error().Err(err).Int64("session_id", sessionID).Msg("Failed to list words")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	quiz, err := h.db.GetQuizBySession(session.ID)
	if err != nil {
		log.Error().Err(err).Int64("session_id", sessionID).Msg("Failed to get quiz")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	detail := sessionDetailResponse{
		ID:           session.ID,
		Mode:         string(session.Mode),
		ScorePercent: session.ScorePercent,
		Date:         session.Date,
		Words:        make([]wordResponse, 0, len(words)),
		Quiz:         quizPayload(quiz),
	}
	for _, word := range words {
		detail.Words = append(detail.Words, wordResponse{
			ID:       word.ID,
			Letter:   word.Letter,
			WordText: word.WordText,
			Meaning:  word.Meaning,
			Example:  word.Example,
		})
	}

	h.writeJSON(w, http.StatusOK, detail)
}

// SessionWords lists the words recorded for a session
func (h *Handlers) SessionWords(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlID(r, "id")
	if !ok {
		h.jsonError(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	words, err := h.db.ListWordsBySession(sessionID)
	if err != nil {
		log.Error().Err(err).Int64("session_id", sessionID).Msg("Failed to list words")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	out := make([]wordResponse, 0, len(words))
	for _, word := range words {
		out = append(out, wordResponse{
			ID:       word.ID,
			Letter:   word.Letter,
			WordText: word.WordText,
			Meaning:  word.Meaning,
			Example:  word.Example,
		})
	}

	h.writeJSON(w, http.StatusOK, out)
}

// SessionQuiz returns the quiz payload recorded for a session
func (h *Handlers) SessionQuiz(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlID(r, "id")
	if !ok {
		h.jsonError(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	quiz, err := h.db.GetQuizBySession(sessionID)
	if err != nil {
		log.Error().Err(err).Int64("session_id", sessionID).Msg("Failed to get quiz")
		h.jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if quiz == nil {
		h.jsonError(w, "Quiz not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":         quiz.ID,
		"session_id": quiz.SessionID,
		"quiz_data":  quizPayload(quiz),
	})
}

// quizPayload renders stored quiz data for a response. The column is
// opaque text; when it happens to hold valid JSON it is emitted as-is,
// otherwise it is quoted as a JSON string. A missing quiz replays as an
// empty list.
func quizPayload(quiz *database.Quiz) json.RawMessage {
	if quiz == nil {
		return json.RawMessage("[]")
	}
	if json.Valid([]byte(quiz.QuizData)) {
		return json.RawMessage(quiz.QuizData)
	}
	quoted, err := json.Marshal(quiz.QuizData)
	if err != nil {
		return json.RawMessage("null")
	}
	return quoted
}
