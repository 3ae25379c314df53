package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Mode is the difficulty level of a learning session. The column stays
// plain TEXT for compatibility; the enumeration is enforced at the API
// boundary, and unknown values already stored read back unchanged.
type Mode string

const (
	ModeBeginner     Mode = "beginner"
	ModeIntermediate Mode = "intermediate"
	ModeProficient   Mode = "proficient"
)

// Modes returns all known difficulty modes in display order.
func Modes() []Mode {
	return []Mode{ModeBeginner, ModeIntermediate, ModeProficient}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeBeginner, ModeIntermediate, ModeProficient:
		return true
	}
	return false
}

// Session represents one completed learning session.
type Session struct {
	ID           int64
	UserID       int64
	Mode         Mode
	ScorePercent int
	Date         time.Time
}

// WordEntry is the word payload captured alongside a session before it
// has been assigned an ID.
type WordEntry struct {
	Letter   string
	WordText string
	Meaning  string
	Example  *string
}

// SessionResults bundles everything recorded when a session finishes.
type SessionResults struct {
	Mode         Mode
	ScorePercent int
	Words        []WordEntry
	QuizData     string
}

// CreateSession inserts a new session record. The date is populated
// from the clock at write time. A nonexistent user fails with
// ErrForeignKey.
func (db *DB) CreateSession(userID int64, mode Mode, scorePercent int) (*Session, error) {
	now := time.Now()
	result, err := db.exec(`
		INSERT INTO session (user_id, mode, score_percent, date)
		VALUES (?, ?, ?, ?)
	`, userID, string(mode), scorePercent, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get session id: %w", err)
	}

	return &Session{
		ID:           id,
		UserID:       userID,
		Mode:         mode,
		ScorePercent: scorePercent,
		Date:         now,
	}, nil
}

// SaveSessionResults stores a session together with its word list and
// quiz payload in a single transaction; either everything is written or
// nothing is.
func (db *DB) SaveSessionResults(userID int64, results *SessionResults) (*Session, error) {
	now := time.Now()
	session := &Session{
		UserID:       userID,
		Mode:         results.Mode,
		ScorePercent: results.ScorePercent,
		Date:         now,
	}

	err := db.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO session (user_id, mode, score_percent, date)
			VALUES (?, ?, ?, ?)
		`, userID, string(results.Mode), results.ScorePercent, now)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", mapError(err))
		}

		sessionID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get session id: %w", err)
		}
		session.ID = sessionID

		if err := addWordsTx(tx, sessionID, results.Words); err != nil {
			return err
		}

		if _, err := tx.Exec(`
			INSERT INTO quiz (session_id, quiz_data)
			VALUES (?, ?)
		`, sessionID, results.QuizData); err != nil {
			return fmt.Errorf("failed to save quiz: %w", mapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// GetSessionByID retrieves a session by ID. Returns nil when no such
// session exists.
func (db *DB) GetSessionByID(id int64) (*Session, error) {
	session := &Session{}
	err := db.queryRow(`
		SELECT id, user_id, mode, score_percent, date
		FROM session WHERE id = ?
	`, id).Scan(&session.ID, &session.UserID, &session.Mode, &session.ScorePercent, &session.Date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// GetSessionForUser retrieves a session only if it belongs to the given
// user. Returns nil when the session is missing or owned by someone else.
func (db *DB) GetSessionForUser(userID, sessionID int64) (*Session, error) {
	session := &Session{}
	err := db.queryRow(`
		SELECT id, user_id, mode, score_percent, date
		FROM session WHERE id = ? AND user_id = ?
	`, sessionID, userID).Scan(&session.ID, &session.UserID, &session.Mode, &session.ScorePercent, &session.Date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListSessionsByUser returns all sessions for a user, most recent first.
func (db *DB) ListSessionsByUser(userID int64) ([]*Session, error) {
	rows, err := db.query(`
		SELECT id, user_id, mode, score_percent, date
		FROM session
		WHERE user_id = ?
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s := &Session{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Mode, &s.ScorePercent, &s.Date); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session. Fails with ErrForeignKey while
// words or quizzes still reference it.
func (db *DB) DeleteSession(id int64) error {
	_, err := db.exec("DELETE FROM session WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", mapError(err))
	}
	return nil
}
