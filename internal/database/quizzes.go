package database

import (
	"database/sql"
	"fmt"
)

// Quiz represents a quiz captured for a session. QuizData is opaque
// serialized text (the app stores JSON); the store never inspects it.
type Quiz struct {
	ID        int64
	SessionID int64
	QuizData  string
}

// AddQuiz inserts a quiz for a session. A nonexistent session fails
// with ErrForeignKey.
func (db *DB) AddQuiz(sessionID int64, quizData string) (*Quiz, error) {
	result, err := db.exec(`
		INSERT INTO quiz (session_id, quiz_data)
		VALUES (?, ?)
	`, sessionID, quizData)
	if err != nil {
		return nil, fmt.Errorf("failed to add quiz: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz id: %w", err)
	}

	return &Quiz{
		ID:        id,
		SessionID: sessionID,
		QuizData:  quizData,
	}, nil
}

// GetQuizByID retrieves a quiz by ID. Returns nil when no such quiz exists.
func (db *DB) GetQuizByID(id int64) (*Quiz, error) {
	q := &Quiz{}
	err := db.queryRow(`
		SELECT id, session_id, quiz_data
		FROM quiz WHERE id = ?
	`, id).Scan(&q.ID, &q.SessionID, &q.QuizData)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return q, nil
}

// GetQuizBySession retrieves the quiz recorded for a session, for
// replay. Typical usage stores one quiz per session; when several
// exist the earliest wins. Returns nil when none exists.
func (db *DB) GetQuizBySession(sessionID int64) (*Quiz, error) {
	q := &Quiz{}
	err := db.queryRow(`
		SELECT id, session_id, quiz_data
		FROM quiz
		WHERE session_id = ?
		ORDER BY id
		LIMIT 1
	`, sessionID).Scan(&q.ID, &q.SessionID, &q.QuizData)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return q, nil
}

// ListQuizzesBySession returns all quizzes recorded for a session in
// insertion order.
func (db *DB) ListQuizzesBySession(sessionID int64) ([]*Quiz, error) {
	rows, err := db.query(`
		SELECT id, session_id, quiz_data
		FROM quiz
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*Quiz
	for rows.Next() {
		q := &Quiz{}
		if err := rows.Scan(&q.ID, &q.SessionID, &q.QuizData); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}
