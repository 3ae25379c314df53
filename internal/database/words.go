package database

import (
	"database/sql"
	"fmt"
)

// Word represents one word studied during a session. Words are written
// once when a session's word list is generated and never mutated.
type Word struct {
	ID        int64
	SessionID int64
	Letter    string
	WordText  string
	Meaning   string
	Example   *string
}

// AddWord inserts a single word for a session. Example may be nil.
// A nonexistent session fails with ErrForeignKey.
func (db *DB) AddWord(sessionID int64, letter, wordText, meaning string, example *string) (*Word, error) {
	result, err := db.exec(`
		INSERT INTO word (session_id, letter, word_text, meaning, example)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, letter, wordText, meaning, ptrToNullString(example))
	if err != nil {
		return nil, fmt.Errorf("failed to add word: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get word id: %w", err)
	}

	return &Word{
		ID:        id,
		SessionID: sessionID,
		Letter:    letter,
		WordText:  wordText,
		Meaning:   meaning,
		Example:   example,
	}, nil
}

// addWordsTx bulk-inserts a session's word list inside an open transaction.
func addWordsTx(tx *sql.Tx, sessionID int64, words []WordEntry) error {
	stmt, err := tx.Prepare(`
		INSERT INTO word (session_id, letter, word_text, meaning, example)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare word insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.Exec(sessionID, w.Letter, w.WordText, w.Meaning, ptrToNullString(w.Example)); err != nil {
			return fmt.Errorf("failed to add word %s: %w", w.WordText, mapError(err))
		}
	}
	return nil
}

// GetWordByID retrieves a word by ID. Returns nil when no such word exists.
func (db *DB) GetWordByID(id int64) (*Word, error) {
	w := &Word{}
	var example sql.NullString
	err := db.queryRow(`
		SELECT id, session_id, letter, word_text, meaning, example
		FROM word WHERE id = ?
	`, id).Scan(&w.ID, &w.SessionID, &w.Letter, &w.WordText, &w.Meaning, &example)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	w.Example = nullStringToPtr(example)
	return w, nil
}

// ListWordsBySession returns all words recorded for a session in
// insertion order. Missing sessions yield an empty result, not an error.
func (db *DB) ListWordsBySession(sessionID int64) ([]*Word, error) {
	rows, err := db.query(`
		SELECT id, session_id, letter, word_text, meaning, example
		FROM word
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	defer rows.Close()

	var words []*Word
	for rows.Next() {
		w := &Word{}
		var example sql.NullString
		if err := rows.Scan(&w.ID, &w.SessionID, &w.Letter, &w.WordText, &w.Meaning, &example); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		w.Example = nullStringToPtr(example)
		words = append(words, w)
	}
	return words, rows.Err()
}
