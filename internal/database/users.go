package database

import (
	"database/sql"
	"fmt"
)

// User represents a registered account. Password is the stored
// credential text exactly as supplied; whether it is hashed is the
// caller's policy, not the store's.
type User struct {
	ID       int64
	Username string
	Password string
}

// CreateUser inserts a new user record. Usernames are unique; a
// duplicate fails with ErrDuplicate.
func (db *DB) CreateUser(username, password string) (*User, error) {
	result, err := db.exec(`
		INSERT INTO user (username, password)
		VALUES (?, ?)
	`, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user id: %w", err)
	}

	return &User{
		ID:       id,
		Username: username,
		Password: password,
	}, nil
}

// GetUserByID retrieves a user by ID. Returns nil when no such user exists.
func (db *DB) GetUserByID(id int64) (*User, error) {
	user := &User{}
	err := db.queryRow(`
		SELECT id, username, password
		FROM user WHERE id = ?
	`, id).Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username. Returns nil when no
// such user exists.
func (db *DB) GetUserByUsername(username string) (*User, error) {
	user := &User{}
	err := db.queryRow(`
		SELECT id, username, password
		FROM user WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user. Fails with ErrForeignKey while the user
// still owns sessions.
func (db *DB) DeleteUser(id int64) error {
	_, err := db.exec("DELETE FROM user WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", mapError(err))
	}
	return nil
}
