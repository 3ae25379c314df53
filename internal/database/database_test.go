package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

// newTestDB opens a fresh migrated database under a temp dir.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func TestIsFirstRun(t *testing.T) {
	db := newTestDB(t)

	firstRun, err := db.IsFirstRun()
	if err != nil {
		t.Fatalf("IsFirstRun returned error: %v", err)
	}
	if !firstRun {
		t.Fatal("expected first run on empty database")
	}

	if _, err := db.CreateUser("alice", "hash1"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	firstRun, err = db.IsFirstRun()
	if err != nil {
		t.Fatalf("IsFirstRun returned error: %v", err)
	}
	if firstRun {
		t.Fatal("expected first run to be over once a user exists")
	}
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)

	wantErr := errors.New("boom")
	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO user (username, password) VALUES ('alice', 'hash1')"); err != nil {
			t.Fatalf("insert inside transaction failed: %v", err)
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected transaction error to propagate, got %v", err)
	}

	user, err := db.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername returned error: %v", err)
	}
	if user != nil {
		t.Fatal("expected rollback to discard the insert")
	}
}
