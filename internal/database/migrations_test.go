package database

import "testing"

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// Second run must be a no-op, not a re-create
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate returned error: %v", err)
	}

	if _, err := db.CreateUser("alice", "hash1"); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("third Migrate returned error: %v", err)
	}
	user, err := db.GetUserByUsername("alice")
	if err != nil || user == nil {
		t.Fatalf("expected user to survive re-migration, got %v / %v", user, err)
	}
}

func TestReset_DestroysAllData(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser("alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	session, err := db.CreateSession(user.ID, ModeBeginner, 80)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if _, err := db.AddWord(session.ID, "A", "apple", "a fruit", nil); err != nil {
		t.Fatalf("AddWord returned error: %v", err)
	}
	if _, err := db.AddQuiz(session.ID, "[]"); err != nil {
		t.Fatalf("AddQuiz returned error: %v", err)
	}

	if err := db.Reset(); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	for _, table := range []string{"user", "session", "word", "quiz"} {
		var count int
		if err := db.queryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("failed to count %s after reset: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s to be empty after reset, got %d rows", table, count)
		}
	}

	// Schema must be usable again after the reset
	if _, err := db.CreateUser("bob", "hash2"); err != nil {
		t.Fatalf("CreateUser after reset returned error: %v", err)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	value, err := db.GetSetting("maintenance.schedule")
	if err != nil {
		t.Fatalf("GetSetting returned error: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value for unset key, got %q", value)
	}

	if err := db.SetSetting("maintenance.schedule", "0 4 * * *"); err != nil {
		t.Fatalf("SetSetting returned error: %v", err)
	}
	if err := db.SetSetting("maintenance.schedule", "0 5 * * *"); err != nil {
		t.Fatalf("SetSetting upsert returned error: %v", err)
	}

	value, err = db.GetSetting("maintenance.schedule")
	if err != nil {
		t.Fatalf("GetSetting returned error: %v", err)
	}
	if value != "0 5 * * *" {
		t.Fatalf("expected upserted value, got %q", value)
	}

	all, err := db.GetAllSettings()
	if err != nil {
		t.Fatalf("GetAllSettings returned error: %v", err)
	}
	if all["maintenance.schedule"] != "0 5 * * *" {
		t.Fatalf("unexpected settings map: %v", all)
	}
}
