package database

import "testing"

func TestGetTrackingStats_EmptyUser(t *testing.T) {
	db := newTestDB(t)

	stats, err := db.GetTrackingStats(1)
	if err != nil {
		t.Fatalf("GetTrackingStats returned error: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected stats for all 3 modes, got %d", len(stats))
	}
	for mode, s := range stats {
		if s.Average != 0 || s.Count != 0 {
			t.Fatalf("expected zeros for mode %s, got %+v", mode, s)
		}
	}
}

func TestGetTrackingStats_PerModeAverages(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser("alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	for _, score := range []int{80, 90, 95} {
		if _, err := db.CreateSession(user.ID, ModeBeginner, score); err != nil {
			t.Fatalf("CreateSession returned error: %v", err)
		}
	}
	if _, err := db.CreateSession(user.ID, ModeProficient, 40); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	stats, err := db.GetTrackingStats(user.ID)
	if err != nil {
		t.Fatalf("GetTrackingStats returned error: %v", err)
	}

	// 80+90+95 averages to 88.33, rounded to 88
	if s := stats[ModeBeginner]; s.Average != 88 || s.Count != 3 {
		t.Fatalf("unexpected beginner stats: %+v", s)
	}
	if s := stats[ModeIntermediate]; s.Average != 0 || s.Count != 0 {
		t.Fatalf("unexpected intermediate stats: %+v", s)
	}
	if s := stats[ModeProficient]; s.Average != 40 || s.Count != 1 {
		t.Fatalf("unexpected proficient stats: %+v", s)
	}
}

func TestGetTrackingStats_IgnoresOtherUsers(t *testing.T) {
	db := newTestDB(t)

	alice, err := db.CreateUser("alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	bob, err := db.CreateUser("bob", "hash2")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if _, err := db.CreateSession(alice.ID, ModeBeginner, 100); err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	stats, err := db.GetTrackingStats(bob.ID)
	if err != nil {
		t.Fatalf("GetTrackingStats returned error: %v", err)
	}
	if s := stats[ModeBeginner]; s.Count != 0 {
		t.Fatalf("expected bob to have no sessions, got %+v", s)
	}
}
