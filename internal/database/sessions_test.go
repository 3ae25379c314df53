package database

import (
	"errors"
	"testing"
)

func TestCreateSession_MissingUser(t *testing.T) {
	db := newTestDB(t)

	_, err := db.CreateSession(99, ModeBeginner, 80)
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
}

func TestCreateSession_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser("alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	created, err := db.CreateSession(user.ID, ModeBeginner, 80)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if created.Date.IsZero() {
		t.Fatal("expected date to be auto-populated")
	}

	saved, err := db.GetSessionByID(created.ID)
	if err != nil {
		t.Fatalf("GetSessionByID returned error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected session to be saved")
	}
	if saved.UserID != user.ID || saved.Mode != ModeBeginner || saved.ScorePercent != 80 {
		t.Fatalf("unexpected round trip: %+v", saved)
	}
	if saved.Date.IsZero() {
		t.Fatal("expected stored date to scan back")
	}
}

func TestListSessionsByUser_MostRecentFirst(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser("alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	sessions, err := db.ListSessionsByUser(user.ID)
	if err != nil {
		t.Fatalf("ListSessionsByUser returned error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions yet, got %d", len(sessions))
	}

	first, err := db.CreateSession(user.ID, ModeBeginner, 60)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	second, err := db.CreateSession(user.ID, ModeIntermediate, 70)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	sessions, err = db.ListSessionsByUser(user.ID)
	if err != nil {
		t.Fatalf("ListSessionsByUser returned error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != second.ID || sessions[1].ID != first.ID {
		t.Fatalf("expected most recent session first, got order %d, %d", sessions[0].ID, sessions[1].ID)
	}
}

func TestGetSessionForUser_EnforcesOwnership(t *testing.T) {
	db := newTestDB(t)

	alice, err := db.CreateUser("alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	bob, err := db.CreateUser("bob", "hash2")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	session, err := db.CreateSession(alice.ID, ModeProficient, 95)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	owned, err := db.GetSessionForUser(alice.ID, session.ID)
	if err != nil {
		t.Fatalf("GetSessionForUser returned error: %v", err)
	}
	if owned == nil {
		t.Fatal("expected owner to see the session")
	}

	other, err := db.GetSessionForUser(bob.ID, session.ID)
	if err != nil {
		t.Fatalf("GetSessionForUser returned error: %v", err)
	}
	if other != nil {
		t.Fatal("expected someone else's session to be invisible")
	}
}

func TestSaveSessionResults_WritesEverything(t *testing.T) {
	db := newTestDB(t)

	user, err := db.CreateUser("alice", "hash1")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	example := "I ate an apple"
	session, err := db.SaveSessionResults(user.ID, &SessionResults{
		Mode:         ModeBeginner,
		ScorePercent: 80,
		Words: []WordEntry{
			{Letter: "A", WordText: "apple", Meaning: "a fruit", Example: &example},
			{Letter: "B", WordText: "brisk", Meaning: "quick and active"},
		},
		QuizData: `[{"question":"?","answer":"apple"}]`,
	})
	if err != nil {
		t.Fatalf("SaveSessionResults returned error: %v", err)
	}

	words, err := db.ListWordsBySession(session.ID)
	if err != nil {
		t.Fatalf("ListWordsBySession returned error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].WordText != "apple" || words[0].Example == nil || *words[0].Example != example {
		t.Fatalf("unexpected first word: %+v", words[0])
	}
	if words[1].Example != nil {
		t.Fatalf("expected nil example for second word, got %q", *words[1].Example)
	}

	quiz, err := db.GetQuizBySession(session.ID)
	if err != nil {
		t.Fatalf("GetQuizBySession returned error: %v", err)
	}
	if quiz == nil || quiz.QuizData != `[{"question":"?","answer":"apple"}]` {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}
}

func TestSaveSessionResults_MissingUserWritesNothing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.SaveSessionResults(99, &SessionResults{
		Mode:         ModeBeginner,
		ScorePercent: 50,
		Words:        []WordEntry{{Letter: "A", WordText: "apple", Meaning: "a fruit"}},
		QuizData:     "[]",
	})
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}

	var sessions, words, quizzes int
	if err := db.queryRow("SELECT COUNT(*) FROM session").Scan(&sessions); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if err := db.queryRow("SELECT COUNT(*) FROM word").Scan(&words); err != nil {
		t.Fatalf("count words: %v", err)
	}
	if err := db.queryRow("SELECT COUNT(*) FROM quiz").Scan(&quizzes); err != nil {
		t.Fatalf("count quizzes: %v", err)
	}
	if sessions != 0 || words != 0 || quizzes != 0 {
		t.Fatalf("expected empty tables after failed save, got %d/%d/%d", sessions, words, quizzes)
	}
}

func TestDeleteSession_RestrictedWhileWordsExist(t *testing.T) {
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

	if err := db.DeleteSession(session.ID); !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey deleting session with words, got %v", err)
	}
}

func TestMode_Valid(t *testing.T) {
	for _, mode := range Modes() {
		if !mode.Valid() {
			t.Fatalf("expected %s to be valid", mode)
		}
	}
	if Mode("expert").Valid() {
		t.Fatal("expected unknown mode to be invalid")
	}
}
