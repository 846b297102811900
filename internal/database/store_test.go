package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/internal/config"
	"github.com/example/vocabbot/internal/dictionary"
	"github.com/example/vocabbot/internal/quiz"
	"github.com/example/vocabbot/pkg/models"
)

// The aggregate store must satisfy both service contracts.
var (
	_ quiz.Store       = (*Store)(nil)
	_ dictionary.Store = (*Store)(nil)
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(config.Database{SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, store *Store, id int64) {
	t.Helper()
	if _, err := store.Users.GetOrCreate(context.Background(), id, "tester", "Test", "User"); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
}

func TestSeedCorpus(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	count, err := store.Words.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != len(seedWords) {
		t.Fatalf("seeded %d words, want %d", count, len(seedWords))
	}

	// Seeding is idempotent: a second run must not duplicate the corpus.
	if err := seedCorpus(db); err != nil {
		t.Fatalf("second seedCorpus failed: %v", err)
	}
	count, err = store.Words.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != len(seedWords) {
		t.Fatalf("after reseeding: %d words, want %d", count, len(seedWords))
	}
}

func TestSampleByFilterInclude(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	filter := quiz.CategoryFilter{
		Include: []string{quiz.CategoryColor, quiz.CategoryNumber},
	}
	words, err := store.Words.SampleByFilter(ctx, filter, 100)
	if err != nil {
		t.Fatalf("SampleByFilter failed: %v", err)
	}
	if len(words) != 20 { // 10 colors + 10 numbers in the seed corpus
		t.Fatalf("got %d words, want 20", len(words))
	}
	for _, w := range words {
		if w.Category != quiz.CategoryColor && w.Category != quiz.CategoryNumber {
			t.Errorf("word %q has category %q, outside the include set", w.Headword, w.Category)
		}
	}
}

func TestSampleByFilterExclude(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	// An untagged word must survive an exclude filter.
	untagged := &models.Word{Headword: "serendipity", Translation: "серендипность"}
	if err := store.Words.Create(ctx, untagged); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	filter := quiz.CategoryFilter{Exclude: []string{quiz.CategoryAdvanced}}
	words, err := store.Words.SampleByFilter(ctx, filter, 200)
	if err != nil {
		t.Fatalf("SampleByFilter failed: %v", err)
	}

	foundUntagged := false
	for _, w := range words {
		if w.Category == quiz.CategoryAdvanced {
			t.Errorf("excluded category leaked: %q", w.Headword)
		}
		if w.Headword == "serendipity" {
			foundUntagged = true
			if w.Category != "" {
				t.Errorf("untagged word came back with category %q", w.Category)
			}
		}
	}
	if !foundUntagged {
		t.Error("untagged word was filtered out by the exclude filter")
	}
}

func TestSampleByFilterRespectsLimit(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	words, err := store.Words.SampleByFilter(context.Background(), quiz.CategoryFilter{}, 10)
	if err != nil {
		t.Fatalf("SampleByFilter failed: %v", err)
	}
	if len(words) != 10 {
		t.Fatalf("got %d words, want 10", len(words))
	}
}

func TestSampleDistractors(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	createTestUser(t, store, 1)

	if _, err := store.Personal.Insert(ctx, 1, "window", "окно"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	removedID, err := store.Personal.Insert(ctx, 1, "door", "дверь")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Personal.Deactivate(ctx, removedID, 1); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	translations, err := store.Words.SampleDistractors(ctx, 1, "красный", 1000)
	if err != nil {
		t.Fatalf("SampleDistractors failed: %v", err)
	}

	seen := make(map[string]int)
	for _, tr := range translations {
		seen[tr]++
	}
	if seen["красный"] > 0 {
		t.Error("distractors include the excluded translation")
	}
	if seen["дверь"] > 0 {
		t.Error("distractors include a deactivated personal word")
	}
	if seen["окно"] != 1 {
		t.Errorf("active personal translation appears %d times, want 1", seen["окно"])
	}
	for tr, n := range seen {
		if n > 1 {
			t.Errorf("translation %q appears %d times, want distinct results", tr, n)
		}
	}
}

func TestPersonalWordLifecycle(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	createTestUser(t, store, 7)

	id, err := store.Personal.Insert(ctx, 7, "apple", "яблоко")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Insert returned id 0")
	}

	// Duplicates are separate rows.
	if _, err := store.Personal.Insert(ctx, 7, "apple", "яблоко"); err != nil {
		t.Fatalf("duplicate Insert failed: %v", err)
	}

	count, err := store.Personal.CountActive(ctx, 7)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("active count = %d, want 2", count)
	}

	found, err := store.Personal.FindActiveByHeadword(ctx, 7, "apple")
	if err != nil {
		t.Fatalf("FindActiveByHeadword failed: %v", err)
	}
	if found == nil || found.Headword != "apple" {
		t.Fatalf("found = %+v, want an apple row", found)
	}

	if err := store.Personal.Deactivate(ctx, found.ID, 7); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	// Soft delete: one row left active, the other kept but inactive.
	count, err = store.Personal.CountActive(ctx, 7)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("active count after deactivate = %d, want 1", count)
	}

	var total int
	if err := db.Get(&total, "SELECT COUNT(*) FROM user_words WHERE user_id = 7"); err != nil {
		t.Fatalf("raw count failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total rows = %d, want 2 (rows are never deleted)", total)
	}
}

func TestFindActiveByHeadwordMissing(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	createTestUser(t, store, 1)

	found, err := store.Personal.FindActiveByHeadword(context.Background(), 1, "ghost")
	if err != nil {
		t.Fatalf("FindActiveByHeadword failed: %v", err)
	}
	if found != nil {
		t.Fatalf("found = %+v, want nil", found)
	}
}

func TestDeactivateWrongUser(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	createTestUser(t, store, 1)
	createTestUser(t, store, 2)

	id, err := store.Personal.Insert(ctx, 1, "apple", "яблоко")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Personal.Deactivate(ctx, id, 2); err == nil {
		t.Fatal("Deactivate with a foreign user id succeeded, want an error")
	}
}

func TestUserGetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	missing, err := store.Users.GetByID(ctx, 500)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID for missing user = %+v, want nil", missing)
	}

	user, err := store.Users.GetOrCreate(ctx, 500, "alice", "Alice", "Smith")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if user.Difficulty != string(quiz.DefaultTier) {
		t.Fatalf("new user difficulty = %q, want %q", user.Difficulty, quiz.DefaultTier)
	}

	if err := store.Users.SetDifficulty(ctx, 500, "hard"); err != nil {
		t.Fatalf("SetDifficulty failed: %v", err)
	}
	again, err := store.Users.GetOrCreate(ctx, 500, "alice", "Alice", "Smith")
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if again.Difficulty != "hard" {
		t.Fatalf("difficulty = %q, want hard", again.Difficulty)
	}

	count, err := store.Users.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("user count = %d, want 1", count)
	}
}

func TestSetDifficultyMissingUser(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	if err := store.Users.SetDifficulty(context.Background(), 999, "easy"); err == nil {
		t.Fatal("SetDifficulty for a missing user succeeded, want an error")
	}
}

func TestAnswerHistory(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	createTestUser(t, store, 3)

	events := []struct {
		ref     models.WordRef
		correct bool
	}{
		{models.WordRef{Origin: models.OriginShared, ID: 11}, true},
		{models.WordRef{Origin: models.OriginPersonal, ID: 4}, false},
		{models.WordRef{Origin: models.OriginShared, ID: 11}, false},
	}
	for _, e := range events {
		if err := store.Answers.Append(ctx, 3, e.ref, e.correct); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	total, err := store.Answers.CountTotal(ctx, 3)
	if err != nil {
		t.Fatalf("CountTotal failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	correct, err := store.Answers.CountCorrect(ctx, 3)
	if err != nil {
		t.Fatalf("CountCorrect failed: %v", err)
	}
	if correct != 1 {
		t.Fatalf("correct = %d, want 1", correct)
	}

	recent, err := store.Answers.RecentByUser(ctx, 3, 10)
	if err != nil {
		t.Fatalf("RecentByUser failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d events, want 3", len(recent))
	}
	// Newest first; the personal ref round-trips through its signed form.
	if got := models.DecodeWordRef(recent[1].WordRef); got.Origin != models.OriginPersonal || got.ID != 4 {
		t.Fatalf("decoded ref = %+v, want personal word 4", got)
	}
	if recent[1].WordRef != -4 {
		t.Fatalf("stored ref = %d, want -4", recent[1].WordRef)
	}
}

func TestQuizStoreRoundTrip(t *testing.T) {
	// Exercise the engine against the real SQLite-backed store.
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	createTestUser(t, store, 10)

	engine := quiz.New(store)
	q, err := engine.SelectQuestion(ctx, 10, quiz.TierEasy)
	if err != nil {
		t.Fatalf("SelectQuestion failed: %v", err)
	}
	if q.Ref.Origin != models.OriginShared {
		t.Fatalf("easy question with no personal words came from %v, want shared", q.Ref.Origin)
	}
	if len(q.Options) < 2 {
		t.Fatalf("got %d options, want at least 2", len(q.Options))
	}

	if _, err := engine.RecordAnswer(ctx, 10, q, q.Correct); err != nil {
		t.Fatalf("RecordAnswer failed: %v", err)
	}
	stats, err := engine.ComputeStats(ctx, 10)
	if err != nil {
		t.Fatalf("ComputeStats failed: %v", err)
	}
	if stats.Total != 1 || stats.Correct != 1 || stats.Accuracy != 100.0 {
		t.Fatalf("stats = %+v, want 1/1 at 100%%", stats)
	}
}
