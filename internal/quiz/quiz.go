// Package quiz implements the question selection and answer scoring engine:
// difficulty tiers, the two-pool random draw, distractor generation and the
// append-only answer history.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/example/vocabbot/pkg/models"
)

var (
	// ErrNoWords means both candidate pools are empty for the user and
	// tier. The caller should prompt the user to add words, not retry.
	ErrNoWords = errors.New("no words available for testing")
	// ErrUnknownTier marks a tier identifier that is not one of
	// easy/medium/hard.
	ErrUnknownTier = errors.New("unknown difficulty tier")
)

// wrongOptionCount is how many distractors accompany the correct answer.
const wrongOptionCount = 3

// Store is the narrow persistence contract the engine consumes. All
// implementations must sample uniformly at random.
type Store interface {
	SampleSharedWords(ctx context.Context, filter CategoryFilter, limit int) ([]models.Word, error)
	SampleActivePersonalWords(ctx context.Context, userID int64, limit int) ([]models.PersonalWord, error)
	// SampleDistractorTranslations draws distinct translations from the
	// union of the shared corpus and the user's active personal words,
	// excluding the given correct translation.
	SampleDistractorTranslations(ctx context.Context, userID int64, exclude string, limit int) ([]string, error)
	CountActivePersonalWords(ctx context.Context, userID int64) (int, error)
	AppendAnswerEvent(ctx context.Context, userID int64, ref models.WordRef, correct bool) error
	CountTotalAnswers(ctx context.Context, userID int64) (int, error)
	CountCorrectAnswers(ctx context.Context, userID int64) (int, error)
}

// Question is one multiple-choice quiz item. It carries everything needed
// to grade the eventual reply, so the engine stays re-entrant: no state
// beyond the Question itself survives between asking and answering.
type Question struct {
	Headword string
	Correct  string
	Options  []string // shuffled; contains Correct exactly once
	Ref      models.WordRef
}

// Outcome is the result of grading one submitted answer.
type Outcome struct {
	Correct bool
}

// Engine selects questions and records answers against a Store.
type Engine struct {
	store Store

	mu  sync.Mutex // guards rng; updates may be handled concurrently
	rng *rand.Rand
}

// New creates an engine with a time-seeded random source.
func New(store Store) *Engine {
	return &Engine{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// candidate is a pool-tagged word during selection.
type candidate struct {
	headword    string
	translation string
	ref         models.WordRef
}

// SelectQuestion draws one question word for the user's tier and builds the
// shuffled option list. Shared-pool candidates are filtered by the tier's
// category filter; personal words are always eligible. Distractors are
// drawn from all tiers' vocabulary on purpose: only the question word is
// difficulty-matched.
func (e *Engine) SelectQuestion(ctx context.Context, userID int64, tier Tier) (*Question, error) {
	level, err := Resolve(tier)
	if err != nil {
		return nil, err
	}

	shared, err := e.store.SampleSharedWords(ctx, level.Filter, level.PoolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample shared words: %w", err)
	}
	personal, err := e.store.SampleActivePersonalWords(ctx, userID, level.PoolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample personal words: %w", err)
	}

	pool := make([]candidate, 0, len(shared)+len(personal))
	for _, w := range shared {
		pool = append(pool, candidate{
			headword:    w.Headword,
			translation: w.Translation,
			ref:         models.WordRef{Origin: models.OriginShared, ID: w.ID},
		})
	}
	for _, w := range personal {
		pool = append(pool, candidate{
			headword:    w.Headword,
			translation: w.Translation,
			ref:         models.WordRef{Origin: models.OriginPersonal, ID: w.ID},
		})
	}
	if len(pool) == 0 {
		return nil, ErrNoWords
	}

	e.mu.Lock()
	pick := pool[e.rng.Intn(len(pool))]
	e.mu.Unlock()

	wrong, err := e.store.SampleDistractorTranslations(ctx, userID, pick.translation, wrongOptionCount)
	if err != nil {
		return nil, fmt.Errorf("failed to sample distractors: %w", err)
	}

	options := make([]string, 0, len(wrong)+1)
	options = append(options, pick.translation)
	for _, w := range wrong {
		if w == pick.translation || containsString(options, w) {
			continue
		}
		options = append(options, w)
	}

	e.mu.Lock()
	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	e.mu.Unlock()

	return &Question{
		Headword: pick.headword,
		Correct:  pick.translation,
		Options:  options,
		Ref:      pick.ref,
	}, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Grade checks a submitted answer against the question. The comparison is
// an exact, case-sensitive string match: options are presented verbatim,
// so the reply must match verbatim.
func Grade(q *Question, submitted string) Outcome {
	return Outcome{Correct: submitted == q.Correct}
}

// RecordAnswer grades the submitted text and appends one answer event. The
// returned Outcome is always valid; a non-nil error means only that the
// history append failed, and the caller should log it and still deliver
// feedback to the user.
func (e *Engine) RecordAnswer(ctx context.Context, userID int64, q *Question, submitted string) (Outcome, error) {
	outcome := Grade(q, submitted)
	if err := e.store.AppendAnswerEvent(ctx, userID, q.Ref, outcome.Correct); err != nil {
		return outcome, fmt.Errorf("failed to record answer: %w", err)
	}
	return outcome, nil
}

// ComputeStats aggregates the user's answer history and active dictionary
// size from the store. Accuracy is a percentage rounded to one decimal
// place, 0 when nothing has been answered yet.
func (e *Engine) ComputeStats(ctx context.Context, userID int64) (models.Stats, error) {
	var stats models.Stats
	var err error

	if stats.ActiveWords, err = e.store.CountActivePersonalWords(ctx, userID); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count words: %w", err)
	}
	if stats.Correct, err = e.store.CountCorrectAnswers(ctx, userID); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count correct answers: %w", err)
	}
	if stats.Total, err = e.store.CountTotalAnswers(ctx, userID); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count answers: %w", err)
	}
	if stats.Total > 0 {
		stats.Accuracy = math.Round(float64(stats.Correct)/float64(stats.Total)*1000) / 10
	}
	return stats, nil
}
