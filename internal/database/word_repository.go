package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/internal/quiz"
	"github.com/example/vocabbot/pkg/models"
)

// WordRepository handles database operations for the shared corpus.
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance.
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

const sharedWordColumns = "id, english_word, russian_translation, COALESCE(word_type, '') AS word_type"

// SampleByFilter returns up to limit corpus words drawn uniformly at
// random, restricted by the category filter.
func (r *WordRepository) SampleByFilter(ctx context.Context, filter quiz.CategoryFilter, limit int) ([]models.Word, error) {
	var (
		query string
		args  []interface{}
		err   error
	)

	switch {
	case len(filter.Include) > 0:
		query, args, err = sqlx.In(
			"SELECT "+sharedWordColumns+" FROM common_words WHERE word_type IN (?) ORDER BY RANDOM() LIMIT ?",
			filter.Include, limit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build corpus query: %w", err)
		}
	case len(filter.Exclude) > 0:
		query, args, err = sqlx.In(
			"SELECT "+sharedWordColumns+" FROM common_words WHERE word_type IS NULL OR word_type NOT IN (?) ORDER BY RANDOM() LIMIT ?",
			filter.Exclude, limit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build corpus query: %w", err)
		}
	default:
		query = "SELECT " + sharedWordColumns + " FROM common_words ORDER BY RANDOM() LIMIT ?"
		args = []interface{}{limit}
	}

	var words []models.Word
	if err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to sample corpus words: %w", err)
	}
	return words, nil
}

// SampleDistractors draws up to limit distinct translations from the union
// of the shared corpus and the user's active personal words, excluding the
// given translation. UNION dedupes inside the subquery; the random order
// sits outside it so the query works on Postgres as well as SQLite.
func (r *WordRepository) SampleDistractors(ctx context.Context, userID int64, exclude string, limit int) ([]string, error) {
	query := r.db.Rebind(`
		SELECT translation FROM (
			SELECT russian_translation AS translation FROM common_words
			WHERE russian_translation != ?
			UNION
			SELECT russian_translation FROM user_words
			WHERE user_id = ? AND is_active = TRUE AND russian_translation != ?
		) AS pool
		ORDER BY RANDOM() LIMIT ?
	`)

	var translations []string
	if err := r.db.SelectContext(ctx, &translations, query, exclude, userID, exclude, limit); err != nil {
		return nil, fmt.Errorf("failed to sample distractors: %w", err)
	}
	return translations, nil
}

// Count returns the total number of corpus words.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM common_words"); err != nil {
		return 0, fmt.Errorf("failed to count corpus words: %w", err)
	}
	return count, nil
}

// Create inserts a corpus word. Used by the importer only; the engine never
// writes to the shared corpus.
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	query := r.db.Rebind("INSERT INTO common_words (english_word, russian_translation, word_type) VALUES (?, ?, ?)")
	var category interface{}
	if word.Category != "" {
		category = word.Category
	}
	result, err := r.db.ExecContext(ctx, query, word.Headword, word.Translation, category)
	if err != nil {
		return fmt.Errorf("failed to create corpus word: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		word.ID = id
	}
	return nil
}
