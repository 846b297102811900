package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/pkg/models"
)

// PersonalWordRepository handles database operations for per-user words.
type PersonalWordRepository struct {
	db *sqlx.DB
}

// NewPersonalWordRepository creates a new repository instance.
func NewPersonalWordRepository(db *sqlx.DB) *PersonalWordRepository {
	return &PersonalWordRepository{db: db}
}

const personalWordColumns = "id, user_id, english_word, russian_translation, is_active, added_at"

// Insert adds a word to a user's dictionary and returns the new row id.
// Duplicate (user, headword) pairs are allowed and create separate rows.
func (r *PersonalWordRepository) Insert(ctx context.Context, userID int64, headword, translation string) (int64, error) {
	if r.db.DriverName() == "postgres" {
		var id int64
		query := "INSERT INTO user_words (user_id, english_word, russian_translation) VALUES ($1, $2, $3) RETURNING id"
		if err := r.db.QueryRowContext(ctx, query, userID, headword, translation).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert word: %w", err)
		}
		return id, nil
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO user_words (user_id, english_word, russian_translation) VALUES (?, ?, ?)",
		userID, headword, translation,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert word: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// SampleActive returns up to limit of the user's active words drawn
// uniformly at random.
func (r *PersonalWordRepository) SampleActive(ctx context.Context, userID int64, limit int) ([]models.PersonalWord, error) {
	query := r.db.Rebind("SELECT " + personalWordColumns + " FROM user_words WHERE user_id = ? AND is_active = TRUE ORDER BY RANDOM() LIMIT ?")
	var words []models.PersonalWord
	if err := r.db.SelectContext(ctx, &words, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to sample personal words: %w", err)
	}
	return words, nil
}

// ListActive returns all of the user's active words ordered by headword.
func (r *PersonalWordRepository) ListActive(ctx context.Context, userID int64) ([]models.PersonalWord, error) {
	query := r.db.Rebind("SELECT " + personalWordColumns + " FROM user_words WHERE user_id = ? AND is_active = TRUE ORDER BY english_word")
	var words []models.PersonalWord
	if err := r.db.SelectContext(ctx, &words, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list personal words: %w", err)
	}
	return words, nil
}

// FindActiveByHeadword returns one active word matching the headword
// exactly, or nil when the user has none.
func (r *PersonalWordRepository) FindActiveByHeadword(ctx context.Context, userID int64, headword string) (*models.PersonalWord, error) {
	query := r.db.Rebind("SELECT " + personalWordColumns + " FROM user_words WHERE user_id = ? AND english_word = ? AND is_active = TRUE LIMIT 1")
	var word models.PersonalWord
	err := r.db.GetContext(ctx, &word, query, userID, headword)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find personal word: %w", err)
	}
	return &word, nil
}

// Deactivate flips is_active to false for one row. The row is never
// deleted: answer history may reference it.
func (r *PersonalWordRepository) Deactivate(ctx context.Context, id, userID int64) error {
	query := r.db.Rebind("UPDATE user_words SET is_active = FALSE WHERE id = ? AND user_id = ?")
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate word: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("word %d not found for user %d", id, userID)
	}
	return nil
}

// CountActive returns the number of the user's active words.
func (r *PersonalWordRepository) CountActive(ctx context.Context, userID int64) (int, error) {
	query := r.db.Rebind("SELECT COUNT(*) FROM user_words WHERE user_id = ? AND is_active = TRUE")
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count personal words: %w", err)
	}
	return count, nil
}
