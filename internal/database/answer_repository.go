package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/pkg/models"
)

// AnswerRepository handles the append-only answer history.
type AnswerRepository struct {
	db *sqlx.DB
}

// NewAnswerRepository creates a new repository instance.
func NewAnswerRepository(db *sqlx.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Append records one answered question. The word reference is stored in
// its signed encoding (see models.WordRef). Rows are never updated or
// deleted afterwards.
func (r *AnswerRepository) Append(ctx context.Context, userID int64, ref models.WordRef, correct bool) error {
	query := r.db.Rebind("INSERT INTO answer_events (user_id, word_ref, is_correct) VALUES (?, ?, ?)")
	if _, err := r.db.ExecContext(ctx, query, userID, ref.Encoded(), correct); err != nil {
		return fmt.Errorf("failed to append answer event: %w", err)
	}
	return nil
}

// CountTotal returns how many questions the user has answered.
func (r *AnswerRepository) CountTotal(ctx context.Context, userID int64) (int, error) {
	query := r.db.Rebind("SELECT COUNT(*) FROM answer_events WHERE user_id = ?")
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return count, nil
}

// CountCorrect returns how many of the user's answers were correct.
func (r *AnswerRepository) CountCorrect(ctx context.Context, userID int64) (int, error) {
	query := r.db.Rebind("SELECT COUNT(*) FROM answer_events WHERE user_id = ? AND is_correct = TRUE")
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count correct answers: %w", err)
	}
	return count, nil
}

// RecentByUser returns the user's latest answer events, newest first.
func (r *AnswerRepository) RecentByUser(ctx context.Context, userID int64, limit int) ([]models.AnswerEvent, error) {
	query := r.db.Rebind("SELECT id, user_id, word_ref, is_correct, answered_at FROM answer_events WHERE user_id = ? ORDER BY id DESC LIMIT ?")
	var events []models.AnswerEvent
	if err := r.db.SelectContext(ctx, &events, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list answer events: %w", err)
	}
	return events, nil
}
