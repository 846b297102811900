package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/pkg/models"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user, or nil when no row exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := r.db.Rebind("SELECT id, username, first_name, last_name, difficulty, created_at FROM users WHERE id = ?")
	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := r.db.Rebind("INSERT INTO users (id, username, first_name, last_name, difficulty) VALUES (?, ?, ?, ?, ?)")
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.FirstName, user.LastName, user.Difficulty); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetOrCreate returns the user, registering them on first contact with the
// default difficulty.
func (r *UserRepository) GetOrCreate(ctx context.Context, id int64, username, firstName, lastName string) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{
		ID:         id,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		Difficulty: "medium",
	}
	if err := r.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetDifficulty updates the user's quiz tier.
func (r *UserRepository) SetDifficulty(ctx context.Context, userID int64, difficulty string) error {
	query := r.db.Rebind("UPDATE users SET difficulty = ? WHERE id = ?")
	result, err := r.db.ExecContext(ctx, query, difficulty, userID)
	if err != nil {
		return fmt.Errorf("failed to set difficulty: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// Count returns the total number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
