// Package dictionary manages the per-user personal vocabulary: parsing and
// adding new word pairs, listing, and soft removal.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/vocabbot/pkg/models"
)

var (
	// ErrInvalidFormat means the input did not split into two non-empty
	// segments around a "-" separator.
	ErrInvalidFormat = errors.New("invalid word format")
	// ErrNotFound means the headword is not among the user's active words.
	ErrNotFound = errors.New("word not found in dictionary")
)

// Store is the persistence contract the service consumes.
type Store interface {
	InsertPersonalWord(ctx context.Context, userID int64, headword, translation string) (int64, error)
	FindActivePersonalWord(ctx context.Context, userID int64, headword string) (*models.PersonalWord, error)
	DeactivatePersonalWord(ctx context.Context, id, userID int64) error
	CountActivePersonalWords(ctx context.Context, userID int64) (int, error)
	ListActivePersonalWords(ctx context.Context, userID int64) ([]models.PersonalWord, error)
}

// Service implements the dictionary operations over a Store.
type Service struct {
	store Store
}

// New creates a dictionary service.
func New(store Store) *Service {
	return &Service{store: store}
}

// ParseEntry splits raw input of the form "word - translation" on the first
// "-" into two trimmed, lowercased segments. Returns ErrInvalidFormat when
// the separator is missing or either segment is empty.
func ParseEntry(raw string) (headword, translation string, err error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return "", "", ErrInvalidFormat
	}
	headword = strings.ToLower(strings.TrimSpace(parts[0]))
	translation = strings.ToLower(strings.TrimSpace(parts[1]))
	if headword == "" || translation == "" {
		return "", "", ErrInvalidFormat
	}
	return headword, translation, nil
}

// Add parses and stores a new personal word, returning the user's updated
// active word count. Duplicate entries for the same headword are allowed
// and create separate rows.
func (s *Service) Add(ctx context.Context, userID int64, raw string) (headword string, count int, err error) {
	headword, translation, err := ParseEntry(raw)
	if err != nil {
		return "", 0, err
	}
	if _, err := s.store.InsertPersonalWord(ctx, userID, headword, translation); err != nil {
		return "", 0, fmt.Errorf("failed to add word: %w", err)
	}
	count, err = s.store.CountActivePersonalWords(ctx, userID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to count words: %w", err)
	}
	return headword, count, nil
}

// Remove deactivates one active word matching the headword exactly and
// returns the updated active count. The row itself is kept: answer history
// may still reference it. Returns ErrNotFound when no active word matches,
// e.g. a stale pick from an outdated list.
func (s *Service) Remove(ctx context.Context, userID int64, headword string) (int, error) {
	word, err := s.store.FindActivePersonalWord(ctx, userID, headword)
	if err != nil {
		return 0, fmt.Errorf("failed to look up word: %w", err)
	}
	if word == nil {
		return 0, ErrNotFound
	}
	if err := s.store.DeactivatePersonalWord(ctx, word.ID, userID); err != nil {
		return 0, fmt.Errorf("failed to remove word: %w", err)
	}
	count, err := s.store.CountActivePersonalWords(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// List returns the user's active words ordered by headword.
func (s *Service) List(ctx context.Context, userID int64) ([]models.PersonalWord, error) {
	words, err := s.store.ListActivePersonalWords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}
