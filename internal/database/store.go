package database

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/internal/quiz"
	"github.com/example/vocabbot/pkg/models"
)

// Store bundles the repositories behind the narrow contracts the quiz
// engine and the dictionary service consume.
type Store struct {
	Users    *UserRepository
	Words    *WordRepository
	Personal *PersonalWordRepository
	Answers  *AnswerRepository
}

// NewStore creates repositories over a shared connection.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Words:    NewWordRepository(db),
		Personal: NewPersonalWordRepository(db),
		Answers:  NewAnswerRepository(db),
	}
}

// quiz.Store

func (s *Store) SampleSharedWords(ctx context.Context, filter quiz.CategoryFilter, limit int) ([]models.Word, error) {
	return s.Words.SampleByFilter(ctx, filter, limit)
}

func (s *Store) SampleActivePersonalWords(ctx context.Context, userID int64, limit int) ([]models.PersonalWord, error) {
	return s.Personal.SampleActive(ctx, userID, limit)
}

func (s *Store) SampleDistractorTranslations(ctx context.Context, userID int64, exclude string, limit int) ([]string, error) {
	return s.Words.SampleDistractors(ctx, userID, exclude, limit)
}

func (s *Store) CountActivePersonalWords(ctx context.Context, userID int64) (int, error) {
	return s.Personal.CountActive(ctx, userID)
}

func (s *Store) AppendAnswerEvent(ctx context.Context, userID int64, ref models.WordRef, correct bool) error {
	return s.Answers.Append(ctx, userID, ref, correct)
}

func (s *Store) CountTotalAnswers(ctx context.Context, userID int64) (int, error) {
	return s.Answers.CountTotal(ctx, userID)
}

func (s *Store) CountCorrectAnswers(ctx context.Context, userID int64) (int, error) {
	return s.Answers.CountCorrect(ctx, userID)
}

// dictionary.Store

func (s *Store) InsertPersonalWord(ctx context.Context, userID int64, headword, translation string) (int64, error) {
	return s.Personal.Insert(ctx, userID, headword, translation)
}

func (s *Store) FindActivePersonalWord(ctx context.Context, userID int64, headword string) (*models.PersonalWord, error) {
	return s.Personal.FindActiveByHeadword(ctx, userID, headword)
}

func (s *Store) DeactivatePersonalWord(ctx context.Context, id, userID int64) error {
	return s.Personal.Deactivate(ctx, id, userID)
}

func (s *Store) ListActivePersonalWords(ctx context.Context, userID int64) ([]models.PersonalWord, error) {
	return s.Personal.ListActive(ctx, userID)
}
