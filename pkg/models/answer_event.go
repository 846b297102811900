package models

import "time"

// AnswerEvent is one recorded quiz answer. Rows are append-only: they are
// never mutated or deleted, so statistics can always be recomputed from
// scratch.
type AnswerEvent struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	WordRef    int64     `json:"word_ref" db:"word_ref"` // signed encoding, see WordRef
	Correct    bool      `json:"is_correct" db:"is_correct"`
	AnsweredAt time.Time `json:"answered_at" db:"answered_at"`
}
