package models

// Word is an entry of the shared, pre-seeded corpus. Rows are created once
// at bootstrap and never mutated afterwards.
type Word struct {
	ID          int64  `json:"id" db:"id"`
	Headword    string `json:"english_word" db:"english_word"`
	Translation string `json:"russian_translation" db:"russian_translation"`
	Category    string `json:"word_type" db:"word_type"` // empty when untagged
}
