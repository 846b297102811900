package models

import "time"

// PersonalWord is a word a user added to their own dictionary. Removal only
// flips Active to false; answer history may still reference the row.
type PersonalWord struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Headword    string    `json:"english_word" db:"english_word"`
	Translation string    `json:"russian_translation" db:"russian_translation"`
	Active      bool      `json:"is_active" db:"is_active"`
	AddedAt     time.Time `json:"added_at" db:"added_at"`
}
