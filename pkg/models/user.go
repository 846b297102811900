package models

import "time"

// User represents a Telegram user of the bot. Difficulty holds the quiz
// tier key ("easy", "medium", "hard"); new users start on "medium".
type User struct {
	ID         int64     `json:"id" db:"id"` // Telegram user ID
	Username   string    `json:"username" db:"username"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Difficulty string    `json:"difficulty" db:"difficulty"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
