package models

// Stats aggregates a user's answer history and dictionary size. The values
// are always recomputed from the persisted rows, never cached.
type Stats struct {
	ActiveWords int     `json:"active_words"`
	Correct     int     `json:"correct_answers"`
	Total       int     `json:"total_answers"`
	Accuracy    float64 `json:"accuracy"` // percent, rounded to one decimal; 0 when Total is 0
}
