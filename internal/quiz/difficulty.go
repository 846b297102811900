package quiz

import "fmt"

// Tier identifies a quiz difficulty level.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// DefaultTier is used for new users and for stored values that cannot be
// recognized.
const DefaultTier = TierMedium

// Word categories of the shared corpus. The values match the word_type
// column of the seeded data.
const (
	CategoryColor    = "цвет"
	CategoryPronoun  = "местоимение"
	CategoryNumber   = "число"
	CategoryAnimal   = "животное"
	CategoryFamily   = "семья"
	CategoryVerb     = "глагол"
	CategoryAdvanced = "сложное"
)

// CategoryFilter restricts which shared-corpus words are eligible for a
// question. An empty filter matches everything. Include wins over Exclude:
// only one of the two is ever set by the built-in levels.
type CategoryFilter struct {
	Include []string
	Exclude []string
}

// IsEmpty reports whether the filter matches the whole corpus.
func (f CategoryFilter) IsEmpty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Level describes one difficulty tier. PoolLimit bounds how many candidate
// rows are drawn from each pool before the final pick; it is a sampling
// cost control, not a cap on vocabulary size.
type Level struct {
	Tier        Tier
	Label       string
	Description string
	PoolLimit   int
	Filter      CategoryFilter
}

var levels = []Level{
	{
		Tier:        TierEasy,
		Label:       "🍏 Легкий",
		Description: "Только простые слова (цвета, числа)",
		PoolLimit:   10,
		Filter:      CategoryFilter{Include: []string{CategoryColor, CategoryPronoun, CategoryNumber}},
	},
	{
		Tier:        TierMedium,
		Label:       "🍊 Средний",
		Description: "Смесь простых и сложных слов",
		PoolLimit:   20,
		Filter:      CategoryFilter{Exclude: []string{CategoryAdvanced}},
	},
	{
		Tier:        TierHard,
		Label:       "🌶️ Сложный",
		Description: "Все слова, включая редкие",
		PoolLimit:   50,
	},
}

// Resolve returns the level descriptor for a tier. An unknown tier is a
// programming or configuration error, not user input, and yields
// ErrUnknownTier rather than a silent default.
func Resolve(tier Tier) (Level, error) {
	for _, l := range levels {
		if l.Tier == tier {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
}

// TierOrDefault maps a stored difficulty value to a known tier, falling
// back to the default for empty or unrecognized data. Used when reading
// user rows back from the store, where malformed values must not break the
// conversation.
func TierOrDefault(stored string) Tier {
	t := Tier(stored)
	for _, l := range levels {
		if l.Tier == t {
			return t
		}
	}
	return DefaultTier
}

// Levels returns all tiers in menu order (easy, medium, hard).
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}
