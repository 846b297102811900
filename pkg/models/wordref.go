package models

// Origin tells which pool a quiz word came from.
type Origin int

const (
	// OriginShared marks a word from the shared corpus.
	OriginShared Origin = iota
	// OriginPersonal marks a word from the user's personal dictionary.
	OriginPersonal
)

// WordRef is a tagged reference into one of the two word pools.
//
// The answer_events table keeps the historical union-by-sign encoding in a
// single integer column: positive values are common_words ids, negative
// values are negated user_words ids. Ids start at 1 in both tables, so an
// encoded value of 0 never occurs. Encoded and DecodeWordRef are the only
// places that know the sign convention.
type WordRef struct {
	Origin Origin
	ID     int64
}

// Encoded returns the signed column value for this reference.
func (r WordRef) Encoded() int64 {
	if r.Origin == OriginPersonal {
		return -r.ID
	}
	return r.ID
}

// DecodeWordRef restores a tagged reference from its signed column value.
func DecodeWordRef(v int64) WordRef {
	if v < 0 {
		return WordRef{Origin: OriginPersonal, ID: -v}
	}
	return WordRef{Origin: OriginShared, ID: v}
}
