package poker

import "strings"

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota + 1
	Pair
	TwoPair
	Trips
	Straight
	Flush
	FullHouse
	Quads
	StraightFlush
)

// NumHandTypes is the number of hand categories.
const NumHandTypes = 9

// HandTypes lists every category from strongest to weakest.
var HandTypes = [NumHandTypes]HandType{
	StraightFlush, Quads, FullHouse, Flush, Straight, Trips, TwoPair, Pair, HighCard,
}

// Valid reports whether t is one of the nine categories.
func (t HandType) Valid() bool {
	return t >= HighCard && t <= StraightFlush
}

// String returns a human-readable category name.
func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case Trips:
		return "Trips"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case Quads:
		return "Quads"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// KeyLen returns the number of ranks in a StrengthKey for this category.
func (t HandType) KeyLen() int {
	switch t {
	case StraightFlush, Straight:
		return 1
	case Quads, FullHouse:
		return 2
	case Trips, TwoPair:
		return 3
	case Pair:
		return 4
	case Flush, HighCard:
		return 5
	default:
		return 0
	}
}

// StrengthKey is the ordered tie-break rank sequence of a hand within its category.
// Keys of the same category always have the same length.
type StrengthKey struct {
	ranks [HandSize]Rank
	n     uint8
}

// NewStrengthKey builds a key from up to five ranks, most significant first.
func NewStrengthKey(ranks ...Rank) StrengthKey {
	var k StrengthKey
	for _, r := range ranks {
		if int(k.n) == HandSize {
			break
		}
		k.ranks[k.n] = r
		k.n++
	}
	return k
}

// Len returns the number of ranks in the key.
func (k StrengthKey) Len() int {
	return int(k.n)
}

// At returns the i-th rank of the key.
func (k StrengthKey) At(i int) Rank {
	return k.ranks[i]
}

// Ranks returns a copy of the key's ranks.
func (k StrengthKey) Ranks() []Rank {
	out := make([]Rank, k.n)
	copy(out, k.ranks[:k.n])
	return out
}

// Compare orders keys lexicographically; the higher rank at the first
// difference wins. It returns 1, -1 or 0.
func (k StrengthKey) Compare(o StrengthKey) int {
	n := min(k.n, o.n)
	for i := range n {
		switch {
		case k.ranks[i] > o.ranks[i]:
			return 1
		case k.ranks[i] < o.ranks[i]:
			return -1
		}
	}
	switch {
	case k.n > o.n:
		return 1
	case k.n < o.n:
		return -1
	}
	return 0
}

// String renders the key as "[K 9 6 4 2]".
func (k StrengthKey) String() string {
	parts := make([]string, k.n)
	for i := range parts {
		parts[i] = k.ranks[i].String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Strength is the complete strength of a hand: its category and tie-break key.
// Two hands are strength-tied exactly when their Strengths are equal.
type Strength struct {
	Type HandType
	Key  StrengthKey
}

// Compare returns 1 if s beats o, -1 if o beats s and 0 for a tie.
func (s Strength) Compare(o Strength) int {
	switch {
	case s.Type > o.Type:
		return 1
	case s.Type < o.Type:
		return -1
	}
	return s.Key.Compare(o.Key)
}

// Beats reports whether s is strictly stronger than o.
func (s Strength) Beats(o Strength) bool {
	return s.Compare(o) > 0
}

// String returns a description such as "Full House [7 2]".
func (s Strength) String() string {
	return s.Type.String() + " " + s.Key.String()
}
