package poker

import (
	"fmt"
	"math/bits"
)

const wheelMask = 0x100F // Ace + 2-3-4-5

// Classify returns the category and tie-break key of a five-card hand.
// It fails with ErrInvalidHand unless h holds exactly five valid cards.
func Classify(h Hand) (Strength, error) {
	if h&^allCardsMask != 0 {
		return Strength{}, fmt.Errorf("%w: card outside the deck", ErrInvalidHand)
	}
	if n := h.CountCards(); n != HandSize {
		return Strength{}, fmt.Errorf("%w: need %d cards, got %d", ErrInvalidHand, HandSize, n)
	}
	return classify(h), nil
}

// Evaluate validates the cards as a hand and classifies it.
func Evaluate(cards ...Card) (Strength, error) {
	h, err := NewHand(cards...)
	if err != nil {
		return Strength{}, err
	}
	return classify(h), nil
}

// MustClassify classifies a hand known to be valid, panicking otherwise.
func MustClassify(h Hand) Strength {
	s, err := Classify(h)
	if err != nil {
		panic(err)
	}
	return s
}

// classify assumes h holds exactly five cards.
func classify(h Hand) Strength {
	s0, s1, s2, s3 := h.SuitMask(Clubs), h.SuitMask(Diamonds), h.SuitMask(Hearts), h.SuitMask(Spades)
	rankMask := s0 | s1 | s2 | s3

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	flush := bits.OnesCount16(rankMask) == HandSize &&
		(s0 == rankMask || s1 == rankMask || s2 == rankMask || s3 == rankMask)
	high, straight := StraightHigh(rankMask)

	switch {
	case flush && straight:
		return Strength{StraightFlush, NewStrengthKey(high)}

	case quadsMask != 0:
		quad := highestRank(quadsMask)
		return Strength{Quads, NewStrengthKey(quad, highestRank(rankMask&^quad.bit()))}

	case tripsMask != 0 && pairsMask != 0:
		return Strength{FullHouse, NewStrengthKey(highestRank(tripsMask), highestRank(pairsMask))}

	case flush:
		return Strength{Flush, NewStrengthKey(ranksDesc(rankMask)...)}

	case straight:
		return Strength{Straight, NewStrengthKey(high)}

	case tripsMask != 0:
		trip := highestRank(tripsMask)
		return Strength{Trips, NewStrengthKey(append([]Rank{trip}, ranksDesc(rankMask&^trip.bit())...)...)}

	case bits.OnesCount16(pairsMask) == 2:
		key := append(ranksDesc(pairsMask), ranksDesc(rankMask&^pairsMask)...)
		return Strength{TwoPair, NewStrengthKey(key...)}

	case pairsMask != 0:
		pair := highestRank(pairsMask)
		return Strength{Pair, NewStrengthKey(append([]Rank{pair}, ranksDesc(rankMask&^pair.bit())...)...)}

	default:
		return Strength{HighCard, NewStrengthKey(ranksDesc(rankMask)...)}
	}
}

// StraightHigh reports whether a mask of exactly five distinct ranks forms a
// straight, and its high card. The wheel (A-2-3-4-5) is five-high.
func StraightHigh(mask uint16) (Rank, bool) {
	mask &= 0x1FFF // Ignore any bits above rank twelve
	if bits.OnesCount16(mask) != HandSize {
		return 0, false
	}
	if mask == wheelMask {
		return Five, true
	}

	// Five consecutive bits collapse to a single bit after the cascade.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return 0, false
	}
	return Two + Rank(bits.Len16(seq)-1) + 4, true
}

// IsStraightPattern reports whether five distinct ranks form a run or the wheel.
func IsStraightPattern(ranks ...Rank) bool {
	_, ok := StraightHigh(RankMaskOf(ranks...))
	return ok
}

// RankMaskOf returns the 13-bit mask of the given ranks.
func RankMaskOf(ranks ...Rank) uint16 {
	var mask uint16
	for _, r := range ranks {
		mask |= r.bit()
	}
	return mask
}

// highestRank returns the highest rank present in a non-empty mask.
func highestRank(mask uint16) Rank {
	return Two + Rank(bits.Len16(mask)-1)
}

// ranksDesc lists the ranks present in mask from highest to lowest.
func ranksDesc(mask uint16) []Rank {
	ranks := make([]Rank, 0, bits.OnesCount16(mask))
	for mask != 0 {
		top := highestRank(mask)
		ranks = append(ranks, top)
		mask &^= top.bit()
	}
	return ranks
}

// Compare compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie.
func Compare(a, b Hand) (int, error) {
	sa, err := Classify(a)
	if err != nil {
		return 0, err
	}
	sb, err := Classify(b)
	if err != nil {
		return 0, err
	}
	return sa.Compare(sb), nil
}
