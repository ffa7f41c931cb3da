package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// HandSize is the number of cards in a ranked hand.
const HandSize = 5

// ErrInvalidHand reports a hand that is not exactly five distinct cards.
var ErrInvalidHand = errors.New("invalid hand")

// Hand is a set of cards stored as a 52-bit mask, one bit per Card. The mask is
// independent of the order the cards were supplied in, so it serves directly as
// the lookup key for a hand.
type Hand uint64

const allCardsMask = Hand(1)<<NumCards - 1

// NewHand builds a five-card hand, rejecting duplicates, invalid cards and any
// card count other than five.
func NewHand(cards ...Card) (Hand, error) {
	if len(cards) != HandSize {
		return 0, fmt.Errorf("%w: need %d cards, got %d", ErrInvalidHand, HandSize, len(cards))
	}
	var h Hand
	for _, c := range cards {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: card index %d out of range", ErrInvalidHand, uint8(c))
		}
		if h.Contains(c) {
			return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		h = h.Add(c)
	}
	return h, nil
}

// MustHand is NewHand for fixed card lists; it panics on invalid input.
func MustHand(cards ...Card) Hand {
	h, err := NewHand(cards...)
	if err != nil {
		panic(err)
	}
	return h
}

// ParseHand parses card notation into a validated five-card hand.
func ParseHand(s string) (Hand, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHand, err)
	}
	return NewHand(cards...)
}

// Add returns the hand with c included.
func (h Hand) Add(c Card) Hand {
	return h | 1<<c
}

// Contains reports whether c is in the hand.
func (h Hand) Contains(c Card) bool {
	return h&(1<<c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Valid reports whether the hand holds exactly five real cards.
func (h Hand) Valid() bool {
	return h&^allCardsMask == 0 && h.CountCards() == HandSize
}

// SuitMask returns the 13-bit rank mask of the cards in suit s.
func (h Hand) SuitMask(s Suit) uint16 {
	return uint16(uint64(h)>>(uint(s)*NumRanks)) & 0x1FFF
}

// RankMask returns the 13-bit mask of ranks present in any suit.
func (h Hand) RankMask() uint16 {
	return h.SuitMask(Clubs) | h.SuitMask(Diamonds) | h.SuitMask(Hearts) | h.SuitMask(Spades)
}

// Cards returns the cards in ascending card-index order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for m := uint64(h & allCardsMask); m != 0; m &= m - 1 {
		cards = append(cards, Card(bits.TrailingZeros64(m)))
	}
	return cards
}

// Indices returns the five card indices in ascending order. The hand must be valid.
func (h Hand) Indices() [HandSize]uint8 {
	var out [HandSize]uint8
	i := 0
	for m := uint64(h & allCardsMask); m != 0 && i < HandSize; m &= m - 1 {
		out[i] = uint8(bits.TrailingZeros64(m))
		i++
	}
	return out
}

// SortedCards returns the cards from highest rank to lowest, ties broken by suit.
func (h Hand) SortedCards() []Card {
	var cards []Card
	for r := Ace; r >= Two; r-- {
		for s := int(Spades); s >= int(Clubs); s-- {
			c := NewCard(r, Suit(s))
			if h.Contains(c) {
				cards = append(cards, c)
			}
		}
	}
	return cards
}

// String renders the hand high to low, e.g. "As Ks Qs Js Ts".
func (h Hand) String() string {
	cards := h.SortedCards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Pretty renders the hand with suit symbols.
func (h Hand) Pretty() string {
	cards := h.SortedCards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Pretty()
	}
	return strings.Join(parts, " ")
}
