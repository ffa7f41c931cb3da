package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck is a standard 52-card deck. A new deck is in canonical order (ranks
// ascending, suits in iteration order) until shuffled.
type Deck struct {
	cards [NumCards]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates an unshuffled deck. rng is used by Shuffle; a nil rng falls
// back to the global source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	copy(d.cards[:], AllCards())
	return d
}

// Shuffle shuffles the deck using Fisher-Yates and resets the deal position.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealHand deals the next five cards as a hand.
func (d *Deck) DealHand() (Hand, error) {
	cards := d.Deal(HandSize)
	if cards == nil {
		return 0, fmt.Errorf("deck exhausted: %d cards remaining", d.CardsRemaining())
	}
	return NewHand(cards...)
}

// CardsRemaining returns the number of cards left in the deck.
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
