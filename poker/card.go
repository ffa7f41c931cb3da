package poker

import (
	"fmt"
	"strings"
)

// Rank is a card face value. Ranks compare as integers, Two lowest and Ace highest.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks in a deck.
const NumRanks = 13

const rankChars = "23456789TJQKA"

// Valid reports whether r is one of the 13 ranks.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the single-character rank notation (e.g. "A", "T", "7").
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankChars[r-Two])
}

// bit returns the rank's position in a 13-bit rank mask (Two = bit 0).
func (r Rank) bit() uint16 {
	return 1 << (r - Two)
}

// Suit is a card suit. Suits carry no strength; the order below is only used for
// deterministic iteration.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

const suitChars = "cdhs"

// Suits lists every suit in iteration order.
var Suits = [NumSuits]Suit{Clubs, Diamonds, Hearts, Spades}

// Valid reports whether s is one of the 4 suits.
func (s Suit) Valid() bool {
	return s < NumSuits
}

// String returns the single-character suit notation.
func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the unicode suit symbol.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Card is one of the 52 card identities, packed as suit*13 + (rank-2).
// The packed value doubles as the card's bit position in a Hand.
type Card uint8

// NumCards is the number of cards in a standard deck.
const NumCards = NumRanks * NumSuits

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(suit)*NumRanks + uint8(rank-Two))
}

// Rank returns the card's rank.
func (c Card) Rank() Rank {
	return Rank(uint8(c)%NumRanks) + Two
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(uint8(c) / NumRanks)
}

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool {
	return c < NumCards
}

// String returns the card in two-character notation (e.g. "As", "Td").
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// Pretty returns the card with a unicode suit symbol (e.g. "A♠").
func (c Card) Pretty() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank().String() + c.Suit().Symbol()
}

// AllCards returns the 52 cards ordered by rank, then suit.
func AllCards() []Card {
	cards := make([]Card, 0, NumCards)
	for r := Two; r <= Ace; r++ {
		for _, s := range Suits {
			cards = append(cards, NewCard(r, s))
		}
	}
	return cards
}

// ParseRank parses a single rank character. "10" is accepted for ten.
func ParseRank(s string) (Rank, error) {
	if s == "10" {
		return Ten, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid rank %q", s)
	}
	idx := strings.IndexByte(rankChars, upper(s[0]))
	if idx < 0 {
		return 0, fmt.Errorf("invalid rank %q", s)
	}
	return Two + Rank(idx), nil
}

// ParseSuit parses a single suit character or unicode suit symbol.
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "c", "C", "♣":
		return Clubs, nil
	case "d", "D", "♦":
		return Diamonds, nil
	case "h", "H", "♥":
		return Hearts, nil
	case "s", "S", "♠":
		return Spades, nil
	}
	return 0, fmt.Errorf("invalid suit %q", s)
}

// ParseCard parses a card such as "As", "Td", "10h" or "Q♠".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}

	rankPart := s[:1]
	suitPart := s[1:]
	if strings.HasPrefix(s, "10") {
		rankPart, suitPart = s[:2], s[2:]
	}

	rank, err := ParseRank(rankPart)
	if err != nil {
		return 0, fmt.Errorf("card %q: %w", s, err)
	}
	suit, err := ParseSuit(suitPart)
	if err != nil {
		return 0, fmt.Errorf("card %q: %w", s, err)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a list of cards separated by spaces or commas, or written
// back to back ("AsKsQsJsTs").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	var cards []Card
	for _, field := range fields {
		if len(field) == 2 || strings.HasPrefix(field, "10") && len(field) == 3 || !isASCII(field) {
			card, err := ParseCard(field)
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			continue
		}
		if len(field)%2 != 0 {
			return nil, fmt.Errorf("invalid card string %q", field)
		}
		for i := 0; i < len(field); i += 2 {
			card, err := ParseCard(field[i : i+2])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
