package ranktable

import (
	"iter"

	"github.com/lox/handrank/poker"
)

// TieClass is the set of concrete hands sharing one category and StrengthKey.
// Hands are produced lazily so a class can be counted or scored without
// materialising its cards.
type TieClass struct {
	Strength poker.Strength
	size     int
	hands    iter.Seq[poker.Hand]
}

// Size returns the number of concrete hands in the class.
func (c TieClass) Size() int {
	return c.size
}

// Hands yields every concrete hand of the class exactly once.
func (c TieClass) Hands() iter.Seq[poker.Hand] {
	return c.hands
}

// Category enumerates one hand category: its tie-classes in strictly
// descending strength order, and the closed-form counts they must meet.
type Category struct {
	Type      poker.HandType
	ClassSize int // concrete hands per tie-class
	Classes   int // number of tie-classes
	classes   iter.Seq[TieClass]
}

// Total returns the number of concrete hands in the category.
func (c Category) Total() int {
	return c.ClassSize * c.Classes
}

// TieClasses yields the category's tie-classes, strongest first.
func (c Category) TieClasses() iter.Seq[TieClass] {
	return c.classes
}

// Categories returns the nine category enumerators from strongest to weakest.
func Categories() []Category {
	return []Category{
		{Type: poker.StraightFlush, ClassSize: 4, Classes: 10, classes: straightFlushes},
		{Type: poker.Quads, ClassSize: 4, Classes: 13 * 12, classes: quads},
		{Type: poker.FullHouse, ClassSize: 4 * 6, Classes: 13 * 12, classes: fullHouses},
		{Type: poker.Flush, ClassSize: 4, Classes: 1287 - 10, classes: flushes},
		{Type: poker.Straight, ClassSize: 1024 - 4, Classes: 10, classes: straights},
		{Type: poker.Trips, ClassSize: 4 * 4 * 4, Classes: 13 * 66, classes: trips},
		{Type: poker.TwoPair, ClassSize: 6 * 6 * 4, Classes: 78 * 11, classes: twoPairs},
		{Type: poker.Pair, ClassSize: 6 * 64, Classes: 13 * 220, classes: pairs},
		{Type: poker.HighCard, ClassSize: 1024 - 4, Classes: 1287 - 10, classes: highCards},
	}
}

// Suit choices for a rank appearing n times in a hand.
var (
	quadSuits   = suitCombos(4)
	tripSuits   = suitCombos(3)
	pairSuits   = suitCombos(2)
	singleSuits = suitCombos(1)
)

// suitCombos returns every k-subset of the four suits in iteration order.
func suitCombos(k int) [][]poker.Suit {
	var out [][]poker.Suit
	var walk func(start int, acc []poker.Suit)
	walk = func(start int, acc []poker.Suit) {
		if len(acc) == k {
			out = append(out, append([]poker.Suit(nil), acc...))
			return
		}
		for i := start; i < poker.NumSuits; i++ {
			walk(i+1, append(acc, poker.Suits[i]))
		}
	}
	walk(0, nil)
	return out
}

// group is one rank of a rank pattern together with the suit subsets it may take.
type group struct {
	rank    poker.Rank
	options [][]poker.Suit
}

// productHands yields every combination of one suit option per group. With
// offsuit set, the four assignments that put five singletons in one suit are
// skipped; those hands belong to Flush or StraightFlush.
func productHands(groups []group, offsuit bool) iter.Seq[poker.Hand] {
	return func(yield func(poker.Hand) bool) {
		var walk func(i int, h poker.Hand, suits uint8) bool
		walk = func(i int, h poker.Hand, suits uint8) bool {
			if i == len(groups) {
				if offsuit && suits&(suits-1) == 0 {
					return true
				}
				return yield(h)
			}
			g := groups[i]
			for _, opt := range g.options {
				next, used := h, suits
				for _, s := range opt {
					next = next.Add(poker.NewCard(g.rank, s))
					used |= 1 << s
				}
				if !walk(i+1, next, used) {
					return false
				}
			}
			return true
		}
		walk(0, 0, 0)
	}
}

// suitedHands yields the four single-suit hands over five distinct ranks.
func suitedHands(ranks []poker.Rank) iter.Seq[poker.Hand] {
	return func(yield func(poker.Hand) bool) {
		for _, s := range poker.Suits {
			var h poker.Hand
			for _, r := range ranks {
				h = h.Add(poker.NewCard(r, s))
			}
			if !yield(h) {
				return
			}
		}
	}
}

func singles(ranks ...poker.Rank) []group {
	gs := make([]group, len(ranks))
	for i, r := range ranks {
		gs[i] = group{rank: r, options: singleSuits}
	}
	return gs
}

// descendingCombos yields every k-subset of ranks not in exclude, ordered so
// that the resulting descending rank lists fall in descending lexicographic
// order. The yielded slice is reused between calls.
func descendingCombos(k int, exclude uint16) iter.Seq[[]poker.Rank] {
	return func(yield func([]poker.Rank) bool) {
		acc := make([]poker.Rank, 0, k)
		var walk func(top poker.Rank) bool
		walk = func(top poker.Rank) bool {
			if len(acc) == k {
				return yield(acc)
			}
			need := poker.Rank(k - len(acc))
			for r := top; r >= poker.Two+need-1; r-- {
				if exclude&poker.RankMaskOf(r) != 0 {
					continue
				}
				acc = append(acc, r)
				if !walk(r - 1) {
					return false
				}
				acc = acc[:len(acc)-1]
			}
			return true
		}
		walk(poker.Ace)
	}
}

// runs yields the ten straight rank patterns from ace-high down to the wheel,
// each listed high card first.
func runs(yield func(high poker.Rank, ranks []poker.Rank) bool) {
	for high := poker.Ace; high >= poker.Five; high-- {
		ranks := make([]poker.Rank, 0, poker.HandSize)
		for i := range poker.Rank(poker.HandSize) {
			if r := high - i; r >= poker.Two {
				ranks = append(ranks, r)
			}
		}
		if high == poker.Five {
			ranks = append(ranks, poker.Ace)
		}
		if !yield(high, ranks) {
			return
		}
	}
}

func key(ranks ...poker.Rank) poker.StrengthKey {
	return poker.NewStrengthKey(ranks...)
}

func straightFlushes(yield func(TieClass) bool) {
	runs(func(high poker.Rank, ranks []poker.Rank) bool {
		return yield(TieClass{
			Strength: poker.Strength{Type: poker.StraightFlush, Key: key(high)},
			size:     poker.NumSuits,
			hands:    suitedHands(ranks),
		})
	})
}

func quads(yield func(TieClass) bool) {
	for quad := poker.Ace; quad >= poker.Two; quad-- {
		for kicker := poker.Ace; kicker >= poker.Two; kicker-- {
			if kicker == quad {
				continue
			}
			class := TieClass{
				Strength: poker.Strength{Type: poker.Quads, Key: key(quad, kicker)},
				size:     len(quadSuits) * len(singleSuits),
				hands: productHands([]group{
					{rank: quad, options: quadSuits},
					{rank: kicker, options: singleSuits},
				}, false),
			}
			if !yield(class) {
				return
			}
		}
	}
}

func fullHouses(yield func(TieClass) bool) {
	for trip := poker.Ace; trip >= poker.Two; trip-- {
		for pair := poker.Ace; pair >= poker.Two; pair-- {
			if pair == trip {
				continue
			}
			class := TieClass{
				Strength: poker.Strength{Type: poker.FullHouse, Key: key(trip, pair)},
				size:     len(tripSuits) * len(pairSuits),
				hands: productHands([]group{
					{rank: trip, options: tripSuits},
					{rank: pair, options: pairSuits},
				}, false),
			}
			if !yield(class) {
				return
			}
		}
	}
}

// flushes skips rank patterns forming a run or the wheel; those are reserved
// for StraightFlush when suited.
func flushes(yield func(TieClass) bool) {
	for ranks := range descendingCombos(poker.HandSize, 0) {
		if poker.IsStraightPattern(ranks...) {
			continue
		}
		pattern := append([]poker.Rank(nil), ranks...)
		class := TieClass{
			Strength: poker.Strength{Type: poker.Flush, Key: key(pattern...)},
			size:     poker.NumSuits,
			hands:    suitedHands(pattern),
		}
		if !yield(class) {
			return
		}
	}
}

func straights(yield func(TieClass) bool) {
	runs(func(high poker.Rank, ranks []poker.Rank) bool {
		return yield(TieClass{
			Strength: poker.Strength{Type: poker.Straight, Key: key(high)},
			size:     offsuitAssignments,
			hands:    productHands(singles(ranks...), true),
		})
	})
}

func trips(yield func(TieClass) bool) {
	for trip := poker.Ace; trip >= poker.Two; trip-- {
		for kickers := range descendingCombos(2, poker.RankMaskOf(trip)) {
			groups := append([]group{{rank: trip, options: tripSuits}}, singles(kickers...)...)
			class := TieClass{
				Strength: poker.Strength{Type: poker.Trips, Key: key(trip, kickers[0], kickers[1])},
				size:     len(tripSuits) * len(singleSuits) * len(singleSuits),
				hands:    productHands(groups, false),
			}
			if !yield(class) {
				return
			}
		}
	}
}

func twoPairs(yield func(TieClass) bool) {
	for pairRanks := range descendingCombos(2, 0) {
		high, low := pairRanks[0], pairRanks[1]
		for kicker := poker.Ace; kicker >= poker.Two; kicker-- {
			if kicker == high || kicker == low {
				continue
			}
			class := TieClass{
				Strength: poker.Strength{Type: poker.TwoPair, Key: key(high, low, kicker)},
				size:     len(pairSuits) * len(pairSuits) * len(singleSuits),
				hands: productHands([]group{
					{rank: high, options: pairSuits},
					{rank: low, options: pairSuits},
					{rank: kicker, options: singleSuits},
				}, false),
			}
			if !yield(class) {
				return
			}
		}
	}
}

func pairs(yield func(TieClass) bool) {
	for pair := poker.Ace; pair >= poker.Two; pair-- {
		for kickers := range descendingCombos(3, poker.RankMaskOf(pair)) {
			groups := append([]group{{rank: pair, options: pairSuits}}, singles(kickers...)...)
			class := TieClass{
				Strength: poker.Strength{Type: poker.Pair, Key: key(pair, kickers[0], kickers[1], kickers[2])},
				size:     len(pairSuits) * len(singleSuits) * len(singleSuits) * len(singleSuits),
				hands:    productHands(groups, false),
			}
			if !yield(class) {
				return
			}
		}
	}
}

// highCards skips straight rank patterns and, per pattern, the suited
// assignments; both belong to stronger categories.
func highCards(yield func(TieClass) bool) {
	for ranks := range descendingCombos(poker.HandSize, 0) {
		if poker.IsStraightPattern(ranks...) {
			continue
		}
		pattern := append([]poker.Rank(nil), ranks...)
		class := TieClass{
			Strength: poker.Strength{Type: poker.HighCard, Key: key(pattern...)},
			size:     offsuitAssignments,
			hands:    productHands(singles(pattern...), true),
		}
		if !yield(class) {
			return
		}
	}
}

// offsuitAssignments is 4^5 suit tuples less the four single-suit ones.
const offsuitAssignments = 1024 - 4
