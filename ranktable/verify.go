package ranktable

import (
	"fmt"
	"slices"

	"github.com/lox/handrank/poker"
)

// Verify re-checks a table independently of how it was produced. Every
// failure wraps ErrCorruptTable.
//
// It checks that the table holds every hand exactly once, that scores never
// increase, that each score equals the number of hands at or below it, and that
// neighbouring records agree with Classify: equal scores only for equal
// strengths, and a score drop only where the earlier hand wins.
func (t *Table) Verify() error {
	if len(t.records) != TotalHands {
		return corrupt("table has %d records, want %d", len(t.records), TotalHands)
	}
	if err := t.checkCoverage(); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptTable, err)
	}

	want := Categories()
	counts := make(map[poker.HandType]int, len(want))

	var prev poker.Strength
	classStart := 0
	for i, r := range t.records {
		s, err := poker.Classify(r.Hand)
		if err != nil {
			return corrupt("record %d: %v", i, err)
		}
		if s.Type != r.Type {
			return corrupt("record %d: %s stored as %s, classifies as %s", i, r.Hand, r.Type, s.Type)
		}
		counts[r.Type]++

		if i == 0 {
			if r.Score != TotalHands {
				return corrupt("strongest hand scores %d, want %d", r.Score, TotalHands)
			}
			prev = s
			continue
		}

		last := t.records[i-1]
		switch {
		case r.Score == last.Score:
			if s != prev {
				return corrupt("record %d: %s (%s) shares score %d with %s (%s)", i, r.Hand, s, r.Score, last.Hand, prev)
			}
		case r.Score < last.Score:
			if !prev.Beats(s) {
				return corrupt("record %d: %s (%s) scores below %s (%s)", i, r.Hand, s, last.Hand, prev)
			}
			classStart = i
		default:
			return corrupt("record %d: score %d rises above %d", i, r.Score, last.Score)
		}
		if r.Score != Score(TotalHands-classStart) {
			return corrupt("record %d: score %d, want %d", i, r.Score, TotalHands-classStart)
		}
		prev = s
	}

	for _, cat := range want {
		if counts[cat.Type] != cat.Total() {
			return corrupt("%s: %d hands, want %d", cat.Type, counts[cat.Type], cat.Total())
		}
	}
	return nil
}

// checkCoverage confirms the records hold C(52,5) distinct valid hands.
func (t *Table) checkCoverage() error {
	hands := make([]poker.Hand, len(t.records))
	for i, r := range t.records {
		if !r.Hand.Valid() {
			return &RankPatternError{Type: r.Type, What: "hand", Detail: fmt.Sprintf("record %d is not a five-card hand", i)}
		}
		hands[i] = r.Hand
	}
	slices.Sort(hands)
	for i := 1; i < len(hands); i++ {
		if hands[i] == hands[i-1] {
			return &RankPatternError{What: "hands", Detail: fmt.Sprintf("%s emitted twice", hands[i])}
		}
	}
	if len(hands) != TotalHands {
		return &RankPatternError{What: "distinct hands", Want: TotalHands, Got: len(hands)}
	}
	return nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptTable, fmt.Sprintf(format, args...))
}
