package ranktable

import (
	"iter"
	"time"

	"github.com/lox/handrank/poker"
)

// TotalHands is the number of five-card hands in a 52-card deck, C(52,5).
// It is also the score of the strongest hands.
const TotalHands = 2598960

// Score is a hand's rank score: the number of hands at or below its strength.
// Equal scores mean tied hands and a higher score always wins.
type Score uint32

// Record is one row of the rank table.
type Record struct {
	Hand  poker.Hand
	Type  poker.HandType
	Score Score
}

// CategoryStats summarises one category of a built table. StartScore is the
// score of the category's strongest class; EndScore is the score counter once
// the category is exhausted, which is the next category's StartScore.
type CategoryStats struct {
	Type       poker.HandType
	Classes    int
	Hands      int
	StartScore Score
	EndScore   Score
}

// Table is the complete, immutable rank table. Records are ordered by
// descending score; the table is safe for concurrent readers.
type Table struct {
	records    []Record
	categories []CategoryStats
	elapsed    time.Duration
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// At returns the i-th record in descending score order.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// All yields every record in descending score order.
func (t *Table) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range t.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Categories returns per-category statistics, strongest category first.
func (t *Table) Categories() []CategoryStats {
	return append([]CategoryStats(nil), t.categories...)
}

// Category returns the statistics for one hand type.
func (t *Table) Category(ht poker.HandType) (CategoryStats, bool) {
	for _, c := range t.categories {
		if c.Type == ht {
			return c, true
		}
	}
	return CategoryStats{}, false
}

// Elapsed returns how long the build took, as measured by the builder's clock.
// Tables decoded from a file report zero.
func (t *Table) Elapsed() time.Duration {
	return t.elapsed
}

// Equal reports whether two tables hold identical records in identical order.
func (t *Table) Equal(o *Table) bool {
	if len(t.records) != len(o.records) {
		return false
	}
	for i := range t.records {
		if t.records[i] != o.records[i] {
			return false
		}
	}
	return true
}

// statsFromRecords rebuilds category statistics from an ordered record list.
func statsFromRecords(records []Record) []CategoryStats {
	var stats []CategoryStats
	var last Score
	for _, r := range records {
		if len(stats) == 0 || stats[len(stats)-1].Type != r.Type {
			if len(stats) > 0 {
				stats[len(stats)-1].EndScore = r.Score
			}
			stats = append(stats, CategoryStats{Type: r.Type, StartScore: r.Score})
		}
		cur := &stats[len(stats)-1]
		if cur.Hands == 0 || r.Score != last {
			cur.Classes++
		}
		cur.Hands++
		last = r.Score
	}
	if len(stats) > 0 {
		stats[len(stats)-1].EndScore = 0
	}
	return stats
}
