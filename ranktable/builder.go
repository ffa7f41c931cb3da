package ranktable

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handrank/poker"
)

// progressStep is the minimum number of hands between progress reports within
// a category.
const progressStep = 1 << 16

// Progress reports how far a category has been enumerated.
type Progress struct {
	Type  poker.HandType
	Hands int // hands emitted so far in this category
	Total int // hands the category will emit
	Done  bool
}

// Builder drives the category enumerators and assigns rank scores.
type Builder struct {
	workers    int
	logger     *log.Logger
	clock      quartz.Clock
	progress   func(Progress)
	categories []Category
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets how many categories are enumerated concurrently. One worker
// runs the sequential reference path; zero or less uses one worker per CPU.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		b.workers = n
	}
}

// WithLogger sets the logger used for per-category start and end scores.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		b.logger = logger.WithPrefix("builder")
	}
}

// WithClock sets the clock used to time the build.
func WithClock(clock quartz.Clock) Option {
	return func(b *Builder) {
		b.clock = clock
	}
}

// WithProgress registers a progress callback. With more than one worker it is
// called from several goroutines and must be safe for concurrent use.
func WithProgress(fn func(Progress)) Option {
	return func(b *Builder) {
		b.progress = fn
	}
}

// NewBuilder creates a builder over the nine standard categories.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		workers:    1,
		logger:     log.New(io.Discard),
		clock:      quartz.NewReal(),
		categories: Categories(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build enumerates every hand with the default sequential builder.
func Build(ctx context.Context) (*Table, error) {
	return NewBuilder().Build(ctx)
}

// Build produces the full table, or an error wrapping ErrInvalidRankPattern if
// any enumerator disagrees with its closed-form counts. No partial table is
// ever returned.
func (b *Builder) Build(ctx context.Context) (*Table, error) {
	start := b.clock.Now()

	var (
		t   *Table
		err error
	)
	if b.workers <= 1 {
		t, err = b.buildSequential(ctx)
	} else {
		t, err = b.buildParallel(ctx)
	}
	if err != nil {
		return nil, err
	}

	t.elapsed = b.clock.Since(start)
	b.logger.Info("Rank table built", "hands", len(t.records), "workers", b.workers, "elapsed", t.elapsed)
	return t, nil
}

// buildSequential walks the categories strongest first with a single running
// score counter, decremented by each tie-class's size once the class is emitted.
func (b *Builder) buildSequential(ctx context.Context) (*Table, error) {
	records := make([]Record, 0, TotalHands)
	stats := make([]CategoryStats, 0, len(b.categories))
	counter := Score(TotalHands)

	for _, cat := range b.categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b.logger.Info("Category start", "type", cat.Type, "score", counter)
		cs, err := b.emitCategory(cat, counter, func(r Record) error {
			if len(records) == TotalHands {
				return &RankPatternError{Type: cat.Type, What: "hands", Detail: "more hands than the deck holds"}
			}
			records = append(records, r)
			return nil
		})
		if err != nil {
			return nil, err
		}
		counter = cs.EndScore
		stats = append(stats, cs)
		b.logger.Info("Category end", "type", cat.Type, "score", counter)
	}

	return finish(records, stats)
}

// buildParallel gives every category its own worker. Each category's starting
// score and output region are computed up front from the closed-form counts of
// the categories above it, so workers share no mutable state.
func (b *Builder) buildParallel(ctx context.Context) (*Table, error) {
	offsets := make([]int, len(b.categories))
	total := 0
	for i, cat := range b.categories {
		offsets[i] = total
		total += cat.Total()
	}
	if total != TotalHands {
		return nil, &RankPatternError{What: "closed-form totals", Want: TotalHands, Got: total}
	}

	records := make([]Record, TotalHands)
	stats := make([]CategoryStats, len(b.categories))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, cat := range b.categories {
		region := records[offsets[i] : offsets[i]+cat.Total()]
		startScore := Score(TotalHands - offsets[i])

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.logger.Debug("Category start", "type", cat.Type, "score", startScore)
			n := 0
			cs, err := b.emitCategory(cat, startScore, func(r Record) error {
				if n == len(region) {
					return &RankPatternError{Type: cat.Type, What: "hands", Detail: "category overflows its closed-form region"}
				}
				region[n] = r
				n++
				return nil
			})
			if err != nil {
				return err
			}
			stats[i] = cs
			b.logger.Debug("Category end", "type", cat.Type, "score", cs.EndScore)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return finish(records, stats)
}

// emitCategory emits every hand of one category, tagging each tie-class with
// the current score and then lowering the score by the class size. Class and
// category counts are checked against the closed forms.
func (b *Builder) emitCategory(cat Category, score Score, emit func(Record) error) (CategoryStats, error) {
	cs := CategoryStats{Type: cat.Type, StartScore: score}
	reported := 0

	for class := range cat.TieClasses() {
		if class.Strength.Type != cat.Type || class.Strength.Key.Len() != cat.Type.KeyLen() {
			return cs, &RankPatternError{Type: cat.Type, What: "class strength", Key: class.Strength.Key,
				Detail: fmt.Sprintf("malformed strength %s", class.Strength)}
		}

		n := 0
		for h := range class.Hands() {
			if !h.Valid() {
				return cs, &RankPatternError{Type: cat.Type, What: "hand", Key: class.Strength.Key,
					Detail: fmt.Sprintf("%d cards", h.CountCards())}
			}
			if err := emit(Record{Hand: h, Type: cat.Type, Score: score}); err != nil {
				return cs, err
			}
			n++
		}
		if n != cat.ClassSize || n != class.Size() {
			return cs, &RankPatternError{Type: cat.Type, What: "class size", Key: class.Strength.Key, Want: cat.ClassSize, Got: n}
		}
		if Score(n) > score {
			return cs, &RankPatternError{Type: cat.Type, What: "hands", Detail: "score counter exhausted"}
		}

		score -= Score(n)
		cs.Classes++
		cs.Hands += n

		if b.progress != nil && cs.Hands-reported >= progressStep {
			reported = cs.Hands
			b.progress(Progress{Type: cat.Type, Hands: cs.Hands, Total: cat.Total()})
		}
	}

	if cs.Classes != cat.Classes {
		return cs, &RankPatternError{Type: cat.Type, What: "classes", Want: cat.Classes, Got: cs.Classes}
	}
	if cs.Hands != cat.Total() {
		return cs, &RankPatternError{Type: cat.Type, What: "hands", Want: cat.Total(), Got: cs.Hands}
	}

	cs.EndScore = score
	if b.progress != nil {
		b.progress(Progress{Type: cat.Type, Hands: cs.Hands, Total: cat.Total(), Done: true})
	}
	return cs, nil
}

// finish checks the assembled table covers the deck exactly once.
func finish(records []Record, stats []CategoryStats) (*Table, error) {
	if len(records) != TotalHands {
		return nil, &RankPatternError{What: "table size", Want: TotalHands, Got: len(records)}
	}
	if last := stats[len(stats)-1]; last.EndScore != 0 {
		return nil, &RankPatternError{Type: last.Type, What: "final score", Want: 0, Got: int(last.EndScore)}
	}
	t := &Table{records: records, categories: stats}
	if err := t.checkCoverage(); err != nil {
		return nil, err
	}
	return t, nil
}
