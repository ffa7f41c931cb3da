package ranktable

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	chd "github.com/opencoff/go-chd"

	"github.com/lox/handrank/internal/randutil"
	"github.com/lox/handrank/poker"
)

// Scorer maps a five-card hand to its rank score.
type Scorer interface {
	Score(h poker.Hand) (Score, error)
}

// DefaultLoadFactor is the CHD load factor used when none is configured.
const DefaultLoadFactor = 0.9

// Index answers hand lookups against a built table in constant time using a
// CHD perfect hash over the hand bitmasks. The hash table is rounded up to a
// power of two (4,194,304 slots for a full table), so slots hold a 1-based
// offset into the dense record slice and zero marks an empty slot.
type Index struct {
	hash    *chd.Chd
	slots   []uint32
	records []Record
}

// IndexOption configures NewIndex.
type IndexOption func(*indexConfig)

type indexConfig struct {
	load   float64
	logger *log.Logger
}

// WithLoadFactor sets the CHD load factor, in (0, 1].
func WithLoadFactor(load float64) IndexOption {
	return func(c *indexConfig) {
		c.load = load
	}
}

// WithIndexLogger sets the logger used while freezing the hash.
func WithIndexLogger(logger *log.Logger) IndexOption {
	return func(c *indexConfig) {
		c.logger = logger.WithPrefix("index")
	}
}

// NewIndex builds a perfect-hash index over every record of t.
func NewIndex(t *Table, opts ...IndexOption) (*Index, error) {
	cfg := indexConfig{load: DefaultLoadFactor, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.load <= 0 || cfg.load > 1 {
		return nil, fmt.Errorf("load factor %v out of range (0, 1]", cfg.load)
	}

	b, err := chd.New()
	if err != nil {
		return nil, fmt.Errorf("create chd builder: %w", err)
	}
	for _, r := range t.records {
		if err := b.Add(mixKey(r.Hand)); err != nil {
			return nil, fmt.Errorf("add %s: %w", r.Hand, err)
		}
	}
	hash, err := b.Freeze(cfg.load)
	if err != nil {
		return nil, fmt.Errorf("freeze chd: %w", err)
	}

	size := hash.Len()
	idx := &Index{
		hash:    hash,
		slots:   make([]uint32, size),
		records: t.records,
	}
	for i, r := range t.records {
		slot := hash.Find(mixKey(r.Hand))
		if slot >= uint64(size) || idx.slots[slot] != 0 {
			return nil, fmt.Errorf("chd collision at slot %d for %s", slot, r.Hand)
		}
		idx.slots[slot] = uint32(i + 1)
	}

	cfg.logger.Debug("Index built", "hands", len(t.records), "slots", size, "load", cfg.load)
	return idx, nil
}

// Lookup returns the table record for h.
func (x *Index) Lookup(h poker.Hand) (Record, error) {
	if !h.Valid() {
		return Record{}, fmt.Errorf("%w: %d cards", poker.ErrInvalidHand, h.CountCards())
	}
	slot := x.hash.Find(mixKey(h))
	if slot >= uint64(len(x.slots)) || x.slots[slot] == 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrHandNotFound, h)
	}
	r := x.records[x.slots[slot]-1]
	if r.Hand != h {
		return Record{}, fmt.Errorf("%w: %s", ErrHandNotFound, h)
	}
	return r, nil
}

// Score returns the rank score of h.
func (x *Index) Score(h poker.Hand) (Score, error) {
	r, err := x.Lookup(h)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}

// Len returns the number of indexed hands.
func (x *Index) Len() int {
	return len(x.records)
}

// Slots returns the size of the underlying hash table.
func (x *Index) Slots() int {
	return len(x.slots)
}

// mixKey spreads the 52-bit card mask over all 64 bits; raw masks share long
// runs of zero bits.
func mixKey(h poker.Hand) uint64 {
	return randutil.Mix(uint64(h))
}
