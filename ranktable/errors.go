package ranktable

import (
	"errors"
	"fmt"

	"github.com/lox/handrank/poker"
)

var (
	// ErrInvalidRankPattern reports an enumerator that omitted, duplicated or
	// misplaced hands. It is a logic defect and aborts table construction.
	ErrInvalidRankPattern = errors.New("invalid rank pattern")

	// ErrHandNotFound is returned by lookups for a hand absent from the table.
	ErrHandNotFound = errors.New("hand not in table")

	// ErrCorruptTable reports a serialized table that fails to decode or verify.
	ErrCorruptTable = errors.New("corrupt table")
)

// RankPatternError describes an enumerator count that disagrees with its
// closed form.
type RankPatternError struct {
	Type   poker.HandType
	What   string // "class size", "classes", "hands", ...
	Key    poker.StrengthKey
	Want   int
	Got    int
	Detail string
}

func (e *RankPatternError) Error() string {
	msg := fmt.Sprintf("%v: %s: %s", ErrInvalidRankPattern, e.Type, e.What)
	if e.Key.Len() > 0 {
		msg += " " + e.Key.String()
	}
	if e.Detail != "" {
		return msg + ": " + e.Detail
	}
	return fmt.Sprintf("%s: want %d, got %d", msg, e.Want, e.Got)
}

func (e *RankPatternError) Unwrap() error {
	return ErrInvalidRankPattern
}
