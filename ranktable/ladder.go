package ranktable

import (
	"fmt"
	"slices"

	"github.com/lox/handrank/poker"
)

// Rung is one tie-class of the strength ladder.
type Rung struct {
	Strength poker.Strength
	Hands    int
	Score    Score
}

// Ladder scores hands without materialising the table: it holds one rung per
// tie-class, strongest first, and finds a classified hand's rung by binary
// search.
type Ladder struct {
	rungs []Rung
}

// NewLadder walks the category enumerators counting class sizes only.
func NewLadder() (*Ladder, error) {
	return newLadder(Categories())
}

func newLadder(categories []Category) (*Ladder, error) {
	var rungs []Rung
	counter := Score(TotalHands)
	for _, cat := range categories {
		classes := 0
		for class := range cat.TieClasses() {
			if class.Size() != cat.ClassSize {
				return nil, &RankPatternError{Type: cat.Type, What: "class size", Key: class.Strength.Key, Want: cat.ClassSize, Got: class.Size()}
			}
			if Score(class.Size()) > counter {
				return nil, &RankPatternError{Type: cat.Type, What: "hands", Detail: "score counter exhausted"}
			}
			if n := len(rungs); n > 0 && !rungs[n-1].Strength.Beats(class.Strength) {
				return nil, &RankPatternError{Type: cat.Type, What: "order", Key: class.Strength.Key,
					Detail: fmt.Sprintf("%s does not follow %s", class.Strength, rungs[n-1].Strength)}
			}
			rungs = append(rungs, Rung{Strength: class.Strength, Hands: class.Size(), Score: counter})
			counter -= Score(class.Size())
			classes++
		}
		if classes != cat.Classes {
			return nil, &RankPatternError{Type: cat.Type, What: "classes", Want: cat.Classes, Got: classes}
		}
	}
	if counter != 0 {
		return nil, &RankPatternError{What: "final score", Want: 0, Got: int(counter)}
	}
	return &Ladder{rungs: rungs}, nil
}

// Len returns the number of distinct strengths.
func (l *Ladder) Len() int {
	return len(l.rungs)
}

// Rungs returns a copy of the ladder, strongest first.
func (l *Ladder) Rungs() []Rung {
	return slices.Clone(l.rungs)
}

// Rung finds the rung for a strength.
func (l *Ladder) Rung(s poker.Strength) (Rung, bool) {
	i, ok := slices.BinarySearchFunc(l.rungs, s, func(r Rung, target poker.Strength) int {
		return target.Compare(r.Strength)
	})
	if !ok {
		return Rung{}, false
	}
	return l.rungs[i], true
}

// Score classifies h and returns its rank score.
func (l *Ladder) Score(h poker.Hand) (Score, error) {
	s, err := poker.Classify(h)
	if err != nil {
		return 0, err
	}
	r, ok := l.Rung(s)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrHandNotFound, s)
	}
	return r.Score, nil
}
