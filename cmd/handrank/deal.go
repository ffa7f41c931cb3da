package main

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/handrank/internal/randutil"
	"github.com/lox/handrank/poker"
	"github.com/lox/handrank/ranktable"
)

// DealCmd deals random hands from a shuffled deck and ranks them.
type DealCmd struct {
	Hands int    `short:"n" default:"2" help:"Number of five-card hands to deal (1-10)"`
	Seed  *int64 `help:"Shuffle seed for a reproducible deal"`
}

func (c *DealCmd) Run(g *Globals) error {
	maxHands := poker.NumCards / poker.HandSize
	if c.Hands < 1 || c.Hands > maxHands {
		return fmt.Errorf("hands must be between 1 and %d, got %d", maxHands, c.Hands)
	}

	var rng *rand.Rand
	if c.Seed != nil {
		rng = randutil.New(*c.Seed)
	}
	deck := poker.NewDeck(rng)
	deck.Shuffle()

	ladder, err := ranktable.NewLadder()
	if err != nil {
		return err
	}

	hands := make([]poker.Hand, c.Hands)
	best := 0
	for i := range hands {
		cards := deck.Deal(poker.HandSize)
		s, err := poker.Evaluate(cards...)
		if err != nil {
			return err
		}
		if hands[i], err = poker.NewHand(cards...); err != nil {
			return err
		}
		score, err := ladder.Score(hands[i])
		if err != nil {
			return err
		}
		fmt.Fprintf(g.stdout(), "%2d  %s  %s %s  %s\n", i+1, renderHand(hands[i]),
			handTypeStyle.Render(s.Type.String()), s.Key, scoreStyle.Render(fmt.Sprint(score)))

		if cmp, err := poker.Compare(hands[i], hands[best]); err != nil {
			return err
		} else if cmp > 0 {
			best = i
		}
	}

	for i, h := range hands {
		cmp, err := poker.Compare(h, hands[best])
		if err != nil {
			return err
		}
		if cmp == 0 {
			fmt.Fprintln(g.stdout(), successStyle.Render("Winner:"), fmt.Sprintf("hand %d", i+1))
		}
	}
	return nil
}
