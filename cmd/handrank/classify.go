package main

import (
	"fmt"
	"strings"

	"github.com/lox/handrank/poker"
)

// ClassifyCmd prints a hand's category and tie-break key.
type ClassifyCmd struct {
	Cards []string `arg:"" help:"Five cards, e.g. As Ks Qs Js Ts"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	h, err := poker.ParseHand(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	s, err := poker.Classify(h)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stdout(), "%s  %s %s\n", renderHand(h), handTypeStyle.Render(s.Type.String()), s.Key)
	return nil
}
