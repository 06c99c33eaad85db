package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokerhands/internal/report"
	"github.com/lox/pokerhands/poker"
)

// CompareCmd compares two hands and explains the result
type CompareCmd struct {
	Player1 string `arg:"" help:"Player 1 hand, e.g. '5H 5C 6S 7S KD'"`
	Player2 string `arg:"" help:"Player 2 hand, e.g. '2C 3S 8S 8D TD'"`
}

func (c *CompareCmd) Run(env *Env) error {
	p1, err := poker.ParseHandString(c.Player1)
	if err != nil {
		return fmt.Errorf("player 1: %w", err)
	}
	p2, err := poker.ParseHandString(c.Player2)
	if err != nil {
		return fmt.Errorf("player 2: %w", err)
	}

	env.Logger.Debug("Compared hands", "player1", p1, "player2", p2, "result", p1.Compare(p2))
	return report.NewTextRenderer(env.Stdout, env.Color).RenderComparison(p1, p2)
}

// ClassifyCmd prints the category of a single hand
type ClassifyCmd struct {
	Cards []string `arg:"" help:"Five cards, separately or as one quoted string"`
}

func (c *ClassifyCmd) Run(env *Env) error {
	hand, err := poker.ParseHandString(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	return report.NewTextRenderer(env.Stdout, env.Color).RenderHand(hand)
}
