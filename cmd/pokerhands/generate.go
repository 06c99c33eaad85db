package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/pokerhands/internal/deck"
	"github.com/lox/pokerhands/internal/randutil"
)

// GenerateCmd deals random rounds in the rounds file format
type GenerateCmd struct {
	Rounds int    `short:"n" default:"1000" help:"Number of rounds to deal"`
	Seed   *int64 `help:"Deterministic RNG seed (optional)"`
	Output string `short:"o" type:"path" help:"Write rounds to this file instead of stdout"`
}

func (c *GenerateCmd) Run(env *Env) error {
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative: %d", c.Rounds)
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		env.Logger.Debug("Using deterministic seed", "seed", seed)
	} else {
		seed = env.Clock.Now().UnixNano()
		env.Logger.Debug("Using random seed", "seed", seed)
	}
	d := deck.NewDeck(randutil.New(seed))

	if c.Output == "" {
		return writeRounds(env.Stdout, d, c.Rounds)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create rounds file: %w", err)
	}
	if err := writeRounds(f, d, c.Rounds); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close rounds file: %w", err)
	}
	env.Logger.Info("Wrote rounds", "file", c.Output, "rounds", c.Rounds, "seed", seed)
	return nil
}

func writeRounds(w io.Writer, d *deck.Deck, n int) error {
	if err := deck.WriteRounds(w, d, n); err != nil {
		return fmt.Errorf("failed to write rounds: %w", err)
	}
	return nil
}
