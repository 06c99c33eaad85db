package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/pokerhands/internal/config"
	"github.com/lox/pokerhands/internal/report"
	"github.com/lox/pokerhands/internal/tally"
)

// CountCmd tallies a file of rounds
type CountCmd struct {
	File        string `arg:"" optional:"" help:"Rounds file, one round of ten cards per line ('-' for stdin)"`
	JSON        bool   `help:"Print the report as JSON"`
	Output      string `short:"o" type:"path" help:"Also write the JSON report to this file"`
	Workers     *int   `short:"w" help:"Concurrent evaluation workers (default: number of CPUs)"`
	SkipInvalid bool   `help:"Skip invalid lines instead of failing"`
}

func (c *CountCmd) Run(env *Env) error {
	cfg := env.Config

	path := c.File
	if path == "" {
		path = cfg.Input.Path
	}
	workers := cfg.Workers
	if c.Workers != nil {
		workers = *c.Workers
	}
	if workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", workers)
	}

	in, source, err := openInput(path, env.Stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	tallier := tally.New(tally.Options{
		Workers:     workers,
		SkipInvalid: c.SkipInvalid || cfg.SkipInvalid,
		Logger:      env.Logger,
		Clock:       env.Clock,
	})
	res, err := tallier.Run(env.Ctx, in)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	rep := report.New(source, res, env.Clock.Now())

	output := c.Output
	if output == "" {
		output = cfg.Report.File
	}
	if output != "" {
		if err := rep.WriteJSONFile(output); err != nil {
			return err
		}
		env.Logger.Info("Wrote report", "file", output, "runId", rep.RunID)
	}

	if c.JSON || cfg.Report.Format == config.FormatJSON {
		return rep.WriteJSON(env.Stdout)
	}
	return report.NewTextRenderer(env.Stdout, env.Color).Render(rep)
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open rounds file: %w", err)
	}
	return f, path, nil
}
