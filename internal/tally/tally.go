// Package tally plays rounds of two five card hands read from text input
// and counts how often each player wins.
package tally

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerhands/poker"
)

// LineError reports an invalid round together with its 1-based line number
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Result holds the aggregated outcome of a run
type Result struct {
	Rounds      int
	Player1Wins int
	Player2Wins int
	Ties        int
	Skipped     int

	// Category histograms for each player's hands
	Player1Categories map[poker.Category]int
	Player2Categories map[poker.Category]int

	Duration time.Duration
}

// Options configures a Tallier
type Options struct {
	// Workers bounds concurrent evaluation (0 means GOMAXPROCS)
	Workers int

	// SkipInvalid logs and counts invalid lines instead of failing the run
	SkipInvalid bool

	Logger *log.Logger
	Clock  quartz.Clock
}

// Tallier evaluates rounds and accumulates wins
type Tallier struct {
	workers     int
	skipInvalid bool
	logger      *log.Logger
	clock       quartz.Clock
}

// New creates a Tallier, filling in defaults for unset options
func New(opts Options) *Tallier {
	t := &Tallier{
		workers:     opts.Workers,
		skipInvalid: opts.SkipInvalid,
		logger:      opts.Logger,
		clock:       opts.Clock,
	}
	if t.workers <= 0 {
		t.workers = runtime.GOMAXPROCS(0)
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	t.logger = t.logger.WithPrefix("tally")
	if t.clock == nil {
		t.clock = quartz.NewReal()
	}
	return t
}

type inputLine struct {
	num  int
	text string
}

type evaluated struct {
	round   Round
	outcome Outcome
	err     error
}

// Run reads one round per line from r and tallies the outcomes. Blank lines
// are ignored. Unless SkipInvalid is set the first invalid line (by line
// number) fails the run.
func (t *Tallier) Run(ctx context.Context, r io.Reader) (*Result, error) {
	start := t.clock.Now()

	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("Read input", "rounds", len(lines), "workers", t.workers)

	results := make([]evaluated, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers)

	chunk := (len(lines) + t.workers - 1) / t.workers
	for lo := 0; lo < len(lines); lo += chunk {
		hi := min(lo+chunk, len(lines))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = evaluate(lines[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Player1Categories: make(map[poker.Category]int),
		Player2Categories: make(map[poker.Category]int),
	}
	for _, e := range results {
		if e.err != nil {
			if !t.skipInvalid {
				return nil, e.err
			}
			t.logger.Warn("Skipping invalid round", "error", e.err)
			res.Skipped++
			continue
		}

		res.Rounds++
		res.Player1Categories[e.round.Player1.Category()]++
		res.Player2Categories[e.round.Player2.Category()]++

		switch e.outcome {
		case Player1:
			res.Player1Wins++
		case Player2:
			res.Player2Wins++
		default:
			res.Ties++
		}
	}

	res.Duration = t.clock.Since(start)
	t.logger.Debug("Tally complete",
		"rounds", res.Rounds,
		"player1", res.Player1Wins,
		"player2", res.Player2Wins,
		"ties", res.Ties,
		"skipped", res.Skipped,
		"duration", res.Duration)

	return res, nil
}

func evaluate(line inputLine) evaluated {
	round, err := ParseRound(line.text)
	if err != nil {
		return evaluated{err: &LineError{Line: line.num, Err: err}}
	}
	round.Line = line.num
	return evaluated{round: round, outcome: round.Outcome()}
}

func readLines(r io.Reader) ([]inputLine, error) {
	var lines []inputLine
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, inputLine{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
