// Package report renders tally results as styled text or JSON.
package report

import (
	"encoding/json"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lox/pokerhands/internal/fileutil"
	"github.com/lox/pokerhands/internal/tally"
	"github.com/lox/pokerhands/poker"
)

// Report is the serialisable summary of one tally run
type Report struct {
	RunID       string        `json:"runId"`
	Source      string        `json:"source"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Rounds      int           `json:"rounds"`
	Player1Wins int           `json:"player1Wins"`
	Player2Wins int           `json:"player2Wins"`
	Ties        int           `json:"ties"`
	Skipped     int           `json:"skipped"`
	Categories  []CategoryRow `json:"categories"`
	DurationMs  float64       `json:"durationMs"`
}

// CategoryRow counts how often each player held a category
type CategoryRow struct {
	Category string `json:"category"`
	Strength int    `json:"strength"`
	Player1  int    `json:"player1"`
	Player2  int    `json:"player2"`
}

// New builds a report from a tally result. Categories neither player held
// are left out; the rest are ordered strongest first.
func New(source string, res *tally.Result, generatedAt time.Time) *Report {
	rep := &Report{
		RunID:       uuid.NewString(),
		Source:      source,
		GeneratedAt: generatedAt.UTC(),
		Rounds:      res.Rounds,
		Player1Wins: res.Player1Wins,
		Player2Wins: res.Player2Wins,
		Ties:        res.Ties,
		Skipped:     res.Skipped,
		Categories:  []CategoryRow{},
		DurationMs:  float64(res.Duration) / float64(time.Millisecond),
	}

	for _, c := range slices.Backward(poker.Categories) {
		p1, p2 := res.Player1Categories[c], res.Player2Categories[c]
		if p1 == 0 && p2 == 0 {
			continue
		}
		rep.Categories = append(rep.Categories, CategoryRow{
			Category: c.String(),
			Strength: c.Strength(),
			Player1:  p1,
			Player2:  p2,
		})
	}

	return rep
}

// Share returns n as a percentage of the scored rounds
func (r *Report) Share(n int) float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(r.Rounds) * 100
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteJSONFile writes the report to filename atomically
func (r *Report) WriteJSONFile(filename string) error {
	return fileutil.WriteJSONAtomic(filename, r, os.FileMode(0o644))
}
