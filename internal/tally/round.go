package tally

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokerhands/poker"
)

// ErrInvalidRound is returned when a line does not hold two five card hands
var ErrInvalidRound = errors.New("invalid round")

// Outcome is the result of one round between two players
type Outcome int

const (
	Tie Outcome = iota
	Player1
	Player2
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "tie"
	}
}

// Round is one line of input: a hand for each player
type Round struct {
	Line    int
	Player1 poker.Hand
	Player2 poker.Hand
}

// ParseRound parses ten whitespace separated card symbols, the first five
// belonging to player 1.
func ParseRound(line string) (Round, error) {
	symbols := strings.Fields(line)
	if len(symbols) != 2*poker.HandSize {
		return Round{}, fmt.Errorf("%w: got %d cards, want %d", ErrInvalidRound, len(symbols), 2*poker.HandSize)
	}

	p1, err := poker.ParseHand(symbols[:poker.HandSize])
	if err != nil {
		return Round{}, fmt.Errorf("%w: player 1: %w", ErrInvalidRound, err)
	}

	p2, err := poker.ParseHand(symbols[poker.HandSize:])
	if err != nil {
		return Round{}, fmt.Errorf("%w: player 2: %w", ErrInvalidRound, err)
	}

	return Round{Player1: p1, Player2: p2}, nil
}

// Outcome compares the two hands
func (r Round) Outcome() Outcome {
	switch r.Player1.Compare(r.Player2) {
	case 1:
		return Player1
	case -1:
		return Player2
	default:
		return Tie
	}
}
