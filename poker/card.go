package poker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCardFormat is returned when a card symbol is not <rank><suit>
var ErrInvalidCardFormat = errors.New("invalid card format")

// rankOrder lists rank tokens from lowest to highest. A card's value is its
// index in this string plus one, so 2 is 1 and A is 13.
const rankOrder = "23456789TJQKA"

// Suit represents a card suit
type Suit uint8

const (
	Hearts Suit = iota
	Spades
	Diamonds
	Clubs
)

// String returns the single letter used in card symbols
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "H"
	case Spades:
		return "S"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Name returns the full suit name (e.g. "Hearts")
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	default:
		return "Unknown"
	}
}

// Rank is the face of a card, 0 for Two through 12 for Ace
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank token (e.g. "T" for Ten)
func (r Rank) String() string {
	if int(r) >= len(rankOrder) {
		return "?"
	}
	return rankOrder[r : r+1]
}

// Value returns the ordering value of the rank: 1 for Two through 13 for Ace
func (r Rank) Value() int {
	return int(r) + 1
}

// Card is a single playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from a rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Value returns the numeric value used for ordering (1..13)
func (c Card) Value() int {
	return c.Rank.Value()
}

// String returns the card symbol, e.g. "TH"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Name returns a readable description, e.g. "T of Hearts"
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit.Name())
}

// Compare orders cards by value only. Suits never break ties.
func (c Card) Compare(other Card) int {
	switch {
	case c.Rank < other.Rank:
		return -1
	case c.Rank > other.Rank:
		return 1
	default:
		return 0
	}
}

// ParseCard parses a symbol such as "5H", "TD" or "10C".
// Rank tokens are 2-9, T (or 10), J, Q, K and A; suits are H, S, D and C.
// Letters are accepted in either case.
func ParseCard(symbol string) (Card, error) {
	if len(symbol) < 2 || len(symbol) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCardFormat, symbol)
	}

	rankToken := symbol[:len(symbol)-1]
	suitChar := symbol[len(symbol)-1]

	rank, err := parseRank(rankToken)
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrInvalidCardFormat, symbol, err)
	}

	suit, err := parseSuit(suitChar)
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrInvalidCardFormat, symbol, err)
	}

	return NewCard(rank, suit), nil
}

// MustParseCard parses a card and panics on error (for tests)
func MustParseCard(symbol string) Card {
	card, err := ParseCard(symbol)
	if err != nil {
		panic(fmt.Sprintf("failed to parse card '%s': %v", symbol, err))
	}
	return card
}

// ParseCards parses whitespace separated card symbols
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func parseRank(token string) (Rank, error) {
	if token == "10" {
		return Ten, nil
	}
	if len(token) != 1 {
		return 0, fmt.Errorf("unknown rank '%s'", token)
	}
	idx := strings.IndexByte(rankOrder, upper(token[0]))
	if idx < 0 {
		return 0, fmt.Errorf("unknown rank '%s'", token)
	}
	return Rank(idx), nil
}

func parseSuit(c byte) (Suit, error) {
	switch upper(c) {
	case 'H':
		return Hearts, nil
	case 'S':
		return Spades, nil
	case 'D':
		return Diamonds, nil
	case 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
