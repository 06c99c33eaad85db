package poker

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// HandSize is the number of cards in an evaluated hand
const HandSize = 5

var (
	// ErrInvalidHandSize is returned when a hand does not hold exactly five cards
	ErrInvalidHandSize = errors.New("invalid hand size")

	// ErrDuplicateCard is returned when a hand holds the same card twice
	ErrDuplicateCard = errors.New("duplicate card in hand")
)

// wheelValues is the descending value sequence of A-5-4-3-2 before the Ace
// is demoted.
var wheelValues = [HandSize]int{13, 4, 3, 2, 1}

// Hand is an evaluated five card poker hand. The zero value is not a valid
// hand; use ParseHand or NewHand.
type Hand struct {
	// cards in tie-break order: grouped by multiplicity, then value, with
	// the Ace moved last in an A-2-3-4-5 straight
	cards    [HandSize]Card
	values   [HandSize]int
	category Category
}

// ParseHand parses five card symbols and evaluates them
func ParseHand(symbols []string) (Hand, error) {
	if len(symbols) != HandSize {
		return Hand{}, fmt.Errorf("%w: got %d cards, want %d", ErrInvalidHandSize, len(symbols), HandSize)
	}

	cards := make([]Card, len(symbols))
	for i, symbol := range symbols {
		card, err := ParseCard(symbol)
		if err != nil {
			return Hand{}, err
		}
		cards[i] = card
	}

	return NewHand(cards)
}

// ParseHandString parses a whitespace separated hand such as "5H 5C 6S 7S KD"
func ParseHandString(s string) (Hand, error) {
	return ParseHand(strings.Fields(s))
}

// MustParseHand parses a hand and panics on error (for tests)
func MustParseHand(s string) Hand {
	hand, err := ParseHandString(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hand '%s': %v", s, err))
	}
	return hand
}

// NewHand evaluates five cards
func NewHand(cards []Card) (Hand, error) {
	if len(cards) != HandSize {
		return Hand{}, fmt.Errorf("%w: got %d cards, want %d", ErrInvalidHandSize, len(cards), HandSize)
	}

	var h Hand
	copy(h.cards[:], cards)

	for i := 1; i < HandSize; i++ {
		if slices.Contains(h.cards[:i], h.cards[i]) {
			return Hand{}, fmt.Errorf("%w: %s", ErrDuplicateCard, h.cards[i])
		}
	}

	var counts [len(rankOrder)]int
	for _, c := range h.cards {
		counts[c.Rank]++
	}

	// Group equal ranks together, larger groups and higher ranks first
	slices.SortStableFunc(h.cards[:], func(a, b Card) int {
		if c := cmp.Compare(counts[b.Rank], counts[a.Rank]); c != 0 {
			return c
		}
		return b.Compare(a)
	})

	for i, c := range h.cards {
		h.values[i] = c.Value()
	}

	// A-2-3-4-5 plays as a five-high straight: the Ace counts as zero and
	// drops to the end of the tie-break order.
	if h.values == wheelValues {
		ace := h.cards[0]
		copy(h.cards[:], h.cards[1:])
		h.cards[HandSize-1] = ace
		h.values = [HandSize]int{4, 3, 2, 1, 0}
	}

	profile := make([]int, 0, HandSize)
	for _, n := range counts {
		if n > 0 {
			profile = append(profile, n)
		}
	}
	slices.Sort(profile)
	slices.Reverse(profile)

	h.category = classify(shapeOf(profile), isSequential(h.values), isSameSuit(h.cards))
	return h, nil
}

// isSequential reports whether each value is exactly one below the previous
func isSequential(values [HandSize]int) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1]-values[i] != 1 {
			return false
		}
	}
	return true
}

func isSameSuit(cards [HandSize]Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// Category returns the hand classification
func (h Hand) Category() Category {
	return h.category
}

// Strength returns the category strength, 1 (HIGH CARD) to 9 (STRAIGHT FLUSH)
func (h Hand) Strength() int {
	return h.category.Strength()
}

// Cards returns the cards in tie-break order
func (h Hand) Cards() []Card {
	return slices.Clone(h.cards[:])
}

// Values returns the card values in tie-break order. The Ace of an
// A-2-3-4-5 straight is reported as 0.
func (h Hand) Values() []int {
	return slices.Clone(h.values[:])
}

// Compare returns -1 if h is weaker than other, 0 if they tie and 1 if h is
// stronger. Category strength is compared first, then the tie-break values
// position by position. Suits never matter.
func (h Hand) Compare(other Hand) int {
	if c := cmp.Compare(h.category, other.category); c != 0 {
		return c
	}
	return slices.Compare(h.values[:], other.values[:])
}

// Beats reports whether h is strictly stronger than other
func (h Hand) Beats(other Hand) bool {
	return h.Compare(other) > 0
}

// Equal reports whether both hands have the same strength and values
func (h Hand) Equal(other Hand) bool {
	return h.Compare(other) == 0
}

// String returns the category and cards, e.g. "PAIR [5H 5C KD 7S 6S]"
func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s [%s]", h.category, strings.Join(parts, " "))
}
