package poker

import "fmt"

// Explain describes the result of comparing a with b in one line, e.g.
// "FLUSH beats THREE OF A KIND" or "PAIR of 8 beats PAIR of 5".
func Explain(a, b Hand) string {
	result := a.Compare(b)
	if result == 0 {
		return fmt.Sprintf("%s ties %s", a.category, b.category)
	}

	winner, loser := a, b
	if result < 0 {
		winner, loser = b, a
	}

	if winner.category != loser.category {
		return fmt.Sprintf("%s beats %s", winner.category, loser.category)
	}

	// Same category: find the first tie-break position that differs
	for i := range winner.values {
		if winner.values[i] == loser.values[i] {
			continue
		}
		if i == 0 {
			return fmt.Sprintf("%s beats %s", describeLead(winner), describeLead(loser))
		}
		return fmt.Sprintf("%s beats %s with higher %s (%s vs %s)",
			describeLead(winner), describeLead(loser), tieBreakLabel(winner.category, i),
			winner.cards[i].Rank, loser.cards[i].Rank)
	}

	// unreachable: differing hands always differ at some position
	return fmt.Sprintf("%s beats %s", winner, loser)
}

// describeLead names the category with its leading rank, e.g. "PAIR of 8"
// or "STRAIGHT to 5".
func describeLead(h Hand) string {
	lead := h.cards[0].Rank
	switch h.category {
	case Straight, StraightFlush, Flush, HighCard:
		return fmt.Sprintf("%s to %s", h.category, lead)
	default:
		return fmt.Sprintf("%s of %s", h.category, lead)
	}
}

// tieBreakLabel names the card group at position i of a tie-break sequence
func tieBreakLabel(category Category, i int) string {
	switch category {
	case TwoPair:
		if i < 4 {
			return "second pair"
		}
	case FullHouse:
		if i >= 3 {
			return "pair"
		}
	case Straight, StraightFlush, Flush, HighCard:
		return "card"
	}
	return "kicker"
}
