// Package deck deals poker cards from a seeded, shuffled 52-card deck.
package deck

import (
	rand "math/rand/v2"

	"github.com/lox/pokerhands/poker"
)

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a deck of playing cards
type Deck struct {
	cards []poker.Card
	rng   *rand.Rand
}

// NewDeck creates a full, unshuffled deck drawing randomness from rng
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]poker.Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for _, suit := range []poker.Suit{poker.Hearts, poker.Spades, poker.Diamonds, poker.Clubs} {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			d.cards = append(d.cards, poker.NewCard(rank, suit))
		}
	}
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DealN removes and returns n cards from the top of the deck. It returns
// false when fewer than n cards remain.
func (d *Deck) DealN(n int) ([]poker.Card, bool) {
	if n > len(d.cards) {
		return nil, false
	}
	cards := make([]poker.Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, true
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Reset restores the deck to all 52 cards and shuffles it
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}
