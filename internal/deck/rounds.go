package deck

import (
	"bufio"
	"io"
	"strings"

	"github.com/lox/pokerhands/poker"
)

// CardsPerRound is the number of cards dealt for one round: a hand per player
const CardsPerRound = 2 * poker.HandSize

// WriteRounds deals n rounds from d and writes them one per line in the
// rounds file format. The deck is reset and reshuffled before every round so
// cards never repeat within a line.
func WriteRounds(w io.Writer, d *Deck, n int) error {
	bw := bufio.NewWriter(w)
	symbols := make([]string, CardsPerRound)
	for range n {
		d.Reset()
		cards, _ := d.DealN(CardsPerRound)
		for i, c := range cards {
			symbols[i] = c.String()
		}
		if _, err := bw.WriteString(strings.Join(symbols, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
