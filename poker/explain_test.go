package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplain(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{
			name: "different categories",
			a:    "2D 9C AS AH AC",
			b:    "3D 6D 7D TD QD",
			want: "FLUSH beats THREE OF A KIND",
		},
		{
			name: "higher pair",
			a:    "5H 5C 6S 7S KD",
			b:    "2C 3S 8S 8D TD",
			want: "PAIR of 8 beats PAIR of 5",
		},
		{
			name: "pair kicker",
			a:    "4D 6S 9H QH QC",
			b:    "3D 6D 7H QD QS",
			want: "PAIR of Q beats PAIR of Q with higher kicker (9 vs 7)",
		},
		{
			name: "high card second card",
			a:    "AC JS 9S 8C 5D",
			b:    "AD TS 9H 8D 5C",
			want: "HIGH CARD to A beats HIGH CARD to A with higher card (J vs T)",
		},
		{
			name: "two pair second pair",
			a:    "KC KS 8C 8S AH",
			b:    "KH KD 9C 9S 2H",
			want: "TWO PAIR of K beats TWO PAIR of K with higher second pair (9 vs 8)",
		},
		{
			name: "full house pair",
			a:    "4C 4D 4S 2H 2D",
			b:    "4H 4C 4D 3S 3D",
			want: "FULL HOUSE of 4 beats FULL HOUSE of 4 with higher pair (3 vs 2)",
		},
		{
			name: "straight high card",
			a:    "AH 2D 3C 4S 5H",
			b:    "2C 3D 4H 5S 6C",
			want: "STRAIGHT to 6 beats STRAIGHT to 5",
		},
		{
			name: "tie",
			a:    "5H 5C 6D 7S 8C",
			b:    "5D 5S 6C 7H 8D",
			want: "PAIR ties PAIR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Explain(MustParseHand(tt.a), MustParseHand(tt.b)))
		})
	}
}
