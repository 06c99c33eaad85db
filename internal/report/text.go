package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokerhands/poker"
)

// TextRenderer writes reports and hand evaluations as aligned, styled text
type TextRenderer struct {
	out io.Writer

	headerStyle   lipgloss.Style
	handStyle     lipgloss.Style
	winStyle      lipgloss.Style
	tieStyle      lipgloss.Style
	categoryStyle lipgloss.Style
	countStyle    lipgloss.Style
}

// NewTextRenderer creates a renderer for w. With color disabled no escape
// sequences are written regardless of the terminal.
func NewTextRenderer(w io.Writer, color bool) *TextRenderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &TextRenderer{
		out:           w,
		headerStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		handStyle:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		winStyle:      r.NewStyle().Foreground(lipgloss.Color("10")),
		tieStyle:      r.NewStyle().Foreground(lipgloss.Color("11")),
		categoryStyle: r.NewStyle().Foreground(lipgloss.Color("12")),
		countStyle:    r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Render writes the summary of a tally run
func (t *TextRenderer) Render(rep *Report) error {
	fmt.Fprintf(t.out, "%s %s\n\n",
		t.headerStyle.Render("player 1 wins:"),
		t.winStyle.Render(fmt.Sprintf("%d", rep.Player1Wins)))

	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		t.headerStyle.Render("result"),
		t.headerStyle.Render("rounds"),
		t.headerStyle.Render("share"))
	rows := []struct {
		label string
		n     int
		style lipgloss.Style
	}{
		{"player 1", rep.Player1Wins, t.winStyle},
		{"player 2", rep.Player2Wins, t.winStyle},
		{"tie", rep.Ties, t.tieStyle},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			t.handStyle.Render(row.label),
			row.style.Render(fmt.Sprintf("%d", row.n)),
			row.style.Render(fmt.Sprintf("%.1f%%", rep.Share(row.n))))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(rep.Categories) > 0 {
		fmt.Fprintln(t.out)
		w = tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			t.categoryStyle.Render("category"),
			t.handStyle.Render("player 1"),
			t.handStyle.Render("player 2"))
		for _, row := range rep.Categories {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				t.categoryStyle.Render(row.Category),
				t.countStyle.Render(countOrDot(row.Player1)),
				t.countStyle.Render(countOrDot(row.Player2)))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(t.out)
	if rep.Skipped > 0 {
		fmt.Fprintf(t.out, "%d rounds in %v (%d invalid lines skipped)\n",
			rep.Rounds, durationOf(rep), rep.Skipped)
	} else {
		fmt.Fprintf(t.out, "%d rounds in %v\n", rep.Rounds, durationOf(rep))
	}
	return nil
}

// RenderHand writes a single evaluated hand
func (t *TextRenderer) RenderHand(h poker.Hand) error {
	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", t.headerStyle.Render("cards"), t.handStyle.Render(formatCards(h.Cards())))
	fmt.Fprintf(w, "%s\t%s\n", t.headerStyle.Render("category"), t.categoryStyle.Render(h.Category().String()))
	fmt.Fprintf(w, "%s\t%s\n", t.headerStyle.Render("strength"), t.countStyle.Render(fmt.Sprintf("%d", h.Strength())))
	return w.Flush()
}

// RenderComparison writes both hands side by side and the verdict
func (t *TextRenderer) RenderComparison(p1, p2 poker.Hand) error {
	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		t.headerStyle.Render("player"),
		t.headerStyle.Render("cards"),
		t.headerStyle.Render("category"))
	for i, h := range []poker.Hand{p1, p2} {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			t.handStyle.Render(fmt.Sprintf("player %d", i+1)),
			t.handStyle.Render(formatCards(h.Cards())),
			t.categoryStyle.Render(h.Category().String()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	var verdict string
	switch p1.Compare(p2) {
	case 1:
		verdict = t.winStyle.Render("player 1 wins")
	case -1:
		verdict = t.winStyle.Render("player 2 wins")
	default:
		verdict = t.tieStyle.Render("tie")
	}
	_, err := fmt.Fprintf(t.out, "\n%s: %s\n", verdict, poker.Explain(p1, p2))
	return err
}

func formatCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func countOrDot(n int) string {
	if n == 0 {
		return "."
	}
	return fmt.Sprintf("%d", n)
}

func durationOf(rep *Report) time.Duration {
	d := time.Duration(rep.DurationMs * float64(time.Millisecond))
	return d.Truncate(time.Millisecond)
}
