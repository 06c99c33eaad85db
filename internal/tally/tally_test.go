package tally

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhands/poker"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestRunExampleRounds(t *testing.T) {
	t.Parallel()

	f, err := os.Open("testdata/example.txt")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	tallier := New(Options{Workers: 2, Logger: testLogger(), Clock: quartz.NewMock(t)})
	res, err := tallier.Run(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Rounds)
	assert.Equal(t, 3, res.Player1Wins)
	assert.Equal(t, 2, res.Player2Wins)
	assert.Equal(t, 0, res.Ties)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, time.Duration(0), res.Duration, "mock clock never advances")

	assert.Equal(t, map[poker.Category]int{
		poker.Pair:         2,
		poker.HighCard:     1,
		poker.ThreeOfAKind: 1,
		poker.FullHouse:    1,
	}, res.Player1Categories)
	assert.Equal(t, map[poker.Category]int{
		poker.Pair:      2,
		poker.HighCard:  1,
		poker.Flush:     1,
		poker.FullHouse: 1,
	}, res.Player2Categories)
}

func TestRunWorkerCountsAgree(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/example.txt")
	require.NoError(t, err)
	// Repeat the example so every worker gets several chunks
	input := strings.Repeat(string(data), 40)

	var results []*Result
	for _, workers := range []int{1, 3, 8, 500} {
		tallier := New(Options{Workers: workers, Logger: testLogger(), Clock: quartz.NewMock(t)})
		res, err := tallier.Run(context.Background(), strings.NewReader(input))
		require.NoError(t, err, "workers=%d", workers)
		results = append(results, res)
	}

	for _, res := range results {
		assert.Equal(t, 200, res.Rounds)
		assert.Equal(t, 120, res.Player1Wins)
		assert.Equal(t, results[0], res)
	}
}

func TestRunTies(t *testing.T) {
	t.Parallel()

	input := "5H 5C 6D 7S 8C 5D 5S 6C 7H 8D\n"
	res, err := New(Options{Logger: testLogger()}).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Ties)
	assert.Equal(t, 0, res.Player1Wins)
	assert.Equal(t, 0, res.Player2Wins)
}

func TestRunIgnoresBlankLines(t *testing.T) {
	t.Parallel()

	input := "\n  \n5H 5C 6S 7S KD 2C 3S 8S 8D TD\n\n"
	res, err := New(Options{Logger: testLogger()}).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, 1, res.Player2Wins)
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	res, err := New(Options{Logger: testLogger()}).Run(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rounds)
}

func TestRunInvalidLineFails(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"5H 5C 6S 7S KD 2C 3S 8S 8D TD",
		"5D 8C 9S JS AC 2C 5C 7D 8S",
		"5H 5C 6S 7S 1D 2C 3S 8S 8D TD",
	}, "\n")

	_, err := New(Options{Workers: 3, Logger: testLogger()}).Run(context.Background(), strings.NewReader(input))
	require.Error(t, err)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Line, "earliest invalid line is reported")
	assert.ErrorIs(t, err, ErrInvalidRound)
}

func TestRunSkipInvalid(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"5H 5C 6S 7S KD 2C 3S 8S 8D TD",
		"5D 8C 9S JS AC 2C 5C 7D 8S",
		"5H 5C 6S 7S 1D 2C 3S 8S 8D TD",
		"2H 2D 4C 4D 4S 3C 3D 3S 9S 9D",
	}, "\n")

	tallier := New(Options{SkipInvalid: true, Logger: testLogger()})
	res, err := tallier.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rounds)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 1, res.Player1Wins)
	assert.Equal(t, 1, res.Player2Wins)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Logger: testLogger()}).Run(ctx, strings.NewReader("5H 5C 6S 7S KD 2C 3S 8S 8D TD\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestRunReadError(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Logger: testLogger()}).Run(context.Background(), failingReader{})
	assert.ErrorContains(t, err, "disk on fire")
}
