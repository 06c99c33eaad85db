package poker

import (
	"fmt"
	"slices"
)

// Category is one of the nine standard poker hand classifications. Its
// numeric value is the category strength, so categories compare directly.
type Category uint8

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Categories lists every category from weakest to strongest
var Categories = []Category{
	HighCard,
	Pair,
	TwoPair,
	ThreeOfAKind,
	Straight,
	Flush,
	FullHouse,
	FourOfAKind,
	StraightFlush,
}

// String returns the category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "HIGH CARD"
	case Pair:
		return "PAIR"
	case TwoPair:
		return "TWO PAIR"
	case ThreeOfAKind:
		return "THREE OF A KIND"
	case Straight:
		return "STRAIGHT"
	case Flush:
		return "FLUSH"
	case FullHouse:
		return "FULL HOUSE"
	case FourOfAKind:
		return "FOUR OF A KIND"
	case StraightFlush:
		return "STRAIGHT FLUSH"
	default:
		return "UNKNOWN"
	}
}

// Strength returns the comparison rank of the category, 1 (HIGH CARD) to
// 9 (STRAIGHT FLUSH)
func (c Category) Strength() int {
	return int(c)
}

// shape is the multiset of per-value counts in a hand, sorted descending
type shape uint8

const (
	shapeDistinct  shape = iota // 1,1,1,1,1
	shapePair                   // 2,1,1,1
	shapeTwoPair                // 2,2,1
	shapeTrips                  // 3,1,1
	shapeFullHouse              // 3,2
	shapeQuads                  // 4,1
)

type straightness bool

const (
	noStraight straightness = false
	isStraight straightness = true
)

type flushness bool

const (
	noFlush flushness = false
	isFlush flushness = true
)

type classKey struct {
	shape    shape
	straight straightness
	flush    flushness
}

// categoryTable resolves every reachable combination of count shape, straight
// and flush. Paired shapes can never be straight or flush.
var categoryTable = map[classKey]Category{
	{shapeDistinct, isStraight, isFlush}:  StraightFlush,
	{shapeQuads, noStraight, noFlush}:     FourOfAKind,
	{shapeFullHouse, noStraight, noFlush}: FullHouse,
	{shapeDistinct, noStraight, isFlush}:  Flush,
	{shapeDistinct, isStraight, noFlush}:  Straight,
	{shapeTrips, noStraight, noFlush}:     ThreeOfAKind,
	{shapeTwoPair, noStraight, noFlush}:   TwoPair,
	{shapePair, noStraight, noFlush}:      Pair,
	{shapeDistinct, noStraight, noFlush}:  HighCard,
}

// shapeOf maps a descending count profile to its shape. It panics on a
// profile that five distinct cards cannot produce.
func shapeOf(profile []int) shape {
	switch {
	case slices.Equal(profile, []int{1, 1, 1, 1, 1}):
		return shapeDistinct
	case slices.Equal(profile, []int{2, 1, 1, 1}):
		return shapePair
	case slices.Equal(profile, []int{2, 2, 1}):
		return shapeTwoPair
	case slices.Equal(profile, []int{3, 1, 1}):
		return shapeTrips
	case slices.Equal(profile, []int{3, 2}):
		return shapeFullHouse
	case slices.Equal(profile, []int{4, 1}):
		return shapeQuads
	default:
		panic(fmt.Sprintf("poker: impossible count profile %v", profile))
	}
}

// classify resolves a category, panicking on a table miss since that can
// only mean the shape, straight or flush detection is wrong.
func classify(s shape, straight, flush bool) Category {
	key := classKey{shape: s, straight: straightness(straight), flush: flushness(flush)}
	category, ok := categoryTable[key]
	if !ok {
		panic(fmt.Sprintf("poker: no category for shape=%d straight=%t flush=%t", s, straight, flush))
	}
	return category
}
