package bot

import (
	"slices"

	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
)

// play is one row of the expert table
type play struct {
	target  int   // stand once the hand reaches this value
	doubles []int // opponent up-card values that make a double worthwhile
}

type tableKey struct {
	soft  bool
	value int
}

func upTo(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}

var expertTable = map[tableKey]play{
	{false, 8}:  {target: 17},
	{false, 9}:  {target: 17, doubles: upTo(3, 6)},
	{false, 10}: {target: 17, doubles: upTo(2, 9)},
	{false, 11}: {target: 17, doubles: upTo(2, 10)},
	{false, 12}: {target: 16},
	{false, 13}: {target: 16},
	{false, 14}: {target: 16},
	{false, 15}: {target: 16},
	{false, 16}: {target: 16},
	{false, 17}: {target: 17},
	{true, 13}:  {target: 18, doubles: upTo(5, 6)},
	{true, 14}:  {target: 18, doubles: upTo(5, 6)},
	{true, 15}:  {target: 18, doubles: upTo(4, 6)},
	{true, 16}:  {target: 18, doubles: upTo(4, 6)},
	{true, 17}:  {target: 18, doubles: upTo(3, 6)},
	{true, 18}:  {target: 18},
}

// Expert looks up a stand target keyed by soft/hard and value
type Expert struct {
	table map[tableKey]play
}

// NewExpert creates an Expert strategy
func NewExpert() *Expert {
	return &Expert{table: expertTable}
}

func (e *Expert) Name() string { return "Expert" }
func (e *Expert) Difficulty() string { return string(Hard) }

// Target returns the stand target for a hand and whether the table has an
// entry for it.
func (e *Expert) Target(soft bool, value int) (int, bool) {
	p, ok := e.table[tableKey{soft, value}]
	return p.target, ok
}

func (e *Expert) DecideHit(v game.HandView) bool {
	if target, ok := e.Target(v.Soft, v.Value); ok {
		return v.Value < target
	}
	return v.Value <= 16
}

// DecideDouble doubles when the opponent's up card is in the table row.
// With no up card known any row that lists doubles counts.
func (e *Expert) DecideDouble(v game.HandView) bool {
	p, ok := e.table[tableKey{v.Soft, v.Value}]
	if !ok || len(p.doubles) == 0 {
		return false
	}
	if v.OpponentUpCard == 0 {
		return true
	}
	return slices.Contains(p.doubles, v.OpponentUpCard)
}

func (e *Expert) DecideSplit(v game.HandView) bool {
	if !v.Pair {
		return false
	}
	switch v.PairRank {
	case deck.Ace, deck.Eight, deck.Nine:
		return true
	default:
		return v.PairRank.Value() == 10
	}
}
