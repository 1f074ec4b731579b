package cards

import (
	"encoding/binary"
	"fmt"
	"os"
)

// LookupTableEntries is the exact entry count of the two-plus-two jump
// table: 32,487,834 signed 32-bit integers.
const LookupTableEntries = 32_487_834

// LookupTableBytes is the exact on-disk size of the table file.
const LookupTableBytes = LookupTableEntries * 4

// rank-band cutoffs separating the nine hand categories in lookup-table
// rank space (see Evaluator.categoryOf).
var rankBandCutoffs = [8]int32{1276, 4136, 4994, 5852, 5862, 7139, 7295, 7451}

// Evaluator scores 5/6/7-card hands. With a loaded lookup table it walks the
// two-plus-two jump table; without one it falls back to brute-force C(7,5)
// evaluation so the rest of the engine is exercisable without the table
// asset. The table, once loaded, is treated as immutable and is safe for
// concurrent read access by any number of goroutines.
type Evaluator struct {
	table []int32
}

// NewEvaluator returns an Evaluator with no table loaded (brute-force only).
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// LoadLookupTable reads a two-plus-two jump table from path and returns an
// Evaluator backed by it. Fails with a wrapped error if the file is missing
// or its size doesn't match LookupTableBytes exactly.
func LoadLookupTable(path string) (*Evaluator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("cards: lookup table not found at %q: %w", path, ErrLookupTableNotFound)
		}
		return nil, fmt.Errorf("cards: reading lookup table %q: %w", path, err)
	}
	if len(data) != LookupTableBytes {
		return nil, fmt.Errorf("cards: lookup table %q has %d bytes, want %d: %w", path, len(data), LookupTableBytes, ErrUnexpectedEOF)
	}

	table := make([]int32, LookupTableEntries)
	for i := range table {
		table[i] = int32(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
	}
	return &Evaluator{table: table}, nil
}

// HasTable reports whether e is backed by a loaded lookup table.
func (e *Evaluator) HasTable() bool {
	return e.table != nil
}

// Rank7 scores a 7-card hand, returning a lookup-table rank where higher is
// better. Requires a loaded table; see Evaluate for the table-free path.
func (e *Evaluator) Rank7(c [7]Card) int32 {
	t := e.table
	r := t[53+int32(c[0].BitMask()&0xFF)]
	r = t[r+int32(c[1].BitMask()&0xFF)+1]
	r = t[r+int32(c[2].BitMask()&0xFF)+1]
	r = t[r+int32(c[3].BitMask()&0xFF)+1]
	r = t[r+int32(c[4].BitMask()&0xFF)+1]
	r = t[r+int32(c[5].BitMask()&0xFF)+1]
	r = t[r+int32(c[6].BitMask()&0xFF)+1]
	return r
}

// Rank5 scores a 5-card hand via the table, chaining through the extra
// indirection 5/6-card evaluations require.
func (e *Evaluator) Rank5(c [5]Card) int32 {
	t := e.table
	r := t[53+int32(c[0].BitMask()&0xFF)]
	r = t[r+int32(c[1].BitMask()&0xFF)+1]
	r = t[r+int32(c[2].BitMask()&0xFF)+1]
	r = t[r+int32(c[3].BitMask()&0xFF)+1]
	r = t[r+int32(c[4].BitMask()&0xFF)+1]
	return t[r]
}

// Rank6 scores a 6-card hand via the table.
func (e *Evaluator) Rank6(c [6]Card) int32 {
	t := e.table
	r := t[53+int32(c[0].BitMask()&0xFF)]
	r = t[r+int32(c[1].BitMask()&0xFF)+1]
	r = t[r+int32(c[2].BitMask()&0xFF)+1]
	r = t[r+int32(c[3].BitMask()&0xFF)+1]
	r = t[r+int32(c[4].BitMask()&0xFF)+1]
	r = t[r+int32(c[5].BitMask()&0xFF)+1]
	return t[r]
}

// Evaluate returns the HandValue of the best 5-card hand within a 7-card
// hand. If a lookup table is loaded it is used; otherwise this falls back
// to the brute-force C(7,5) evaluation.
func (e *Evaluator) Evaluate(hand []Card) HandValue {
	if !e.HasTable() {
		var c [7]Card
		copy(c[:], hand)
		return evaluateBruteForce(c[:])
	}
	var c [7]Card
	copy(c[:], hand)
	rank := e.Rank7(c)
	return handValueFromTableRank(rank)
}

// RankCategory decodes a lookup-table rank into its HandRank category using
// the fixed rank-band cutoffs.
func RankCategory(tableRank int32) HandRank {
	switch {
	case tableRank > rankBandCutoffs[7]:
		return StraightFlush
	case tableRank > rankBandCutoffs[6]:
		return FourOfAKind
	case tableRank > rankBandCutoffs[5]:
		return FullHouse
	case tableRank > rankBandCutoffs[4]:
		return Flush
	case tableRank > rankBandCutoffs[3]:
		return Straight
	case tableRank > rankBandCutoffs[2]:
		return ThreeOfAKind
	case tableRank > rankBandCutoffs[1]:
		return TwoPair
	case tableRank > rankBandCutoffs[0]:
		return OnePair
	default:
		return HighCard
	}
}

// handValueFromTableRank builds a HandValue whose Rank is the decoded
// category and whose Values carries the raw table rank as the sole
// tiebreaker, which is sufficient since the table already totally orders
// hands within a category.
func handValueFromTableRank(tableRank int32) HandValue {
	return HandValue{
		Rank:   RankCategory(tableRank),
		Values: [5]Rank{Rank((tableRank >> 8) & 0xFF), Rank(tableRank & 0xFF), 0, 0, 0},
	}
}

// defaultEvaluator is the package-level brute-force fallback used by the
// free function Evaluate, kept for callers (equity, tree-building helpers)
// that don't manage their own Evaluator lifecycle.
var defaultEvaluator = NewEvaluator()

// Evaluate returns the best possible 5-card hand from 7 cards using the
// package default (table-free) evaluator. Callers that have loaded a
// lookup table should prefer (*Evaluator).Evaluate for the O(1) path.
func Evaluate(cards []Card) HandValue {
	return defaultEvaluator.Evaluate(cards)
}
