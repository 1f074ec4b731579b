package notation

import "github.com/behrlich/poker-solver/pkg/cards"

// Range is the 1326-entry weighted hand-grid: a weight in [0,1] for every
// unordered hole-card pair, indexed by cards.Hand.Index.
type Range struct {
	weights [1326]float64
}

// NewRange builds a Range from parsed weighted combos, taking the last
// weight seen for any hand named more than once.
func NewRange(combos []WeightedCombo) Range {
	var r Range
	for _, wc := range combos {
		h, err := cards.NewHand(wc.Combo.Card1, wc.Combo.Card2)
		if err != nil {
			continue
		}
		r.weights[h.Index()] = wc.Weight
	}
	return r
}

// Weight returns h's weight in the range (0 if h was never named).
func (r Range) Weight(h cards.Hand) float64 {
	return r.weights[h.Index()]
}

// SuitIsomorphistic reports whether swapping suits s1 and s2 across every
// card leaves every hand's weight unchanged. The postflop tree builder does
// not call it: pkg/postflop expands one chance child per card and does not
// merge isomorphic runouts.
func (r Range) SuitIsomorphistic(s1, s2 cards.Suit) bool {
	if s1 == s2 {
		return true
	}
	for idx := 0; idx < 1326; idx++ {
		h := cards.HandFromIndex(idx)
		swapped, err := cards.NewHand(h.Lo.SwapSuit(s1, s2), h.Hi.SwapSuit(s1, s2))
		if err != nil {
			continue
		}
		if r.weights[idx] != r.weights[swapped.Index()] {
			return false
		}
	}
	return true
}
