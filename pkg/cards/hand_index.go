package cards

import (
	"fmt"
	"math"
)

// Hand is an unordered pair of distinct cards, e.g. a player's two hole
// cards. The zero value is not a valid Hand.
type Hand struct {
	Lo, Hi Card // Lo < Hi always
}

// NewHand builds a Hand from two cards in either order.
func NewHand(a, b Card) (Hand, error) {
	if a == b {
		return Hand{}, fmt.Errorf("cards: NewHand: duplicate card %v", a)
	}
	if a > b {
		a, b = b, a
	}
	return Hand{Lo: a, Hi: b}, nil
}

// ParseHand parses a 4-character two-card string, e.g. "AsKh".
func ParseHand(s string) (Hand, error) {
	cs, err := ParseCards(s)
	if err != nil {
		return Hand{}, err
	}
	if len(cs) != 2 {
		return Hand{}, fmt.Errorf("cards: ParseHand(%q): want exactly 2 cards, got %d", s, len(cs))
	}
	return NewHand(cs[0], cs[1])
}

// Mask returns the 52-bit set containing both cards.
func (h Hand) Mask() uint64 {
	return h.Lo.Mask() | h.Hi.Mask()
}

// Contains reports whether c is one of the hand's two cards.
func (h Hand) Contains(c Card) bool {
	return c == h.Lo || c == h.Hi
}

// ConflictsWith reports whether h shares a card with other.
func (h Hand) ConflictsWith(other Hand) bool {
	return h.Mask()&other.Mask() != 0
}

// Index returns the canonical index of the hand in 0..1325, the
// combinatorial rank of the unordered pair {Lo, Hi} in the 52-card deck.
func (h Hand) Index() int {
	lo, hi := int(h.Lo), int(h.Hi)
	return lo*(101-lo)/2 + hi - 1
}

// HandFromIndex is the inverse of Hand.Index.
func HandFromIndex(idx int) Hand {
	// Invert lo*(101-lo)/2 + hi - 1 = idx: lo is the largest value whose
	// first index lo*(103-lo)/2 (reached at hi = lo+1) is at most idx, found
	// via the quadratic formula; hi is then recovered from the remainder.
	lo := int(math.Floor((103 - math.Sqrt(103*103-8*float64(idx))) / 2))
	hi := idx - lo*(101-lo)/2 + 1
	return Hand{Lo: Card(lo), Hi: Card(hi)}
}

// String returns the hand in standard two-card notation, e.g. "AsKh".
func (h Hand) String() string {
	return h.Lo.String() + h.Hi.String()
}
