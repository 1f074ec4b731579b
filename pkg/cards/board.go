package cards

import "fmt"

// Street identifies how much of the board has been dealt.
type Street uint8

const (
	Flop Street = iota
	Turn
	River
)

// String renders the street name.
func (s Street) String() string {
	switch s {
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "?"
	}
}

// Board holds the five community card slots. Undealt slots beyond the
// current street hold the Undealt sentinel.
type Board struct {
	Cards [5]Card // flop0, flop1, flop2, turn, river
}

// NewBoard builds a Board from its dealt cards (3, 4, or 5 of them),
// validating there are no duplicates.
func NewBoard(cards ...Card) (Board, error) {
	var b Board
	for i := range b.Cards {
		b.Cards[i] = Undealt
	}
	if len(cards) != 3 && len(cards) != 4 && len(cards) != 5 {
		return Board{}, fmt.Errorf("cards: NewBoard: want 3, 4, or 5 cards, got %d", len(cards))
	}
	seen := uint64(0)
	for i, c := range cards {
		if seen&c.Mask() != 0 {
			return Board{}, fmt.Errorf("cards: NewBoard: duplicate card %v", c)
		}
		seen |= c.Mask()
		b.Cards[i] = c
	}
	return b, nil
}

// ParseBoard parses a board from 3, 4, or 5 cards in two-character card
// notation, e.g. "2h7c9s" for a flop.
func ParseBoard(s string) (Board, error) {
	cs, err := ParseCards(s)
	if err != nil {
		return Board{}, err
	}
	return NewBoard(cs...)
}

// IsFlopDealt reports whether all three flop slots are filled.
func (b Board) IsFlopDealt() bool {
	return b.Cards[0].IsDealt() && b.Cards[1].IsDealt() && b.Cards[2].IsDealt()
}

// IsTurnDealt reports whether the turn slot is filled.
func (b Board) IsTurnDealt() bool {
	return b.Cards[3].IsDealt()
}

// IsRiverDealt reports whether the river slot is filled.
func (b Board) IsRiverDealt() bool {
	return b.Cards[4].IsDealt()
}

// Street returns the board's current street given what's dealt.
func (b Board) Street() Street {
	switch {
	case b.IsRiverDealt():
		return River
	case b.IsTurnDealt():
		return Turn
	default:
		return Flop
	}
}

// Dealt returns the slice of cards actually dealt so far (length 3, 4, or 5).
func (b Board) Dealt() []Card {
	switch {
	case b.IsRiverDealt():
		return b.Cards[:5]
	case b.IsTurnDealt():
		return b.Cards[:4]
	default:
		return b.Cards[:3]
	}
}

// Mask returns the 52-bit set of cards on the board so far.
func (b Board) Mask() uint64 {
	var m uint64
	for _, c := range b.Dealt() {
		m |= c.Mask()
	}
	return m
}

// WithTurn returns a copy of b with the turn slot set to c.
func (b Board) WithTurn(c Card) Board {
	b.Cards[3] = c
	return b
}

// WithRiver returns a copy of b with the river slot set to c.
func (b Board) WithRiver(c Card) Board {
	b.Cards[4] = c
	return b
}

// String renders the dealt portion of the board in standard notation.
func (b Board) String() string {
	s := ""
	for _, c := range b.Dealt() {
		s += c.String()
	}
	return s
}
