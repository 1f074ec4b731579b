// Package tree builds the abstract action tree: the sequence of check,
// bet, call, raise, fold, and chance edges available at every decision
// point, independent of which hands are actually being played. A postflop
// solver layers card/range data onto this skeleton (see pkg/postflop).
package tree

import (
	"fmt"

	"github.com/behrlich/poker-solver/pkg/cards"
)

// Player encodes both seat and node-kind flags in one byte, mirroring the
// teacher-adjacent bit layout so street/player arithmetic in push_actions
// style code stays branch-free.
type Player uint8

const (
	PlayerOOP         Player = 0b0000_0000
	PlayerIP          Player = 0b0000_0001
	PlayerChance      Player = 0b0000_0010
	PlayerMask        Player = 0b0000_0011
	PlayerChanceFlag  Player = 0b0000_0100
	PlayerTerminalFlag Player = 0b0000_1000
	PlayerFoldFlag    Player = 0b0001_1000
)

// Seat returns the acting seat (OOP/IP), masking off the kind flags.
func (p Player) Seat() Player { return p & PlayerMask }

// ActionKind discriminates the shape of an Action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionFold
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
	ActionChance
)

// Action is one edge in the action tree. Amount is the total chips the
// acting player will have put in the pot if this action is taken (for
// Bet/Raise/AllIn); Chance carries a placeholder of 0 since real cards are
// only assigned once a postflop game overlays the tree.
type Action struct {
	Kind   ActionKind
	Amount int32
}

// order ranks ActionKind the way the source's derived enum ordering does:
// None < Fold < Check < Call < Bet < Raise < AllIn < Chance, and within
// Bet/Raise/AllIn by ascending amount.
func (a Action) order() int64 {
	return int64(a.Kind)<<32 | int64(a.Amount)
}

// Less reports whether a sorts before b, used to keep actions.sort()+dedup
// canonical (spec invariant: actions within a node are sorted ascending).
func (a Action) Less(b Action) bool { return a.order() < b.order() }

func (a Action) String() string {
	switch a.Kind {
	case ActionNone:
		return "none"
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return fmt.Sprintf("bet(%d)", a.Amount)
	case ActionRaise:
		return fmt.Sprintf("raise(%d)", a.Amount)
	case ActionAllIn:
		return fmt.Sprintf("allin(%d)", a.Amount)
	case ActionChance:
		return "chance"
	default:
		return "?"
	}
}

// Node is one point in the abstract action tree.
type Node struct {
	Player   Player
	Street   cards.Street
	Amount   int32
	Actions  []Action
	Children []*Node
}

// IsTerminal reports whether node has no further actions (fold or showdown).
func (n *Node) IsTerminal() bool { return n.Player&PlayerTerminalFlag != 0 }

// IsChance reports whether node is a card-dealing node.
func (n *Node) IsChance() bool { return n.Player&PlayerChanceFlag != 0 }

// IsFold reports whether node is a terminal reached by folding.
func (n *Node) IsFold() bool { return n.Player&PlayerFoldFlag == PlayerFoldFlag }

// NumNodes returns the total node count in the subtree rooted at n.
func (n *Node) NumNodes() int {
	total := 1
	for _, c := range n.Children {
		total += c.NumNodes()
	}
	return total
}
