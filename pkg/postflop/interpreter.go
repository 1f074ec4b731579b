package postflop

import (
	"fmt"

	"github.com/behrlich/poker-solver/pkg/cards"
)

// Interpreter replays a line through a built Game tree, the way a report
// or interactive explorer steps through a solved hand one action (or dealt
// card, at a chance node) at a time. Grounded on to_root/apply_history/
// current_node in gto/src/postflop/interpreter.rs; simplified since our
// per-card node arena needs no isomorphism-swap bookkeeping on replay.
type Interpreter struct {
	Game    *Game
	history []*Node
}

// NewInterpreter returns an Interpreter positioned at the root of g.
func NewInterpreter(g *Game) *Interpreter {
	return &Interpreter{Game: g, history: []*Node{g.Root}}
}

// CurrentNode returns the node the interpreter is positioned at.
func (it *Interpreter) CurrentNode() *Node {
	return it.history[len(it.history)-1]
}

// ToRoot resets the interpreter back to the tree root.
func (it *Interpreter) ToRoot() {
	it.history = it.history[:1]
}

// PossibleCards returns the cards that can be dealt from the current node,
// in the same order as the children Play indexes into. Returns nil if the
// current node isn't a chance node.
func (it *Interpreter) PossibleCards() []cards.Card {
	node := it.CurrentNode()
	if !node.Abstract.IsChance() {
		return nil
	}
	dealingTurn := !node.Board.IsTurnDealt()
	out := make([]cards.Card, len(node.Children))
	for i, child := range node.Children {
		if dealingTurn {
			out[i] = child.Board.Cards[3]
		} else {
			out[i] = child.Board.Cards[4]
		}
	}
	return out
}

// Play descends into the idx-th child of the current node: an action index
// at a decision node, or a position into PossibleCards at a chance node.
func (it *Interpreter) Play(idx int) error {
	node := it.CurrentNode()
	if node.Abstract.IsTerminal() {
		return fmt.Errorf("postflop: cannot play past a terminal node")
	}
	if idx < 0 || idx >= len(node.Children) {
		return fmt.Errorf("postflop: child index %d out of range (have %d)", idx, len(node.Children))
	}
	it.history = append(it.history, node.Children[idx])
	return nil
}

// ApplyHistory resets to root and replays every step in history in order.
func (it *Interpreter) ApplyHistory(history []int) error {
	it.ToRoot()
	for i, idx := range history {
		if err := it.Play(idx); err != nil {
			return fmt.Errorf("postflop: replaying step %d: %w", i, err)
		}
	}
	return nil
}

// TotalBetAmount returns each player's total contribution so far, derived
// from the current node's abstract Amount (both players have put in
// Amount chips beyond the starting pot once action is simultaneous).
func (it *Interpreter) TotalBetAmount() [2]int32 {
	amount := it.CurrentNode().Abstract.Amount
	return [2]int32{amount, amount}
}
