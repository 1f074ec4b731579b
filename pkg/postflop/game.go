// Package postflop builds and walks the per-card postflop game tree: the
// abstract action skeleton from pkg/tree, expanded with the actual board
// runouts and hole-card combos a solver needs to compute counterfactual
// values at every node. It is grounded on gto/src/postflop/{mod,game,node,
// init,evaluate}.rs, adapted from their unsafe byte-arena storage scheme to
// plain typed Go slices.
package postflop

import (
	"github.com/behrlich/poker-solver/pkg/cards"
	"github.com/behrlich/poker-solver/pkg/tree"
)

// Node is one position in the expanded per-card tree: either a decision, a
// chance node (one child per possible next board card), or a terminal.
// Regrets and StrategySum are only allocated at decision nodes, sized
// numActions*numHands for the player on the move.
type Node struct {
	Abstract *tree.Node
	Board    cards.Board
	Children []*Node

	Regrets     []float32
	StrategySum []float32
}

// Game is a fully built postflop subgame: the action tree, the board state
// it starts from, and both players' hole-card combos with their initial
// range weights.
type Game struct {
	Tree      *tree.ActionTree
	Board     cards.Board
	Evaluator *cards.Evaluator

	Hands          [2][]cards.Hand
	InitialWeights [2][]float32
	NumCombos      float64

	MaxNodes int

	Root     *Node
	numNodes int
}

// NewGame validates config and board, filters both ranges against board
// conflicts, builds the abstract action tree, and expands it into a
// per-card arena rooted at Root.
func NewGame(
	config tree.TreeConfig,
	board cards.Board,
	evaluator *cards.Evaluator,
	oopHands []cards.Hand, oopWeights []float32,
	ipHands []cards.Hand, ipWeights []float32,
	maxNodes int,
) (*Game, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	if err := verifyBoard(config.InitialStreet, board); err != nil {
		return nil, err
	}

	at, err := tree.NewActionTree(config)
	if err != nil {
		return nil, err
	}

	oh, ow := filterHands(oopHands, oopWeights, board.Mask())
	ih, iw := filterHands(ipHands, ipWeights, board.Mask())
	if len(oh) == 0 || len(ih) == 0 {
		return nil, ErrEmptyRange
	}

	g := &Game{
		Tree:           at,
		Board:          board,
		Evaluator:      evaluator,
		Hands:          [2][]cards.Hand{oh, ih},
		InitialWeights: [2][]float32{ow, iw},
		MaxNodes:       maxNodes,
	}
	g.NumCombos = computeNumCombos(oh, ow, ih, iw)
	if g.NumCombos == 0 {
		return nil, ErrEmptyRange
	}

	root, err := g.buildNode(at.Root, board)
	if err != nil {
		return nil, err
	}
	g.Root = root
	return g, nil
}

func verifyBoard(street cards.Street, board cards.Board) error {
	switch street {
	case cards.Flop:
		if !board.IsFlopDealt() || board.IsTurnDealt() || board.IsRiverDealt() {
			return ErrBoardMismatch
		}
	case cards.Turn:
		if !board.IsTurnDealt() || board.IsRiverDealt() {
			return ErrBoardMismatch
		}
	case cards.River:
		if !board.IsRiverDealt() {
			return ErrBoardMismatch
		}
	}
	return nil
}

func filterHands(hands []cards.Hand, weights []float32, boardMask uint64) ([]cards.Hand, []float32) {
	outH := make([]cards.Hand, 0, len(hands))
	outW := make([]float32, 0, len(weights))
	for i, h := range hands {
		if h.Mask()&boardMask != 0 {
			continue
		}
		w := float32(1)
		if i < len(weights) {
			w = weights[i]
		}
		if w <= 0 {
			continue
		}
		outH = append(outH, h)
		outW = append(outW, w)
	}
	return outH, outW
}

func computeNumCombos(oh []cards.Hand, ow []float32, ih []cards.Hand, iw []float32) float64 {
	var total float64
	for i, h := range oh {
		for j, o := range ih {
			if h.ConflictsWith(o) {
				continue
			}
			total += float64(ow[i]) * float64(iw[j])
		}
	}
	return total
}

// buildNode recursively expands one abstract action-tree node into the
// per-card arena, dealing one extra board card per chance node.
func (g *Game) buildNode(ab *tree.Node, board cards.Board) (*Node, error) {
	g.numNodes++
	if g.MaxNodes > 0 && g.numNodes > g.MaxNodes {
		return nil, ErrTooManyNodes
	}

	node := &Node{Abstract: ab, Board: board}

	switch {
	case ab.IsTerminal():
		return node, nil

	case ab.IsChance():
		deck := cards.Deck{}.Remaining(board.Mask())
		node.Children = make([]*Node, 0, len(deck))
		for _, c := range deck {
			var next cards.Board
			if !board.IsTurnDealt() {
				next = board.WithTurn(c)
			} else {
				next = board.WithRiver(c)
			}
			child, err := g.buildNode(ab.Children[0], next)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
		return node, nil

	default:
		player := ab.Player.Seat()
		numHands := len(g.Hands[player])
		numActions := len(ab.Actions)
		node.Regrets = make([]float32, numActions*numHands)
		node.StrategySum = make([]float32, numActions*numHands)
		node.Children = make([]*Node, numActions)
		for i, child := range ab.Children {
			c, err := g.buildNode(child, board)
			if err != nil {
				return nil, err
			}
			node.Children[i] = c
		}
		return node, nil
	}
}

// NumNodes returns the number of per-card arena nodes built.
func (g *Game) NumNodes() int { return g.numNodes }
