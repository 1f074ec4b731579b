package poker_test

import (
	"math"
	"testing"

	"github.com/behrlich/poker-solver/pkg/betsize"
	"github.com/behrlich/poker-solver/pkg/cards"
	"github.com/behrlich/poker-solver/pkg/notation"
	"github.com/behrlich/poker-solver/pkg/postflop"
	"github.com/behrlich/poker-solver/pkg/solver"
	"github.com/behrlich/poker-solver/pkg/tree"
)

// gameFromPosition parses a position FEN and builds a postflop.Game from it,
// using a uniform default bet/raise menu on every street and int32 chip
// amounts rounded from the FEN's (float) bb figures.
func gameFromPosition(t *testing.T, posStr string, maxNodes int) *postflop.Game {
	t.Helper()
	gs, err := notation.ParsePosition(posStr)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", posStr, err)
	}
	if len(gs.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(gs.Players))
	}

	board, err := cards.NewBoard(gs.Board...)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	def := betsize.DefaultStreet()
	cfg := tree.TreeConfig{
		InitialStreet:  board.Street(),
		StartingPot:    chips(gs.Pot),
		EffectiveStack: chips(math.Min(gs.Players[0].Stack, gs.Players[1].Stack)),
		BetSizings:     betsize.Sizings{Flop: [2]betsize.Street{def, def}, Turn: [2]betsize.Street{def, def}, River: [2]betsize.Street{def, def}},
	}

	oopHands, oopWeights := combosToHandsT(t, gs.Players[0].Range)
	ipHands, ipWeights := combosToHandsT(t, gs.Players[1].Range)

	g, err := postflop.NewGame(cfg, board, cards.NewEvaluator(), oopHands, oopWeights, ipHands, ipWeights, maxNodes)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func combosToHandsT(t *testing.T, combos []notation.Combo) ([]cards.Hand, []float32) {
	t.Helper()
	hands := make([]cards.Hand, 0, len(combos))
	weights := make([]float32, 0, len(combos))
	for _, c := range combos {
		h, err := cards.NewHand(c.Card1, c.Card2)
		if err != nil {
			continue
		}
		hands = append(hands, h)
		weights = append(weights, 1)
	}
	return hands, weights
}

func chips(bb float64) int32 {
	return int32(math.Round(bb))
}

// strategySumsToOne checks every hand's average strategy across a node's
// actions sums to ~1, the basic well-formedness every decision node's
// accumulated strategy must satisfy.
func strategySumsToOne(t *testing.T, node *postflop.Node, numActions, numHands int, tolerance float64) {
	t.Helper()
	avg := postflop.AverageStrategy(node.StrategySum, numActions, numHands)
	for hand := 0; hand < numHands; hand++ {
		sum := 0.0
		for a := 0; a < numActions; a++ {
			sum += float64(avg[a*numHands+hand])
		}
		if math.Abs(sum-1.0) > tolerance {
			t.Errorf("hand %d: average strategy sums to %.4f, want ~1.0", hand, sum)
		}
	}
}

func runSolver(g *postflop.Game, iterations int) *solver.Solver {
	s := solver.NewSolver(g)
	s.Run(iterations)
	return s
}
