package postflop

import (
	"math"

	"github.com/behrlich/poker-solver/pkg/cards"
)

// Evaluate computes the counterfactual value vector for player at a
// terminal node: fold payoff if the hand ended by a fold, otherwise a
// showdown comparison of every surviving hand pair on the final board.
// cfReach holds the opponent's reach probability per opponent hand index.
//
// This mirrors evaluate_no_bunching in gto/src/postflop/evaluate.rs, with
// its merge-sort-by-strength optimisation simplified to a direct pairwise
// comparison — see DESIGN.md for why that trade was made.
func Evaluate(g *Game, node *Node, player int, cfReach []float64) []float64 {
	opp := player ^ 1
	ab := node.Abstract

	pot := float64(g.Tree.Config.StartingPot) + 2*float64(ab.Amount)
	halfPot := pot / 2
	rake := math.Min(g.Tree.Config.RakeCap, pot*g.Tree.Config.Rake)
	amountWin := (halfPot - rake) / g.NumCombos
	amountLose := -halfPot / g.NumCombos
	amountTie := -0.5 * rake / g.NumCombos

	result := make([]float64, len(g.Hands[player]))

	if ab.IsFold() {
		foldedPlayer := int(ab.Player.Seat())
		payoff := amountLose
		if foldedPlayer != player {
			payoff = amountWin
		}
		for i, h := range g.Hands[player] {
			var reach float64
			for j, oh := range g.Hands[opp] {
				if h.ConflictsWith(oh) {
					continue
				}
				reach += cfReach[j]
			}
			result[i] = payoff * reach
		}
		return result
	}

	board := node.Board.Dealt()
	oppValues := make([]cards.HandValue, len(g.Hands[opp]))
	for j, oh := range g.Hands[opp] {
		oppValues[j] = g.Evaluator.Evaluate(sevenCards(oh, board))
	}

	for i, h := range g.Hands[player] {
		pv := g.Evaluator.Evaluate(sevenCards(h, board))
		var win, lose, tie float64
		for j, oh := range g.Hands[opp] {
			if h.ConflictsWith(oh) {
				continue
			}
			switch pv.Compare(oppValues[j]) {
			case 1:
				win += cfReach[j]
			case -1:
				lose += cfReach[j]
			default:
				tie += cfReach[j]
			}
		}
		result[i] = amountWin*win + amountLose*lose + amountTie*tie
	}
	return result
}

func sevenCards(h cards.Hand, board []cards.Card) []cards.Card {
	out := make([]cards.Card, 0, 7)
	out = append(out, h.Lo, h.Hi)
	out = append(out, board...)
	return out
}
