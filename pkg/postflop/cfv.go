package postflop

import "golang.org/x/sync/errgroup"

// ComputeCFV computes the counterfactual value vector for player at node,
// given cf_reach: the opponent's (not player's) reach probability per
// opponent hand index. This is a read-only traversal — it consults each
// decision node's current strategy but does not update Regrets or
// StrategySum; see pkg/solver for the CFR+ driver that does.
//
// Grounded on compute_cfv in gto/src/cfv.rs: terminal nodes evaluate
// directly, chance nodes divide reach by the branching factor and sum
// children, nodes belonging to player weight children by the node's own
// strategy, opposing-player nodes push reach through their strategy
// instead, and single-action nodes pass through untouched.
func ComputeCFV(g *Game, node *Node, player int, cfReach []float64) []float64 {
	ab := node.Abstract

	switch {
	case ab.IsTerminal():
		return Evaluate(g, node, player, cfReach)

	case ab.IsChance():
		factor := 1.0 / float64(len(node.Children))
		updated := make([]float64, len(cfReach))
		for i, v := range cfReach {
			updated[i] = v * factor
		}
		numHands := len(g.Hands[player])
		perChild := make([][]float64, len(node.Children))
		var grp errgroup.Group
		for i, child := range node.Children {
			i, child := i, child
			grp.Go(func() error {
				perChild[i] = ComputeCFV(g, child, player, updated)
				return nil
			})
		}
		grp.Wait() // ComputeCFV never errors; each goroutine only writes its own slot
		sum := make([]float64, numHands)
		for _, cv := range perChild {
			addInto(sum, cv)
		}
		return sum

	case int(ab.Player.Seat()) == player:
		numActions := len(ab.Actions)
		numHands := len(g.Hands[player])
		strat := NormalizedStrategy(node.Regrets, numActions, numHands)
		result := make([]float64, numHands)
		for a, child := range node.Children {
			cv := ComputeCFV(g, child, player, cfReach)
			for i := 0; i < numHands; i++ {
				result[i] += float64(strat[a*numHands+i]) * cv[i]
			}
		}
		return result

	case len(ab.Actions) == 1:
		return ComputeCFV(g, node.Children[0], player, cfReach)

	default:
		opp := int(ab.Player.Seat())
		numActions := len(ab.Actions)
		numHands := len(g.Hands[opp])
		strat := NormalizedStrategy(node.Regrets, numActions, numHands)
		result := make([]float64, len(cfReach))
		for a, child := range node.Children {
			reach := make([]float64, len(cfReach))
			for i := range cfReach {
				reach[i] = cfReach[i] * float64(strat[a*numHands+i])
			}
			addInto(result, ComputeCFV(g, child, player, reach))
		}
		return result
	}
}

func addInto(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}
