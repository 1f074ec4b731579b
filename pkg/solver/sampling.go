package solver

import (
	"math/rand"

	"github.com/behrlich/poker-solver/pkg/postflop"
)

// ChanceSampler runs CFR+ the same way Solver does, except it samples a
// single card at each chance node instead of enumerating every runout.
// This is the scalable path for flop-initial trees, where a full turn+river
// enumeration multiplies the decision-node work by up to 49*48 runouts.
// Adapted from the outcome-sampling approach in the teacher's own
// mccfr.go, applied here to pkg/postflop's arena instead of a per-combo map
// tree.
type ChanceSampler struct {
	Solver *Solver
	rng    *rand.Rand
}

// NewChanceSampler wraps s with a chance-sampling traversal seeded by seed.
func NewChanceSampler(s *Solver, seed int64) *ChanceSampler {
	return &ChanceSampler{Solver: s, rng: rand.New(rand.NewSource(seed))}
}

// Run executes n sampled iterations.
func (c *ChanceSampler) Run(n int) {
	for i := 0; i < n; i++ {
		c.RunIteration()
	}
}

// RunIteration runs one sampled CFR+ pass for both players.
func (c *ChanceSampler) RunIteration() {
	s := c.Solver
	if !s.normalisedCache {
		s.CacheNormalisedWeights()
	}
	for player := 0; player < 2; player++ {
		opp := player ^ 1
		reach := toFloat64(s.normalisedWeights[opp])
		c.updateNode(s.Game.Root, player, reach)
	}
	s.Iteration++
}

// updateNode mirrors Solver.updateNode, replacing the chance-node branch's
// exhaustive enumeration with a single sampled child, unbiased because the
// sampled branch's factor cancels the 1/n_children chance probability.
func (c *ChanceSampler) updateNode(node *postflop.Node, player int, cfReach []float64) []float64 {
	s := c.Solver
	ab := node.Abstract

	switch {
	case ab.IsTerminal():
		return postflop.Evaluate(s.Game, node, player, cfReach)

	case ab.IsChance():
		child := node.Children[c.rng.Intn(len(node.Children))]
		return c.updateNode(child, player, cfReach)

	case int(ab.Player.Seat()) == player:
		numActions := len(ab.Actions)
		numHands := len(s.Game.Hands[player])
		strat := postflop.NormalizedStrategy(node.Regrets, numActions, numHands)

		childValues := make([][]float64, numActions)
		nodeValue := make([]float64, numHands)
		for a, child := range node.Children {
			childValues[a] = c.updateNode(child, player, cfReach)
			for i := 0; i < numHands; i++ {
				nodeValue[i] += float64(strat[a*numHands+i]) * childValues[a][i]
			}
		}

		weight := float32(s.Iteration + 1)
		for a := 0; a < numActions; a++ {
			for i := 0; i < numHands; i++ {
				idx := a*numHands + i
				regret := float32(childValues[a][i]-nodeValue[i]) + node.Regrets[idx]
				if regret < 0 {
					regret = 0
				}
				node.Regrets[idx] = regret
				node.StrategySum[idx] += strat[idx] * s.weights[player][i] * weight
			}
		}
		return nodeValue

	case len(ab.Actions) == 1:
		return c.updateNode(node.Children[0], player, cfReach)

	default:
		opp := int(ab.Player.Seat())
		numActions := len(ab.Actions)
		numHands := len(s.Game.Hands[opp])
		strat := postflop.NormalizedStrategy(node.Regrets, numActions, numHands)

		result := make([]float64, len(cfReach))
		for a, child := range node.Children {
			reach := make([]float64, len(cfReach))
			for i := range cfReach {
				reach[i] = cfReach[i] * float64(strat[a*numHands+i])
			}
			addInto64(result, c.updateNode(child, player, reach))
		}
		return result
	}
}
