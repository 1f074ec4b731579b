// Package solver drives CFR+ over a built pkg/postflop.Game: regret
// matching+ at every decision node, linear-averaged strategy accumulation,
// and the compressed-storage/export helpers a long-running solve needs.
// Grounded on gto/src/cfv.rs (traversal) and gto/src/solver.rs-style
// outer loops in the teacher's own cfr.go/mccfr.go, adapted from the
// teacher's per-infoset map to the arena node shape pkg/postflop builds.
package solver

import (
	"golang.org/x/sync/errgroup"

	"github.com/behrlich/poker-solver/pkg/postflop"
)

// Solver runs CFR+ iterations over a single postflop.Game.
type Solver struct {
	Game      *postflop.Game
	Iteration int

	weights           [2][]float32
	normalisedWeights [2][]float32
	normalisedCache   bool
}

// NewSolver returns a Solver seeded with g's initial range weights.
func NewSolver(g *postflop.Game) *Solver {
	s := &Solver{Game: g}
	s.weights[0] = append([]float32(nil), g.InitialWeights[0]...)
	s.weights[1] = append([]float32(nil), g.InitialWeights[1]...)
	return s
}

// CacheNormalisedWeights recomputes each player's reach weights normalised
// to sum to 1, the seed ComputeCFV's root call uses as the opponent's
// cf_reach so the solved value is an expectation per combo rather than
// scaled by whatever raw range weights the caller supplied.
func (s *Solver) CacheNormalisedWeights() {
	for p := 0; p < 2; p++ {
		var sum float32
		for _, w := range s.weights[p] {
			sum += w
		}
		out := make([]float32, len(s.weights[p]))
		if sum > 0 {
			for i, w := range s.weights[p] {
				out[i] = w / sum
			}
		}
		s.normalisedWeights[p] = out
	}
	s.normalisedCache = true
}

// RunIteration runs one CFR+ pass: for each player in turn, traverse the
// tree computing that player's counterfactual values against the
// opponent's current reach, updating regrets (floored at zero, the "+" in
// CFR+) and the running average-strategy accumulator along the way.
func (s *Solver) RunIteration() {
	if !s.normalisedCache {
		s.CacheNormalisedWeights()
	}
	for player := 0; player < 2; player++ {
		opp := player ^ 1
		reach := toFloat64(s.normalisedWeights[opp])
		s.updateNode(s.Game.Root, player, reach)
	}
	s.Iteration++
}

// Run executes n iterations.
func (s *Solver) Run(n int) {
	for i := 0; i < n; i++ {
		s.RunIteration()
	}
}

// updateNode mirrors postflop.ComputeCFV's traversal but additionally
// performs the regret-matching+ update and strategy-sum accumulation at
// every decision node belonging to player, on the way back up.
func (s *Solver) updateNode(node *postflop.Node, player int, cfReach []float64) []float64 {
	ab := node.Abstract

	switch {
	case ab.IsTerminal():
		return postflop.Evaluate(s.Game, node, player, cfReach)

	case ab.IsChance():
		// Children are disjoint subtrees (one per runout card), so fanning
		// the recursion out across goroutines never races on Regrets or
		// StrategySum: no node is reached from two sibling chance children,
		// and the two player passes in RunIteration run one after the other.
		factor := 1.0 / float64(len(node.Children))
		updated := scale(cfReach, factor)
		numHands := len(s.Game.Hands[player])
		perChild := make([][]float64, len(node.Children))
		var grp errgroup.Group
		for i, child := range node.Children {
			i, child := i, child
			grp.Go(func() error {
				perChild[i] = s.updateNode(child, player, updated)
				return nil
			})
		}
		grp.Wait()
		sum := make([]float64, numHands)
		for _, cv := range perChild {
			addInto64(sum, cv)
		}
		return sum

	case int(ab.Player.Seat()) == player:
		numActions := len(ab.Actions)
		numHands := len(s.Game.Hands[player])
		strat := postflop.NormalizedStrategy(node.Regrets, numActions, numHands)

		childValues := make([][]float64, numActions)
		nodeValue := make([]float64, numHands)
		for a, child := range node.Children {
			childValues[a] = s.updateNode(child, player, cfReach)
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
		return s.updateNode(node.Children[0], player, cfReach)

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
			addInto64(result, s.updateNode(child, player, reach))
		}
		return result
	}
}

func toFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

func scale(s []float64, factor float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v * factor
	}
	return out
}

func addInto64(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}
