package solver

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/behrlich/poker-solver/pkg/postflop"
)

// ExportStrategy writes the root decision node's average strategy as CSV:
// one row per (hand, action) pair with its converged frequency. This is a
// one-way report, not a save/resume format — SPEC_FULL.md's non-goals
// explicitly exclude persisting solver state for later reload, unlike the
// teacher's JSON round trip in its old serialization.go.
func (s *Solver) ExportStrategy(w io.Writer) error {
	return ExportNodeStrategy(w, s.Game, s.Game.Root)
}

// ExportNodeStrategy writes one node's average strategy as CSV rows.
func ExportNodeStrategy(w io.Writer, g *postflop.Game, node *postflop.Node) error {
	ab := node.Abstract
	if ab.IsTerminal() || ab.IsChance() {
		return fmt.Errorf("solver: cannot export strategy for a non-decision node")
	}
	player := int(ab.Player.Seat())

	numActions := len(ab.Actions)
	numHands := len(g.Hands[player])
	avg := postflop.AverageStrategy(node.StrategySum, numActions, numHands)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hand", "action", "frequency"}); err != nil {
		return err
	}
	for h := 0; h < numHands; h++ {
		hand := g.Hands[player][h]
		for a := 0; a < numActions; a++ {
			row := []string{
				hand.String(),
				ab.Actions[a].String(),
				fmt.Sprintf("%.6f", avg[a*numHands+h]),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
