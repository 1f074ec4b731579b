package tree

import (
	"errors"
	"fmt"

	"github.com/behrlich/poker-solver/pkg/betsize"
	"github.com/behrlich/poker-solver/pkg/cards"
)

// ErrInvalidConfig wraps a config verification failure naming which field
// was invalid.
var ErrInvalidConfig = errors.New("tree: invalid config")

// TreeConfig is supplied by the caller and drives action-tree construction:
// starting street/pot/stack, rake terms, and the bet/raise menus for each
// street (see package betsize).
type TreeConfig struct {
	InitialStreet  cards.Street
	StartingPot    int32
	EffectiveStack int32

	Rake    float64
	RakeCap float64

	BetSizings betsize.Sizings

	// AddAllInThreshold: add an explicit all-in action whenever the all-in
	// amount is at most this fraction of the pot (on top of the bet being
	// faced, when facing one).
	AddAllInThreshold float64
	// ForceAllInThreshold: turn any bet/raise into an outright all-in when
	// the stack it would leave behind is at most this fraction of the pot
	// after the bet is called.
	ForceAllInThreshold float64
}

// Verify checks the config's numeric invariants.
func (c TreeConfig) Verify() error {
	if c.Rake < 0 || c.Rake > 1 {
		return fmt.Errorf("%w: rake must be between 0 and 1", ErrInvalidConfig)
	}
	if c.RakeCap < 0 {
		return fmt.Errorf("%w: rake cap must be positive", ErrInvalidConfig)
	}
	if c.AddAllInThreshold < 0 {
		return fmt.Errorf("%w: add-all-in threshold must be positive", ErrInvalidConfig)
	}
	if c.ForceAllInThreshold < 0 {
		return fmt.Errorf("%w: force-all-in threshold must be positive", ErrInvalidConfig)
	}
	if c.EffectiveStack <= 0 {
		return fmt.Errorf("%w: effective stack must be positive", ErrInvalidConfig)
	}
	return nil
}
