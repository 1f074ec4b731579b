package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/behrlich/poker-solver/pkg/betsize"
	"github.com/behrlich/poker-solver/pkg/cards"
	"github.com/behrlich/poker-solver/pkg/equity"
	"github.com/behrlich/poker-solver/pkg/notation"
	"github.com/behrlich/poker-solver/pkg/postflop"
	"github.com/behrlich/poker-solver/pkg/scenario"
	"github.com/behrlich/poker-solver/pkg/solver"
	"github.com/behrlich/poker-solver/pkg/tree"
)

// CLI is the top-level kong command set: solve a postflop subgame, compute
// raw equity of hero's cards against an opponent range, or solve and export
// the resulting strategy to a file in one pass.
type CLI struct {
	Verbose bool `help:"Log at debug level." short:"v"`

	Solve  SolveCmd  `cmd:"" help:"Solve a postflop subgame with CFR+."`
	Equity EquityCmd `help:"Compute raw equity of hero's cards against an opponent range on a board." cmd:""`
	Export ExportCmd `help:"Solve a subgame and export its average strategy as CSV." cmd:""`
}

type rangeConfig struct {
	Config     string  `help:"Load board/ranges/sizing from an HCL scenario file; CLI flags below override its fields." name:"config"`
	Board      string  `help:"Board cards, e.g. Kh9s4c7d2s." name:"board"`
	OOPRange   string  `help:"Out-of-position range string, e.g. AA,KK,AKs." name:"oop"`
	IPRange    string  `help:"In-position range string." name:"ip"`
	Pot        int32   `help:"Starting pot size in chips (default 100)."`
	Stack      int32   `help:"Effective remaining stack in chips (default 500)."`
	Bet        string  `help:"Comma-separated bet sizing menu (see betsize grammar; default 50%,100%,allin)."`
	Raise      string  `help:"Comma-separated raise sizing menu (default allin)."`
	Rake       float64 `help:"Rake fraction, 0..1." default:"0"`
	RakeCap    float64 `help:"Rake cap in chips." default:"0"`
	MaxNodes   int     `help:"Node budget; 0 disables the cap." default:"2000000"`
	Iterations int     `help:"CFR+ iterations to run." default:"1000"`
	Sample     bool    `help:"Use chance sampling instead of exhaustively enumerating runouts."`
	Seed       int64   `help:"Random seed for --sample." default:"42"`
}

// applyScenario loads c.Config, if set, and fills in any of Board/OOPRange/
// IPRange/Bet/Raise/Pot/Stack/Rake/RakeCap the caller left at its zero value.
func (c *rangeConfig) applyScenario(logger *log.Logger) error {
	if c.Config == "" {
		return nil
	}
	sc, err := scenario.Load(c.Config)
	if err != nil {
		return err
	}
	logger.Debug("loaded scenario", "path", c.Config)

	if c.Board == "" {
		c.Board = sc.Board
	}
	if c.OOPRange == "" {
		c.OOPRange = sc.OOP()
	}
	if c.IPRange == "" {
		c.IPRange = sc.IP()
	}
	if c.Bet == "" {
		c.Bet = sc.Bet
	}
	if c.Raise == "" {
		c.Raise = sc.Raise
	}
	if c.Pot == 0 {
		c.Pot = sc.Pot
	}
	if c.Stack == 0 {
		c.Stack = sc.Stack
	}
	if c.Rake == 0 {
		c.Rake = sc.Rake
	}
	if c.RakeCap == 0 {
		c.RakeCap = sc.RakeCap
	}
	return nil
}

func (c *rangeConfig) build(logger *log.Logger) (*postflop.Game, *solver.Solver, error) {
	if err := c.applyScenario(logger); err != nil {
		return nil, nil, fmt.Errorf("loading scenario: %w", err)
	}
	d := scenario.Scenario{Pot: c.Pot, Stack: c.Stack, Bet: c.Bet, Raise: c.Raise}.WithDefaults()
	c.Pot, c.Stack, c.Bet, c.Raise = d.Pot, d.Stack, d.Bet, d.Raise
	if c.Board == "" || c.OOPRange == "" || c.IPRange == "" {
		return nil, nil, fmt.Errorf("--board, --oop and --ip are required unless supplied by --config")
	}

	board, err := cards.ParseBoard(c.Board)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing board: %w", err)
	}

	street, err := betsize.ParseStreet(c.Bet, c.Raise)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing bet sizing: %w", err)
	}

	var sizings betsize.Sizings
	switch board.Street() {
	case cards.Flop:
		sizings.Flop = [2]betsize.Street{street, street}
	case cards.Turn:
		sizings.Turn = [2]betsize.Street{street, street}
	default:
		sizings.River = [2]betsize.Street{street, street}
	}

	cfg := tree.TreeConfig{
		InitialStreet:  board.Street(),
		StartingPot:    c.Pot,
		EffectiveStack: c.Stack,
		Rake:           c.Rake,
		RakeCap:        c.RakeCap,
		BetSizings:     sizings,
	}

	oopCombos, err := notation.ParseWeightedRange(c.OOPRange)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing OOP range: %w", err)
	}
	ipCombos, err := notation.ParseWeightedRange(c.IPRange)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing IP range: %w", err)
	}

	oopHands, oopWeights, err := combosToHands(oopCombos)
	if err != nil {
		return nil, nil, err
	}
	ipHands, ipWeights, err := combosToHands(ipCombos)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("building game", "oop_combos", len(oopHands), "ip_combos", len(ipHands), "street", board.Street())

	g, err := postflop.NewGame(cfg, board, cards.NewEvaluator(), oopHands, oopWeights, ipHands, ipWeights, c.MaxNodes)
	if err != nil {
		return nil, nil, fmt.Errorf("building game: %w", err)
	}
	logger.Debug("game built", "nodes", g.NumNodes())

	s := solver.NewSolver(g)
	if c.Sample {
		sampler := solver.NewChanceSampler(s, c.Seed)
		logger.Info("solving with chance sampling", "iterations", c.Iterations)
		sampler.Run(c.Iterations)
	} else {
		logger.Info("solving with exhaustive CFR+", "iterations", c.Iterations)
		s.Run(c.Iterations)
	}

	return g, s, nil
}

func combosToHands(combos []notation.WeightedCombo) ([]cards.Hand, []float32, error) {
	hands := make([]cards.Hand, 0, len(combos))
	weights := make([]float32, 0, len(combos))
	for _, wc := range combos {
		h, err := cards.NewHand(wc.Combo.Card1, wc.Combo.Card2)
		if err != nil {
			continue // duplicate-card combos can't occur on a real board; skip defensively
		}
		hands = append(hands, h)
		weights = append(weights, float32(wc.Weight))
	}
	return hands, weights, nil
}

// SolveCmd solves a postflop subgame, prints a one-line summary, then prints
// the root decision node's average strategy as CSV.
type SolveCmd struct {
	rangeConfig
}

func (c *SolveCmd) Run(logger *log.Logger) error {
	g, s, err := c.build(logger)
	if err != nil {
		return err
	}
	fmt.Printf("solved %d nodes over %d iterations\n", g.NumNodes(), s.Iteration)
	return s.ExportStrategy(os.Stdout)
}

// EquityCmd computes raw equity between hero's two cards and an opponent
// range, with no betting tree at all.
type EquityCmd struct {
	Hero  string `help:"Hero's two hole cards, e.g. AsKh." required:""`
	Board string `help:"Board cards, 3 to 5 of them." required:""`
	Range string `help:"Opponent range string." required:""`
}

func (c *EquityCmd) Run(logger *log.Logger) error {
	hero, err := cards.ParseCards(c.Hero)
	if err != nil || len(hero) != 2 {
		return fmt.Errorf("parsing hero cards: %w", err)
	}
	board, err := cards.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("parsing board: %w", err)
	}
	combos, err := notation.ParseRange(c.Range)
	if err != nil {
		return fmt.Errorf("parsing opponent range: %w", err)
	}

	logger.Debug("computing equity", "board_size", len(board), "opponent_combos", len(combos))
	result := equity.NewCalculator().CalculateEquity(hero, board, combos)
	fmt.Printf("equity: %.2f%% (win %.2f%%, tie %.2f%%)\n", result.Equity*100, result.WinPct*100, result.TiePct*100)
	return nil
}

// ExportCmd solves a subgame and writes its average strategy to a file as
// CSV. This is strictly a rendering of the final average strategy, not a
// persisted solver state: there is no accompanying load command.
type ExportCmd struct {
	rangeConfig
	Out string `help:"Output CSV path." required:""`
}

func (c *ExportCmd) Run(logger *log.Logger) error {
	_, s, err := c.build(logger)
	if err != nil {
		return err
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := s.ExportStrategy(f); err != nil {
		return fmt.Errorf("exporting strategy: %w", err)
	}
	logger.Info("exported strategy", "path", c.Out)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("poker-solver"),
		kong.Description("Postflop Nash-equilibrium solver for heads-up Texas Hold'em."),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := ctx.Run(logger); err != nil {
		logger.Error("failed", "err", err)
		os.Exit(1)
	}
}
