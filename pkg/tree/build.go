package tree

import (
	"math"
	"sort"

	"github.com/behrlich/poker-solver/pkg/betsize"
	"github.com/behrlich/poker-solver/pkg/cards"
)

// buildData threads per-branch state down the recursive build: whose last
// action opened this branch, how deep the stacks are, and whether either
// player has already shoved.
type buildData struct {
	lastAction Action
	lastAmount int32
	numBets    int32
	allIn      bool
	oopCall    bool
	stacks     [2]int32
}

func newBuildData(stack int32) buildData {
	return buildData{stacks: [2]int32{stack, stack}}
}

// next returns the buildData in effect after player takes action.
func (d buildData) next(player Player, action Action) buildData {
	n := d
	switch action.Kind {
	case ActionCheck:
		n.oopCall = false

	case ActionCall:
		n.numBets = 0
		n.oopCall = player == PlayerOOP
		n.stacks[player] = n.stacks[player^1]
		n.lastAmount = 0

	case ActionBet, ActionRaise, ActionAllIn:
		opp := player ^ 1
		toCall := n.stacks[player] - n.stacks[opp]
		n.numBets++
		n.allIn = action.Kind == ActionAllIn
		n.stacks[player] -= action.Amount - n.lastAmount + toCall
		n.lastAmount = action.Amount
	}
	n.lastAction = action
	return n
}

// ActionTree is the built abstract action tree for one hand of postflop
// play: the decision points and chance nodes between the configured
// starting street and showdown or fold.
type ActionTree struct {
	Config TreeConfig
	Root   *Node
}

// NewActionTree validates config and builds the full action tree rooted at
// config.InitialStreet.
func NewActionTree(config TreeConfig) (*ActionTree, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}

	root := &Node{Street: config.InitialStreet}
	t := &ActionTree{Config: config, Root: root}
	t.buildTree(root, newBuildData(config.EffectiveStack))
	return t, nil
}

func (t *ActionTree) buildTree(node *Node, data buildData) {
	switch {
	case node.IsTerminal():
		return

	case node.IsChance():
		nextStreet := node.Street + 1

		var nextPlayer Player
		switch {
		case !data.allIn:
			nextPlayer = PlayerOOP
		case node.Street == cards.Flop:
			nextPlayer = PlayerChanceFlag | PlayerChance
		default:
			nextPlayer = PlayerTerminalFlag
		}

		child := &Node{Player: nextPlayer, Street: nextStreet, Amount: node.Amount}
		node.Actions = []Action{{Kind: ActionChance}}
		node.Children = []*Node{child}
		t.buildTree(child, data.next(0, Action{Kind: ActionChance}))

	default:
		t.pushActions(node, data)
		for i, action := range node.Actions {
			t.buildTree(node.Children[i], data.next(node.Player, action))
		}
	}
}

func (t *ActionTree) calcGeometric(pot int32, sprAfterCall float64, nStreets int32, maxRatio float64) int32 {
	ratio := (math.Pow(2*sprAfterCall+1, 1/float64(nStreets)) - 1) / 2
	if ratio > maxRatio {
		ratio = maxRatio
	}
	return int32(math.Round(float64(pot) * ratio))
}

// pushActions populates node.Actions/node.Children with every legal action
// from this decision point, given the configured bet/raise menus.
func (t *ActionTree) pushActions(node *Node, data buildData) {
	player := node.Player
	opp := player ^ 1

	playerStack := data.stacks[player]
	oppStack := data.stacks[opp]

	prevAmount := data.lastAmount
	toCall := playerStack - oppStack

	pot := t.Config.StartingPot + 2*(node.Amount+toCall)
	maxAmount := oppStack + prevAmount
	minAmount := clamp32(prevAmount+toCall, 1, maxAmount)

	sprAfterCall := float64(oppStack) / float64(pot)

	var sizes [2]betsize.Street
	var streetsLeft int32
	switch node.Street {
	case cards.Flop:
		sizes, streetsLeft = t.Config.BetSizings.Flop, 3
	case cards.Turn:
		sizes, streetsLeft = t.Config.BetSizings.Turn, 2
	default:
		sizes, streetsLeft = t.Config.BetSizings.River, 1
	}

	var actions []Action

	facingBet := !(data.lastAction.Kind == ActionNone || data.lastAction.Kind == ActionCheck || data.lastAction.Kind == ActionChance)

	if !facingBet {
		actions = append(actions, Action{Kind: ActionCheck})

		for _, bs := range sizes[player].Bet {
			switch bs.Kind {
			case betsize.Absolute:
				actions = append(actions, Action{Kind: ActionBet, Amount: int32(bs.Int)})
			case betsize.PotScaled:
				actions = append(actions, Action{Kind: ActionBet, Amount: int32(math.Round(float64(pot) * bs.Float))})
			case betsize.Geometric:
				n := bs.Int
				if n == 0 {
					n = int(streetsLeft)
				}
				actions = append(actions, Action{Kind: ActionBet, Amount: t.calcGeometric(pot, sprAfterCall, int32(n), bs.Float)})
			case betsize.AllIn:
				actions = append(actions, Action{Kind: ActionAllIn, Amount: maxAmount})
			}
		}

		if float64(maxAmount) <= math.Round(float64(pot)*t.Config.AddAllInThreshold) {
			actions = append(actions, Action{Kind: ActionAllIn, Amount: maxAmount})
		}

	} else {
		actions = append(actions, Action{Kind: ActionFold}, Action{Kind: ActionCall})

		if !data.allIn {
			for _, bs := range sizes[player].Raise {
				switch bs.Kind {
				case betsize.Absolute:
					actions = append(actions, Action{Kind: ActionRaise, Amount: int32(bs.Int)})
				case betsize.PotScaled:
					actions = append(actions, Action{Kind: ActionRaise, Amount: prevAmount + int32(math.Round(float64(pot)*bs.Float))})
				case betsize.PrevScaled:
					actions = append(actions, Action{Kind: ActionRaise, Amount: int32(math.Round(float64(prevAmount) * bs.Float))})
				case betsize.Geometric:
					n := bs.Int
					if n == 0 {
						n = int(streetsLeft)
					}
					n = n - int(data.numBets) + 1
					if n < 1 {
						n = 1
					}
					actions = append(actions, Action{Kind: ActionRaise, Amount: prevAmount + t.calcGeometric(pot, sprAfterCall, int32(n), bs.Float)})
				case betsize.AllIn:
					actions = append(actions, Action{Kind: ActionAllIn, Amount: maxAmount})
				}
			}

			threshold := int32(math.Round(float64(pot) * t.Config.AddAllInThreshold))
			if maxAmount <= prevAmount+threshold {
				actions = append(actions, Action{Kind: ActionAllIn, Amount: maxAmount})
			}
		}
	}

	breaksThreshold := func(amount int32) bool {
		diff := amount - prevAmount
		newPot := pot + 2*diff
		threshold := int32(math.Round(float64(newPot) * t.Config.ForceAllInThreshold))
		return maxAmount <= threshold+amount
	}

	for i, a := range actions {
		switch a.Kind {
		case ActionBet, ActionRaise:
			clamped := clamp32(a.Amount, minAmount, maxAmount)
			if breaksThreshold(clamped) {
				actions[i] = Action{Kind: ActionAllIn, Amount: maxAmount}
			} else if clamped != a.Amount {
				actions[i] = Action{Kind: a.Kind, Amount: clamped}
			}
		}
	}

	sort.Slice(actions, func(i, j int) bool { return actions[i].Less(actions[j]) })
	actions = dedupActions(actions)

	var playerAfterCall Player
	if node.Street == cards.River {
		playerAfterCall = PlayerTerminalFlag
	} else {
		playerAfterCall = PlayerChanceFlag | player
	}

	var playerAfterCheck Player
	if player == PlayerOOP {
		playerAfterCheck = opp
	} else {
		playerAfterCheck = playerAfterCall
	}

	node.Actions = actions
	node.Children = make([]*Node, len(actions))
	for i, action := range actions {
		amount := node.Amount
		var nextPlayer Player
		switch action.Kind {
		case ActionFold:
			nextPlayer = PlayerFoldFlag | player
		case ActionCheck:
			nextPlayer = playerAfterCheck
		case ActionCall:
			amount += toCall
			nextPlayer = playerAfterCall
		default: // Bet, Raise, AllIn
			amount += toCall
			nextPlayer = opp
		}
		node.Children[i] = &Node{Player: nextPlayer, Street: node.Street, Amount: amount}
	}
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dedupActions(actions []Action) []Action {
	if len(actions) == 0 {
		return actions
	}
	out := actions[:1]
	for _, a := range actions[1:] {
		if a != out[len(out)-1] {
			out = append(out, a)
		}
	}
	return out
}

// InvalidTerminals returns every line that reaches a non-terminal leaf
// (a decision point with no legal actions) — a misconfigured tree should
// produce none.
func (t *ActionTree) InvalidTerminals() [][]Action {
	var result [][]Action
	var line []Action
	invalidTerminals(t.Root, &result, &line)
	return result
}

func invalidTerminals(node *Node, result *[][]Action, line *[]Action) {
	switch {
	case node.IsTerminal():
		return
	case len(node.Children) == 0:
		cp := make([]Action, len(*line))
		copy(cp, *line)
		*result = append(*result, cp)
	case node.IsChance():
		invalidTerminals(node.Children[0], result, line)
	default:
		for i, action := range node.Actions {
			*line = append(*line, action)
			invalidTerminals(node.Children[i], result, line)
			*line = (*line)[:len(*line)-1]
		}
	}
}

// NumNodes returns the total node count in the built tree.
func (t *ActionTree) NumNodes() int { return t.Root.NumNodes() }
