package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/behrlich/poker-solver/pkg/cards"
)

// WeightedCombo is a hole-card combo together with the range weight
// (frequency in [0,1]) it should be dealt with.
type WeightedCombo struct {
	Combo  Combo
	Weight float64
}

// ParseWeightedRangeError is the typed parse error spec §6's grammar
// requires: a kind plus the offending token.
type ParseWeightedRangeError struct {
	Kind  string // "unexpected token", "missing suitedness", "invalid weight", "eof", "weight mismatch"
	Token string
}

func (e *ParseWeightedRangeError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("notation: %s", e.Kind)
	}
	return fmt.Sprintf("notation: %s: %q", e.Kind, e.Token)
}

// ParseWeightedRange parses a comma-separated range string into weighted
// combos. Each token is a pair/suited/offsuit hand, an open-ended "+" range,
// a "-" range, optionally wrapped in matching bracket weights:
// "[0.5]AKs[/0.5]". The opening and closing weights must match byte-for-byte
// (not merely numerically) or parsing fails — this is spec §6's explicit
// choice over epsilon-equality, since the original's two weighted-bracket
// call sites disagreed on which to use.
func ParseWeightedRange(rangeStr string) ([]WeightedCombo, error) {
	rangeStr = strings.TrimSpace(rangeStr)
	if rangeStr == "" {
		return nil, &ParseWeightedRangeError{Kind: "eof"}
	}

	var out []WeightedCombo
	for _, tok := range strings.Split(rangeStr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		combos, weight, err := parseWeightedToken(tok)
		if err != nil {
			return nil, err
		}
		for _, c := range combos {
			out = append(out, WeightedCombo{Combo: c, Weight: weight})
		}
	}
	return out, nil
}

func parseWeightedToken(tok string) ([]Combo, float64, error) {
	weight := 1.0

	if strings.HasPrefix(tok, "[") {
		openEnd := strings.Index(tok, "]")
		if openEnd < 0 {
			return nil, 0, &ParseWeightedRangeError{Kind: "unexpected token", Token: tok}
		}
		openLit := tok[1:openEnd]
		w, err := strconv.ParseFloat(openLit, 64)
		if err != nil || w < 0 || w > 1 {
			return nil, 0, &ParseWeightedRangeError{Kind: "invalid weight", Token: openLit}
		}
		weight = w
		rest := tok[openEnd+1:]

		closeStart := strings.Index(rest, "[/")
		if closeStart < 0 {
			return nil, 0, &ParseWeightedRangeError{Kind: "unexpected token", Token: tok}
		}
		closeEnd := strings.Index(rest[closeStart:], "]")
		if closeEnd < 0 {
			return nil, 0, &ParseWeightedRangeError{Kind: "unexpected token", Token: tok}
		}
		closeLit := rest[closeStart+2 : closeStart+closeEnd]
		if closeLit != openLit {
			return nil, 0, &ParseWeightedRangeError{Kind: "weight mismatch", Token: tok}
		}
		tok = rest[:closeStart]
	}

	combos, err := parseHandToken(tok)
	if err != nil {
		kind := "unexpected token"
		if len(tok) == 2 {
			r1, err1 := parseRankChar(tok[0])
			r2, err2 := parseRankChar(tok[1])
			if err1 == nil && err2 == nil && r1 != r2 {
				kind = "missing suitedness"
			}
		}
		return nil, 0, &ParseWeightedRangeError{Kind: kind, Token: tok}
	}
	return combos, weight, nil
}

// parseHandToken handles the non-bracket hand grammar: plain hands ("AKs"),
// dash ranges ("AKs-ATs"), and open-ended "+" ranges ("AA+", "AKs+").
func parseHandToken(hand string) ([]Combo, error) {
	switch {
	case strings.Contains(hand, "-"):
		return parseRangeWithDash(hand)
	case strings.HasSuffix(hand, "+"):
		return parsePlusRange(hand[:len(hand)-1])
	default:
		return parseSingleHand(hand)
	}
}

// parsePlusRange expands "AA+" (this pair and every higher pair) or
// "AKs+"/"AJo+" (this second rank up to one below the first rank, same
// suitedness), generated in ascending rank order.
func parsePlusRange(hand string) ([]Combo, error) {
	rank1, rank2, suited, err := parseHandComponents(hand)
	if err != nil {
		return nil, err
	}

	var out []Combo
	if rank1 == rank2 {
		for r := int(rank1); r <= int(cards.Ace); r++ {
			rank := cards.Rank(r)
			out = append(out, generateCombos(rank, rank, suited)...)
		}
		return out, nil
	}

	for r := int(rank2); r < int(rank1); r++ {
		out = append(out, generateCombos(rank1, cards.Rank(r), suited)...)
	}
	return out, nil
}
