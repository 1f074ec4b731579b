// Package scenario loads a solve request from an HCL file, so a scenario
// can be checked into version control and re-run instead of re-typed as CLI
// flags every time.
package scenario

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Scenario is the decoded shape of a solver scenario file, e.g.:
//
//	board   = "Kh9s4c"
//	pot     = 100
//	stack   = 500
//	bet     = "50%,100%,allin"
//	raise   = "allin"
//	rake    = 0.05
//	rake_cap = 3
//
//	range "oop" {
//	  combos = "AA,KK,QQ,AKs"
//	}
//
//	range "ip" {
//	  combos = "88,77,AJs,KQo"
//	}
type Scenario struct {
	Board   string  `hcl:"board"`
	Pot     int32   `hcl:"pot,optional"`
	Stack   int32   `hcl:"stack,optional"`
	Bet     string  `hcl:"bet,optional"`
	Raise   string  `hcl:"raise,optional"`
	Rake    float64 `hcl:"rake,optional"`
	RakeCap float64 `hcl:"rake_cap,optional"`

	Ranges []RangeBlock `hcl:"range,block"`
}

// RangeBlock is one of the two labeled `range "oop" { combos = ... }` blocks.
type RangeBlock struct {
	Name   string `hcl:"name,label"`
	Combos string `hcl:"combos"`
}

// OOP returns the "oop"-labeled range block's combo string, or "" if absent.
func (s Scenario) OOP() string { return s.rangeByName("oop") }

// IP returns the "ip"-labeled range block's combo string, or "" if absent.
func (s Scenario) IP() string { return s.rangeByName("ip") }

func (s Scenario) rangeByName(name string) string {
	for _, r := range s.Ranges {
		if r.Name == name {
			return r.Combos
		}
	}
	return ""
}

// WithDefaults fills in zero-valued optional fields the way the CLI's own
// flag defaults would.
func (s Scenario) WithDefaults() Scenario {
	if s.Pot == 0 {
		s.Pot = 100
	}
	if s.Stack == 0 {
		s.Stack = 500
	}
	if s.Bet == "" {
		s.Bet = "50%,100%,allin"
	}
	if s.Raise == "" {
		s.Raise = "allin"
	}
	return s
}

// Load reads and decodes an HCL scenario file.
func Load(path string) (Scenario, error) {
	if _, err := os.Stat(path); err != nil {
		return Scenario{}, fmt.Errorf("scenario: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Scenario{}, fmt.Errorf("scenario: parsing %s: %s", path, diags.Error())
	}

	var s Scenario
	diags = gohcl.DecodeBody(file.Body, nil, &s)
	if diags.HasErrors() {
		return Scenario{}, fmt.Errorf("scenario: decoding %s: %s", path, diags.Error())
	}
	return s.WithDefaults(), nil
}
