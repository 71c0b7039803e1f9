// Package rules implements the constraint protocol of the solving engine:
// heterogeneous rule types cooperating inside one propagation loop through a
// shared {InitCandidates, EnforceConstraint, StepLogic, Name} contract.
package rules

import (
	"fmt"
	"strings"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
	"svw.info/gridlock/internal/parser"
)

// Constraint is one rule of a puzzle. Cell groups are fixed at construction;
// any derived state is recomputed from current board contents each step.
type Constraint interface {
	// Name is the rule's display name, for presentation only.
	Name() string

	// InitCandidates narrows bitmasks using only this rule's static
	// structure, before propagation begins. It must be idempotent when
	// called twice with no intervening board change from elsewhere.
	InitCandidates(b *board.Board) domain.LogicResult

	// EnforceConstraint is a cheap, side-effect-free admissibility check:
	// is value still consistent with everything this rule knows at (row,
	// col), given current board state.
	EnforceConstraint(b *board.Board, row, col, value int) bool

	// StepLogic runs one incremental deduction pass. It may eliminate
	// candidates or finalize a uniquely forced cell. A nil sink means no
	// explanation formatting happens; bruteForcing marks exhaustive-search
	// re-propagation, where only pruning speed matters.
	StepLogic(b *board.Board, sink explain.Sink, bruteForcing bool) domain.LogicResult
}

// ConfigError reports a rule definition whose cell-group count does not
// match what the rule type expects. Raised at construction, fatal to that
// rule's setup.
type ConfigError struct {
	Rule     string
	Expected int
	Actual   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: expected %d cell group(s), got %d", e.Rule, e.Expected, e.Actual)
}

// Build constructs a rule from its declarative definition.
func Build(def domain.RuleDef, size domain.Size) (Constraint, error) {
	groups, err := parser.Groups(def.Groups)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		for _, cell := range g {
			if cell.Row >= size.Height || cell.Col >= size.Width {
				return nil, fmt.Errorf("%s: cell R%dC%d outside %dx%d board",
					def.Kind, cell.Row+1, cell.Col+1, size.Height, size.Width)
			}
		}
	}
	switch strings.ToLower(strings.TrimSpace(def.Kind)) {
	case "sumline", "sum-line":
		return NewSumLine(groups)
	case "proximity":
		return NewProximity(groups)
	case "unique":
		return NewUniqueFromGroups(groups)
	default:
		return nil, fmt.Errorf("unknown rule kind %q", def.Kind)
	}
}
