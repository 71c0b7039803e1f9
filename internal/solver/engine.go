// Package solver orchestrates constraint propagation and backtracking search
// over one puzzle instance: propagation runs to fixpoint, and exhaustive
// exploration starts only when pure deduction stalls, pruned by the same
// propagation at every node.
package solver

import (
	"errors"
	"time"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
	"svw.info/gridlock/internal/ports"
	"svw.info/gridlock/internal/rules"
)

var (
	ErrNoSolution = errors.New("puzzle has no solution")
	ErrCanceled   = errors.New("solve canceled")
)

// Engine owns the active constraint set for one puzzle instance. It is not
// safe for concurrent solves; batch processing needs one Engine and one
// Board per solve.
type Engine struct {
	constraints []rules.Constraint
}

func New(constraints []rules.Constraint) *Engine {
	return &Engine{constraints: constraints}
}

// propagate runs round-robin StepLogic passes until a full pass yields no
// progress (fixpoint), any constraint reports a contradiction, or the board
// is fully finalized and consistent.
func (e *Engine) propagate(b *board.Board, sink explain.Sink, bruteForcing bool) domain.LogicResult {
	for {
		pass := domain.LogicNone
		for _, c := range e.constraints {
			res := c.StepLogic(b, sink, bruteForcing)
			if res == domain.LogicInvalid {
				return domain.LogicInvalid
			}
			pass = pass.Combine(res)
		}
		res := e.assignSingles(b, sink)
		if res == domain.LogicInvalid {
			return domain.LogicInvalid
		}
		pass = pass.Combine(res)
		if b.AllFinalized() {
			if e.consistent(b) {
				return domain.LogicComplete
			}
			return domain.LogicInvalid
		}
		if pass == domain.LogicNone {
			return domain.LogicNone
		}
	}
}

// assignSingles finalizes any cell left with exactly one candidate,
// re-verifying the forced value against every constraint first.
func (e *Engine) assignSingles(b *board.Board, sink explain.Sink) domain.LogicResult {
	res := domain.LogicNone
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if b.Finalized(r, c) || b.CandidateCount(r, c) != 1 {
				continue
			}
			v := b.Candidates(r, c)[0]
			if !e.admissible(b, r, c, v) {
				return domain.LogicInvalid
			}
			if sink != nil {
				sink.Explainf("only %d fits at R%dC%d", v, r+1, c+1)
			}
			res = res.Combine(b.Fix(r, c, v))
		}
	}
	return res
}

// admissible asks every constraint whether value may stand at (r, c).
func (e *Engine) admissible(b *board.Board, r, c, v int) bool {
	for _, con := range e.constraints {
		if !con.EnforceConstraint(b, r, c, v) {
			return false
		}
	}
	return true
}

// consistent re-verifies every finalized cell against every constraint.
func (e *Engine) consistent(b *board.Board) bool {
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if !b.Finalized(r, c) {
				continue
			}
			if !e.admissible(b, r, c, b.Value(r, c)) {
				return false
			}
		}
	}
	return true
}

// initAll runs InitCandidates across all constraints. Order matters only for
// convergence speed, never for correctness.
func (e *Engine) initAll(b *board.Board) domain.LogicResult {
	res := domain.LogicNone
	for _, c := range e.constraints {
		step := c.InitCandidates(b)
		if step == domain.LogicInvalid {
			return domain.LogicInvalid
		}
		res = res.Combine(step)
	}
	return res
}

func newStats(start time.Time, nodes int) ports.Stats {
	return ports.Stats{Nodes: nodes, Duration: time.Since(start)}
}
