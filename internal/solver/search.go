package solver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
	"svw.info/gridlock/internal/ports"
)

// frame is one node of the explicit search stack: the board snapshot at the
// branch point, the chosen cell, and its still-untried candidate values.
type frame struct {
	snapshot *board.Board
	row, col int
	values   []int
}

func newFrame(b *board.Board) frame {
	row, col := pickCell(b)
	return frame{snapshot: b, row: row, col: col, values: b.Candidates(row, col)}
}

// pickCell selects the unfinalized cell with the fewest remaining
// candidates, tie-broken by position in reading order.
func pickCell(b *board.Board) (int, int) {
	bestR, bestC, bestN := -1, -1, -1
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if b.Finalized(r, c) {
				continue
			}
			n := b.CandidateCount(r, c)
			if bestN == -1 || n < bestN {
				bestR, bestC, bestN = r, c, n
			}
		}
	}
	return bestR, bestC
}

// Solve runs Init -> Propagate -> Search over a copy of b and returns the
// solved board. ErrNoSolution means the search space is exhausted; a
// configuration problem would have surfaced at rule construction instead.
func (e *Engine) Solve(ctx context.Context, b *board.Board, sink explain.Sink) (*board.Board, ports.Stats, error) {
	start := time.Now()
	work := b.Clone()
	if e.initAll(work) == domain.LogicInvalid {
		return nil, newStats(start, 0), ErrNoSolution
	}
	switch e.propagate(work, sink, false) {
	case domain.LogicInvalid:
		return nil, newStats(start, 0), ErrNoSolution
	case domain.LogicComplete:
		return work, newStats(start, 0), nil
	}
	solved, nodes, err := e.search(ctx, work)
	return solved, newStats(start, nodes), err
}

// search explores undetermined cells with an explicit frame stack so
// cancellation and backtracking do not depend on call-stack control flow.
// Each branch works on a fresh snapshot; popping a frame is the restore.
func (e *Engine) search(ctx context.Context, b *board.Board) (*board.Board, int, error) {
	nodes := 0
	stack := []frame{newFrame(b)}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			return nil, nodes, ErrCanceled
		}
		f := &stack[len(stack)-1]
		if len(f.values) == 0 {
			stack = stack[:len(stack)-1]
			logrus.WithFields(logrus.Fields{"depth": len(stack)}).Debug("backtrack")
			continue
		}
		v := f.values[0]
		f.values = f.values[1:]
		nodes++
		cand := f.snapshot.Clone()
		if cand.Fix(f.row, f.col, v) == domain.LogicInvalid || !e.admissible(cand, f.row, f.col, v) {
			continue
		}
		switch e.propagate(cand, nil, true) {
		case domain.LogicInvalid:
			continue
		case domain.LogicComplete:
			return cand, nodes, nil
		}
		logrus.WithFields(logrus.Fields{
			"row": f.row, "col": f.col, "value": v, "depth": len(stack),
		}).Debug("branch")
		stack = append(stack, newFrame(cand))
	}
	return nil, nodes, ErrNoSolution
}

// Unique counts solutions up to 2 and reports whether exactly one exists.
func (e *Engine) Unique(ctx context.Context, b *board.Board) (bool, ports.Stats, error) {
	start := time.Now()
	work := b.Clone()
	if e.initAll(work) == domain.LogicInvalid {
		return false, newStats(start, 0), nil
	}
	switch e.propagate(work, nil, true) {
	case domain.LogicInvalid:
		return false, newStats(start, 0), nil
	case domain.LogicComplete:
		// forced by sound deduction alone, so no second solution exists
		return true, newStats(start, 0), nil
	}
	nodes := 0
	count := 0
	stack := []frame{newFrame(work)}
	for len(stack) > 0 && count < 2 {
		if ctx.Err() != nil {
			return false, newStats(start, nodes), ErrCanceled
		}
		f := &stack[len(stack)-1]
		if len(f.values) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		v := f.values[0]
		f.values = f.values[1:]
		nodes++
		cand := f.snapshot.Clone()
		if cand.Fix(f.row, f.col, v) == domain.LogicInvalid || !e.admissible(cand, f.row, f.col, v) {
			continue
		}
		switch e.propagate(cand, nil, true) {
		case domain.LogicInvalid:
			continue
		case domain.LogicComplete:
			count++
			continue
		}
		stack = append(stack, newFrame(cand))
	}
	return count == 1, newStats(start, nodes), nil
}
