package rules

import (
	"sort"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
)

// SumGroup is the shared aggregate helper for "the values across this set of
// cells must sum to one of these totals". It owns an ordered cell list and
// the currently-allowed sum set; reachable sums are recomputed from current
// board contents each step, never patched incrementally. The helper itself
// permits repeated values within a group; distinctness comes only from
// whatever uniqueness rules cover the same cells.
type SumGroup struct {
	cells   []domain.Coord
	allowed []int // sorted ascending
}

func NewSumGroup(cells []domain.Coord) *SumGroup {
	return &SumGroup{cells: append([]domain.Coord(nil), cells...)}
}

func (g *SumGroup) Cells() []domain.Coord { return g.cells }

// Allowed returns the currently-allowed totals, sorted ascending.
func (g *SumGroup) Allowed() []int { return g.allowed }

// Contains reports whether (row, col) belongs to the group.
func (g *SumGroup) Contains(row, col int) bool {
	for _, c := range g.cells {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

// Init seeds the allowed-sum set, clamped to the feasible range
// [group size, group size x MaxValue], and eliminates from each cell any
// value that cannot participate in reaching an allowed total.
func (g *SumGroup) Init(b *board.Board, allowedSums []int) domain.LogicResult {
	lo := len(g.cells)
	hi := len(g.cells) * b.MaxValue()
	g.allowed = g.allowed[:0]
	seen := make(map[int]bool, len(allowedSums))
	for _, s := range allowedSums {
		if s >= lo && s <= hi && !seen[s] {
			seen[s] = true
			g.allowed = append(g.allowed, s)
		}
	}
	sort.Ints(g.allowed)
	if len(g.allowed) == 0 {
		return domain.LogicInvalid
	}
	return g.narrow(b, g.allowed, nil)
}

// PossibleSums recomputes, purely from current per-cell bitmasks, the totals
// still achievable by some assignment. Read-only, deterministic, and
// order-independent; returns nil when none exist.
func (g *SumGroup) PossibleSums(b *board.Board) []int {
	return collect(g.reachable(b, -1, 0))
}

// PossibleSumsAssuming is PossibleSums with one cell pinned to a value.
func (g *SumGroup) PossibleSumsAssuming(b *board.Board, row, col, value int) []int {
	for i, c := range g.cells {
		if c.Row == row && c.Col == col {
			return collect(g.reachable(b, i, value))
		}
	}
	return g.PossibleSums(b)
}

// StepLogic intersects the freshly computed possible sums with allowedSums;
// when the intersection is empty the group is infeasible, otherwise cell
// candidates inconsistent with every surviving total are eliminated.
func (g *SumGroup) StepLogic(b *board.Board, allowedSums []int, sink explain.Sink) domain.LogicResult {
	possible := intersect(g.PossibleSums(b), allowedSums)
	if len(possible) == 0 {
		return domain.LogicInvalid
	}
	g.allowed = possible
	return g.narrow(b, possible, sink)
}

// narrow removes, from each cell, candidates that cannot contribute to any
// of the given totals together with some assignment of the other cells.
func (g *SumGroup) narrow(b *board.Board, sums []int, sink explain.Sink) domain.LogicResult {
	res := domain.LogicNone
	for i, cell := range g.cells {
		rest := g.reachable(b, i, 0)
		for _, v := range b.Candidates(cell.Row, cell.Col) {
			if contributes(v, sums, rest) {
				continue
			}
			if sink != nil {
				sink.Explainf("R%dC%d cannot be %d: no group total remains reachable",
					cell.Row+1, cell.Col+1, v)
			}
			res = res.Combine(b.Eliminate(cell.Row, cell.Col, v))
			if res == domain.LogicInvalid {
				return res
			}
		}
	}
	return res
}

// reachable computes the achievable-sum bitset over the group's cells via
// subset-sum DP. Cell skip is excluded (pinned < 1) or pinned to a value.
func (g *SumGroup) reachable(b *board.Board, skip, pinned int) []bool {
	cur := []bool{true}
	for i, cell := range g.cells {
		var vals []int
		if i == skip {
			if pinned < 1 {
				continue
			}
			vals = []int{pinned}
		} else {
			vals = b.Candidates(cell.Row, cell.Col)
		}
		if len(vals) == 0 {
			return nil
		}
		next := make([]bool, len(cur)+vals[len(vals)-1])
		for s, ok := range cur {
			if !ok {
				continue
			}
			for _, v := range vals {
				next[s+v] = true
			}
		}
		cur = next
	}
	return cur
}

func contributes(v int, sums []int, rest []bool) bool {
	for _, t := range sums {
		if t-v >= 0 && t-v < len(rest) && rest[t-v] {
			return true
		}
	}
	return false
}

func collect(reach []bool) []int {
	var out []int
	for s := 1; s < len(reach); s++ {
		if reach[s] {
			out = append(out, s)
		}
	}
	return out
}

// intersect returns the values present in both sorted slices, ascending.
func intersect(a, b []int) []int {
	in := make(map[int]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	var out []int
	for _, s := range a {
		if in[s] {
			out = append(out, s)
		}
	}
	return out
}
