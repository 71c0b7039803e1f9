package rules

import (
	"fmt"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
)

// SumLine requires a pair of endpoint cells and a full line segment to be
// able to reach a common total. It composes two aggregate sum groups and
// keeps their achievable-sum sets intersecting non-emptily.
type SumLine struct {
	endpoints *SumGroup
	segment   *SumGroup
}

// NewSumLine builds the rule from exactly two parsed cell groups: the
// endpoint pair first, the segment second.
func NewSumLine(groups [][]domain.Coord) (*SumLine, error) {
	if len(groups) != 2 {
		return nil, &ConfigError{Rule: "sum line", Expected: 2, Actual: len(groups)}
	}
	if len(groups[0]) != 2 {
		return nil, fmt.Errorf("sum line: endpoint group must hold 2 cells, got %d", len(groups[0]))
	}
	if len(groups[1]) == 0 {
		return nil, fmt.Errorf("sum line: segment group is empty")
	}
	return &SumLine{
		endpoints: NewSumGroup(groups[0]),
		segment:   NewSumGroup(groups[1]),
	}, nil
}

func (r *SumLine) Name() string { return "Sum Line" }

// InitCandidates seeds both groups with the shared feasible total range:
// minSum is the larger group size (one per cell at minimum), maxSum is the
// smaller group size times MaxValue.
func (r *SumLine) InitCandidates(b *board.Board) domain.LogicResult {
	ne, ns := len(r.endpoints.Cells()), len(r.segment.Cells())
	lo := max(ne, ns)
	hi := min(ne, ns) * b.MaxValue()
	if lo > hi {
		return domain.LogicInvalid
	}
	shared := make([]int, 0, hi-lo+1)
	for s := lo; s <= hi; s++ {
		shared = append(shared, s)
	}
	res := r.endpoints.Init(b, shared)
	if res == domain.LogicInvalid {
		return res
	}
	return res.Combine(r.segment.Init(b, shared))
}

// EnforceConstraint checks that with (row, col) held at value, the two
// groups can still reach a common total. Inherently group-wide: it
// recomputes both groups' reachable sums rather than a local neighborhood.
func (r *SumLine) EnforceConstraint(b *board.Board, row, col, value int) bool {
	if !r.endpoints.Contains(row, col) && !r.segment.Contains(row, col) {
		return true
	}
	es := r.endpoints.PossibleSumsAssuming(b, row, col, value)
	ss := r.segment.PossibleSumsAssuming(b, row, col, value)
	return len(intersect(es, ss)) > 0
}

// StepLogic recomputes both groups' possible sums, intersects them, and
// re-narrows each group against the intersection.
func (r *SumLine) StepLogic(b *board.Board, sink explain.Sink, bruteForcing bool) domain.LogicResult {
	es := r.endpoints.PossibleSums(b)
	ss := r.segment.PossibleSums(b)
	common := intersect(es, ss)
	if len(common) == 0 {
		if sink != nil {
			sink.Explainf("%s: endpoints and segment share no reachable total", r.Name())
		}
		return domain.LogicInvalid
	}
	if sink != nil && !bruteForcing && (len(common) < len(es) || len(common) < len(ss)) {
		sink.Explainf("%s: surviving totals %v", r.Name(), common)
	}
	res := r.endpoints.StepLogic(b, common, sink)
	if res == domain.LogicInvalid {
		return res
	}
	return res.Combine(r.segment.StepLogic(b, common, sink))
}
