package rules

import (
	"errors"
	"reflect"
	"testing"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
)

func sumLine(t *testing.T, groups [][]domain.Coord) *SumLine {
	t.Helper()
	r, err := NewSumLine(groups)
	if err != nil {
		t.Fatalf("NewSumLine failed: %v", err)
	}
	return r
}

func TestSumLineGroupCountMismatch(t *testing.T) {
	_, err := NewSumLine([][]domain.Coord{{{Row: 0, Col: 0}, {Row: 0, Col: 1}}})
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("want ConfigError, got %v", err)
	}
	if cfg.Expected != 2 || cfg.Actual != 1 {
		t.Fatalf("ConfigError counts = %d/%d, want 2/1", cfg.Expected, cfg.Actual)
	}
}

func TestSumLineIntersectsReachableTotals(t *testing.T) {
	b := mustBoard(t, 4, 1, 4)
	// endpoints: {1,2,3} + {3} -> reachable {4,5,6}
	b.SetMask(0, 0, board.Bit(1)|board.Bit(2)|board.Bit(3))
	b.SetMask(0, 3, board.Bit(3))
	// segment: {2,3} + {3,4} -> reachable {5,6,7}
	b.SetMask(0, 1, board.Bit(2)|board.Bit(3))
	b.SetMask(0, 2, board.Bit(3)|board.Bit(4))

	r := sumLine(t, [][]domain.Coord{
		{{Row: 0, Col: 0}, {Row: 0, Col: 3}},
		{{Row: 0, Col: 1}, {Row: 0, Col: 2}},
	})

	sink := explain.NewBuffer()
	if res := r.StepLogic(b, sink, false); res != domain.LogicChanged {
		t.Fatalf("StepLogic = %v, want changed", res)
	}
	// common totals {5,6}: endpoint (0,0) loses 1 (1+3=4 unreachable)
	if got := b.Candidates(0, 0); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("endpoint candidates = %v, want [2 3]", got)
	}
	if !reflect.DeepEqual(r.endpoints.Allowed(), []int{5, 6}) {
		t.Fatalf("endpoints allowed = %v, want [5 6]", r.endpoints.Allowed())
	}
	if !reflect.DeepEqual(r.segment.Allowed(), []int{5, 6}) {
		t.Fatalf("segment allowed = %v, want [5 6]", r.segment.Allowed())
	}
	if len(sink.Lines()) == 0 {
		t.Fatal("expected explanation lines for the narrowing")
	}
}

func TestSumLineNilSinkSameOutcome(t *testing.T) {
	setup := func() *board.Board {
		b := mustBoard(t, 4, 1, 4)
		b.SetMask(0, 0, board.Bit(1)|board.Bit(2)|board.Bit(3))
		b.SetMask(0, 3, board.Bit(3))
		b.SetMask(0, 1, board.Bit(2)|board.Bit(3))
		b.SetMask(0, 2, board.Bit(3)|board.Bit(4))
		return b
	}
	groups := [][]domain.Coord{
		{{Row: 0, Col: 0}, {Row: 0, Col: 3}},
		{{Row: 0, Col: 1}, {Row: 0, Col: 2}},
	}
	withSink := setup()
	noSink := setup()
	r1, r2 := sumLine(t, groups), sumLine(t, groups)
	res1 := r1.StepLogic(withSink, explain.NewBuffer(), false)
	res2 := r2.StepLogic(noSink, nil, false)
	if res1 != res2 {
		t.Fatalf("sink changed the result: %v vs %v", res1, res2)
	}
	for c := 0; c < 4; c++ {
		if !reflect.DeepEqual(withSink.Candidates(0, c), noSink.Candidates(0, c)) {
			t.Fatalf("sink changed board state at column %d", c)
		}
	}
}

func TestSumLineDisjointTotalsIsInvalid(t *testing.T) {
	b := mustBoard(t, 4, 1, 4)
	b.SetMask(0, 0, board.Bit(1))
	b.SetMask(0, 3, board.Bit(1))
	b.SetMask(0, 1, board.Bit(4))
	b.SetMask(0, 2, board.Bit(4))
	r := sumLine(t, [][]domain.Coord{
		{{Row: 0, Col: 0}, {Row: 0, Col: 3}},
		{{Row: 0, Col: 1}, {Row: 0, Col: 2}},
	})
	if res := r.StepLogic(b, nil, false); res != domain.LogicInvalid {
		t.Fatalf("StepLogic = %v, want invalid", res)
	}
}

func TestSumLineInitSeedsSharedRange(t *testing.T) {
	b := mustBoard(t, 5, 1, 4)
	r := sumLine(t, [][]domain.Coord{
		{{Row: 0, Col: 0}, {Row: 0, Col: 4}},
		{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}},
	})
	if res := r.InitCandidates(b); res == domain.LogicInvalid {
		t.Fatalf("InitCandidates = %v", res)
	}
	// minSum = max(2,3) = 3, maxSum = min(2,3) x 4 = 8
	if got := r.endpoints.Allowed(); got[0] != 3 || got[len(got)-1] != 8 {
		t.Fatalf("endpoints allowed = %v, want range 3..8", got)
	}
	// idempotent: a second call with no board change makes no progress
	if res := r.InitCandidates(b); res == domain.LogicChanged {
		t.Fatal("second InitCandidates still reported changes")
	}
}

func TestSumLineEnforceConstraint(t *testing.T) {
	b := mustBoard(t, 4, 1, 4)
	b.SetMask(0, 0, board.Bit(1)|board.Bit(2))
	b.SetMask(0, 3, board.Bit(1))
	b.SetMask(0, 1, board.Bit(3))
	b.SetMask(0, 2, board.Bit(4)) // segment total fixed at 7
	r := sumLine(t, [][]domain.Coord{
		{{Row: 0, Col: 0}, {Row: 0, Col: 3}},
		{{Row: 0, Col: 1}, {Row: 0, Col: 2}},
	})
	// only a wider endpoint mask could reach 7; 1+1=2 and 2+1=3 cannot
	if r.EnforceConstraint(b, 0, 0, 1) {
		t.Fatal("EnforceConstraint accepted an unreachable total")
	}
	// non-member cells are always admissible for this rule
	if !r.EnforceConstraint(b, 3, 0, 1) {
		t.Fatal("EnforceConstraint rejected a non-member cell")
	}
}
