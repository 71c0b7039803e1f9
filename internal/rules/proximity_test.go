package rules

import (
	"errors"
	"testing"

	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
)

func proximity(t *testing.T, anti ...domain.Coord) *Proximity {
	t.Helper()
	p, err := NewProximity([][]domain.Coord{anti})
	if err != nil {
		t.Fatalf("NewProximity failed: %v", err)
	}
	return p
}

func TestProximityGroupCountMismatch(t *testing.T) {
	_, err := NewProximity(nil)
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("want ConfigError, got %v", err)
	}
}

func TestAntiCellExcludesNeighborhood(t *testing.T) {
	b := mustBoard(t, 5, 5, 5)
	p := proximity(t, domain.Coord{Row: 2, Col: 2})
	b.Fix(2, 2, 3)

	if res := p.StepLogic(b, nil, false); res != domain.LogicChanged {
		t.Fatalf("StepLogic = %v, want changed", res)
	}
	// every ordinary cell of the 5x5 board is within king's-move distance 2
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if r == 2 && c == 2 {
				continue
			}
			if b.Has(r, c, 3) {
				t.Fatalf("cell (%d,%d) still admits 3", r, c)
			}
		}
	}
	if b.Value(2, 2) != 3 {
		t.Fatal("anti cell lost its own value")
	}
}

func TestOrdinaryCellExcludesAntiNeighbors(t *testing.T) {
	b := mustBoard(t, 5, 5, 5)
	p := proximity(t, domain.Coord{Row: 2, Col: 2})
	b.Fix(0, 1, 4)

	if res := p.StepLogic(b, nil, false); res != domain.LogicChanged {
		t.Fatalf("StepLogic = %v, want changed", res)
	}
	if b.Has(2, 2, 4) {
		t.Fatal("anti cell still admits the neighboring ordinary value")
	}
}

func TestUnorthodoxHiddenSingleForcesCompanion(t *testing.T) {
	b := mustBoard(t, 5, 5, 5)
	p := proximity(t, domain.Coord{Row: 2, Col: 2})
	b.Fix(0, 0, 1)
	// strip 1 from every ordinary neighbor of (0,0) except (1,1)
	for _, cell := range []domain.Coord{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}} {
		b.Eliminate(cell.Row, cell.Col, 1)
	}

	sink := explain.NewBuffer()
	if res := p.StepLogic(b, sink, false); res != domain.LogicChanged {
		t.Fatalf("StepLogic = %v, want changed", res)
	}
	if !b.Finalized(1, 1) || b.Value(1, 1) != 1 {
		t.Fatalf("companion not forced: finalized=%v value=%d", b.Finalized(1, 1), b.Value(1, 1))
	}
	if len(sink.Lines()) == 0 {
		t.Fatal("expected an explanation for the forced companion")
	}
	// soundness: the freshly finalized cell passes its own rule
	if !p.EnforceConstraint(b, 1, 1, 1) {
		t.Fatal("EnforceConstraint rejects the value StepLogic just finalized")
	}
}

func TestNoCompanionLeftIsInvalid(t *testing.T) {
	b := mustBoard(t, 5, 5, 5)
	p := proximity(t, domain.Coord{Row: 2, Col: 2})
	b.Fix(0, 0, 1)
	for _, cell := range []domain.Coord{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 1}} {
		b.Eliminate(cell.Row, cell.Col, 1)
	}
	if res := p.StepLogic(b, nil, false); res != domain.LogicInvalid {
		t.Fatalf("StepLogic = %v, want invalid", res)
	}
}

func TestProximityEnforceConstraint(t *testing.T) {
	b := mustBoard(t, 5, 5, 5)
	p := proximity(t, domain.Coord{Row: 2, Col: 2})
	b.Fix(1, 1, 3)

	if p.EnforceConstraint(b, 2, 2, 3) {
		t.Fatal("anti cell accepted a value held by a nearby ordinary cell")
	}
	if !p.EnforceConstraint(b, 2, 2, 4) {
		t.Fatal("anti cell rejected an unrelated value")
	}
	// ordinary cell next to a finalized anti cell with the same value
	b2 := mustBoard(t, 5, 5, 5)
	p2 := proximity(t, domain.Coord{Row: 2, Col: 2})
	b2.Fix(2, 2, 5)
	if p2.EnforceConstraint(b2, 1, 1, 5) {
		t.Fatal("ordinary cell accepted the nearby anti value")
	}
	if !p2.EnforceConstraint(b2, 1, 1, 2) {
		t.Fatal("ordinary cell rejected an admissible value")
	}
}
