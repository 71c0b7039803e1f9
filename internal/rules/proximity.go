package rules

import (
	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
)

// proximityRadius is the king's-move (Chebyshev) neighborhood radius.
const proximityRadius = 2

// Proximity declares a set of "anti" cells. An anti cell must not share its
// value with any ordinary cell within king's-move distance 2; every ordinary
// cell must have at least one same-valued ordinary neighbor within that
// radius.
type Proximity struct {
	anti  map[domain.Coord]bool
	cells []domain.Coord // declared anti cells, in declaration order
}

// NewProximity builds the rule from exactly one parsed group: the anti cells.
func NewProximity(groups [][]domain.Coord) (*Proximity, error) {
	if len(groups) != 1 {
		return nil, &ConfigError{Rule: "proximity", Expected: 1, Actual: len(groups)}
	}
	anti := make(map[domain.Coord]bool, len(groups[0]))
	for _, c := range groups[0] {
		anti[c] = true
	}
	return &Proximity{anti: anti, cells: append([]domain.Coord(nil), groups[0]...)}, nil
}

func (p *Proximity) Name() string { return "Proximity" }

// IsAnti reports whether (row, col) is a declared anti cell.
func (p *Proximity) IsAnti(row, col int) bool {
	return p.anti[domain.Coord{Row: row, Col: col}]
}

// InitCandidates has no static narrowing: all deductions depend on
// finalized cells, handled in StepLogic.
func (p *Proximity) InitCandidates(b *board.Board) domain.LogicResult {
	return domain.LogicNone
}

// EnforceConstraint checks the king's-move neighborhood of (row, col): an
// anti cell must not match any finalized ordinary neighbor, and an ordinary
// cell must not match a finalized anti neighbor and must still be able to
// find a same-valued ordinary companion within the radius.
func (p *Proximity) EnforceConstraint(b *board.Board, row, col, value int) bool {
	if p.IsAnti(row, col) {
		ok := true
		p.neighbors(b, row, col, func(r, c int) {
			if !p.IsAnti(r, c) && b.Finalized(r, c) && b.Value(r, c) == value {
				ok = false
			}
		})
		return ok
	}
	companion := false
	clash := false
	p.neighbors(b, row, col, func(r, c int) {
		if p.IsAnti(r, c) {
			if b.Finalized(r, c) && b.Value(r, c) == value {
				clash = true
			}
			return
		}
		if b.Finalized(r, c) {
			if b.Value(r, c) == value {
				companion = true
			}
			return
		}
		if b.Has(r, c, value) {
			companion = true
		}
	})
	return !clash && companion
}

// StepLogic propagates from finalized cells: anti values are removed from
// ordinary neighbors and vice versa, and the unorthodox hidden single forces
// the last remaining companion of a finalized ordinary cell.
func (p *Proximity) StepLogic(b *board.Board, sink explain.Sink, bruteForcing bool) domain.LogicResult {
	res := domain.LogicNone
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			if !b.Finalized(row, col) {
				continue
			}
			v := b.Value(row, col)
			var step domain.LogicResult
			if p.IsAnti(row, col) {
				step = p.excludeOrdinary(b, row, col, v, sink)
			} else {
				step = p.excludeAnti(b, row, col, v, sink)
				if step != domain.LogicInvalid {
					step = step.Combine(p.forceCompanion(b, row, col, v, sink))
				}
			}
			if step == domain.LogicInvalid {
				return domain.LogicInvalid
			}
			res = res.Combine(step)
		}
	}
	return res
}

// excludeOrdinary removes a finalized anti cell's value from every
// unfinalized ordinary neighbor within the radius.
func (p *Proximity) excludeOrdinary(b *board.Board, row, col, v int, sink explain.Sink) domain.LogicResult {
	res := domain.LogicNone
	p.neighbors(b, row, col, func(r, c int) {
		if res == domain.LogicInvalid || p.IsAnti(r, c) || b.Finalized(r, c) || !b.Has(r, c, v) {
			return
		}
		if sink != nil {
			sink.Explainf("%s: R%dC%d cannot be %d, anti cell R%dC%d holds it nearby",
				p.Name(), r+1, c+1, v, row+1, col+1)
		}
		res = res.Combine(b.Eliminate(r, c, v))
	})
	return res
}

// excludeAnti removes a finalized ordinary cell's value from neighboring
// anti cells. An anti neighbor already finalized to that value is a
// contradiction.
func (p *Proximity) excludeAnti(b *board.Board, row, col, v int, sink explain.Sink) domain.LogicResult {
	res := domain.LogicNone
	p.neighbors(b, row, col, func(r, c int) {
		if res == domain.LogicInvalid || !p.IsAnti(r, c) || !b.Has(r, c, v) {
			return
		}
		if b.Finalized(r, c) {
			res = domain.LogicInvalid
			return
		}
		if sink != nil {
			sink.Explainf("%s: anti cell R%dC%d cannot be %d, R%dC%d holds it nearby",
				p.Name(), r+1, c+1, v, row+1, col+1)
		}
		res = res.Combine(b.Eliminate(r, c, v))
	})
	return res
}

// forceCompanion applies the unorthodox hidden single: a finalized ordinary
// cell needs a same-valued ordinary neighbor within the radius; when exactly
// one unfinalized candidate slot remains, it is finalized directly. Zero
// remaining slots is a contradiction.
func (p *Proximity) forceCompanion(b *board.Board, row, col, v int, sink explain.Sink) domain.LogicResult {
	satisfied := false
	slots := make([]domain.Coord, 0, 2)
	p.neighbors(b, row, col, func(r, c int) {
		if p.IsAnti(r, c) {
			return
		}
		if b.Finalized(r, c) {
			if b.Value(r, c) == v {
				satisfied = true
			}
			return
		}
		if b.Has(r, c, v) {
			slots = append(slots, domain.Coord{Row: r, Col: c})
		}
	})
	if satisfied {
		return domain.LogicNone
	}
	switch len(slots) {
	case 0:
		if sink != nil {
			sink.Explainf("%s: R%dC%d has no remaining neighbor for %d", p.Name(), row+1, col+1, v)
		}
		return domain.LogicInvalid
	case 1:
		if sink != nil {
			sink.Explainf("%s: R%dC%d is the only companion left for %d at R%dC%d",
				p.Name(), slots[0].Row+1, slots[0].Col+1, v, row+1, col+1)
		}
		return b.Fix(slots[0].Row, slots[0].Col, v)
	}
	return domain.LogicNone
}

// neighbors visits every in-bounds cell within the king's-move radius,
// excluding (row, col) itself.
func (p *Proximity) neighbors(b *board.Board, row, col int, visit func(r, c int)) {
	for dr := -proximityRadius; dr <= proximityRadius; dr++ {
		for dc := -proximityRadius; dc <= proximityRadius; dc++ {
			r, c := row+dr, col+dc
			if (dr == 0 && dc == 0) || !b.InBounds(r, c) {
				continue
			}
			visit(r, c)
		}
	}
}
