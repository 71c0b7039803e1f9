package rules

import (
	"fmt"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
)

// UniqueGroup requires all cells of one group to hold distinct values.
// StepLogic covers peer elimination plus naked and hidden singles within
// the group.
type UniqueGroup struct {
	name  string
	cells []domain.Coord
}

func NewUniqueGroup(name string, cells []domain.Coord) *UniqueGroup {
	return &UniqueGroup{name: name, cells: append([]domain.Coord(nil), cells...)}
}

// NewUniqueFromGroups builds the rule from exactly one parsed cell group.
func NewUniqueFromGroups(groups [][]domain.Coord) (*UniqueGroup, error) {
	if len(groups) != 1 {
		return nil, &ConfigError{Rule: "unique", Expected: 1, Actual: len(groups)}
	}
	return NewUniqueGroup("Unique", groups[0]), nil
}

func (u *UniqueGroup) Name() string { return u.name }

// InitCandidates removes every finalized value from its unfinalized peers.
func (u *UniqueGroup) InitCandidates(b *board.Board) domain.LogicResult {
	return u.excludePeers(b, nil)
}

// EnforceConstraint checks that no other finalized cell of the group holds
// the value. Local to the group's cells.
func (u *UniqueGroup) EnforceConstraint(b *board.Board, row, col, value int) bool {
	if !u.contains(row, col) {
		return true
	}
	for _, cell := range u.cells {
		if cell.Row == row && cell.Col == col {
			continue
		}
		if b.Finalized(cell.Row, cell.Col) && b.Value(cell.Row, cell.Col) == value {
			return false
		}
	}
	return true
}

func (u *UniqueGroup) contains(row, col int) bool {
	for _, cell := range u.cells {
		if cell.Row == row && cell.Col == col {
			return true
		}
	}
	return false
}

func (u *UniqueGroup) StepLogic(b *board.Board, sink explain.Sink, bruteForcing bool) domain.LogicResult {
	res := u.excludePeers(b, sink)
	if res == domain.LogicInvalid {
		return res
	}
	step := u.nakedSingles(b, sink)
	if step == domain.LogicInvalid {
		return step
	}
	res = res.Combine(step)
	step = u.hiddenSingles(b, sink)
	if step == domain.LogicInvalid {
		return step
	}
	return res.Combine(step)
}

func (u *UniqueGroup) excludePeers(b *board.Board, sink explain.Sink) domain.LogicResult {
	res := domain.LogicNone
	for _, cell := range u.cells {
		if !b.Finalized(cell.Row, cell.Col) {
			continue
		}
		v := b.Value(cell.Row, cell.Col)
		for _, peer := range u.cells {
			if peer == cell {
				continue
			}
			if b.Finalized(peer.Row, peer.Col) {
				if b.Value(peer.Row, peer.Col) == v {
					return domain.LogicInvalid
				}
				continue
			}
			if !b.Has(peer.Row, peer.Col, v) {
				continue
			}
			if sink != nil {
				sink.Explainf("%s: R%dC%d cannot be %d, already taken by R%dC%d",
					u.name, peer.Row+1, peer.Col+1, v, cell.Row+1, cell.Col+1)
			}
			res = res.Combine(b.Eliminate(peer.Row, peer.Col, v))
			if res == domain.LogicInvalid {
				return res
			}
		}
	}
	return res
}

// nakedSingles finalizes group cells left with exactly one candidate.
func (u *UniqueGroup) nakedSingles(b *board.Board, sink explain.Sink) domain.LogicResult {
	res := domain.LogicNone
	for _, cell := range u.cells {
		if b.Finalized(cell.Row, cell.Col) || b.CandidateCount(cell.Row, cell.Col) != 1 {
			continue
		}
		v := b.Candidates(cell.Row, cell.Col)[0]
		if sink != nil {
			sink.Explainf("%s: only %d fits at R%dC%d", u.name, v, cell.Row+1, cell.Col+1)
		}
		res = res.Combine(b.Fix(cell.Row, cell.Col, v))
		if res == domain.LogicInvalid {
			return res
		}
	}
	return res
}

// hiddenSingles finalizes a value whose only eligible slot in the group is a
// single unfinalized cell.
func (u *UniqueGroup) hiddenSingles(b *board.Board, sink explain.Sink) domain.LogicResult {
	res := domain.LogicNone
	for v := 1; v <= b.MaxValue(); v++ {
		taken := false
		var slot *domain.Coord
		count := 0
		for i, cell := range u.cells {
			if b.Finalized(cell.Row, cell.Col) {
				if b.Value(cell.Row, cell.Col) == v {
					taken = true
					break
				}
				continue
			}
			if b.Has(cell.Row, cell.Col, v) {
				count++
				slot = &u.cells[i]
			}
		}
		if taken || count != 1 {
			continue
		}
		if sink != nil {
			sink.Explainf("%s: R%dC%d is the only place for %d", u.name, slot.Row+1, slot.Col+1, v)
		}
		res = res.Combine(b.Fix(slot.Row, slot.Col, v))
		if res == domain.LogicInvalid {
			return res
		}
	}
	return res
}

// Classic builds the row, column, and box uniqueness rules of a standard
// size x size grid with boxW x boxH boxes.
func Classic(size, boxW, boxH int) []Constraint {
	var out []Constraint
	for r := 0; r < size; r++ {
		cells := make([]domain.Coord, size)
		for c := 0; c < size; c++ {
			cells[c] = domain.Coord{Row: r, Col: c}
		}
		out = append(out, NewUniqueGroup(fmt.Sprintf("Row %d", r+1), cells))
	}
	for c := 0; c < size; c++ {
		cells := make([]domain.Coord, size)
		for r := 0; r < size; r++ {
			cells[r] = domain.Coord{Row: r, Col: c}
		}
		out = append(out, NewUniqueGroup(fmt.Sprintf("Column %d", c+1), cells))
	}
	if boxW > 0 && boxH > 0 && size%boxW == 0 && size%boxH == 0 {
		n := 0
		for br := 0; br < size; br += boxH {
			for bc := 0; bc < size; bc += boxW {
				n++
				cells := make([]domain.Coord, 0, boxW*boxH)
				for dr := 0; dr < boxH; dr++ {
					for dc := 0; dc < boxW; dc++ {
						cells = append(cells, domain.Coord{Row: br + dr, Col: bc + dc})
					}
				}
				out = append(out, NewUniqueGroup(fmt.Sprintf("Box %d", n), cells))
			}
		}
	}
	return out
}

// ClassicDefs is Classic expressed as declarative rule definitions, so a
// generated classic puzzle round-trips through storage and the parser.
func ClassicDefs(size, boxW, boxH int) []domain.RuleDef {
	var out []domain.RuleDef
	groupText := func(cells []domain.Coord) string {
		s := ""
		for i, c := range cells {
			if i > 0 {
				s += " "
			}
			s += fmt.Sprintf("R%dC%d", c.Row+1, c.Col+1)
		}
		return s
	}
	for _, con := range Classic(size, boxW, boxH) {
		u := con.(*UniqueGroup)
		out = append(out, domain.RuleDef{Kind: "unique", Groups: groupText(u.cells)})
	}
	return out
}
