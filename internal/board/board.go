package board

import (
	"fmt"
	"math/bits"

	"svw.info/gridlock/internal/domain"
)

// Mask is a per-cell candidate set. Bit v (1 <= v <= MaxValue) marks value v
// as still possible; bit 0 is the finalized flag, set when the cell holds a
// single committed value.
type Mask uint32

const finalizedFlag Mask = 1

// Bit returns the candidate bit for value v.
func Bit(v int) Mask { return 1 << uint(v) }

// candidates strips the finalized flag.
func (m Mask) candidates() Mask { return m &^ finalizedFlag }

// Board is a W x H grid of candidate masks over values 1..MaxValue.
// All mutation funnels through it; an empty candidate set is reported as
// LogicInvalid at the mutation site, never stored silently.
type Board struct {
	width    int
	height   int
	maxValue int
	cells    []Mask
}

// New creates a board with every cell open to all values 1..maxValue.
func New(width, height, maxValue int) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("board: invalid dimensions %dx%d", width, height)
	}
	if maxValue < 1 || maxValue > 31 {
		return nil, fmt.Errorf("board: max value %d out of range 1..31", maxValue)
	}
	full := Mask(0)
	for v := 1; v <= maxValue; v++ {
		full |= Bit(v)
	}
	b := &Board{width: width, height: height, maxValue: maxValue, cells: make([]Mask, width*height)}
	for i := range b.cells {
		b.cells[i] = full
	}
	return b, nil
}

func (b *Board) Width() int    { return b.width }
func (b *Board) Height() int   { return b.height }
func (b *Board) MaxValue() int { return b.maxValue }

func (b *Board) idx(row, col int) int { return row*b.width + col }

// InBounds reports whether (row, col) is on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Mask returns the cell's current mask (candidate bits plus finalized flag).
func (b *Board) Mask(row, col int) Mask { return b.cells[b.idx(row, col)] }

// SetMask writes a candidate set. Returns LogicInvalid when the set is empty,
// LogicChanged when the stored mask differs from before, LogicNone otherwise.
// A single-candidate write does not finalize; finalization goes through Fix.
func (b *Board) SetMask(row, col int, m Mask) domain.LogicResult {
	i := b.idx(row, col)
	next := m.candidates() | (b.cells[i] & finalizedFlag)
	if next.candidates() == 0 {
		b.cells[i] = next
		return domain.LogicInvalid
	}
	if b.cells[i] == next {
		return domain.LogicNone
	}
	b.cells[i] = next
	return domain.LogicChanged
}

// Has reports whether value v is still a candidate of the cell.
func (b *Board) Has(row, col, v int) bool {
	return b.cells[b.idx(row, col)]&Bit(v) != 0
}

// Eliminate removes value v from the cell's candidates. Removing the last
// candidate is the contradiction signal and returns LogicInvalid.
func (b *Board) Eliminate(row, col, v int) domain.LogicResult {
	i := b.idx(row, col)
	if b.cells[i]&Bit(v) == 0 {
		return domain.LogicNone
	}
	b.cells[i] &^= Bit(v)
	if b.cells[i].candidates() == 0 {
		return domain.LogicInvalid
	}
	return domain.LogicChanged
}

// Fix commits the cell to value v, setting the value bit and the finalized
// flag atomically. Fixing to a value no longer in the mask is LogicInvalid.
func (b *Board) Fix(row, col, v int) domain.LogicResult {
	i := b.idx(row, col)
	if b.cells[i]&Bit(v) == 0 {
		b.cells[i] = b.cells[i] & finalizedFlag
		return domain.LogicInvalid
	}
	next := Bit(v) | finalizedFlag
	if b.cells[i] == next {
		return domain.LogicNone
	}
	b.cells[i] = next
	return domain.LogicChanged
}

// Finalized reports whether the cell holds a committed value.
func (b *Board) Finalized(row, col int) bool {
	return b.cells[b.idx(row, col)]&finalizedFlag != 0
}

// Value returns the committed value of a finalized cell, or 0.
func (b *Board) Value(row, col int) int {
	m := b.cells[b.idx(row, col)]
	if m&finalizedFlag == 0 {
		return 0
	}
	return bits.TrailingZeros32(uint32(m.candidates()))
}

// CandidateCount returns the number of values still possible for the cell.
func (b *Board) CandidateCount(row, col int) int {
	return bits.OnesCount32(uint32(b.cells[b.idx(row, col)].candidates()))
}

// Candidates returns the cell's possible values in ascending order.
func (b *Board) Candidates(row, col int) []int {
	m := b.cells[b.idx(row, col)].candidates()
	out := make([]int, 0, bits.OnesCount32(uint32(m)))
	for m != 0 {
		v := bits.TrailingZeros32(uint32(m))
		out = append(out, v)
		m &^= Bit(v)
	}
	return out
}

// AllFinalized reports whether every cell is committed.
func (b *Board) AllFinalized() bool {
	for i := range b.cells {
		if b.cells[i]&finalizedFlag == 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent snapshot for search branching.
func (b *Board) Clone() *Board {
	out := &Board{width: b.width, height: b.height, maxValue: b.maxValue, cells: make([]Mask, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}
