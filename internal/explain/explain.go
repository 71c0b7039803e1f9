package explain

import (
	"fmt"
	"strings"
)

// Sink receives human-readable rationale for deductions. A nil Sink means no
// formatting work happens anywhere in the engine; presence or absence never
// changes a deduction's outcome.
type Sink interface {
	Explainf(format string, args ...any)
}

// Buffer accumulates explanation lines for presentation.
type Buffer struct {
	lines []string
}

func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Explainf(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// Lines returns the accumulated explanations in deduction order.
func (b *Buffer) Lines() []string { return b.lines }

func (b *Buffer) String() string { return strings.Join(b.lines, "\n") }
