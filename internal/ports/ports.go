package ports

import (
	"context"
	"time"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver runs the full Init -> Propagate -> Search pipeline over one board
// and can test solution uniqueness. A nil sink skips explanation formatting.
type Solver interface {
	Solve(ctx context.Context, b *board.Board, sink explain.Sink) (*board.Board, Stats, error)
	Unique(ctx context.Context, b *board.Board) (bool, Stats, error)
}

// Validator re-verifies every finalized cell against the active rule set.
type Validator interface {
	Validate(ctx context.Context, b *board.Board) (ok bool, conflicts []domain.Coord, err error)
}

// Generator creates new puzzle definitions with a target number of givens.
type Generator interface {
	Generate(ctx context.Context, seed int64, givens int) (*domain.Puzzle, Stats, error)
}

// Storage persists and retrieves puzzle definitions as JSON.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
