package usecase

import (
	"context"
	"errors"
	"fmt"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/explain"
	"svw.info/gridlock/internal/ports"
	"svw.info/gridlock/internal/rules"
	"svw.info/gridlock/internal/solver"
	"svw.info/gridlock/internal/validator"
)

// Service wires the puzzle-definition pipeline: construct board and rules
// from a definition, solve, validate, generate, persist.
type Service struct {
	Generator ports.Generator
	Storage   ports.Storage
}

func NewService(g ports.Generator, st ports.Storage) *Service {
	return &Service{Generator: g, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Setup materializes a puzzle definition: a board with the givens applied
// and the constructed rule set. Definition problems surface here as
// configuration errors; contradictory givens surface later as "no solution".
func Setup(p *domain.Puzzle) (*board.Board, []rules.Constraint, error) {
	b, err := board.New(p.Size.Width, p.Size.Height, p.Size.MaxValue)
	if err != nil {
		return nil, nil, err
	}
	for _, gv := range p.Givens {
		if !b.InBounds(gv.Row, gv.Col) || gv.Value < 1 || gv.Value > p.Size.MaxValue {
			return nil, nil, fmt.Errorf("given %d at R%dC%d outside the board", gv.Value, gv.Row+1, gv.Col+1)
		}
		if b.Fix(gv.Row, gv.Col, gv.Value) == domain.LogicInvalid {
			return nil, nil, fmt.Errorf("conflicting givens at R%dC%d", gv.Row+1, gv.Col+1)
		}
	}
	cons, err := buildRules(p)
	if err != nil {
		return nil, nil, err
	}
	return b, cons, nil
}

func buildRules(p *domain.Puzzle) ([]rules.Constraint, error) {
	cons := make([]rules.Constraint, 0, len(p.Rules))
	for i, def := range p.Rules {
		con, err := rules.Build(def, p.Size)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		cons = append(cons, con)
	}
	return cons, nil
}

// SolveOutcome carries the terminal state of one solve for presentation.
type SolveOutcome struct {
	Board        *board.Board
	Stats        ports.Stats
	Explanations []string
}

// Solve runs the full pipeline for one puzzle definition.
func (u *Service) Solve(ctx context.Context, p *domain.Puzzle, withExplanations bool) (*SolveOutcome, error) {
	b, cons, err := Setup(p)
	if err != nil {
		return nil, err
	}
	var sink explain.Sink
	var buf *explain.Buffer
	if withExplanations {
		buf = explain.NewBuffer()
		sink = buf
	}
	out, st, err := solver.New(cons).Solve(ctx, b, sink)
	if err != nil {
		return nil, err
	}
	outcome := &SolveOutcome{Board: out, Stats: st}
	if buf != nil {
		outcome.Explanations = buf.Lines()
	}
	return outcome, nil
}

// Validate checks a filled grid against a puzzle definition's rules.
func (u *Service) Validate(ctx context.Context, p *domain.Puzzle, grid [][]int) (bool, []domain.Coord, error) {
	cons, err := buildRules(p)
	if err != nil {
		return false, nil, err
	}
	b, err := board.New(p.Size.Width, p.Size.Height, p.Size.MaxValue)
	if err != nil {
		return false, nil, err
	}
	for r := range grid {
		for c, v := range grid[r] {
			if v == 0 {
				continue
			}
			if !b.InBounds(r, c) || v < 1 || v > p.Size.MaxValue {
				return false, nil, fmt.Errorf("value %d at R%dC%d outside the board", v, r+1, c+1)
			}
			b.Fix(r, c, v)
		}
	}
	return validator.New(cons).Validate(ctx, b)
}

func (u *Service) Generate(ctx context.Context, seed int64, givens int) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, givens)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
