package validator

import (
	"context"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/rules"
)

// RuleValidator re-verifies every finalized cell against the active rule
// set. Presentation-oriented: it reports conflicting cells rather than
// aborting at the first one.
type RuleValidator struct {
	constraints []rules.Constraint
}

func New(constraints []rules.Constraint) *RuleValidator {
	return &RuleValidator{constraints: constraints}
}

func (v *RuleValidator) Validate(ctx context.Context, b *board.Board) (bool, []domain.Coord, error) {
	conf := make([]domain.Coord, 0, 8)
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if err := ctx.Err(); err != nil {
				return false, nil, err
			}
			if !b.Finalized(r, c) {
				continue
			}
			val := b.Value(r, c)
			for _, con := range v.constraints {
				if !con.EnforceConstraint(b, r, c, val) {
					conf = append(conf, domain.Coord{Row: r, Col: c})
					break
				}
			}
		}
	}
	return len(conf) == 0, conf, nil
}
