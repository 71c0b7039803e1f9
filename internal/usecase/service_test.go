package usecase

import (
	"context"
	"testing"
	"time"

	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/rules"
)

func classic4(givens ...domain.Given) *domain.Puzzle {
	return &domain.Puzzle{
		Size:   domain.Size{Width: 4, Height: 4, MaxValue: 4},
		Givens: givens,
		Rules:  rules.ClassicDefs(4, 2, 2),
	}
}

func TestSolveFromDefinition(t *testing.T) {
	p := classic4(
		domain.Given{Row: 0, Col: 0, Value: 1}, domain.Given{Row: 0, Col: 1, Value: 2},
		domain.Given{Row: 1, Col: 0, Value: 3}, domain.Given{Row: 1, Col: 1, Value: 4},
		domain.Given{Row: 2, Col: 2, Value: 4}, domain.Given{Row: 2, Col: 3, Value: 3},
		domain.Given{Row: 3, Col: 2, Value: 2}, domain.Given{Row: 3, Col: 3, Value: 1},
	)
	u := NewService(nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := u.Solve(ctx, p, true)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !out.Board.AllFinalized() {
		t.Fatal("solved board has unfinalized cells")
	}
	if len(out.Explanations) == 0 {
		t.Fatal("explanations requested but none produced")
	}
}

func TestSolveWithSumLineDefinition(t *testing.T) {
	p := classic4(
		domain.Given{Row: 1, Col: 0, Value: 3}, domain.Given{Row: 1, Col: 1, Value: 4},
		domain.Given{Row: 1, Col: 2, Value: 1}, domain.Given{Row: 1, Col: 3, Value: 2},
		domain.Given{Row: 2, Col: 0, Value: 2}, domain.Given{Row: 2, Col: 1, Value: 1},
		domain.Given{Row: 2, Col: 2, Value: 4}, domain.Given{Row: 2, Col: 3, Value: 3},
		domain.Given{Row: 3, Col: 0, Value: 4}, domain.Given{Row: 3, Col: 1, Value: 3},
		domain.Given{Row: 3, Col: 2, Value: 2}, domain.Given{Row: 3, Col: 3, Value: 1},
	)
	p.Rules = append(p.Rules, domain.RuleDef{Kind: "sumline", Groups: "R1C1 R1C4 ; R1C2 R1C3"})
	u := NewService(nil, nil)
	out, err := u.Solve(context.Background(), p, false)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	want := []int{1, 2, 3, 4}
	for c, v := range want {
		if out.Board.Value(0, c) != v {
			t.Fatalf("cell (0,%d) = %d, want %d", c, out.Board.Value(0, c), v)
		}
	}
}

func TestSetupRejectsBadDefinitions(t *testing.T) {
	cases := []struct {
		name string
		p    *domain.Puzzle
	}{
		{"given out of bounds", classic4(domain.Given{Row: 9, Col: 0, Value: 1})},
		{"given value out of range", classic4(domain.Given{Row: 0, Col: 0, Value: 9})},
		{"bad rule kind", &domain.Puzzle{
			Size:  domain.Size{Width: 4, Height: 4, MaxValue: 4},
			Rules: []domain.RuleDef{{Kind: "zigzag", Groups: "R1C1"}},
		}},
		{"conflicting givens", classic4(
			domain.Given{Row: 0, Col: 0, Value: 1},
			domain.Given{Row: 0, Col: 0, Value: 2},
		)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Setup(tc.p); err == nil {
				t.Fatal("Setup accepted a bad definition")
			}
		})
	}
}

func TestValidateGrid(t *testing.T) {
	p := classic4()
	u := NewService(nil, nil)
	ok, conf, err := u.Validate(context.Background(), p, [][]int{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	if err != nil || !ok || len(conf) != 0 {
		t.Fatalf("valid grid rejected: ok=%v conf=%v err=%v", ok, conf, err)
	}

	ok, conf, err = u.Validate(context.Background(), p, [][]int{
		{1, 1, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	if err != nil || ok || len(conf) == 0 {
		t.Fatalf("duplicate row values accepted: ok=%v conf=%v err=%v", ok, conf, err)
	}
}

func TestNotConfiguredDependencies(t *testing.T) {
	u := NewService(nil, nil)
	if _, _, err := u.Generate(context.Background(), 1, 30); err != errNotConfigured {
		t.Fatalf("Generate err = %v, want errNotConfigured", err)
	}
	if err := u.Save(context.Background(), &domain.Puzzle{}); err != errNotConfigured {
		t.Fatalf("Save err = %v, want errNotConfigured", err)
	}
}
