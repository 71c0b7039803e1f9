package generator

import (
	"context"
	"math/rand"
	"time"

	"svw.info/gridlock/internal/board"
	"svw.info/gridlock/internal/domain"
	"svw.info/gridlock/internal/ports"
	"svw.info/gridlock/internal/rules"
	"svw.info/gridlock/internal/solver"
)

// Generate creates a puzzle with a unique solution using seed and a target
// number of givens: fill a full random solution, then carve out clues while
// the engine still reports exactly one solution.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, givens int) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	size := g.Size
	rng := rand.New(rand.NewSource(seed))

	grid := make([][]int, size)
	for r := range grid {
		grid[r] = make([]int, size)
	}
	if !g.fillRandom(ctx, rng, grid) {
		return nil, ports.Stats{}, context.Canceled
	}

	positions := make([]int, size*size)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	deadline := start.Add(900 * time.Millisecond)
	nodes := 0
	remaining := size * size
	for _, pos := range positions {
		if time.Now().After(deadline) || remaining <= givens {
			break
		}
		r, c := pos/size, pos%size
		old := grid[r][c]
		grid[r][c] = 0
		b, err := g.boardFrom(grid)
		if err != nil {
			return nil, ports.Stats{}, err
		}
		eng := solver.New(rules.Classic(size, g.BoxW, g.BoxH))
		unique, st, _ := eng.Unique(ctx, b)
		nodes += st.Nodes
		if unique {
			remaining--
		} else {
			grid[r][c] = old
		}
	}

	p := &domain.Puzzle{
		Seed:      seed,
		Size:      domain.Size{Width: size, Height: size, MaxValue: size},
		Rules:     rules.ClassicDefs(size, g.BoxW, g.BoxH),
		CreatedAt: time.Now().UnixNano(),
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if grid[r][c] != 0 {
				p.Givens = append(p.Givens, domain.Given{Row: r, Col: c, Value: grid[r][c]})
			}
		}
	}
	return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

func (g *UniqueGenerator) boardFrom(grid [][]int) (*board.Board, error) {
	b, err := board.New(g.Size, g.Size, g.Size)
	if err != nil {
		return nil, err
	}
	for r := range grid {
		for c, v := range grid[r] {
			if v != 0 {
				b.Fix(r, c, v)
			}
		}
	}
	return b, nil
}

// fillRandom solves an empty grid into a full valid solution by random
// value ordering.
func (g *UniqueGenerator) fillRandom(ctx context.Context, rng *rand.Rand, grid [][]int) bool {
	size := g.Size
	nums := make([]int, size)
	for i := range nums {
		nums[i] = i + 1
	}
	var dfs func(int, int) bool
	dfs = func(r, c int) bool {
		if ctx.Err() != nil {
			return false
		}
		if r == size {
			return true
		}
		nr, nc := r, c+1
		if nc == size {
			nr, nc = r+1, 0
		}
		rng.Shuffle(size, func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
		for _, v := range nums {
			if g.allowed(grid, r, c, v) {
				grid[r][c] = v
				if dfs(nr, nc) {
					return true
				}
				grid[r][c] = 0
			}
		}
		return false
	}
	return dfs(0, 0)
}

// allowed mirrors row/col/box checks locally for the generator.
func (g *UniqueGenerator) allowed(grid [][]int, r, c, v int) bool {
	for i := 0; i < g.Size; i++ {
		if grid[r][i] == v || grid[i][c] == v {
			return false
		}
	}
	br, bc := (r/g.BoxH)*g.BoxH, (c/g.BoxW)*g.BoxW
	for dr := 0; dr < g.BoxH; dr++ {
		for dc := 0; dc < g.BoxW; dc++ {
			if grid[br+dr][bc+dc] == v {
				return false
			}
		}
	}
	return true
}
