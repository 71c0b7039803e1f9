package domain

// Coord identifies a cell on the board, zero-based.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Size fixes the board dimensions and the symbol range 1..MaxValue.
type Size struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	MaxValue int `json:"maxValue"`
}

// Given is a pre-filled cell of a puzzle definition.
type Given struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// RuleDef declares one rule of a puzzle: a kind plus its raw cell-group text.
// Groups syntax is what parser.Groups accepts, e.g. "R1C1 R1C4 ; R1C2 R1C3".
type RuleDef struct {
	Kind   string `json:"kind"`
	Groups string `json:"groups"`
}

// Puzzle is a persisted puzzle definition with metadata.
type Puzzle struct {
	ID        string    `json:"id,omitempty"`
	Seed      int64     `json:"seed,omitempty"`
	Size      Size      `json:"size"`
	Givens    []Given   `json:"givens,omitempty"`
	Rules     []RuleDef `json:"rules"`
	CreatedAt int64     `json:"createdAt,omitempty"`
	// Optional user metadata
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Size      Size   `json:"size"`
	CreatedAt int64  `json:"createdAt"`
}
