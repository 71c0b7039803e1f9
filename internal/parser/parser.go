// Package parser turns declarative cell-group text into board coordinates.
// Groups are separated by ';', cells are R<row>C<col> tokens (1-based in
// text, zero-based in the returned coordinates), e.g. "R1C1 R1C4 ; R2C2".
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"svw.info/gridlock/internal/domain"
)

// Groups parses rule text into an ordered sequence of cell groups. Malformed
// text is a configuration error, surfaced synchronously to the caller.
func Groups(text string) ([][]domain.Coord, error) {
	var out [][]domain.Coord
	for i, part := range strings.Split(text, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return nil, fmt.Errorf("parser: group %d is empty", i+1)
		}
		group := make([]domain.Coord, 0, len(fields))
		for _, tok := range fields {
			coord, err := parseCell(tok)
			if err != nil {
				return nil, fmt.Errorf("parser: group %d: %w", i+1, err)
			}
			group = append(group, coord)
		}
		out = append(out, group)
	}
	return out, nil
}

func parseCell(tok string) (domain.Coord, error) {
	up := strings.ToUpper(tok)
	if !strings.HasPrefix(up, "R") {
		return domain.Coord{}, fmt.Errorf("cell %q: want R<row>C<col>", tok)
	}
	ci := strings.IndexByte(up, 'C')
	if ci < 2 || ci == len(up)-1 {
		return domain.Coord{}, fmt.Errorf("cell %q: want R<row>C<col>", tok)
	}
	row, err := strconv.Atoi(up[1:ci])
	if err != nil || row < 1 {
		return domain.Coord{}, fmt.Errorf("cell %q: bad row", tok)
	}
	col, err := strconv.Atoi(up[ci+1:])
	if err != nil || col < 1 {
		return domain.Coord{}, fmt.Errorf("cell %q: bad column", tok)
	}
	return domain.Coord{Row: row - 1, Col: col - 1}, nil
}
