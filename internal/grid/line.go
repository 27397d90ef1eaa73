package grid

import "nonogram-solver/internal/core"

// Line is a view over a row or column: an ordered slice of pointers
// into the Puzzle's flat cell array, plus the clue governing it. Lines
// never own cells; Puzzle keeps one flat cell array with two parallel
// families of index slices, and Line is the per-direction, per-index
// slice of that indexing.
type Line struct {
	Dir   core.Direction
	Index int
	Cells []*Cell
	Clue  Clue
}

// Len returns the number of cells in the line.
func (l *Line) Len() int {
	return len(l.Cells)
}
