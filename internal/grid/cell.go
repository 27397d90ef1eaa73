package grid

import "nonogram-solver/internal/bits"

// Cell holds the set of colours still possible for one grid position,
// its derived candidate count, and its coordinates. There is no
// separate "solved value" field: a solved cell is simply one whose
// Possible has exactly one member.
type Cell struct {
	Possible bits.ColorSet
	N        int // popcount(Possible); N >= 1 always, N == 1 means solved
	Row, Col int
}

// Solved reports whether the cell has exactly one remaining colour.
func (c *Cell) Solved() bool {
	return c.N == 1
}

// Color returns the cell's colour and true if it is solved.
func (c *Cell) Color() (int, bool) {
	return c.Possible.Only()
}

// recompute refreshes N from Possible. Every mutation path funnels
// through this so N never drifts out of sync with Possible.
func (c *Cell) recompute() {
	c.N = c.Possible.PopCount()
}

// SetPossible replaces the cell's possible set and refreshes N,
// reporting whether the cell was solved before and is solved after.
// Callers use the pair to keep a Puzzle's NSolved counter in sync.
func (c *Cell) SetPossible(p bits.ColorSet) (wasSolved, isSolved bool) {
	wasSolved = c.Solved()
	c.Possible = p
	c.recompute()
	return wasSolved, c.Solved()
}
