package solver

import (
	"math"

	"nonogram-solver/internal/core"
	"nonogram-solver/internal/grid"
)

// heuristicGuess picks an unsolved cell with the
// maximum solved-or-edge neighbour count, breaking ties with the
// configured rating policy (lower rating wins), then pick a colour
// from that cell's remaining possibilities with the configured colour
// policy.
func (e *Engine) heuristicGuess() (core.CellRef, int) {
	var best *grid.Cell
	bestNeighbours := -1
	bestRating := math.Inf(1)

	for r := 0; r < e.Puzzle.Height; r++ {
		for c := 0; c < e.Puzzle.Width; c++ {
			cell := e.Puzzle.CellAt(r, c)
			if cell.Solved() {
				continue
			}
			neighbours := e.solvedOrEdgeCount(cell)

			// Every neighbour solved-or-edge: nothing will ever beat this,
			// so take it immediately rather than rating the rest of the grid.
			if neighbours == 4 {
				return core.CellRef{Row: r, Col: c}, e.pickColour(cell)
			}

			if neighbours < bestNeighbours {
				continue
			}
			rating := e.rate(cell)
			if neighbours > bestNeighbours || rating < bestRating {
				best = cell
				bestNeighbours = neighbours
				bestRating = rating
			}
		}
	}

	if best == nil {
		core.Raise("heuristic guess found no unsolved cell")
	}
	return core.CellRef{Row: best.Row, Col: best.Col}, e.pickColour(best)
}

// rate scores a cell by the configured rating policy; lower is better.
func (e *Engine) rate(cell *grid.Cell) float64 {
	row := e.Puzzle.Line(core.Row, cell.Row)
	col := e.Puzzle.Line(core.Col, cell.Col)

	switch e.Config.RatingPolicy {
	case RatingSimple:
		return 0
	case RatingAdHoc:
		sr := float64(row.Clue.Slack + 2*row.Clue.ClueCount())
		sc := float64(col.Clue.Slack + 2*col.Clue.ClueCount())
		lo, hi := sr, sc
		if lo > hi {
			lo, hi = hi, lo
		}
		return 3*lo + hi
	case RatingMath:
		rRow := logBinomial(row.Clue.Slack+row.Clue.ClueCount(), row.Clue.ClueCount())
		rCol := logBinomial(col.Clue.Slack+col.Clue.ClueCount(), col.Clue.ClueCount())
		if rRow < rCol {
			return rRow
		}
		return rCol
	default:
		return 0
	}
}

// logBinomial returns log(C(n, k)), via the log-gamma identity, to
// avoid overflowing the binomial coefficient itself for large slack.
func logBinomial(n, k int) float64 {
	if k < 0 || n < 0 || k > n {
		return math.Inf(1)
	}
	lgN1, _ := math.Lgamma(float64(n + 1))
	lgK1, _ := math.Lgamma(float64(k + 1))
	lgNK1, _ := math.Lgamma(float64(n - k + 1))
	return lgN1 - lgK1 - lgNK1
}

// pickColour chooses a colour for cell from its remaining possibles
// per the configured colour policy.
func (e *Engine) pickColour(cell *grid.Cell) int {
	colours := cell.Possible.ToSlice()
	switch e.Config.ColourPolicy {
	case ColourMin:
		return colours[0]
	case ColourMax:
		return colours[len(colours)-1]
	case ColourRandom:
		return colours[e.rng.IntN(len(colours))]
	case ColourContrast:
		return e.contrastColour(cell, colours)
	default:
		return colours[len(colours)-1]
	}
}

// contrastColour prefers the colour least represented among cell's
// solved orthogonal neighbours, the one differing most from its
// immediate surroundings.
func (e *Engine) contrastColour(cell *grid.Cell, colours []int) int {
	counts := make(map[int]int, len(colours))
	for _, n := range e.orthogonalNeighbours(cell) {
		if colour, ok := n.Color(); ok {
			counts[colour]++
		}
	}
	best := colours[0]
	bestCount := counts[best]
	for _, colour := range colours[1:] {
		if counts[colour] < bestCount {
			best = colour
			bestCount = counts[colour]
		}
	}
	return best
}
