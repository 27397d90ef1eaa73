package solver

import (
	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/core"
	"nonogram-solver/internal/grid"
)

// exhaust is the last-resort "try everything" check: for every
// unsolved cell, for every colour it might still be, tentatively
// assign it and re-run the line solver on both of its crossing lines
// (its own row and column); if either admits no placement, the colour
// is permanently impossible for that cell. It uses no history: the
// tentative assignment is saved and restored by hand, since no branch
// is taken.
//
// Returns the number of permanent eliminations made; propagation
// should resume whenever this is nonzero.
func (e *Engine) exhaust() int {
	eliminated := 0
	puzzle := e.Puzzle

	for r := 0; r < puzzle.Height; r++ {
		for c := 0; c < puzzle.Width; c++ {
			cell := puzzle.CellAt(r, c)
			if cell.Solved() {
				continue
			}
			original := cell.Possible
			var doomed []int
			original.ForEach(func(colour int) {
				if !e.colourSurvivesLocalCheck(cell, colour) {
					doomed = append(doomed, colour)
				}
			})
			if len(doomed) == 0 {
				continue
			}
			narrowed := original
			for _, colour := range doomed {
				narrowed = narrowed.Clear(colour)
			}
			_, isSolved := cell.SetPossible(narrowed)
			eliminated += len(doomed)
			if isSolved {
				puzzle.NSolved++
			}
			e.enqueueCrossing(cell, core.Row)
			e.enqueueCrossing(cell, core.Col)
		}
	}
	return eliminated
}

// colourSurvivesLocalCheck tentatively pins cell to colour, re-runs the
// line solver on its row and column, and restores cell's possible set
// before returning. It reports false if either crossing line rejects
// every placement with cell pinned that way.
func (e *Engine) colourSurvivesLocalCheck(cell *grid.Cell, colour int) bool {
	original := cell.Possible
	cell.SetPossible(bits.Single(colour))

	row := e.Puzzle.Line(core.Row, cell.Row)
	_, rowOK := lineSolve(row)
	col := e.Puzzle.Line(core.Col, cell.Col)
	_, colOK := lineSolve(col)

	cell.SetPossible(original)
	return rowOK && colOK
}
