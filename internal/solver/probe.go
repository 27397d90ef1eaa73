package solver

import (
	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/core"
	"nonogram-solver/internal/grid"
)

// probePad records, grid-wide per cell, every colour some earlier
// probe in the current sequence eliminated from it as a consequence.
// Probing a (cell, colour) pair already on the pad cannot produce a
// new fact, so it is skipped.
type probePad struct {
	pad []bits.ColorSet // indexed the same way grid.Puzzle flattens cells
	w   int
}

func newProbePad(p *grid.Puzzle) probePad {
	return probePad{pad: make([]bits.ColorSet, p.Height*p.Width), w: p.Width}
}

func (pp probePad) index(cell *grid.Cell) int {
	return cell.Row*pp.w + cell.Col
}

func (pp probePad) has(cell *grid.Cell, colour int) bool {
	return pp.pad[pp.index(cell)].Test(colour)
}

// markEliminated ORs every colour eliminated from cell by a probe into
// its pad entry, so a later probe of one of those (cell, colour) pairs
// is recognised as re-exploring an already-covered subgraph.
func (pp probePad) markEliminated(cell *grid.Cell, eliminated bits.ColorSet) {
	pp.pad[pp.index(cell)] = pp.pad[pp.index(cell)].Union(eliminated)
}

func (pp probePad) reset() {
	for i := range pp.pad {
		pp.pad[i] = 0
	}
}

// probeResult is the outcome of running a probe sequence to completion.
type probeResult int

const (
	probeGuess probeResult = iota
	probeForcedFact
	probeSolved
)

// probeCandidates selects the cells worth probing in two passes:
// the neighbourhood pass (only when ProbeLevel > 1, walking history
// back to the last branch and visiting each cell's four orthogonal
// neighbours) followed by the full pass (every unsolved cell with at
// least two solved-or-edge neighbours).
func (e *Engine) probeCandidates() []*grid.Cell {
	seen := make(map[*grid.Cell]bool)
	var out []*grid.Cell

	add := func(cell *grid.Cell) {
		if cell == nil || cell.Solved() || seen[cell] {
			return
		}
		seen[cell] = true
		out = append(out, cell)
	}

	if e.Config.ProbeLevel > 1 {
		for _, cell := range e.hist.LastBranchCells() {
			for _, n := range e.orthogonalNeighbours(cell) {
				add(n)
			}
		}
	}

	for r := 0; r < e.Puzzle.Height; r++ {
		for c := 0; c < e.Puzzle.Width; c++ {
			cell := e.Puzzle.CellAt(r, c)
			if cell.Solved() {
				continue
			}
			if e.solvedOrEdgeCount(cell) >= 2 {
				add(cell)
			}
		}
	}
	return out
}

func (e *Engine) orthogonalNeighbours(cell *grid.Cell) []*grid.Cell {
	var out []*grid.Cell
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r, c := cell.Row+d[0], cell.Col+d[1]
		if r < 0 || r >= e.Puzzle.Height || c < 0 || c >= e.Puzzle.Width {
			continue
		}
		out = append(out, e.Puzzle.CellAt(r, c))
	}
	return out
}

// solvedOrEdgeCount counts how many of cell's four orthogonal
// neighbours are either solved or off the edge of the grid. An
// out-of-range neighbour counts as a solved neighbour on every side,
// not just one particular edge.
func (e *Engine) solvedOrEdgeCount(cell *grid.Cell) int {
	count := 0
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r, c := cell.Row+d[0], cell.Col+d[1]
		if r < 0 || r >= e.Puzzle.Height || c < 0 || c >= e.Puzzle.Width {
			count++
			continue
		}
		if e.Puzzle.CellAt(r, c).Solved() {
			count++
		}
	}
	return count
}

// probeSequence is the look-ahead pass: try every still-possible
// colour of every candidate cell as a one-cell probe, tracking the
// best (lowest-remaining) quiescent outcome and feeding the merge
// buffer, until either a probe contradicts (a forced fact), the
// puzzle solves outright, or every candidate is exhausted (a guess).
func (e *Engine) probeSequence() (probeResult, core.CellRef, int) {
	e.pad.reset()
	e.merge.reset()

	bestRemaining := -1
	var bestCell *grid.Cell
	bestColour := -1

	for _, cell := range e.probeCandidates() {
		e.merge.reset()
		tried := 0
		for _, colour := range cell.Possible.ToSlice() {
			if e.pad.has(cell, colour) {
				e.merge.cancel()
				continue
			}
			tried++
			e.merge.guess()
			e.Stats.Probes++

			mark := e.hist.Checkpoint()
			e.hist.ForceRecord(cell)
			_, isSolved := cell.SetPossible(bits.Single(colour))
			if isSolved {
				e.Puzzle.NSolved++
			}
			e.enqueueCrossing(cell, core.Row)
			e.enqueueCrossing(cell, core.Col)

			status := e.LogicSolve()

			if status == core.Contradiction {
				e.merge.cancel()
				e.jobs.Flush()
				e.hist.RollbackTo(e.Puzzle, mark)
				e.eliminateColour(cell, colour)
				return probeForcedFact, core.CellRef{Row: cell.Row, Col: cell.Col}, colour
			}

			if e.Puzzle.IsSolved() {
				e.hist.PromoteBranch(mark, colour)
				return probeSolved, core.CellRef{Row: cell.Row, Col: cell.Col}, colour
			}

			remaining := e.Puzzle.NCells - e.Puzzle.NSolved
			if bestRemaining == -1 || remaining < bestRemaining {
				bestRemaining = remaining
				bestCell = cell
				bestColour = colour
			}

			// Merging and the pad operate on the consequence cells
			// propagation touched, not on the probed cell's own
			// assignment. Collapse every consequence cell's history
			// entries since mark down to its earliest pre-probe state,
			// captured before RollbackTo restores it.
			pre := make(map[*grid.Cell]bits.ColorSet)
			var order []*grid.Cell
			for _, mut := range e.hist.Since(mark) {
				if mut.Cell == cell {
					continue
				}
				if _, ok := pre[mut.Cell]; !ok {
					pre[mut.Cell] = mut.OldPoss
					order = append(order, mut.Cell)
				}
			}
			post := make(map[*grid.Cell]bits.ColorSet, len(order))
			for _, consequence := range order {
				post[consequence] = consequence.Possible
			}

			e.hist.RollbackTo(e.Puzzle, mark)

			for _, consequence := range order {
				preState, postState := pre[consequence], post[consequence]
				if e.Config.MergeProbe {
					e.merge.set(consequence, preState, postState)
				}
				e.pad.markEliminated(consequence, preState.Subtract(postState))
			}
		}
		if e.Config.MergeProbe && tried > 0 && e.mergeCheckApply() {
			return probeForcedFact, core.CellRef{Row: cell.Row, Col: cell.Col}, -1
		}
	}

	if bestCell == nil {
		core.Raise("probe sequence found no candidate but puzzle is unsolved")
	}
	return probeGuess, core.CellRef{Row: bestCell.Row, Col: bestCell.Col}, bestColour
}

// eliminateColour permanently removes colour from cell, recording
// history only if an outer branch is currently live, then enqueues
// both of the cell's crossing lines.
func (e *Engine) eliminateColour(cell *grid.Cell, colour int) {
	e.recordActive(cell)
	wasSolved, isSolved := cell.SetPossible(cell.Possible.Clear(colour))
	if !wasSolved && isSolved {
		e.Puzzle.NSolved++
	}
	e.enqueueCrossing(cell, core.Row)
	e.enqueueCrossing(cell, core.Col)
}
