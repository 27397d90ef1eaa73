package solver

import (
	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/core"
)

// Solve is the top-level entry point: it mutates the engine's puzzle
// in place and returns one of Solved, Unsat, or Stuck.
func (e *Engine) Solve() core.SolveStatus {
	status := e.runToTerminal()
	if status == core.Solved && e.Config.CheckUnique {
		e.Unique = !e.hasSecondSolution()
	}
	return status
}

// runToTerminal executes the propagate / stuck / choose / backtrack
// cycle until a terminal status is reached.
func (e *Engine) runToTerminal() core.SolveStatus {
	for {
		status := e.LogicSolve()

		switch status {
		case core.Contradiction:
			if !e.backtrack() {
				return core.Unsat
			}
			continue

		case core.Quiescent:
			if e.Puzzle.IsSolved() {
				return core.Solved
			}

			if e.Config.AllowExhaust && !e.hist.Active() {
				if e.exhaust() > 0 {
					continue
				}
			}

			if !e.Config.AllowBacktrack {
				return core.Stuck
			}

			result, cellRef, colour := e.chooseNext()
			switch result {
			case probeSolved:
				if e.Puzzle.IsSolved() {
					return core.Solved
				}
				continue
			case probeForcedFact:
				continue
			case probeGuess:
				e.commitGuess(cellRef, colour)
				continue
			}
		}
	}
}

// Guess runs the configured selection strategy, probing when enabled
// and the neighbour-count heuristic otherwise, and reports the next
// speculative assignment. Probing may instead settle facts outright (a
// forced elimination, or even the full solution); ok is false in those
// cases and the caller should resume propagation rather than commit
// anything.
func (e *Engine) Guess() (ref core.CellRef, colour int, ok bool) {
	result, ref, colour := e.chooseNext()
	return ref, colour, result == probeGuess
}

// chooseNext runs probing if enabled, else falls back to the
// heuristic guess, normalising both into the probeResult shape so
// runToTerminal has one case analysis regardless of which path ran.
func (e *Engine) chooseNext() (probeResult, core.CellRef, int) {
	if e.Config.AllowProbe {
		return e.probeSequence()
	}
	ref, colour := e.heuristicGuess()
	return probeGuess, ref, colour
}

// commitGuess pushes a branch history frame for (cellRef, colour),
// pins the cell, and enqueues its crossing lines, per the contract
// that the caller of a probe-sequence guess or heuristic guess commits
// it as a speculative branch.
func (e *Engine) commitGuess(cellRef core.CellRef, colour int) {
	e.Stats.Guesses++
	cell := e.Puzzle.CellAt(cellRef.Row, cellRef.Col)
	e.hist.PushBranch(cell, colour)
	_, isSolved := cell.SetPossible(bits.Single(colour))
	if isSolved {
		e.Puzzle.NSolved++
	}
	e.enqueueCrossing(cell, core.Row)
	e.enqueueCrossing(cell, core.Col)
}

// backtrack flushes the job queue, pops to the last branch, then
// inverts that guess by clearing (not restoring) the
// guessed colour. If the cell empties, repeat. Returns false if no
// branch exists to invert.
func (e *Engine) backtrack() bool {
	e.Stats.Backtracks++
	e.jobs.Flush()
	for {
		found, cell, colour := e.hist.UndoOneLevel(e.Puzzle)
		if !found {
			return false
		}
		// The inversion itself is a consequence of whatever branch is
		// still live below this one, so it must be undoable too.
		e.recordActive(cell)
		wasSolved, isSolved := cell.SetPossible(cell.Possible.Clear(colour))
		if !wasSolved && isSolved {
			e.Puzzle.NSolved++
		}
		if cell.Possible.IsEmpty() {
			continue
		}
		e.enqueueCrossing(cell, core.Row)
		e.enqueueCrossing(cell, core.Col)
		return true
	}
}

// hasSecondSolution backs the uniqueness check: starting from the
// just-found solution, invert the last live branch and re-solve with
// the ordinary state machine, reporting whether a second distinct
// solution turns up. A snapshot of the solved grid is taken first and
// restored before returning, so the caller still sees the original
// solution regardless of the answer.
func (e *Engine) hasSecondSolution() bool {
	snapshot := e.Puzzle.Clone()
	defer func() {
		e.Puzzle.RestoreFrom(snapshot)
		e.jobs.Flush()
	}()

	if !e.backtrack() {
		return false
	}
	return e.runToTerminal() == core.Solved
}
