package solver

import "nonogram-solver/internal/core"

// LogicSolve drains the job queue by repeatedly invoking the line
// solver: pop a job, resolve that line, intersect the result into each
// cell, enqueue crossing lines for anything that shrank. Returns
// Contradiction the moment any line admits no placement or any cell's
// possible set empties; returns Quiescent once the queue drains with
// nothing left to do.
//
// Calling LogicSolve again on an already-quiescent engine is a no-op,
// since nothing remains queued; propagation is a fixed point.
func (e *Engine) LogicSolve() core.SolveStatus {
	if !e.Config.AllowLinesolve {
		return core.Quiescent
	}
	for {
		job, ok := e.jobs.Next()
		if !ok {
			return core.Quiescent
		}
		e.Stats.Lines++
		line := e.Puzzle.Line(job.Dir, job.Line)
		allowed, ok := lineSolve(line)
		if !ok {
			return core.Contradiction
		}
		for i, cell := range line.Cells {
			if e.tighten(cell, allowed[i], job.Dir) {
				return core.Contradiction
			}
		}
	}
}
