// Package solver implements the constraint-propagation search engine:
// the line solver, propagation loop, exhaustive check, probe merge
// buffer, probe pad, and the heuristic/probing search driver that
// together solve a grid.Puzzle in place.
package solver

import (
	"math/rand/v2"

	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/core"
	"nonogram-solver/internal/grid"
	"nonogram-solver/internal/history"
	"nonogram-solver/internal/queue"
)

// Engine bundles every piece of mutable solver state behind one value
// threaded through the API: job queue, history, probe scratch state
// and instrumentation counters. One Engine drives exactly one Puzzle.
type Engine struct {
	Puzzle *grid.Puzzle
	Config Config
	Stats  Stats

	// Unique is meaningful only after Solve returns core.Solved with
	// Config.CheckUnique set: true unless a second distinct solution
	// was found by inverting the final branch and re-solving.
	Unique bool

	jobs *queue.Queue
	hist *history.History

	merge *mergeBuffer
	pad   probePad

	rng *rand.Rand
}

// New constructs an Engine over puzzle with the given configuration.
// Every line is enqueued once so the first LogicSolve call propagates
// the initial clues.
func New(puzzle *grid.Puzzle, cfg Config) *Engine {
	e := &Engine{
		Puzzle: puzzle,
		Config: cfg,
		Unique: true,
		jobs:   queue.New(),
		hist:   history.New(),
		merge:  newMergeBuffer(),
		pad:    newProbePad(puzzle),
		rng:    rand.New(rand.NewPCG(1, 2)),
	}
	e.enqueueAll()
	return e
}

// SetRandSource overrides the engine's PRNG, for deterministic tests of
// the random-weighted colour policy.
func (e *Engine) SetRandSource(rng *rand.Rand) {
	e.rng = rng
}

func (e *Engine) enqueueAll() {
	for _, dir := range [...]core.Direction{core.Row, core.Col} {
		for i := 0; i < e.Puzzle.NumLines(dir); i++ {
			e.jobs.Add(dir, i, e.priority(dir, i))
		}
	}
}

// priority scores a line for the job queue: lines with more slack
// (less constrained) score lower so tighter lines propagate first,
// subtracted from twice the line length so "more promising" stays "higher".
func (e *Engine) priority(dir core.Direction, index int) int {
	line := e.Puzzle.Line(dir, index)
	return 2*line.Len() - line.Clue.Slack
}

// enqueueCrossing schedules the line crossing cell's own line in
// direction dir. Called whenever cell's possible set changes while
// some line in direction dir was being resolved.
func (e *Engine) enqueueCrossing(cell *grid.Cell, dir core.Direction) {
	other := dir.Other()
	e.jobs.Add(other, cell.CrossingIndex(dir), e.priority(other, cell.CrossingIndex(dir)))
}

// recordActive logs cell's pre-mutation state if history recording is
// currently active (see history.History.Active).
func (e *Engine) recordActive(cell *grid.Cell) {
	if e.hist.Active() {
		e.hist.Record(cell)
	}
}

// tighten narrows cell's possible set to the intersection with
// allowed, recording history and enqueueing the crossing line if the
// set actually shrank. It reports whether the cell became a
// contradiction (possible became empty).
func (e *Engine) tighten(cell *grid.Cell, allowed bits.ColorSet, dir core.Direction) bool {
	narrowed := cell.Possible.Intersect(allowed)
	if narrowed.Equals(cell.Possible) {
		return false
	}
	e.recordActive(cell)
	wasSolved, isSolved := cell.SetPossible(narrowed)
	if !wasSolved && isSolved {
		e.Puzzle.NSolved++
	}
	if cell.Possible.IsEmpty() {
		return true
	}
	e.enqueueCrossing(cell, dir)
	return false
}
