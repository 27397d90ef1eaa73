package solver

import (
	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/grid"
)

// gapBetween mirrors grid's unexported rule: runs of the same colour
// need a background cell between them; different colours may abut.
func gapBetween(a, b grid.Run) int {
	if a.Colour == b.Colour {
		return 1
	}
	return 0
}

// allBackground reports whether every cell in [lo, hi) still allows
// background. A leftmost or rightmost placement is only valid if every
// cell it leaves uncovered can actually be background.
func allBackground(cells []*grid.Cell, lo, hi int) bool {
	for i := lo; i < hi; i++ {
		if !cells[i].Possible.Test(0) {
			return false
		}
	}
	return true
}

func allColour(cells []*grid.Cell, start, length, colour int) bool {
	for j := 0; j < length; j++ {
		if !cells[start+j].Possible.Test(colour) {
			return false
		}
	}
	return true
}

// leftmostStarts computes, for each run in clue, the earliest start
// position compatible with the cells' current Possible sets: the
// lexicographically smallest valid assignment of run start-positions.
// It reports false if no such placement fits in the line at all.
//
// A run settled at its own earliest position can strand a later run
// or leave a pinned cell uncovered, so when a run fails to fit, the
// previous run is advanced past its chosen position and the search
// resumes from there.
func leftmostStarts(cells []*grid.Cell, clue grid.Clue) ([]int, bool) {
	runs := clue.Runs
	if len(runs) == 0 {
		return nil, true
	}
	n := len(cells)
	starts := make([]int, len(runs))
	i := 0
	from := 0
	for i < len(runs) {
		run := runs[i]
		prevEnd := 0
		if i > 0 {
			prevEnd = starts[i-1] + runs[i-1].Length
		}
		start, ok := fitForward(cells, prevEnd, from, run, i == len(runs)-1, n)
		if !ok {
			if i == 0 {
				return nil, false
			}
			i--
			from = starts[i] + 1
			continue
		}
		starts[i] = start
		i++
		if i < len(runs) {
			from = start + run.Length + gapBetween(run, runs[i])
		}
	}
	return starts, true
}

// fitForward finds the smallest start >= searchFrom such that every
// cell in [start, start+run.Length) still allows run.Colour and every
// uncovered cell in [bgFloor, start) still allows background. Once a
// cell left of start cannot be background, no larger start can ever
// succeed, so the search fails immediately and the caller backtracks
// the previous run. When requireTrailingBackground is set (the last
// run in the clue), it additionally requires every cell after the
// run, through the end of the line, to allow background.
func fitForward(cells []*grid.Cell, bgFloor, searchFrom int, run grid.Run, requireTrailingBackground bool, n int) (int, bool) {
	for start := searchFrom; start+run.Length <= n; start++ {
		if !allBackground(cells, bgFloor, start) {
			return 0, false
		}
		if !allColour(cells, start, run.Length, run.Colour) {
			continue
		}
		if requireTrailingBackground && !allBackground(cells, start+run.Length, n) {
			continue
		}
		return start, true
	}
	return 0, false
}

// rightmostStarts is the mirror of leftmostStarts: the latest start
// position for each run, scanning from the end of the line backward,
// with the same backtracking when an inner run cannot fit under the
// placement already chosen for the run to its right.
func rightmostStarts(cells []*grid.Cell, clue grid.Clue) ([]int, bool) {
	runs := clue.Runs
	if len(runs) == 0 {
		return nil, true
	}
	n := len(cells)
	starts := make([]int, len(runs))
	i := len(runs) - 1
	to := n - 1
	for i >= 0 {
		run := runs[i]
		nextStart := n
		if i+1 < len(runs) {
			nextStart = starts[i+1]
		}
		last, ok := fitBackward(cells, nextStart, to, run, i == 0)
		if !ok {
			if i == len(runs)-1 {
				return nil, false
			}
			i++
			to = starts[i] + runs[i].Length - 2
			continue
		}
		starts[i] = last - run.Length + 1
		i--
		if i >= 0 {
			to = starts[i+1] - 1 - gapBetween(runs[i], runs[i+1])
		}
	}
	return starts, true
}

// fitBackward finds the largest last <= searchTo such that every cell
// in [last-run.Length+1, last] still allows run.Colour and every
// uncovered cell in (last, bgCeiling) still allows background. Once a
// cell right of last cannot be background, no smaller last can ever
// succeed, so the search fails immediately and the caller backtracks
// the next run. When requireLeadingBackground is set (the first run
// in the clue), it additionally requires every cell before the run,
// back to the start of the line, to allow background.
func fitBackward(cells []*grid.Cell, bgCeiling, searchTo int, run grid.Run, requireLeadingBackground bool) (int, bool) {
	for last := searchTo; last-run.Length+1 >= 0; last-- {
		start := last - run.Length + 1
		if !allBackground(cells, last+1, bgCeiling) {
			return 0, false
		}
		if !allColour(cells, start, run.Length, run.Colour) {
			continue
		}
		if requireLeadingBackground && !allBackground(cells, 0, start) {
			continue
		}
		return last, true
	}
	return 0, false
}

// lineSolve computes, for each cell of the line, the set of colours
// consistent with at least one valid placement between the leftmost
// and rightmost arrangements of every run: the left-right overlap
// computation. It returns false if the leftmost (or rightmost)
// placement cannot be found at all, the line's contradiction case.
//
// The result for a cell is a union, never a narrower intersection
// with the cell's own current Possible; callers intersect it
// themselves.
func lineSolve(line *grid.Line) ([]bits.ColorSet, bool) {
	cells := line.Cells
	n := len(cells)
	clue := line.Clue

	left, ok := leftmostStarts(cells, clue)
	if !ok {
		return nil, false
	}
	right, ok := rightmostStarts(cells, clue)
	if !ok {
		return nil, false
	}

	allowed := make([]bits.ColorSet, n)
	bgBlocked := make([]bool, n)

	for i, run := range clue.Runs {
		// possible range: every position the run could occupy in some
		// valid arrangement between its leftmost and rightmost starts.
		for x := left[i]; x < right[i]+run.Length; x++ {
			allowed[x] = allowed[x].Set(run.Colour)
		}
		// forced/overlap range: covered by the run in *every* valid
		// arrangement, so background is never possible there.
		for x := right[i]; x < left[i]+run.Length; x++ {
			bgBlocked[x] = true
		}
	}
	for x := 0; x < n; x++ {
		if !bgBlocked[x] {
			allowed[x] = allowed[x].Set(0)
		}
	}
	return allowed, true
}
