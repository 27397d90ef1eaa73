package solver

import (
	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/core"
	"nonogram-solver/internal/grid"
)

// mergeEntry is one cell's accumulated state across sibling probes:
// the colours eliminated in *every* sibling tried so far, and which
// sibling last contributed to it.
type mergeEntry struct {
	eliminated  bits.ColorSet
	lastSibling int
}

// mergeBuffer accumulates, across the sibling probes of one cell, the
// consequences every alternative agrees on: a map from cell to
// mergeEntry plus the running sibling counter. Cleared at the start of
// every probed cell.
type mergeBuffer struct {
	entries   map[*grid.Cell]mergeEntry
	sibling   int
	cancelled bool
}

func newMergeBuffer() *mergeBuffer {
	return &mergeBuffer{entries: make(map[*grid.Cell]mergeEntry)}
}

// reset clears the buffer, sibling counter and cancelled flag for a
// new probed cell.
func (m *mergeBuffer) reset() {
	m.entries = make(map[*grid.Cell]mergeEntry)
	m.sibling = 0
	m.cancelled = false
}

// guess is called before each sibling probe; it advances the sibling
// counter so set and mergeCheckApply can tell which siblings contributed.
func (m *mergeBuffer) guess() {
	m.sibling++
}

// set records, for one cell changed during the current sibling's
// propagation, the colours that sibling eliminated (preProbe minus
// postProbe), intersected with what every earlier sibling eliminated;
// a colour only survives if every sibling agreed on eliminating it.
// A cell first seen after sibling 1, or whose entry skipped a
// sibling, was left untouched by some alternative; its entry goes
// dead (empty) and never fires in check.
func (m *mergeBuffer) set(cell *grid.Cell, preProbe, postProbe bits.ColorSet) {
	if m.cancelled {
		return
	}
	eliminated := preProbe.Subtract(postProbe)
	if e, ok := m.entries[cell]; ok {
		if e.lastSibling == m.sibling-1 {
			eliminated = e.eliminated.Intersect(eliminated)
		} else {
			eliminated = 0
		}
		m.entries[cell] = mergeEntry{eliminated: eliminated, lastSibling: m.sibling}
		return
	}
	if m.sibling > 1 {
		eliminated = 0
	}
	m.entries[cell] = mergeEntry{eliminated: eliminated, lastSibling: m.sibling}
}

// cancel voids merging for the current probed cell: once a sibling's
// consequences were skipped or cut short, no elimination can be
// attributed to every alternative, so check must not fire.
func (m *mergeBuffer) cancel() {
	m.cancelled = true
}

// mergeCheckApply applies every cell whose entry was fed by all of the
// probed cell's siblings, last one included: the recorded eliminated
// colours are inconsistent with every colour the probed cell could
// take, so they may be permanently removed. Reports whether any
// elimination was made and enqueues crossing lines for affected cells.
func (e *Engine) mergeCheckApply() bool {
	if e.merge.cancelled {
		e.merge.reset()
		return false
	}
	any := false
	for cell, entry := range e.merge.entries {
		if entry.lastSibling != e.merge.sibling {
			continue
		}
		if entry.eliminated.IsEmpty() {
			continue
		}
		narrowed := cell.Possible.Subtract(entry.eliminated)
		if narrowed.Equals(cell.Possible) {
			continue
		}
		e.recordActive(cell)
		wasSolved, isSolved := cell.SetPossible(narrowed)
		if !wasSolved && isSolved {
			e.Puzzle.NSolved++
		}
		e.Stats.Merges++
		any = true
		e.enqueueCrossing(cell, core.Row)
		e.enqueueCrossing(cell, core.Col)
	}
	e.merge.reset()
	return any
}
