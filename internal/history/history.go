// Package history implements the undo stack that makes speculative
// cell assignment sound: every mutation a branch depends on is logged
// here first, so a backtrack or a probe's rollback can restore exactly
// the state that preceded it.
package history

import (
	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/grid"
)

// entry is the prior (n, possible) of one cell, plus whether it marks
// a speculative branch point.
type entry struct {
	cell        *grid.Cell
	oldN        int
	oldPoss     bits.ColorSet
	branch      bool
	guessColour int // colour guessed at this branch point; -1 on non-branch entries
}

// History is a LIFO log of cell mutations. Recording through Record is
// only active while the stack is non-empty (Active reports this); code
// that must be undoable regardless of whether a branch is live, such as
// probes and the checkpoint pattern below, uses ForceRecord instead.
type History struct {
	entries []entry
}

// New returns an empty History.
func New() *History {
	return &History{}
}

// Active reports whether the stack holds any entry: a live branch, or
// an entry pushed with ForceRecord by a speculative block. Once the
// stack empties, recording through Record is disabled again until
// something is pushed.
func (h *History) Active() bool {
	return len(h.entries) > 0
}

// Len returns the number of entries currently on the stack.
func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) push(cell *grid.Cell, branch bool, guessColour int) {
	h.entries = append(h.entries, entry{
		cell:        cell,
		oldN:        cell.N,
		oldPoss:     cell.Possible,
		branch:      branch,
		guessColour: guessColour,
	})
}

// Record logs cell's current state before it is mutated, but only if
// the stack is already non-empty (see Active). Call this immediately before changing
// cell.Possible during ordinary propagation.
func (h *History) Record(cell *grid.Cell) {
	if !h.Active() {
		return
	}
	h.push(cell, false, -1)
}

// ForceRecord logs cell's current state unconditionally. Speculative
// code (the probe sequence, with a checkpoint) uses this so its
// mutations are always undoable, even when reached with no branch live.
func (h *History) ForceRecord(cell *grid.Cell) {
	h.push(cell, false, -1)
}

// PushBranch logs cell's current state as a new branch point, along
// with the colour about to be guessed. Backtrack needs the colour to
// invert the guess rather than merely restore it.
func (h *History) PushBranch(cell *grid.Cell, guessColour int) {
	h.push(cell, true, guessColour)
}

func restore(e entry, puzzle *grid.Puzzle) {
	wasSolved := e.cell.Solved()
	e.cell.Possible = e.oldPoss
	e.cell.N = e.oldN
	if puzzle == nil {
		return
	}
	if wasSolved && !e.cell.Solved() {
		puzzle.NSolved--
	} else if !wasSolved && e.cell.Solved() {
		puzzle.NSolved++
	}
}

// UndoOneLevel pops entries until and including the next branch entry,
// restoring each cell's (n, possible) and keeping puzzle.NSolved
// consistent. It reports whether a branch was found and unwound, and
// if so the branch's cell and the colour that was guessed there, so
// the caller can invert the guess rather than merely restore it.
func (h *History) UndoOneLevel(puzzle *grid.Puzzle) (found bool, branchCell *grid.Cell, guessColour int) {
	for len(h.entries) > 0 {
		n := len(h.entries) - 1
		e := h.entries[n]
		h.entries = h.entries[:n]
		restore(e, puzzle)
		if e.branch {
			return true, e.cell, e.guessColour
		}
	}
	return false, nil, -1
}

// Mark is a checkpoint into the history stack: a speculative block
// takes a Mark on entry, then either leaves the entries in place
// (commit) or calls RollbackTo (roll back), so every exit path
// restores state through the same bracketing construct.
type Mark int

// Checkpoint returns a Mark at the current top of the stack.
func (h *History) Checkpoint() Mark {
	return Mark(len(h.entries))
}

// RollbackTo restores every cell mutated since m, in reverse order,
// and truncates the stack back to m. It does not require entries
// since m to include a branch marker; it undoes exactly that range.
func (h *History) RollbackTo(puzzle *grid.Puzzle, m Mark) {
	for len(h.entries) > int(m) {
		n := len(h.entries) - 1
		e := h.entries[n]
		h.entries = h.entries[:n]
		restore(e, puzzle)
	}
}

// Mutation describes one cell's possibility set immediately before a
// recorded mutation, for callers that need to inspect what changed
// since a Mark without undoing it.
type Mutation struct {
	Cell    *grid.Cell
	OldPoss bits.ColorSet
}

// Since returns the (cell, oldPossible) of every entry pushed after m,
// oldest first. Unlike RollbackTo, it does not mutate the stack or the
// cells: callers use it to read the consequence-cell deltas of a
// speculative block (current possible vs. the oldPoss reported here)
// before deciding whether to roll back.
func (h *History) Since(m Mark) []Mutation {
	if int(m) >= len(h.entries) {
		return nil
	}
	muts := make([]Mutation, 0, len(h.entries)-int(m))
	for _, e := range h.entries[m:] {
		muts = append(muts, Mutation{Cell: e.cell, OldPoss: e.oldPoss})
	}
	return muts
}

// PromoteBranch turns the entry at index m (as returned by Checkpoint
// immediately before the mutation it guards) into a branch marker
// carrying guessColour. It lets speculative code that started with
// ForceRecord commit its first mutation as an invertible guess after
// the fact, once it turns out to lead to a full solution.
func (h *History) PromoteBranch(m Mark, guessColour int) {
	if int(m) >= len(h.entries) {
		return
	}
	h.entries[m].branch = true
	h.entries[m].guessColour = guessColour
}

// LastBranchCells returns the cells of every entry pushed since the
// most recent branch marker (inclusive), walking backward from the
// top of the stack. The probe sequence's neighbourhood pass uses this
// to find candidates near the last guess.
func (h *History) LastBranchCells() []*grid.Cell {
	var cells []*grid.Cell
	for i := len(h.entries) - 1; i >= 0; i-- {
		cells = append(cells, h.entries[i].cell)
		if h.entries[i].branch {
			break
		}
	}
	return cells
}
