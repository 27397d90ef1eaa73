package grid

import (
	"fmt"

	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/core"
)

// Puzzle owns the colour table's size, the flat cell storage, the two
// families of line views over it, and the solved-cell counters. It
// does not own the job queue or history stack: those belong to the
// engine driving the solve (see internal/solver.Engine), not to the
// grid's own data model.
type Puzzle struct {
	NColors int
	Height  int // number of rows
	Width   int // number of columns

	cells []Cell          // flat, row-major: cells[r*Width+c]
	lines [2][]*Line      // lines[Row][r], lines[Col][c]

	NSolved int
	NCells  int
}

// NewPuzzle builds a puzzle of the given size and colour count with
// every cell's Possible set to every colour and attaches the supplied
// row and column clues to its lines; no cell is narrowed here. rowRuns
// must have Height entries and colRuns must have Width entries.
func NewPuzzle(nColors, height, width int, rowRuns, colRuns [][]Run) (*Puzzle, error) {
	if nColors < 1 || nColors > bits.MaxColors {
		return nil, fmt.Errorf("grid: ncolor %d out of range 1..%d", nColors, bits.MaxColors)
	}
	if height < 1 || width < 1 {
		return nil, fmt.Errorf("grid: %dx%d grid is empty", height, width)
	}
	if len(rowRuns) != height {
		return nil, fmt.Errorf("grid: expected %d row clues, got %d", height, len(rowRuns))
	}
	if len(colRuns) != width {
		return nil, fmt.Errorf("grid: expected %d column clues, got %d", width, len(colRuns))
	}

	p := &Puzzle{
		NColors: nColors,
		Height:  height,
		Width:   width,
		cells:   make([]Cell, height*width),
		NCells:  height * width,
	}

	full := bits.Full(nColors)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			cell := p.cellAt(r, c)
			cell.Row, cell.Col = r, c
			cell.Possible = full
			cell.recompute()
		}
	}

	p.lines[core.Row] = make([]*Line, height)
	for r := 0; r < height; r++ {
		if err := checkRunColours(rowRuns[r], nColors); err != nil {
			return nil, fmt.Errorf("grid: row %d: %w", r, err)
		}
		clue, err := NewClue(rowRuns[r], width)
		if err != nil {
			return nil, fmt.Errorf("grid: row %d: %w", r, err)
		}
		cells := make([]*Cell, width)
		for c := 0; c < width; c++ {
			cells[c] = p.cellAt(r, c)
		}
		p.lines[core.Row][r] = &Line{Dir: core.Row, Index: r, Cells: cells, Clue: clue}
	}

	p.lines[core.Col] = make([]*Line, width)
	for c := 0; c < width; c++ {
		if err := checkRunColours(colRuns[c], nColors); err != nil {
			return nil, fmt.Errorf("grid: col %d: %w", c, err)
		}
		clue, err := NewClue(colRuns[c], height)
		if err != nil {
			return nil, fmt.Errorf("grid: col %d: %w", c, err)
		}
		cells := make([]*Cell, height)
		for r := 0; r < height; r++ {
			cells[r] = p.cellAt(r, c)
		}
		p.lines[core.Col][c] = &Line{Dir: core.Col, Index: c, Cells: cells, Clue: clue}
	}

	return p, nil
}

// checkRunColours rejects runs naming the background colour or a
// colour the puzzle's table doesn't have.
func checkRunColours(runs []Run, nColors int) error {
	for i, run := range runs {
		if run.Colour < 1 || run.Colour >= nColors {
			return fmt.Errorf("run %d has colour %d, want 1..%d", i, run.Colour, nColors-1)
		}
	}
	return nil
}

func (p *Puzzle) cellAt(r, c int) *Cell {
	return &p.cells[r*p.Width+c]
}

// CellAt returns the cell at the given row/column.
func (p *Puzzle) CellAt(r, c int) *Cell {
	return p.cellAt(r, c)
}

// Line returns the line in direction dir at the given index (row
// number if dir is Row, column number if dir is Col).
func (p *Puzzle) Line(dir core.Direction, index int) *Line {
	return p.lines[dir][index]
}

// NumLines returns how many lines exist in direction dir.
func (p *Puzzle) NumLines(dir core.Direction) int {
	return len(p.lines[dir])
}

// CrossingIndex returns the line index in the perpendicular direction
// that a cell belongs to: its column number if dir is Row, its row
// number if dir is Col. Used to enqueue "the crossing line" whenever a
// cell changes during propagation of a line in direction dir.
func (c *Cell) CrossingIndex(dir core.Direction) int {
	if dir == core.Row {
		return c.Col
	}
	return c.Row
}

// OwnIndex returns the line index in direction dir that a cell belongs
// to: its row number if dir is Row, its column number if dir is Col.
func (c *Cell) OwnIndex(dir core.Direction) int {
	if dir == core.Row {
		return c.Row
	}
	return c.Col
}

// Given collapses a cell to a single known colour as part of initial
// puzzle setup, before any propagation or history recording begins.
// It is not a speculative mutation and is never undone.
func (p *Puzzle) Given(row, col, colour int) error {
	if row < 0 || row >= p.Height || col < 0 || col >= p.Width {
		return fmt.Errorf("grid: cell (%d,%d) outside %dx%d grid", row, col, p.Height, p.Width)
	}
	if colour < 0 || colour >= p.NColors {
		return fmt.Errorf("grid: colour %d out of range 0..%d", colour, p.NColors-1)
	}
	cell := p.cellAt(row, col)
	wasSolved := cell.Solved()
	cell.Possible = bits.Single(colour)
	cell.recompute()
	if !wasSolved && cell.Solved() {
		p.NSolved++
	}
	return nil
}

// IsSolved reports whether every cell has exactly one remaining colour.
func (p *Puzzle) IsSolved() bool {
	return p.NSolved == p.NCells
}

// Grid returns the solved colour (or -1 if unsolved) of every cell,
// in row-major order.
func (p *Puzzle) Grid() [][]int {
	out := make([][]int, p.Height)
	for r := 0; r < p.Height; r++ {
		row := make([]int, p.Width)
		for c := 0; c < p.Width; c++ {
			if colour, ok := p.cellAt(r, c).Color(); ok {
				row[c] = colour
			} else {
				row[c] = -1
			}
		}
		out[r] = row
	}
	return out
}

// RestoreFrom copies cell values from snapshot (normally produced by an
// earlier Clone of the same puzzle) back into p in place, along with
// NSolved. Used by the uniqueness check to undo its exploratory
// second-solution search once it has an answer.
func (p *Puzzle) RestoreFrom(snapshot *Puzzle) {
	copy(p.cells, snapshot.cells)
	p.NSolved = snapshot.NSolved
}

// Clone returns a deep copy of the puzzle's cell and line state. Used
// by the uniqueness check to re-solve after inverting the last branch
// without disturbing the caller's puzzle.
func (p *Puzzle) Clone() *Puzzle {
	np := &Puzzle{
		NColors: p.NColors,
		Height:  p.Height,
		Width:   p.Width,
		cells:   make([]Cell, len(p.cells)),
		NSolved: p.NSolved,
		NCells:  p.NCells,
	}
	copy(np.cells, p.cells)

	np.lines[core.Row] = make([]*Line, len(p.lines[core.Row]))
	for i, l := range p.lines[core.Row] {
		cells := make([]*Cell, len(l.Cells))
		for j, cell := range l.Cells {
			cells[j] = np.cellAt(cell.Row, cell.Col)
		}
		np.lines[core.Row][i] = &Line{Dir: l.Dir, Index: l.Index, Cells: cells, Clue: l.Clue}
	}
	np.lines[core.Col] = make([]*Line, len(p.lines[core.Col]))
	for i, l := range p.lines[core.Col] {
		cells := make([]*Cell, len(l.Cells))
		for j, cell := range l.Cells {
			cells[j] = np.cellAt(cell.Row, cell.Col)
		}
		np.lines[core.Col][i] = &Line{Dir: l.Dir, Index: l.Index, Cells: cells, Clue: l.Clue}
	}
	return np
}
