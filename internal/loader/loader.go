// Package loader reads a puzzle definition from a JSON file into a
// grid.Puzzle. It is glue around the engine, not part of it: the
// format is the minimum the CLI and tests need to describe a puzzle.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"nonogram-solver/internal/grid"
)

// RunSpec is one (length, colour) run as it appears in a JSON clue
// array, mirroring grid.Run but kept separate so the wire format is
// free to evolve independently of the domain type.
type RunSpec struct {
	Length int `json:"length"`
	Colour int `json:"colour"`
}

// GivenSpec names one pre-filled cell in the puzzle file.
type GivenSpec struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Colour int `json:"colour"`
}

// PuzzleFile is the top-level JSON structure accepted by Load: grid
// dimensions, colour count, per-line clue arrays, and optional
// pre-filled cells.
type PuzzleFile struct {
	Height  int         `json:"height"`
	Width   int         `json:"width"`
	NColors int         `json:"ncolors"`
	Rows    [][]RunSpec `json:"rows"`
	Cols    [][]RunSpec `json:"cols"`
	Givens  []GivenSpec `json:"givens"`
}

// Load reads and parses a puzzle file, building the grid.Puzzle it
// describes and applying any given cells. It reports a wrapped error
// for missing files, malformed JSON, or a puzzle the grid package
// rejects as internally inconsistent (bad slack, run counts, etc).
func Load(path string) (*grid.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read puzzle file: %w", err)
	}

	var file PuzzleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("loader: failed to parse puzzle file: %w", err)
	}

	return FromFile(file)
}

// FromFile builds a grid.Puzzle from an already-parsed PuzzleFile,
// exposed separately so tests can construct one in-memory without
// going through the filesystem.
func FromFile(file PuzzleFile) (*grid.Puzzle, error) {
	rowRuns := make([][]grid.Run, len(file.Rows))
	for i, runs := range file.Rows {
		rowRuns[i] = toRuns(runs)
	}
	colRuns := make([][]grid.Run, len(file.Cols))
	for i, runs := range file.Cols {
		colRuns[i] = toRuns(runs)
	}

	puzzle, err := grid.NewPuzzle(file.NColors, file.Height, file.Width, rowRuns, colRuns)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	for _, g := range file.Givens {
		if err := puzzle.Given(g.Row, g.Col, g.Colour); err != nil {
			return nil, fmt.Errorf("loader: given at (%d,%d): %w", g.Row, g.Col, err)
		}
	}

	return puzzle, nil
}

func toRuns(specs []RunSpec) []grid.Run {
	runs := make([]grid.Run, len(specs))
	for i, s := range specs {
		runs[i] = grid.Run{Length: s.Length, Colour: s.Colour}
	}
	return runs
}
