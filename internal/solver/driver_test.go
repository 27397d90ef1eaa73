package solver

import (
	"testing"

	"nonogram-solver/internal/bits"
	"nonogram-solver/internal/core"
	"nonogram-solver/internal/grid"
)

func buildPuzzle(t *testing.T, nColors int, rowRuns, colRuns [][]grid.Run) *grid.Puzzle {
	t.Helper()
	p, err := grid.NewPuzzle(nColors, len(rowRuns), len(colRuns), rowRuns, colRuns)
	if err != nil {
		t.Fatalf("unexpected error building puzzle: %v", err)
	}
	return p
}

func run1(colour int) []grid.Run { return []grid.Run{{Length: 1, Colour: colour}} }

// Scenario 1: trivial 1x1, two colours, clue "1". One propagation step
// solves it with zero guesses and zero probes.
func TestSolveTrivial1x1(t *testing.T) {
	p := buildPuzzle(t, 2, [][]grid.Run{run1(1)}, [][]grid.Run{run1(1)})
	e := New(p, DefaultConfig())

	status := e.Solve()
	if status != core.Solved {
		t.Fatalf("status = %v, want Solved", status)
	}
	if e.Stats.Guesses != 0 || e.Stats.Probes != 0 {
		t.Errorf("Stats = %+v, want zero guesses and probes", e.Stats)
	}
	if colour, ok := p.CellAt(0, 0).Color(); !ok || colour != 1 {
		t.Errorf("cell (0,0) = (%d, %v), want (1, true)", colour, ok)
	}
}

// Scenario 2: the 5x5 "plus sign": line propagation alone solves it,
// with zero guesses.
func TestSolvePlusSign5x5(t *testing.T) {
	runs := func(n int) []grid.Run { return []grid.Run{{Length: n, Colour: 1}} }
	rowRuns := [][]grid.Run{runs(1), runs(3), runs(5), runs(3), runs(1)}
	colRuns := [][]grid.Run{runs(1), runs(3), runs(5), runs(3), runs(1)}
	p := buildPuzzle(t, 2, rowRuns, colRuns)
	e := New(p, DefaultConfig())

	status := e.Solve()
	if status != core.Solved {
		t.Fatalf("status = %v, want Solved", status)
	}
	if e.Stats.Guesses != 0 {
		t.Errorf("Guesses = %d, want 0 (line propagation alone should solve a plus sign)", e.Stats.Guesses)
	}

	want := [][]int{
		{0, 0, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{1, 1, 1, 1, 1},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 0, 0},
	}
	got := p.Grid()
	for r := range want {
		for c := range want[r] {
			if got[r][c] != want[r][c] {
				t.Errorf("cell (%d,%d) = %d, want %d", r, c, got[r][c], want[r][c])
			}
		}
	}
}

// Scenario 4: insoluble, a row clue of "3" on a length-2 line. Such a
// clue is rejected when it is built, so no puzzle carrying it exists
// and Solve never runs on it (it reports no Unsat status for this case).
func TestSolveInsoluble(t *testing.T) {
	_, err := grid.NewClue([]grid.Run{{Length: 3, Colour: 1}}, 2)
	if err == nil {
		t.Fatal("expected NewClue itself to reject a run that cannot fit the line")
	}
}

// Scenario 3: ambiguous 2x2 (row clues 1,1; col clues 1,1; two colours).
// With check_unique, a second distinct solution exists, so Unique is false.
func TestSolveAmbiguous2x2CheckUnique(t *testing.T) {
	p := buildPuzzle(t, 2, [][]grid.Run{run1(1), run1(1)}, [][]grid.Run{run1(1), run1(1)})
	cfg := DefaultConfig()
	cfg.CheckUnique = true
	e := New(p, cfg)

	status := e.Solve()
	if status != core.Solved {
		t.Fatalf("status = %v, want Solved", status)
	}
	if e.Unique {
		t.Error("2x2 with row/col clues (1,1)/(1,1) has two distinct solutions; Unique should be false")
	}
}

// Scenario 5 in miniature: a grid the line solver alone cannot finish
// is completed by probing without committing a single branch guess,
// while the heuristic guesser needs one. The ambiguous 2x2 stalls
// propagation immediately; the first probe's propagation then fills
// the whole grid, so probing reaches a solution with Guesses = 0.
func TestProbingSolvesWithoutGuessWhereHeuristicGuesses(t *testing.T) {
	build := func() *grid.Puzzle {
		return buildPuzzle(t, 2, [][]grid.Run{run1(1), run1(1)}, [][]grid.Run{run1(1), run1(1)})
	}

	probed := New(build(), DefaultConfig())
	if status := probed.Solve(); status != core.Solved {
		t.Fatalf("probing solve status = %v, want Solved", status)
	}
	if probed.Stats.Guesses != 0 {
		t.Errorf("probing Guesses = %d, want 0", probed.Stats.Guesses)
	}
	if probed.Stats.Probes == 0 {
		t.Error("probing solve should have run at least one probe")
	}

	cfg := DefaultConfig()
	cfg.AllowProbe = false
	guessed := New(build(), cfg)
	if status := guessed.Solve(); status != core.Solved {
		t.Fatalf("heuristic solve status = %v, want Solved", status)
	}
	if guessed.Stats.Guesses != 1 {
		t.Errorf("heuristic Guesses = %d, want exactly 1", guessed.Stats.Guesses)
	}
}

// Scenario 6: a three-colour puzzle where the contrast colour policy
// avoids the colour already dominating a cell's solved neighbours,
// while the max policy ignores neighbours entirely.
func TestColourPolicyAffectsGuessChoice(t *testing.T) {
	// 1x3 row: cell 0 given to colour 2, cell 1 unsolved with both
	// colour 1 and 2 still possible, cell 2 given to colour 2.
	rowRuns := [][]grid.Run{{{Length: 1, Colour: 2}, {Length: 1, Colour: 1}, {Length: 1, Colour: 2}}}
	colRuns := [][]grid.Run{plainClue1(2), plainClue1(1), plainClue1(2)}
	p := buildPuzzle(t, 3, rowRuns, colRuns)
	if err := p.Given(0, 0, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Given(0, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cell := p.CellAt(0, 1)
	cell.SetPossible(bits.Single(1).Union(bits.Single(2)))

	cfg := DefaultConfig()
	cfg.ColourPolicy = ColourMax
	maxEngine := New(p, cfg)
	maxChoice := maxEngine.pickColour(cell)
	if maxChoice != 2 {
		t.Errorf("max colour policy chose %d, want 2 (the highest candidate)", maxChoice)
	}

	cfg.ColourPolicy = ColourContrast
	contrastEngine := New(p, cfg)
	contrastChoice := contrastEngine.pickColour(cell)
	if contrastChoice != 1 {
		t.Errorf("contrast colour policy chose %d, want 1 (least represented among solved neighbours)", contrastChoice)
	}
}

func plainClue1(colours ...int) []grid.Run {
	runs := make([]grid.Run, len(colours))
	for i, c := range colours {
		runs[i] = grid.Run{Length: 1, Colour: c}
	}
	return runs
}
