package solver

import (
	"testing"

	"nonogram-solver/internal/core"
	"nonogram-solver/internal/grid"
)

func TestLogicSolveQuiescentWhenNothingQueued(t *testing.T) {
	p := buildPuzzle(t, 2, [][]grid.Run{run1(1)}, [][]grid.Run{run1(1)})
	e := New(p, DefaultConfig())
	if status := e.LogicSolve(); status != core.Quiescent {
		t.Fatalf("first LogicSolve = %v, want Quiescent", status)
	}
	if !p.IsSolved() {
		t.Fatal("1x1 puzzle with clue 1 should be solved by line propagation alone")
	}
	// A second call on an already-drained queue must be a no-op, not a panic.
	if status := e.LogicSolve(); status != core.Quiescent {
		t.Errorf("second LogicSolve = %v, want Quiescent", status)
	}
}

func TestLogicSolveContradictionOnOverlongRunAgainstGiven(t *testing.T) {
	// 1x3 row clue "3" cannot coexist with cell 1 pinned to background.
	p := buildPuzzle(t, 2, [][]grid.Run{{{Length: 3, Colour: 1}}}, [][]grid.Run{run1(1), run1(1), run1(1)})
	if err := p.Given(0, 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := New(p, DefaultConfig())
	if status := e.LogicSolve(); status != core.Contradiction {
		t.Fatalf("LogicSolve = %v, want Contradiction", status)
	}
}

func TestLogicSolveNoopWhenDisabled(t *testing.T) {
	p := buildPuzzle(t, 2, [][]grid.Run{run1(1)}, [][]grid.Run{run1(1)})
	cfg := DefaultConfig()
	cfg.AllowLinesolve = false
	e := New(p, cfg)
	if status := e.LogicSolve(); status != core.Quiescent {
		t.Fatalf("LogicSolve with AllowLinesolve=false = %v, want Quiescent", status)
	}
	if p.NSolved != 0 {
		t.Errorf("NSolved = %d, want 0 since line solving never ran", p.NSolved)
	}
}
