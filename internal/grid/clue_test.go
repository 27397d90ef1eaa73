package grid

import "testing"

func TestNewClueComputesSlack(t *testing.T) {
	clue, err := NewClue([]Run{{Length: 1, Colour: 0}, {Length: 3, Colour: 0}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// min layout: 1 + 1 (gap, same colour) + 3 = 5; slack = 10 - 5 = 5
	if clue.MinLayout != 5 {
		t.Errorf("MinLayout = %d, want 5", clue.MinLayout)
	}
	if clue.Slack != 5 {
		t.Errorf("Slack = %d, want 5", clue.Slack)
	}
}

func TestNewClueDifferentColoursNoGap(t *testing.T) {
	clue, err := NewClue([]Run{{Length: 2, Colour: 1}, {Length: 2, Colour: 2}}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clue.MinLayout != 4 {
		t.Errorf("MinLayout = %d, want 4 (runs of different colours may abut)", clue.MinLayout)
	}
	if clue.Slack != 0 {
		t.Errorf("Slack = %d, want 0", clue.Slack)
	}
}

func TestNewClueNegativeSlackIsError(t *testing.T) {
	_, err := NewClue([]Run{{Length: 3, Colour: 0}}, 2)
	if err == nil {
		t.Fatal("expected an error for a clue that cannot fit in the line")
	}
}

func TestNewClueRejectsNonPositiveLength(t *testing.T) {
	_, err := NewClue([]Run{{Length: 0, Colour: 0}}, 5)
	if err == nil {
		t.Fatal("expected an error for a zero-length run")
	}
}

func TestClueCount(t *testing.T) {
	clue, err := NewClue([]Run{{Length: 1, Colour: 0}, {Length: 1, Colour: 0}}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clue.ClueCount() != 2 {
		t.Errorf("ClueCount() = %d, want 2", clue.ClueCount())
	}
}
