package queue

import (
	"testing"

	"nonogram-solver/internal/core"
)

func TestAddDedupesKey(t *testing.T) {
	q := New()
	q.Add(core.Row, 3, 5)
	q.Add(core.Row, 3, 99) // same key, should be a no-op
	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after duplicate Add", q.Len())
	}
	job, ok := q.Next()
	if !ok {
		t.Fatal("expected a job")
	}
	if job.Priority != 5 {
		t.Errorf("Priority = %d, want 5 (first Add wins)", job.Priority)
	}
}

func TestNextPopsHighestPriorityFirst(t *testing.T) {
	q := New()
	q.Add(core.Row, 0, 1)
	q.Add(core.Row, 1, 10)
	q.Add(core.Col, 2, 5)

	job, _ := q.Next()
	if job.Priority != 10 {
		t.Fatalf("first pop priority = %d, want 10", job.Priority)
	}
	job, _ = q.Next()
	if job.Priority != 5 {
		t.Fatalf("second pop priority = %d, want 5", job.Priority)
	}
	job, _ = q.Next()
	if job.Priority != 1 {
		t.Fatalf("third pop priority = %d, want 1", job.Priority)
	}
}

func TestNextFIFOWithinEqualPriority(t *testing.T) {
	q := New()
	q.Add(core.Row, 0, 5)
	q.Add(core.Row, 1, 5)
	q.Add(core.Row, 2, 5)

	first, _ := q.Next()
	second, _ := q.Next()
	third, _ := q.Next()
	if first.Line != 0 || second.Line != 1 || third.Line != 2 {
		t.Errorf("equal-priority jobs did not pop FIFO: got lines %d, %d, %d", first.Line, second.Line, third.Line)
	}
}

func TestNextOnEmptyQueue(t *testing.T) {
	q := New()
	if _, ok := q.Next(); ok {
		t.Fatal("Next() on an empty queue should report false")
	}
}

func TestFlushClearsPresence(t *testing.T) {
	q := New()
	q.Add(core.Row, 0, 1)
	q.Flush()
	if q.Len() != 0 {
		t.Fatalf("Len() = %d after Flush, want 0", q.Len())
	}
	q.Add(core.Row, 0, 1) // should be allowed again, not deduped against the pre-flush entry
	if q.Len() != 1 {
		t.Fatal("Add after Flush should succeed")
	}
}
