package buffer

import "testing"

func TestRing_Window(t *testing.T) {
	r := NewRing[int](3)
	if got := r.Snapshot(); len(got) != 0 {
		t.Fatalf("empty ring snapshot = %v", got)
	}

	r.Push(1)
	r.Push(2)
	if got := r.Snapshot(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("snapshot = %v, want [1 2]", got)
	}

	r.Push(3)
	r.Push(4) // overwrites 1
	got := r.Snapshot()
	if len(got) != 3 || got[0] != 2 || got[2] != 4 {
		t.Fatalf("snapshot after wrap = %v, want [2 3 4]", got)
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}

	r.Reset()
	if r.Len() != 0 || len(r.Snapshot()) != 0 {
		t.Fatal("ring not empty after Reset")
	}
}
