package seating

import "testing"

func TestAutoAssignSnakeOrder(t *testing.T) {
	got := AutoAssign(3, 3, nil, 9, 4)

	wantSeats := []Seat{
		{0, 0}, {0, 1}, {0, 2},
		{1, 2}, {1, 1}, {1, 0},
		{2, 0}, {2, 1}, {2, 2},
	}
	if len(got) != len(wantSeats) {
		t.Fatalf("got %d assignments, want %d", len(got), len(wantSeats))
	}
	for i, a := range got {
		if a.Seat != wantSeats[i] {
			t.Errorf("assignment %d: seat %v, want %v", i, a.Seat, wantSeats[i])
		}
		if want := VariantIndex(a.Row, a.Col, 4); a.Variant != want {
			t.Errorf("assignment %d: variant %d, want %d", i, a.Variant, want)
		}
	}
}

func TestAutoAssignClampsToCapacity(t *testing.T) {
	// 10 waiting participants, 4 seats: the planner returns a partial result
	// and the caller leaves the remaining 6 in the waiting queue.
	got := AutoAssign(2, 2, nil, 10, 2)
	if len(got) != 4 {
		t.Fatalf("got %d assignments, want 4", len(got))
	}
	seen := make(map[Seat]struct{})
	for _, a := range got {
		seen[a.Seat] = struct{}{}
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct seats, got %d", len(seen))
	}
}

func TestAutoAssignRespectsOccupancy(t *testing.T) {
	occupied := map[Seat]struct{}{{0, 0}: {}}
	got := AutoAssign(2, 2, occupied, 3, 2)

	if len(got) > 3 {
		t.Fatalf("got %d assignments, want at most 3", len(got))
	}
	for _, a := range got {
		if a.Seat == (Seat{0, 0}) {
			t.Errorf("planner assigned the occupied seat %v", a.Seat)
		}
	}
	if len(occupied) != 1 {
		t.Errorf("planner mutated the caller's occupancy set: %v", occupied)
	}
}

func TestAutoAssignStopsAtWaitingCount(t *testing.T) {
	got := AutoAssign(5, 5, nil, 3, 4)
	if len(got) != 3 {
		t.Fatalf("got %d assignments, want 3", len(got))
	}
	// First three seats of the snake walk.
	want := []Seat{{0, 0}, {0, 1}, {0, 2}}
	for i, a := range got {
		if a.Seat != want[i] {
			t.Errorf("assignment %d: seat %v, want %v", i, a.Seat, want[i])
		}
	}
}

func TestAutoAssignNoWaiting(t *testing.T) {
	if got := AutoAssign(3, 3, nil, 0, 2); len(got) != 0 {
		t.Errorf("expected no assignments for zero waiting, got %v", got)
	}
	if got := AutoAssign(3, 3, nil, -1, 2); len(got) != 0 {
		t.Errorf("expected no assignments for negative waiting, got %v", got)
	}
}

func TestAutoAssignDeterministic(t *testing.T) {
	occupied := map[Seat]struct{}{{1, 1}: {}, {0, 2}: {}}
	first := AutoAssign(4, 4, occupied, 8, 5)
	for i := 0; i < 3; i++ {
		again := AutoAssign(4, 4, occupied, 8, 5)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d assignments, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d differs at %d: %v vs %v", i, j, again[j], first[j])
			}
		}
	}
}
