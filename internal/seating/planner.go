package seating

// Assignment pairs a seat with the variant index derived from it.
type Assignment struct {
	Seat
	Variant int `json:"variant"`
}

// AutoAssign plans seats for a batch of waiting participants. The grid is
// walked in snake order (row 0 left to right, row 1 right to left, and so
// on), which matches how a proctor walks the aisles, so consecutive arrivals
// end up next to each other without long walk-backs.
//
// Already-occupied seats are skipped, and seats claimed within this planning
// pass are not handed out twice. The result holds at most
// min(waitingCount, emptySeatCount) assignments; when the grid cannot hold
// everyone the caller is responsible for leaving the overflow participants
// in the waiting queue.
//
// The occupied set is not mutated.
func AutoAssign(rows, cols int, occupied map[Seat]struct{}, waitingCount, totalVariants int) []Assignment {
	if waitingCount <= 0 {
		return nil
	}

	claimed := make(map[Seat]struct{}, len(occupied))
	for seat := range occupied {
		claimed[seat] = struct{}{}
	}

	assignments := make([]Assignment, 0, waitingCount)
	for r := 0; r < rows && len(assignments) < waitingCount; r++ {
		for i := 0; i < cols && len(assignments) < waitingCount; i++ {
			c := i
			if r%2 == 1 {
				c = cols - 1 - i
			}
			seat := Seat{Row: r, Col: c}
			if _, taken := claimed[seat]; taken {
				continue
			}
			claimed[seat] = struct{}{}
			assignments = append(assignments, Assignment{
				Seat:    seat,
				Variant: VariantIndex(r, c, totalVariants),
			})
		}
	}
	return assignments
}
