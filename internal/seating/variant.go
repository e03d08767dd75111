// Package seating contains the pure seat-assignment and session-timing logic
// for a proctored exam session: deterministic variant derivation, snake-fill
// seat planning, two-phase countdown math, and the session/participant
// status transition rules. Nothing in this package performs I/O; callers pass
// in snapshots (occupancy sets, wall-clock times) and persist the results.
package seating

// Seat is a coordinate in a session's seating grid. Rows and columns are
// zero-based; the grid itself defines which coordinates exist.
type Seat struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// VariantIndex derives the exam variant for a seat position. The striped
// formula guarantees that horizontally adjacent seats never share a variant
// when totalVariants >= 2, and vertically adjacent seats differ whenever
// totalVariants does not divide 3.
//
// A totalVariants <= 0 yields variant 0 instead of an error: a config typo
// must never take down a live exam.
func VariantIndex(row, col, totalVariants int) int {
	if totalVariants <= 0 {
		return 0
	}
	return (row*3 + col) % totalVariants
}

// VariantLabel renders a variant index as the letter sequence shown to
// students: 0 -> "A", 25 -> "Z", 26 -> "AA".
func VariantLabel(index int) string {
	if index < 0 {
		index = 0
	}
	label := ""
	for {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
		if index < 0 {
			break
		}
	}
	return label
}

// EmptySeats lists every seat of a rows x cols grid that is not in the
// occupied set, in row-major order (row 0 all columns, then row 1, ...).
func EmptySeats(rows, cols int, occupied map[Seat]struct{}) []Seat {
	empty := make([]Seat, 0, rows*cols-len(occupied))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			seat := Seat{Row: r, Col: c}
			if _, taken := occupied[seat]; !taken {
				empty = append(empty, seat)
			}
		}
	}
	return empty
}
