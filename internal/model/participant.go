package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

// Participant is one student's membership in a session. Seat and variant are
// assigned together, atomically: a participant never has one without the
// other, and the variant is always derived from the seat position.
type Participant struct {
	ID          uuid.UUID                 `json:"id"`
	SessionID   uuid.UUID                 `json:"session_id"`
	StudentID   int                       `json:"student_id"`
	StudentName string                    `json:"student_name,omitempty"`
	SeatRow     *int                      `json:"seat_row,omitempty"`
	SeatCol     *int                      `json:"seat_col,omitempty"`
	Variant     *int                      `json:"variant,omitempty"`
	Status      seating.ParticipantStatus `json:"status"`
	JoinedAt    time.Time                 `json:"joined_at"`
	StartedAt   *time.Time                `json:"started_at,omitempty"`
	SubmittedAt *time.Time                `json:"submitted_at,omitempty"`
}

// Seated reports whether this participant holds a seat.
func (p *Participant) Seated() bool {
	return p.SeatRow != nil && p.SeatCol != nil
}

// VariantLabel renders the participant's variant as its student-facing
// letter, or "" when unseated.
func (p *Participant) VariantLabel() string {
	if p.Variant == nil {
		return ""
	}
	return seating.VariantLabel(*p.Variant)
}

// ParticipantState is the countdown view returned to a taking student.
type ParticipantState struct {
	SessionID        uuid.UUID                 `json:"session_id"`
	Status           seating.ParticipantStatus `json:"status"`
	SeatRow          *int                      `json:"seat_row,omitempty"`
	SeatCol          *int                      `json:"seat_col,omitempty"`
	VariantLabel     string                    `json:"variant_label,omitempty"`
	Remaining        seating.Remaining         `json:"remaining"`
	RemainingSeconds int                       `json:"remaining_seconds"`
	RemainingClock   string                    `json:"remaining_clock"`
}
