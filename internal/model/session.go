package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

// Session is one proctored exam sitting with a fixed seating grid, a variant
// count, and a two-phase timer. The grid is immutable once created.
type Session struct {
	ID               uuid.UUID             `json:"id"`
	Title            string                `json:"title"`
	ProctorID        int                   `json:"proctor_id"`
	Rows             int                   `json:"rows"`
	Cols             int                   `json:"cols"`
	TotalVariants    int                   `json:"total_variants"`
	DurationMinutes  int                   `json:"duration_minutes"`
	BufferMinutes    int                   `json:"buffer_minutes"`
	LateExtraMinutes int                   `json:"late_extra_minutes"`
	Status           seating.SessionStatus `json:"status"`
	StartedAt        *time.Time            `json:"started_at,omitempty"`
	EndedAt          *time.Time            `json:"ended_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// TotalSeats returns the grid capacity.
func (s *Session) TotalSeats() int {
	return s.Rows * s.Cols
}

// CreateSessionRequest is the payload for creating a new seating session.
type CreateSessionRequest struct {
	Title            string `json:"title" binding:"required,min=3,max=255"`
	Rows             int    `json:"rows" binding:"required,min=1,max=50"`
	Cols             int    `json:"cols" binding:"required,min=1,max=50"`
	TotalVariants    int    `json:"total_variants" binding:"required,min=1,max=26"`
	DurationMinutes  int    `json:"duration_minutes" binding:"required,min=1,max=480"`
	BufferMinutes    int    `json:"buffer_minutes" binding:"omitempty,min=0,max=60"`
	LateExtraMinutes int    `json:"late_extra_minutes" binding:"omitempty,min=0,max=120"`
}

// AssignSeatRequest is the payload for manually seating one participant.
type AssignSeatRequest struct {
	Row int `json:"row" binding:"min=0"`
	Col int `json:"col" binding:"min=0"`
}

// SessionState is the full room picture returned to the proctor: the session,
// everyone in it, and which seats are still free.
type SessionState struct {
	Session      *Session           `json:"session"`
	Participants []Participant      `json:"participants"`
	EmptySeats   []seating.Seat     `json:"empty_seats"`
	Remaining    *seating.Remaining `json:"remaining,omitempty"`
}
