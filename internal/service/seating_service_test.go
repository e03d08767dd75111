package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

func makeWaiting(n int) []model.Participant {
	waiting := make([]model.Participant, n)
	for i := range waiting {
		waiting[i] = model.Participant{ID: uuid.New(), StudentID: i + 1}
	}
	return waiting
}

func makePlan(seats ...seating.Seat) []seating.Assignment {
	plan := make([]seating.Assignment, len(seats))
	for i, s := range seats {
		plan[i] = seating.Assignment{Seat: s, Variant: i}
	}
	return plan
}

func seatClaim(p *model.Participant, a seating.Assignment) *model.Participant {
	seated := *p
	row, col, variant := a.Row, a.Col, a.Variant
	seated.SeatRow = &row
	seated.SeatCol = &col
	seated.Variant = &variant
	seated.Status = seating.ParticipantSeated
	return &seated
}

func TestApplyPlanAssignsInLockstep(t *testing.T) {
	waiting := makeWaiting(3)
	plan := makePlan(seating.Seat{Row: 0, Col: 0}, seating.Seat{Row: 0, Col: 1}, seating.Seat{Row: 0, Col: 2})

	assigned, err := applyPlan(waiting, plan, func(p *model.Participant, a seating.Assignment) (*model.Participant, error) {
		return seatClaim(p, a), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assigned) != 3 {
		t.Fatalf("got %d assigned, want 3", len(assigned))
	}
	for i, p := range assigned {
		if p.StudentID != waiting[i].StudentID {
			t.Errorf("position %d: student %d, want %d", i, p.StudentID, waiting[i].StudentID)
		}
		if *p.SeatCol != i {
			t.Errorf("position %d: seat col %d, want %d", i, *p.SeatCol, i)
		}
	}
}

// A participant who left the queue between the snapshot and the claim must
// only consume their own queue entry; the seat stays available for the next
// participant instead of the rest of the plan being burned.
func TestApplyPlanDepartedParticipantDoesNotBurnSeats(t *testing.T) {
	waiting := makeWaiting(3)
	departed := waiting[1].ID
	plan := makePlan(seating.Seat{Row: 0, Col: 0}, seating.Seat{Row: 0, Col: 1}, seating.Seat{Row: 0, Col: 2})

	assigned, err := applyPlan(waiting, plan, func(p *model.Participant, a seating.Assignment) (*model.Participant, error) {
		if p.ID == departed {
			return nil, repository.ErrNotFound
		}
		return seatClaim(p, a), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assigned) != 2 {
		t.Fatalf("got %d assigned, want 2", len(assigned))
	}
	if assigned[0].StudentID != waiting[0].StudentID || assigned[1].StudentID != waiting[2].StudentID {
		t.Errorf("assigned students %d,%d; want %d,%d",
			assigned[0].StudentID, assigned[1].StudentID, waiting[0].StudentID, waiting[2].StudentID)
	}
	// The third participant inherits the departed one's seat.
	if *assigned[1].SeatCol != 1 {
		t.Errorf("second assignment at col %d, want 1", *assigned[1].SeatCol)
	}
}

func TestApplyPlanStolenSeatKeepsParticipant(t *testing.T) {
	waiting := makeWaiting(2)
	plan := makePlan(seating.Seat{Row: 0, Col: 0}, seating.Seat{Row: 0, Col: 1}, seating.Seat{Row: 0, Col: 2})

	assigned, err := applyPlan(waiting, plan, func(p *model.Participant, a seating.Assignment) (*model.Participant, error) {
		if a.Col == 0 {
			return nil, repository.ErrSeatTaken
		}
		return seatClaim(p, a), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assigned) != 2 {
		t.Fatalf("got %d assigned, want 2", len(assigned))
	}
	if assigned[0].StudentID != waiting[0].StudentID || *assigned[0].SeatCol != 1 {
		t.Errorf("first participant got col %d, want 1 after losing col 0", *assigned[0].SeatCol)
	}
}

func TestApplyPlanHardErrorAborts(t *testing.T) {
	waiting := makeWaiting(3)
	plan := makePlan(seating.Seat{Row: 0, Col: 0}, seating.Seat{Row: 0, Col: 1}, seating.Seat{Row: 0, Col: 2})
	boom := fmt.Errorf("connection reset")

	calls := 0
	_, err := applyPlan(waiting, plan, func(p *model.Participant, a seating.Assignment) (*model.Participant, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return seatClaim(p, a), nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the claim error back, got %v", err)
	}
	if calls != 2 {
		t.Errorf("claim called %d times, want 2", calls)
	}
}

func TestParseTimingHash(t *testing.T) {
	cfg, ok := parseTimingHash(map[string]string{
		timingFieldDuration:  "30",
		timingFieldBuffer:    "2",
		timingFieldLateExtra: "5",
	})
	if !ok {
		t.Fatal("expected a complete hash to parse")
	}
	if cfg.DurationMinutes != 30 || cfg.BufferMinutes != 2 || cfg.LateExtraMinutes != 5 {
		t.Errorf("parsed %+v, want 30/2/5", cfg)
	}
}

func TestParseTimingHashIncomplete(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
	}{
		{"empty", map[string]string{}},
		{"missing field", map[string]string{
			timingFieldDuration: "30",
			timingFieldBuffer:   "2",
		}},
		{"garbage value", map[string]string{
			timingFieldDuration:  "30",
			timingFieldBuffer:    "2",
			timingFieldLateExtra: "soon",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := parseTimingHash(tc.fields); ok {
				t.Error("expected parse to reject and force the session-row fallback")
			}
		})
	}
}
