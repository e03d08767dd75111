package handler

import (
	"testing"

	"github.com/seatwise/seatwise-backend/internal/response"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

func TestTransitionCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want response.ErrCode
	}{
		{
			"start with empty room",
			seating.ValidateSessionTransition(seating.SessionWaiting, seating.SessionLive, 0),
			response.ErrNoSeatedYet,
		},
		{
			"seat after session end",
			seating.ValidateParticipantTransition(seating.ParticipantWaiting, seating.ParticipantSeated, seating.SessionEnded),
			response.ErrSessionEnded,
		},
		{
			"begin before start",
			seating.ValidateParticipantTransition(seating.ParticipantSeated, seating.ParticipantTaking, seating.SessionWaiting),
			response.ErrSessionNotLive,
		},
		{
			"double submit",
			seating.ValidateParticipantTransition(seating.ParticipantSubmitted, seating.ParticipantSubmitted, seating.SessionLive),
			response.ErrIllegalTransition,
		},
		{
			"ended is terminal",
			seating.ValidateSessionTransition(seating.SessionEnded, seating.SessionLive, 3),
			response.ErrIllegalTransition,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			te, ok := tc.err.(*seating.TransitionError)
			if !ok {
				t.Fatalf("expected a *TransitionError, got %T", tc.err)
			}
			if got := transitionCode(te); got != tc.want {
				t.Errorf("transitionCode(%v) = %s, want %s", te, got, tc.want)
			}
		})
	}
}

func TestTransitionCodeJoinAfterEnd(t *testing.T) {
	// Join rejections are built in the service layer rather than by the
	// participant state machine; the mapping keys off the shared reason.
	te := &seating.TransitionError{
		Entity: "participant", From: "", To: string(seating.ParticipantWaiting),
		Reason: "session has ended",
	}
	if got := transitionCode(te); got != response.ErrSessionEnded {
		t.Errorf("transitionCode = %s, want %s", got, response.ErrSessionEnded)
	}
}
