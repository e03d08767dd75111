package seating

import "fmt"

// SessionStatus enumerates the lifecycle states of a seating session.
// There is deliberately no session-level "seated" state: seating is a
// participant-level concern, and a session goes live directly from waiting.
type SessionStatus string

const (
	SessionWaiting SessionStatus = "WAITING"
	SessionLive    SessionStatus = "LIVE"
	SessionEnded   SessionStatus = "ENDED"
)

// ParticipantStatus enumerates a participant's states within one session.
type ParticipantStatus string

const (
	ParticipantWaiting   ParticipantStatus = "WAITING"
	ParticipantSeated    ParticipantStatus = "SEATED"
	ParticipantTaking    ParticipantStatus = "TAKING"
	ParticipantSubmitted ParticipantStatus = "SUBMITTED"
)

// TransitionError reports a rejected status transition. Illegal transitions
// are always surfaced, never silently ignored, so the integrity audit trail
// stays trustworthy.
type TransitionError struct {
	Entity string
	From   string
	To     string
	Reason string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("illegal %s transition: %s -> %s", e.Entity, e.From, e.To)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// ValidateSessionTransition checks whether a session may move between the
// given statuses. seatedCount is the number of currently SEATED participants;
// going live requires at least one, while cancelling a never-started session
// (WAITING -> ENDED) has no such precondition.
func ValidateSessionTransition(from, to SessionStatus, seatedCount int) error {
	switch {
	case from == SessionWaiting && to == SessionLive:
		if seatedCount < 1 {
			return &TransitionError{
				Entity: "session", From: string(from), To: string(to),
				Reason: "no seated participants",
			}
		}
		return nil
	case from == SessionWaiting && to == SessionEnded:
		return nil
	case from == SessionLive && to == SessionEnded:
		return nil
	}
	return &TransitionError{Entity: "session", From: string(from), To: string(to)}
}

// ValidateParticipantTransition checks whether a participant may move between
// the given statuses while their session is in sessionStatus.
//
// Seating happens during the waiting phase (and remains legal while live for
// stragglers), taking requires the session to actually be live, and a submit
// racing the session's end is still accepted: TAKING -> SUBMITTED stays
// legal after ENDED so an in-flight submission is not lost. A second submit
// is rejected, not swallowed.
func ValidateParticipantTransition(from, to ParticipantStatus, sessionStatus SessionStatus) error {
	switch {
	case from == ParticipantWaiting && to == ParticipantSeated:
		if sessionStatus == SessionEnded {
			return &TransitionError{
				Entity: "participant", From: string(from), To: string(to),
				Reason: "session has ended",
			}
		}
		return nil
	case from == ParticipantSeated && to == ParticipantTaking:
		if sessionStatus != SessionLive {
			return &TransitionError{
				Entity: "participant", From: string(from), To: string(to),
				Reason: fmt.Sprintf("session is %s, not LIVE", sessionStatus),
			}
		}
		return nil
	case from == ParticipantTaking && to == ParticipantSubmitted:
		return nil
	}
	return &TransitionError{Entity: "participant", From: string(from), To: string(to)}
}
