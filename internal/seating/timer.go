package seating

import (
	"fmt"
	"time"
)

// Remaining holds the two countdown values of a running session, in seconds.
// The buffer phase (reading time, answering disabled) counts down first; the
// exam phase starts only once the buffer hits zero.
type Remaining struct {
	BufferSeconds int `json:"buffer_seconds"`
	ExamSeconds   int `json:"exam_seconds"`
}

// Expired reports whether both phases have fully elapsed.
func (r Remaining) Expired() bool {
	return r.BufferSeconds == 0 && r.ExamSeconds == 0
}

// ComputeRemaining derives both countdowns from the session's wall-clock
// start. Values never go negative; clock skew that puts now before start is
// clamped to zero elapsed. Every client recomputes this each tick, so there
// is no per-participant countdown state to persist.
func ComputeRemaining(now, start time.Time, bufferMinutes, durationMinutes int) Remaining {
	elapsed := int(now.Sub(start) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	bufferSecs := bufferMinutes * 60
	durationSecs := durationMinutes * 60

	bufferRemaining := bufferSecs - elapsed
	if bufferRemaining < 0 {
		bufferRemaining = 0
	}

	examElapsed := elapsed - bufferSecs
	if examElapsed < 0 {
		examElapsed = 0
	}
	examRemaining := durationSecs - examElapsed
	if examRemaining < 0 {
		examRemaining = 0
	}

	return Remaining{BufferSeconds: bufferRemaining, ExamSeconds: examRemaining}
}

// RemainingTime returns the seconds a participant has left. Participants with
// a recorded individual start time are measured against an extended deadline
// of sessionStart + duration + lateExtraMinutes, so a late joiner gets a
// fixed grace extension rather than a fresh full duration. Without an
// individual start, the session's nominal deadline applies.
func RemainingTime(now, sessionStart time.Time, durationMinutes, lateExtraMinutes int, participantStart *time.Time) int {
	deadline := sessionStart.Add(time.Duration(durationMinutes) * time.Minute)
	if participantStart != nil {
		if lateExtraMinutes < 0 {
			lateExtraMinutes = 0
		}
		deadline = deadline.Add(time.Duration(lateExtraMinutes) * time.Minute)
	}

	remaining := int(deadline.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// FormatClock renders seconds as "MM:SS", switching to "HH:MM:SS" from one
// hour up. Non-positive input renders as "00:00".
func FormatClock(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "00:00"
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
