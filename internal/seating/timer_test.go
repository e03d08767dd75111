package seating

import (
	"testing"
	"time"
)

func TestComputeRemainingBufferThenExam(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	// 90s in with a 1 minute buffer: buffer is done, 30s of exam elapsed.
	got := ComputeRemaining(start.Add(90*time.Second), start, 1, 10)
	if got.BufferSeconds != 0 {
		t.Errorf("buffer remaining = %d, want 0", got.BufferSeconds)
	}
	if got.ExamSeconds != 570 {
		t.Errorf("exam remaining = %d, want 570", got.ExamSeconds)
	}
}

func TestComputeRemainingDuringBuffer(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	got := ComputeRemaining(start.Add(20*time.Second), start, 2, 30)
	if got.BufferSeconds != 100 {
		t.Errorf("buffer remaining = %d, want 100", got.BufferSeconds)
	}
	// Exam clock does not start ticking until the buffer elapses.
	if got.ExamSeconds != 30*60 {
		t.Errorf("exam remaining = %d, want %d", got.ExamSeconds, 30*60)
	}
}

func TestComputeRemainingMonotonic(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	prev := Remaining{BufferSeconds: 1 << 30, ExamSeconds: 1 << 30}
	for elapsed := 0; elapsed <= 15*60; elapsed += 7 {
		got := ComputeRemaining(start.Add(time.Duration(elapsed)*time.Second), start, 2, 10)
		if got.BufferSeconds > prev.BufferSeconds || got.ExamSeconds > prev.ExamSeconds {
			t.Fatalf("countdown went up at %ds: %+v after %+v", elapsed, got, prev)
		}
		if got.BufferSeconds < 0 || got.ExamSeconds < 0 {
			t.Fatalf("negative countdown at %ds: %+v", elapsed, got)
		}
		prev = got
	}
	if !prev.Expired() {
		t.Errorf("expected both phases expired at the end, got %+v", prev)
	}
}

func TestComputeRemainingClockSkew(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	// A client whose clock is behind the session start clamps to zero elapsed.
	got := ComputeRemaining(start.Add(-45*time.Second), start, 1, 10)
	if got.BufferSeconds != 60 {
		t.Errorf("buffer remaining = %d, want 60", got.BufferSeconds)
	}
	if got.ExamSeconds != 600 {
		t.Errorf("exam remaining = %d, want 600", got.ExamSeconds)
	}
}

func TestRemainingTimeLateJoinerExtension(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	joined := start.Add(25 * time.Minute)

	// 30 minute session with 5 grace minutes: the late joiner's deadline is
	// start+35min, leaving 600s at the moment they begin.
	got := RemainingTime(joined, start, 30, 5, &joined)
	if got != 600 {
		t.Errorf("RemainingTime = %d, want 600", got)
	}
}

func TestRemainingTimeWithoutIndividualStart(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	got := RemainingTime(start.Add(10*time.Minute), start, 30, 5, nil)
	if got != 20*60 {
		t.Errorf("RemainingTime = %d, want %d", got, 20*60)
	}
}

func TestRemainingTimeFloorsAtZero(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	joined := start.Add(20 * time.Minute)

	got := RemainingTime(start.Add(2*time.Hour), start, 30, 5, &joined)
	if got != 0 {
		t.Errorf("RemainingTime = %d, want 0", got)
	}
}

func TestRemainingTimeNegativeGraceClamped(t *testing.T) {
	start := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	joined := start.Add(5 * time.Minute)

	with := RemainingTime(joined, start, 30, -10, &joined)
	without := RemainingTime(joined, start, 30, 0, &joined)
	if with != without {
		t.Errorf("negative grace changed the deadline: %d vs %d", with, without)
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{599, "09:59"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7322, "02:02:02"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.seconds); got != tc.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
