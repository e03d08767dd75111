package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
	"github.com/seatwise/seatwise-backend/internal/seating"
	"github.com/seatwise/seatwise-backend/internal/service"
)

// ExpiryWorker scans live sessions and ends the ones whose timers ran out.
// Ending goes through the session service so monitor and audit events fire
// the same way they do for a manual end.
type ExpiryWorker struct {
	sessionRepo    *repository.SessionRepository
	sessionService *service.SessionService
	interval       time.Duration
	log            zerolog.Logger
}

// NewExpiryWorker creates a new ExpiryWorker.
func NewExpiryWorker(
	sessionRepo *repository.SessionRepository,
	sessionService *service.SessionService,
	interval time.Duration,
	log zerolog.Logger,
) *ExpiryWorker {
	return &ExpiryWorker{
		sessionRepo:    sessionRepo,
		sessionService: sessionService,
		interval:       interval,
		log:            log.With().Str("component", "expiry_worker").Logger(),
	}
}

// Start begins the scan loop. Call in a goroutine; cancel the context to stop.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *ExpiryWorker) scan(ctx context.Context) {
	sessions, err := w.sessionRepo.ListLive(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("List live sessions failed")
		return
	}

	now := time.Now()
	for i := range sessions {
		if !sessionExpired(&sessions[i], now) {
			continue
		}

		if _, err := w.sessionService.End(ctx, sessions[i].ID); err != nil {
			// A proctor ending the session concurrently loses nothing; the
			// transition check just rejects our attempt.
			w.log.Warn().Err(err).
				Str("session_id", sessions[i].ID.String()).
				Msg("End expired session failed")
			continue
		}

		w.log.Info().
			Str("session_id", sessions[i].ID.String()).
			Msg("Session ended by timer")
	}
}

// sessionExpired reports whether every participant's clock has run out: the
// shared buffer+exam window is over AND the late-start grace window is past,
// so even the latest legal starter has no time left.
func sessionExpired(session *model.Session, now time.Time) bool {
	if session.StartedAt == nil {
		return false
	}
	start := *session.StartedAt

	if !seating.ComputeRemaining(now, start, session.BufferMinutes, session.DurationMinutes).Expired() {
		return false
	}

	lateDeadline := start.Add(time.Duration(session.DurationMinutes+session.LateExtraMinutes) * time.Minute)
	return !now.Before(lateDeadline)
}
