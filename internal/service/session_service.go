package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/config"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

// SessionService owns the session lifecycle: creation, the waiting -> live ->
// ended transitions, and the room snapshots proctors see. The transition
// rules themselves live in the seating package; this service applies them
// against current participant data and persists the outcome.
type SessionService struct {
	sessionRepo     *repository.SessionRepository
	participantRepo *repository.ParticipantRepository
	rdb             *redis.Client
	events          *Events
	defaultBuffer   int
	log             zerolog.Logger
}

// NewSessionService creates a new SessionService. defaultBufferMinutes is
// applied to sessions created without an explicit reading buffer.
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	participantRepo *repository.ParticipantRepository,
	rdb *redis.Client,
	events *Events,
	defaultBufferMinutes int,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		rdb:             rdb,
		events:          events,
		defaultBuffer:   defaultBufferMinutes,
		log:             log.With().Str("component", "session_service").Logger(),
	}
}

// Create persists a new WAITING session for a proctor.
func (s *SessionService) Create(ctx context.Context, session *model.Session) error {
	session.Status = seating.SessionWaiting
	if session.BufferMinutes == 0 {
		session.BufferMinutes = s.defaultBuffer
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetByID retrieves one session.
func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// ListByProctor retrieves a proctor's sessions.
func (s *SessionService) ListByProctor(ctx context.Context, proctorID int) ([]model.Session, error) {
	return s.sessionRepo.ListByProctor(ctx, proctorID)
}

// State builds the full room picture: session, participants, and the empty
// seats computed from current occupancy. For a live session the current
// countdowns are included.
func (s *SessionService) State(ctx context.Context, id uuid.UUID) (*model.SessionState, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	participants, err := s.participantRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	occupied := make(map[seating.Seat]struct{})
	for i := range participants {
		if participants[i].Seated() {
			occupied[seating.Seat{Row: *participants[i].SeatRow, Col: *participants[i].SeatCol}] = struct{}{}
		}
	}

	state := &model.SessionState{
		Session:      session,
		Participants: participants,
		EmptySeats:   seating.EmptySeats(session.Rows, session.Cols, occupied),
	}

	if session.Status == seating.SessionLive && session.StartedAt != nil {
		remaining := seating.ComputeRemaining(time.Now(), *session.StartedAt, session.BufferMinutes, session.DurationMinutes)
		state.Remaining = &remaining
	}

	return state, nil
}

// Start moves a session live. Requires at least one seated participant,
// stamps the start time exactly once, and caches the timing config in Redis
// so countdown reads skip Postgres.
func (s *SessionService) Start(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	seatedCount, err := s.participantRepo.CountByStatus(ctx, id, seating.ParticipantSeated)
	if err != nil {
		return nil, fmt.Errorf("count seated: %w", err)
	}

	if err := seating.ValidateSessionTransition(session.Status, seating.SessionLive, seatedCount); err != nil {
		return nil, err
	}

	started, err := s.sessionRepo.Start(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	s.cacheTiming(ctx, started)

	s.events.PublishMonitor(ctx, id, MonitorEvent{Type: "session_started", Data: started})
	s.events.EnqueueAudit(ctx, id, nil, model.AuditSessionStarted, "")

	s.log.Info().
		Str("session_id", id.String()).
		Int("seated", seatedCount).
		Msg("Session started")

	return started, nil
}

// End closes a session, either by proctor action or by the expiry worker.
// Ending a waiting session is a cancellation and needs no seated
// participants.
func (s *SessionService) End(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if err := seating.ValidateSessionTransition(session.Status, seating.SessionEnded, 0); err != nil {
		return nil, err
	}

	ended, err := s.sessionRepo.End(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	s.events.PublishMonitor(ctx, id, MonitorEvent{Type: "session_ended", Data: ended})
	s.events.EnqueueAudit(ctx, id, nil, model.AuditSessionEnded, "")

	s.log.Info().Str("session_id", id.String()).Msg("Session ended")

	return ended, nil
}

// cacheTiming stores start time and timing config in Redis. Failures are
// logged only; the database copy remains the source of truth and readers
// fall back to it.
func (s *SessionService) cacheTiming(ctx context.Context, session *model.Session) {
	if session.StartedAt == nil {
		return
	}
	id := session.ID.String()

	if err := s.rdb.Set(ctx, config.CacheKey.SessionStartKey(id), session.StartedAt.Unix(), 0).Err(); err != nil {
		s.log.Warn().Err(err).Msg("cache session start")
	}
	err := s.rdb.HSet(ctx, config.CacheKey.SessionTimingKey(id), map[string]interface{}{
		timingFieldDuration:  session.DurationMinutes,
		timingFieldBuffer:    session.BufferMinutes,
		timingFieldLateExtra: session.LateExtraMinutes,
	}).Err()
	if err != nil {
		s.log.Warn().Err(err).Msg("cache session timing")
	}
}
