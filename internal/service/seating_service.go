package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/config"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

// ErrSeatOutOfGrid is returned for a manual assignment targeting a seat
// outside the session's grid.
var ErrSeatOutOfGrid = errors.New("seat outside the session grid")

// Fields of the per-session timing hash in Redis. Writer (cacheTiming) and
// reader (timing) share them so the two sides cannot drift.
const (
	timingFieldDuration  = "duration_minutes"
	timingFieldBuffer    = "buffer_minutes"
	timingFieldLateExtra = "late_extra_minutes"
)

// timingConfig carries the three session columns the countdown math needs.
type timingConfig struct {
	DurationMinutes  int
	BufferMinutes    int
	LateExtraMinutes int
}

// parseTimingHash decodes a cached timing hash. Reports false when a field is
// missing or not numeric, so a partial or corrupted hash falls back to the
// session row.
func parseTimingHash(fields map[string]string) (timingConfig, bool) {
	var cfg timingConfig
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{timingFieldDuration, &cfg.DurationMinutes},
		{timingFieldBuffer, &cfg.BufferMinutes},
		{timingFieldLateExtra, &cfg.LateExtraMinutes},
	} {
		raw, ok := fields[f.name]
		if !ok {
			return timingConfig{}, false
		}
		val, err := strconv.Atoi(raw)
		if err != nil {
			return timingConfig{}, false
		}
		*f.dst = val
	}
	return cfg, true
}

// SeatingService orchestrates participants through the queue: joining,
// seating (manual and planned), beginning the exam, and submitting. It feeds
// snapshots to the pure seating functions and persists what they return; the
// database's constraints arbitrate any races the snapshots missed.
type SeatingService struct {
	sessionRepo     *repository.SessionRepository
	participantRepo *repository.ParticipantRepository
	rdb             *redis.Client
	events          *Events
	log             zerolog.Logger
}

// NewSeatingService creates a new SeatingService.
func NewSeatingService(
	sessionRepo *repository.SessionRepository,
	participantRepo *repository.ParticipantRepository,
	rdb *redis.Client,
	events *Events,
	log zerolog.Logger,
) *SeatingService {
	return &SeatingService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		rdb:             rdb,
		events:          events,
		log:             log.With().Str("component", "seating_service").Logger(),
	}
}

// Join puts a student into a session's waiting queue. Duplicate joins by the
// same student surface as repository.ErrAlreadyJoined.
func (s *SeatingService) Join(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.Participant, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.Status == seating.SessionEnded {
		return nil, &seating.TransitionError{
			Entity: "participant", From: "", To: string(seating.ParticipantWaiting),
			Reason: "session has ended",
		}
	}

	participant, err := s.participantRepo.Join(ctx, sessionID, studentID)
	if err != nil {
		return nil, err
	}

	_ = s.rdb.Set(ctx, config.CacheKey.StudentActiveSessionKey(studentID), sessionID.String(), 0)
	s.touch(ctx, sessionID)

	s.events.PublishMonitor(ctx, sessionID, MonitorEvent{Type: "participant_joined", StudentID: studentID, Data: participant})
	s.events.EnqueueAudit(ctx, sessionID, &studentID, model.AuditParticipantJoined, "")

	return participant, nil
}

// AssignSeat manually seats one waiting participant. The variant is derived
// from the seat position, never chosen. Losing a concurrent race for the
// seat yields repository.ErrSeatTaken; the proctor retries against a fresh
// room view.
func (s *SeatingService) AssignSeat(ctx context.Context, sessionID, participantID uuid.UUID, row, col int) (*model.Participant, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if row < 0 || row >= session.Rows || col < 0 || col >= session.Cols {
		return nil, ErrSeatOutOfGrid
	}

	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	if participant.SessionID != sessionID {
		return nil, repository.ErrNotFound
	}

	if err := seating.ValidateParticipantTransition(participant.Status, seating.ParticipantSeated, session.Status); err != nil {
		return nil, err
	}

	variant := seating.VariantIndex(row, col, session.TotalVariants)
	seated, err := s.participantRepo.ClaimSeat(ctx, participantID, row, col, variant)
	if err != nil {
		return nil, err
	}

	s.touch(ctx, sessionID)
	s.publishSeated(ctx, sessionID, seated)
	return seated, nil
}

// AutoAssignResult reports one batch planning pass.
type AutoAssignResult struct {
	Assigned  []model.Participant `json:"assigned"`
	Remaining int                 `json:"remaining"`
}

// claimFn persists one planned seat for one participant.
type claimFn func(p *model.Participant, a seating.Assignment) (*model.Participant, error)

// applyPlan walks the waiting queue and the seat plan in lockstep. A seat
// lost to a concurrent claim burns the plan entry and keeps the participant
// for the next seat; a participant who left the queue (ErrNotFound) burns the
// queue entry and keeps the seat for the next participant. Any other claim
// error aborts the pass.
func applyPlan(waiting []model.Participant, plan []seating.Assignment, claim claimFn) ([]model.Participant, error) {
	var assigned []model.Participant
	next, seat := 0, 0
	for next < len(waiting) && seat < len(plan) {
		seated, err := claim(&waiting[next], plan[seat])
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrSeatTaken):
				seat++
			case errors.Is(err, repository.ErrNotFound):
				next++
			default:
				return assigned, err
			}
			continue
		}
		assigned = append(assigned, *seated)
		next++
		seat++
	}
	return assigned, nil
}

// AutoAssign seats the whole waiting queue in snake-fill order. The plan is
// computed from an occupancy snapshot; a seat stolen between snapshot and
// claim is skipped and the affected participant simply stays in the queue.
// When the grid cannot hold everyone, Remaining reports how many were left
// waiting.
func (s *SeatingService) AutoAssign(ctx context.Context, sessionID uuid.UUID) (*AutoAssignResult, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.Status == seating.SessionEnded {
		return nil, &seating.TransitionError{
			Entity: "participant", From: string(seating.ParticipantWaiting), To: string(seating.ParticipantSeated),
			Reason: "session has ended",
		}
	}

	waiting, err := s.participantRepo.ListWaiting(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list waiting: %w", err)
	}
	if len(waiting) == 0 {
		return &AutoAssignResult{}, nil
	}

	occupied, err := s.participantRepo.Occupancy(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load occupancy: %w", err)
	}

	plan := seating.AutoAssign(session.Rows, session.Cols, occupied, len(waiting), session.TotalVariants)

	assigned, err := applyPlan(waiting, plan, func(p *model.Participant, a seating.Assignment) (*model.Participant, error) {
		seated, err := s.participantRepo.ClaimSeat(ctx, p.ID, a.Row, a.Col, a.Variant)
		if err != nil {
			if errors.Is(err, repository.ErrSeatTaken) || errors.Is(err, repository.ErrNotFound) {
				s.log.Debug().
					Str("session_id", sessionID.String()).
					Int("row", a.Row).Int("col", a.Col).
					Msg("Concurrent change during auto-assign")
			}
			return nil, err
		}
		s.publishSeated(ctx, sessionID, seated)
		return seated, nil
	})
	if err != nil {
		return nil, fmt.Errorf("claim seat: %w", err)
	}
	if len(assigned) > 0 {
		s.touch(ctx, sessionID)
	}

	result := &AutoAssignResult{
		Assigned:  assigned,
		Remaining: len(waiting) - len(assigned),
	}
	s.log.Info().
		Str("session_id", sessionID.String()).
		Int("assigned", len(result.Assigned)).
		Int("remaining", result.Remaining).
		Msg("Auto-assign pass complete")

	return result, nil
}

// Begin moves a seated participant to taking. Only legal while the session
// is live; the individual start time it stamps drives the late-joiner rule.
func (s *SeatingService) Begin(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.Participant, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	participant, err := s.participantRepo.GetBySessionAndStudent(ctx, sessionID, studentID)
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}

	if err := seating.ValidateParticipantTransition(participant.Status, seating.ParticipantTaking, session.Status); err != nil {
		return nil, err
	}

	taking, err := s.participantRepo.Begin(ctx, participant.ID)
	if err != nil {
		return nil, err
	}

	if taking.StartedAt != nil {
		key := config.CacheKey.ParticipantStartKey(sessionID.String(), studentID)
		_ = s.rdb.Set(ctx, key, taking.StartedAt.Unix(), 0)
	}

	s.events.PublishMonitor(ctx, sessionID, MonitorEvent{Type: "participant_started", StudentID: studentID, Data: taking})
	s.events.EnqueueAudit(ctx, sessionID, &studentID, model.AuditParticipantStarted, "")

	return taking, nil
}

// Submit finishes a participant's exam. A submit that races the session's
// end is still accepted; a second submit is rejected as an illegal
// transition.
func (s *SeatingService) Submit(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.Participant, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	participant, err := s.participantRepo.GetBySessionAndStudent(ctx, sessionID, studentID)
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}

	if err := seating.ValidateParticipantTransition(participant.Status, seating.ParticipantSubmitted, session.Status); err != nil {
		return nil, err
	}

	submitted, err := s.participantRepo.Submit(ctx, participant.ID)
	if err != nil {
		return nil, err
	}

	_ = s.rdb.Del(ctx, config.CacheKey.StudentActiveSessionKey(studentID))

	s.events.PublishMonitor(ctx, sessionID, MonitorEvent{Type: "participant_submitted", StudentID: studentID, Data: submitted})
	s.events.EnqueueAudit(ctx, sessionID, &studentID, model.AuditParticipantSubmitted, "")

	return submitted, nil
}

// State builds the countdown view a taking student polls (or receives over
// the WebSocket stream). Start times come from Redis with a Postgres
// fallback.
func (s *SeatingService) State(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.ParticipantState, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	participant, err := s.participantRepo.GetBySessionAndStudent(ctx, sessionID, studentID)
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}

	state := &model.ParticipantState{
		SessionID:    sessionID,
		Status:       participant.Status,
		SeatRow:      participant.SeatRow,
		SeatCol:      participant.SeatCol,
		VariantLabel: participant.VariantLabel(),
	}

	if session.Status != seating.SessionLive || session.StartedAt == nil {
		state.RemainingClock = seating.FormatClock(0)
		return state, nil
	}

	now := time.Now()
	start, cfg := s.timing(ctx, session)

	state.Remaining = seating.ComputeRemaining(now, start, cfg.BufferMinutes, cfg.DurationMinutes)
	state.RemainingSeconds = seating.RemainingTime(now, start, cfg.DurationMinutes, cfg.LateExtraMinutes, participant.StartedAt)
	state.RemainingClock = seating.FormatClock(state.RemainingSeconds)

	return state, nil
}

// ActiveSessionID resolves the session a student is currently in, if any.
func (s *SeatingService) ActiveSessionID(ctx context.Context, studentID int) (uuid.UUID, bool) {
	val, err := s.rdb.Get(ctx, config.CacheKey.StudentActiveSessionKey(studentID)).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// timing resolves a session's start time and countdown config, preferring
// the Redis copies so the per-tick countdown reads (state polls, WebSocket
// pings) do not reload timing fields from Postgres. Both copies self-heal
// from the session row on a miss.
func (s *SeatingService) timing(ctx context.Context, session *model.Session) (time.Time, timingConfig) {
	start := time.Unix(s.startUnix(ctx, session), 0)

	key := config.CacheKey.SessionTimingKey(session.ID.String())
	if fields, err := s.rdb.HGetAll(ctx, key).Result(); err == nil {
		if cfg, ok := parseTimingHash(fields); ok {
			return start, cfg
		}
	}

	cfg := timingConfig{
		DurationMinutes:  session.DurationMinutes,
		BufferMinutes:    session.BufferMinutes,
		LateExtraMinutes: session.LateExtraMinutes,
	}
	_ = s.rdb.HSet(ctx, key, map[string]interface{}{
		timingFieldDuration:  cfg.DurationMinutes,
		timingFieldBuffer:    cfg.BufferMinutes,
		timingFieldLateExtra: cfg.LateExtraMinutes,
	})
	return start, cfg
}

func (s *SeatingService) startUnix(ctx context.Context, session *model.Session) int64 {
	key := config.CacheKey.SessionStartKey(session.ID.String())
	if val, err := s.rdb.Get(ctx, key).Int64(); err == nil {
		return val
	}
	// Cache miss: Postgres is the source of truth, self-heal the key.
	unix := session.StartedAt.Unix()
	_ = s.rdb.Set(ctx, key, unix, 0)
	return unix
}

// touch bumps the session's updated_at so participant churn surfaces on
// session listings. Failures are logged only.
func (s *SeatingService) touch(ctx context.Context, sessionID uuid.UUID) {
	if err := s.sessionRepo.Touch(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("touch session")
	}
}

func (s *SeatingService) publishSeated(ctx context.Context, sessionID uuid.UUID, p *model.Participant) {
	detail := ""
	if p.Seated() {
		detail = fmt.Sprintf("seat=(%d,%d) variant=%s", *p.SeatRow, *p.SeatCol, p.VariantLabel())
	}
	s.events.PublishMonitor(ctx, sessionID, MonitorEvent{Type: "seat_assigned", StudentID: p.StudentID, Data: p})
	s.events.EnqueueAudit(ctx, sessionID, &p.StudentID, model.AuditSeatAssigned, detail)
}
