package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

// SessionStats is the aggregate dashboard view of one session.
type SessionStats struct {
	TotalJoined    int `json:"total_joined"`
	TotalWaiting   int `json:"total_waiting"`
	TotalSeated    int `json:"total_seated"`
	TotalTaking    int `json:"total_taking"`
	TotalSubmitted int `json:"total_submitted"`
	EmptySeats     int `json:"empty_seats"`
}

// MonitorService aggregates participant counts for the live dashboard's
// snapshot and periodic refresh events, and serves the persisted audit trail.
type MonitorService struct {
	sessionRepo     *repository.SessionRepository
	participantRepo *repository.ParticipantRepository
	auditRepo       *repository.AuditRepository
	log             zerolog.Logger
}

// NewMonitorService creates a new MonitorService.
func NewMonitorService(
	sessionRepo *repository.SessionRepository,
	participantRepo *repository.ParticipantRepository,
	auditRepo *repository.AuditRepository,
	log zerolog.Logger,
) *MonitorService {
	return &MonitorService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		auditRepo:       auditRepo,
		log:             log.With().Str("component", "monitor_service").Logger(),
	}
}

// Stats computes the current dashboard counters for a session.
func (s *MonitorService) Stats(ctx context.Context, sessionID uuid.UUID) (*SessionStats, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	counts, err := s.participantRepo.StatusCounts(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}

	stats := &SessionStats{
		TotalWaiting:   counts[seating.ParticipantWaiting],
		TotalSeated:    counts[seating.ParticipantSeated],
		TotalTaking:    counts[seating.ParticipantTaking],
		TotalSubmitted: counts[seating.ParticipantSubmitted],
	}
	stats.TotalJoined = stats.TotalWaiting + stats.TotalSeated + stats.TotalTaking + stats.TotalSubmitted

	occupiedSeats := stats.TotalSeated + stats.TotalTaking + stats.TotalSubmitted
	stats.EmptySeats = session.TotalSeats() - occupiedSeats
	if stats.EmptySeats < 0 {
		stats.EmptySeats = 0
	}

	return stats, nil
}

// AuditTrail returns a session's persisted audit events, oldest first. Events
// flow through the audit queue asynchronously, so very recent actions may not
// have landed yet.
func (s *MonitorService) AuditTrail(ctx context.Context, sessionID uuid.UUID) ([]model.AuditEvent, error) {
	events, err := s.auditRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
