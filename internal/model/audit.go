package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventType enumerates the integrity-relevant moments of a session.
type AuditEventType string

const (
	AuditParticipantJoined    AuditEventType = "PARTICIPANT_JOINED"
	AuditSeatAssigned         AuditEventType = "SEAT_ASSIGNED"
	AuditParticipantStarted   AuditEventType = "PARTICIPANT_STARTED"
	AuditParticipantSubmitted AuditEventType = "PARTICIPANT_SUBMITTED"
	AuditSessionStarted       AuditEventType = "SESSION_STARTED"
	AuditSessionEnded         AuditEventType = "SESSION_ENDED"
)

// AuditEvent is one append-only integrity record. Events are queued in Redis
// by the request path and persisted in batches by the audit worker, so the
// hot path never waits on the audit table.
type AuditEvent struct {
	ID        int64          `json:"id"`
	SessionID uuid.UUID      `json:"session_id"`
	StudentID *int           `json:"student_id,omitempty"`
	Type      AuditEventType `json:"type"`
	Detail    string         `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
