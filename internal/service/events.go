package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/config"
	"github.com/seatwise/seatwise-backend/internal/model"
)

// MonitorEvent is the JSON payload fanned out to live dashboards over the
// session's Redis Pub/Sub channel.
type MonitorEvent struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id"`
	StudentID int         `json:"student_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// Events publishes monitor events and enqueues audit records. Both paths are
// fire-and-forget: a Redis hiccup is logged, never bubbled into the request
// that triggered it.
type Events struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewEvents creates the shared event publisher.
func NewEvents(rdb *redis.Client, log zerolog.Logger) *Events {
	return &Events{rdb: rdb, log: log.With().Str("component", "events").Logger()}
}

// PublishMonitor pushes an event onto the session's monitor channel.
func (e *Events) PublishMonitor(ctx context.Context, sessionID uuid.UUID, event MonitorEvent) {
	event.SessionID = sessionID.String()
	raw, err := json.Marshal(event)
	if err != nil {
		e.log.Error().Err(err).Msg("marshal monitor event")
		return
	}
	channel := config.CacheKey.SessionMonitorChannel(sessionID.String())
	if err := e.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		e.log.Warn().Err(err).Str("channel", channel).Msg("publish monitor event")
	}
}

// EnqueueAudit appends an integrity record to the audit queue for the worker
// to persist in batches.
func (e *Events) EnqueueAudit(ctx context.Context, sessionID uuid.UUID, studentID *int, eventType model.AuditEventType, detail string) {
	payload := model.AuditEvent{
		SessionID: sessionID,
		StudentID: studentID,
		Type:      eventType,
		Detail:    detail,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		e.log.Error().Err(err).Msg("marshal audit event")
		return
	}
	if err := e.rdb.RPush(ctx, config.WorkerKey.PersistAuditQueue, raw).Err(); err != nil {
		e.log.Warn().Err(err).Msg("enqueue audit event")
	}
}
