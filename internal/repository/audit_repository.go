package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise-backend/internal/model"
)

// AuditRepository persists integrity audit events. Writes arrive in batches
// from the audit worker; a single UNNEST insert keeps one round trip per
// flush regardless of batch size.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// BulkInsert writes a batch of audit events in one statement.
func (r *AuditRepository) BulkInsert(ctx context.Context, events []model.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	n := len(events)
	sessionIDs := make([]uuid.UUID, 0, n)
	studentIDs := make([]*int, 0, n)
	types := make([]string, 0, n)
	details := make([]string, 0, n)

	for _, e := range events {
		sessionIDs = append(sessionIDs, e.SessionID)
		studentIDs = append(studentIDs, e.StudentID)
		types = append(types, string(e.Type))
		details = append(details, e.Detail)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_events (session_id, student_id, event_type, detail)
		 SELECT * FROM UNNEST($1::uuid[], $2::int[], $3::text[], $4::text[])`,
		sessionIDs, studentIDs, types, details)
	return err
}

// Insert writes a single audit event; the worker's fallback path when a bulk
// flush fails.
func (r *AuditRepository) Insert(ctx context.Context, e *model.AuditEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_events (session_id, student_id, event_type, detail)
		 VALUES ($1, $2, $3, $4)`,
		e.SessionID, e.StudentID, string(e.Type), e.Detail)
	return err
}

// ListBySession returns a session's audit trail, oldest first.
func (r *AuditRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.AuditEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, student_id, event_type, detail, created_at
		 FROM audit_events
		 WHERE session_id = $1
		 ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.AuditEvent
	for rows.Next() {
		var e model.AuditEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.StudentID, &e.Type, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
