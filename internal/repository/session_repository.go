package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

// SessionRepository handles seating session data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, title, proctor_id, rows, cols, total_variants,
	duration_minutes, buffer_minutes, late_extra_minutes, status,
	started_at, ended_at, created_at, updated_at`

func scanSession(row pgx.Row) (*model.Session, error) {
	s := &model.Session{}
	err := row.Scan(
		&s.ID, &s.Title, &s.ProctorID, &s.Rows, &s.Cols, &s.TotalVariants,
		&s.DurationMinutes, &s.BufferMinutes, &s.LateExtraMinutes, &s.Status,
		&s.StartedAt, &s.EndedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// Create inserts a new session in WAITING status.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sessions (title, proctor_id, rows, cols, total_variants,
		                       duration_minutes, buffer_minutes, late_extra_minutes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		s.Title, s.ProctorID, s.Rows, s.Cols, s.TotalVariants,
		s.DurationMinutes, s.BufferMinutes, s.LateExtraMinutes, seating.SessionWaiting,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a session.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id))
}

// ListByProctor retrieves a proctor's sessions, newest first.
func (r *SessionRepository) ListByProctor(ctx context.Context, proctorID int) ([]model.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE proctor_id = $1
		 ORDER BY created_at DESC`, proctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// ListLive retrieves every LIVE session, for the expiry worker's sweep.
func (r *SessionRepository) ListLive(ctx context.Context) ([]model.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE status = $1`,
		seating.SessionLive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// Start moves a WAITING session to LIVE and stamps its start time exactly
// once. The WHERE guard makes the operation safe against a concurrent start:
// the loser scans no row and gets ErrNotFound.
func (r *SessionRepository) Start(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	s, err := scanSession(r.pool.QueryRow(ctx,
		`UPDATE sessions
		 SET status = $1, started_at = NOW(), updated_at = NOW()
		 WHERE id = $2 AND status = $3
		 RETURNING `+sessionColumns,
		seating.SessionLive, id, seating.SessionWaiting))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// End moves a WAITING or LIVE session to ENDED. Ending an already-ended
// session scans no row and reports ErrNotFound.
func (r *SessionRepository) End(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	return scanSession(r.pool.QueryRow(ctx,
		`UPDATE sessions
		 SET status = $1, ended_at = NOW(), updated_at = NOW()
		 WHERE id = $2 AND status IN ($3, $4)
		 RETURNING `+sessionColumns,
		seating.SessionEnded, id, seating.SessionWaiting, seating.SessionLive))
}

// Touch bumps updated_at; used when participant churn should be visible on
// session listings.
func (r *SessionRepository) Touch(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sessions SET updated_at = $1 WHERE id = $2`, time.Now(), id)
	return err
}
