package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/seating"
)

// ParticipantRepository handles participant data access. The two contended
// operations, joining a session and claiming a seat, are single guarded
// statements, so the database's uniqueness constraints serialize concurrent
// writers instead of application locks.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

const participantColumns = `p.id, p.session_id, p.student_id, s.name,
	p.seat_row, p.seat_col, p.variant, p.status,
	p.joined_at, p.started_at, p.submitted_at`

func scanParticipant(row pgx.Row) (*model.Participant, error) {
	p := &model.Participant{}
	err := row.Scan(
		&p.ID, &p.SessionID, &p.StudentID, &p.StudentName,
		&p.SeatRow, &p.SeatCol, &p.Variant, &p.Status,
		&p.JoinedAt, &p.StartedAt, &p.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Join inserts a new WAITING participant. A duplicate (session, student) pair
// inserts nothing and is reported as ErrAlreadyJoined.
func (r *ParticipantRepository) Join(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.Participant, error) {
	p := &model.Participant{
		SessionID: sessionID,
		StudentID: studentID,
		Status:    seating.ParticipantWaiting,
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO participants (session_id, student_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, student_id) DO NOTHING
		 RETURNING id, joined_at`,
		sessionID, studentID, seating.ParticipantWaiting,
	).Scan(&p.ID, &p.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyJoined
		}
		return nil, err
	}
	return p, nil
}

// ClaimSeat atomically assigns a seat and its derived variant to a WAITING
// participant, moving them to SEATED. The seat's uniqueness within the
// session is enforced by a partial unique index on
// (session_id, seat_row, seat_col); losing that race yields ErrSeatTaken.
// A participant who is not WAITING anymore yields ErrNotFound.
func (r *ParticipantRepository) ClaimSeat(ctx context.Context, participantID uuid.UUID, row, col, variant int) (*model.Participant, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE participants
		 SET seat_row = $1, seat_col = $2, variant = $3, status = $4
		 WHERE id = $5 AND status = $6`,
		row, col, variant, seating.ParticipantSeated,
		participantID, seating.ParticipantWaiting)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, participantID)
}

// Begin moves a SEATED participant to TAKING and stamps their individual
// start time, which drives the late-joiner grace rule.
func (r *ParticipantRepository) Begin(ctx context.Context, participantID uuid.UUID) (*model.Participant, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE participants
		 SET status = $1, started_at = NOW()
		 WHERE id = $2 AND status = $3`,
		seating.ParticipantTaking, participantID, seating.ParticipantSeated)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, participantID)
}

// Submit moves a TAKING participant to SUBMITTED. The status guard makes a
// double submit scan no row, which callers surface as an illegal transition
// rather than silently absorbing it.
func (r *ParticipantRepository) Submit(ctx context.Context, participantID uuid.UUID) (*model.Participant, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE participants
		 SET status = $1, submitted_at = NOW()
		 WHERE id = $2 AND status = $3`,
		seating.ParticipantSubmitted, participantID, seating.ParticipantTaking)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, participantID)
}

// GetByID retrieves one participant with their student name.
func (r *ParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	return scanParticipant(r.pool.QueryRow(ctx,
		`SELECT `+participantColumns+`
		 FROM participants p JOIN students s ON p.student_id = s.id
		 WHERE p.id = $1`, id))
}

// GetBySessionAndStudent retrieves a student's participant record in a session.
func (r *ParticipantRepository) GetBySessionAndStudent(ctx context.Context, sessionID uuid.UUID, studentID int) (*model.Participant, error) {
	return scanParticipant(r.pool.QueryRow(ctx,
		`SELECT `+participantColumns+`
		 FROM participants p JOIN students s ON p.student_id = s.id
		 WHERE p.session_id = $1 AND p.student_id = $2`, sessionID, studentID))
}

// ListBySession retrieves all participants of a session in join order.
func (r *ParticipantRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Participant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+participantColumns+`
		 FROM participants p JOIN students s ON p.student_id = s.id
		 WHERE p.session_id = $1
		 ORDER BY p.joined_at ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// ListWaiting retrieves the waiting queue of a session in join order, which
// is the order the seat planner hands out seats in.
func (r *ParticipantRepository) ListWaiting(ctx context.Context, sessionID uuid.UUID) ([]model.Participant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+participantColumns+`
		 FROM participants p JOIN students s ON p.student_id = s.id
		 WHERE p.session_id = $1 AND p.status = $2
		 ORDER BY p.joined_at ASC`, sessionID, seating.ParticipantWaiting)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// Occupancy returns the set of claimed seats in a session.
func (r *ParticipantRepository) Occupancy(ctx context.Context, sessionID uuid.UUID) (map[seating.Seat]struct{}, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT seat_row, seat_col FROM participants
		 WHERE session_id = $1 AND seat_row IS NOT NULL`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make(map[seating.Seat]struct{})
	for rows.Next() {
		var seat seating.Seat
		if err := rows.Scan(&seat.Row, &seat.Col); err != nil {
			return nil, err
		}
		occupied[seat] = struct{}{}
	}
	return occupied, rows.Err()
}

// CountByStatus returns how many participants of a session are in the given
// status. The session-start precondition (at least one SEATED) reads this.
func (r *ParticipantRepository) CountByStatus(ctx context.Context, sessionID uuid.UUID, status seating.ParticipantStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM participants WHERE session_id = $1 AND status = $2`,
		sessionID, status).Scan(&count)
	return count, err
}

// StatusCounts returns participant counts per status for the live dashboard.
func (r *ParticipantRepository) StatusCounts(ctx context.Context, sessionID uuid.UUID) (map[seating.ParticipantStatus]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM participants
		 WHERE session_id = $1 GROUP BY status`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[seating.ParticipantStatus]int)
	for rows.Next() {
		var status seating.ParticipantStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
