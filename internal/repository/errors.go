// Package repository holds the pgx data-access layer. Sentinel errors defined
// here let services and handlers distinguish recoverable conflicts (a seat
// grabbed first by someone else, a duplicate join) from real failures without
// inspecting driver error codes themselves.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSeatTaken is returned when a seat assignment loses the race for a seat:
// the target seat was already claimed by another participant. Callers should
// retry against fresh occupancy data rather than treat this as fatal.
var ErrSeatTaken = errors.New("seat already taken")

// ErrAlreadyJoined is returned when a student attempts to join a session
// they are already a participant of.
var ErrAlreadyJoined = errors.New("student already joined this session")

// ErrNotFound is returned when the targeted row does not exist, or exists in
// a state the guarded statement refuses to touch (e.g. submitting a
// participant who is not TAKING).
var ErrNotFound = errors.New("not found")

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
