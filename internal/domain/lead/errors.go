package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var ErrLeadNotFound = errors.New("lead not found")

// PersistenceError reports that the lead store was unreachable or rejected
// a write. Callers treat it as a status, never as a fatal error.
type PersistenceError struct {
	Op     string
	Reason string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lead %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("lead %s: %s", e.Op, e.Reason)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Postgres SQLSTATE classes we report distinctly
const (
	pgUniqueViolation   = "23505"
	pgNotNullViolation  = "23502"
	pgCheckViolation    = "23514"
	pgConnectionFailure = "08"
	pgInsufficientRes   = "53"
)

func persistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Reason: reasonFor(err), Err: err}
}

func reasonFor(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "storage timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return "duplicate lead"
		case pgErr.Code == pgNotNullViolation, pgErr.Code == pgCheckViolation:
			return "lead rejected by storage constraints"
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionFailure:
			return "storage unreachable"
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgInsufficientRes:
			return "storage overloaded"
		}
		return "storage rejected the write"
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return "storage unreachable"
	}
	return "storage error"
}
