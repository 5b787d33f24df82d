package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/election-backend/internal/domain"
)

// Constraint names the repositories care about.
const (
	ConstraintVoteVoterPost   = "votes_voter_post_key"
	ConstraintVoteFingerprint = "votes_fingerprint_key"
)

// sqlStateErrors maps SQLSTATE codes onto domain sentinels. Lock, deadlock
// and serialization failures become ErrUnavailable: the caller may retry.
var sqlStateErrors = map[string]error{
	pgerrcode.UniqueViolation:      domain.ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation:  domain.ErrNotFound,
	pgerrcode.CheckViolation:       domain.ErrValidation,
	pgerrcode.NotNullViolation:     domain.ErrValidation,
	pgerrcode.SerializationFailure: domain.ErrUnavailable,
	pgerrcode.DeadlockDetected:     domain.ErrUnavailable,
	pgerrcode.LockNotAvailable:     domain.ErrUnavailable,
	pgerrcode.QueryCanceled:        domain.ErrUnavailable,
	pgerrcode.AdminShutdown:        domain.ErrUnavailable,
	pgerrcode.CannotConnectNow:     domain.ErrUnavailable,
}

// MapError converts pgx errors into domain errors annotated with the entity
// and id. Context errors pass through untouched so callers can tell a
// cancelled request from a storage failure.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	target := err
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
	case errors.Is(err, pgx.ErrNoRows), pgxscan.NotFound(err):
		target = domain.ErrNotFound
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if mapped, ok := sqlStateErrors[pgErr.Code]; ok {
				target = mapped
			}
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, target)
}

// IsUniqueViolation reports whether err is a unique violation of the named
// constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
