package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// electionLockKey is the advisory lock key guarding election-wide writes.
const electionLockKey int64 = 0x656c656374696f6e

// ElectionLock is a cluster-wide read/write lock built on transaction-scoped
// PostgreSQL advisory locks. Both methods must be called inside RunInTx; the
// lock is released when the transaction ends.
type ElectionLock struct {
	pool *pgxpool.Pool
}

// NewElectionLock creates an ElectionLock.
func NewElectionLock(pool *pgxpool.Pool) *ElectionLock {
	return &ElectionLock{pool: pool}
}

// Shared takes the lock in shared mode. Casts and recomputes run concurrently
// with each other but never with a reset.
func (l *ElectionLock) Shared(ctx context.Context) error {
	if !InTx(ctx) {
		return fmt.Errorf("election lock: shared lock requires a transaction")
	}
	if _, err := QuerierFromCtx(ctx, l.pool).Exec(ctx, `SELECT pg_advisory_xact_lock_shared($1)`, electionLockKey); err != nil {
		return MapError(err, "election lock", "shared")
	}
	return nil
}

// Exclusive takes the lock in exclusive mode, waiting for every shared holder.
// A wait longer than the session lock_timeout fails with domain.ErrUnavailable.
func (l *ElectionLock) Exclusive(ctx context.Context) error {
	if !InTx(ctx) {
		return fmt.Errorf("election lock: exclusive lock requires a transaction")
	}
	if _, err := QuerierFromCtx(ctx, l.pool).Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, electionLockKey); err != nil {
		return MapError(err, "election lock", "exclusive")
	}
	return nil
}
