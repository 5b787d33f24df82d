// Package voter reads voters and maintains their has-voted flags.
package voter

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/election-backend/internal/adapter/postgres"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var columns = []string{
	"id", "full_name", "status", "house", "class_name",
	"has_voted", "voted_at", "created_at", "updated_at",
}

// Repo provides voter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new voter repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID        uuid.UUID  `db:"id"`
	FullName  string     `db:"full_name"`
	Status    string     `db:"status"`
	House     *string    `db:"house"`
	ClassName *string    `db:"class_name"`
	HasVoted  bool       `db:"has_voted"`
	VotedAt   *time.Time `db:"voted_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// GetByID returns a voter by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Voter, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("voters").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Voter{}, fmt.Errorf("build select voter: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		return domain.Voter{}, postgres.MapError(err, "voter", id)
	}

	return domain.Voter{
		ID:        out.ID,
		FullName:  out.FullName,
		Status:    domain.VoterStatus(out.Status),
		House:     out.House,
		Class:     out.ClassName,
		HasVoted:  out.HasVoted,
		VotedAt:   out.VotedAt,
		CreatedAt: out.CreatedAt,
		UpdatedAt: out.UpdatedAt,
	}, nil
}

// MarkVoted sets the has-voted flag. An existing voted_at is kept.
func (r *Repo) MarkVoted(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args, err := postgres.Builder().
		Update("voters").
		Set("has_voted", true).
		Set("voted_at", sq.Expr("COALESCE(voted_at, ?)", at)).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark voted: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "voter", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voter %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ResetVoted clears the has-voted flag of every voter that has one.
func (r *Repo) ResetVoted(ctx context.Context) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE voters SET has_voted = false, voted_at = NULL, updated_at = now()
		  WHERE has_voted OR voted_at IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("reset voter flags: %w", err)
	}
	return tag.RowsAffected(), nil
}
