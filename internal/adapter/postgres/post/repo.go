// Package post reads contested posts and maintains their vote totals.
package post

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
	"id", "title", "status", "type", "eligible_houses", "voting_starts_at",
	"voting_ends_at", "max_votes", "total_votes", "created_at", "updated_at",
}

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new post repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID             uuid.UUID  `db:"id"`
	Title          string     `db:"title"`
	Status         string     `db:"status"`
	Type           string     `db:"type"`
	EligibleHouses []string   `db:"eligible_houses"`
	VotingStartsAt *time.Time `db:"voting_starts_at"`
	VotingEndsAt   *time.Time `db:"voting_ends_at"`
	MaxVotes       int        `db:"max_votes"`
	TotalVotes     int        `db:"total_votes"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// GetByID returns a post by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate returns a post and locks its row until the transaction ends.
// Concurrent recomputes of the same post serialise on this lock.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

// ListIDs returns the IDs of every post.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	query, args, err := postgres.Builder().
		Select("id").
		From("posts").
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list posts: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list post ids: %w", err)
	}
	return ids, nil
}

// SetTotalVotes stores the derived vote total of a post.
func (r *Repo) SetTotalVotes(ctx context.Context, id uuid.UUID, total int) error {
	query, args, err := postgres.Builder().
		Update("posts").
		Set("total_votes", total).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update post total: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "post", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ResetTotals zeroes every post total and returns the number of posts touched.
func (r *Repo) ResetTotals(ctx context.Context) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE posts SET total_votes = 0, updated_at = now()`)
	if err != nil {
		return 0, fmt.Errorf("reset post totals: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, suffix string) (domain.Post, error) {
	b := postgres.Builder().
		Select(columns...).
		From("posts").
		Where(sq.Eq{"id": id})
	if suffix != "" {
		b = b.Suffix(suffix)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.Post{}, fmt.Errorf("build select post: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		return domain.Post{}, postgres.MapError(err, "post", id)
	}
	return toDomain(out), nil
}

func toDomain(r row) domain.Post {
	return domain.Post{
		ID:             r.ID,
		Title:          r.Title,
		Status:         domain.PostStatus(r.Status),
		Type:           domain.PostType(r.Type),
		EligibleHouses: r.EligibleHouses,
		VotingStartsAt: r.VotingStartsAt,
		VotingEndsAt:   r.VotingEndsAt,
		MaxVotes:       r.MaxVotes,
		TotalVotes:     r.TotalVotes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
