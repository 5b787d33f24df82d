// Package candidate reads candidates and stores their derived tallies.
package candidate

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/election-backend/internal/adapter/postgres"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var columns = []string{
	"id", "post_id", "full_name", "status", "vote_count",
	"vote_percentage", "created_at", "updated_at",
}

// Repo provides candidate persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new candidate repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID             uuid.UUID `db:"id"`
	PostID         uuid.UUID `db:"post_id"`
	FullName       string    `db:"full_name"`
	Status         string    `db:"status"`
	VoteCount      int       `db:"vote_count"`
	VotePercentage float64   `db:"vote_percentage"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// GetByID returns a candidate by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Candidate, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("candidates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("build select candidate: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		return domain.Candidate{}, postgres.MapError(err, "candidate", id)
	}
	return toDomain(out), nil
}

// ListByPost returns every candidate of a post ordered by name.
func (r *Repo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Candidate, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("candidates").
		Where(sq.Eq{"post_id": postID}).
		OrderBy("full_name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list candidates: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list candidates for post %s: %w", postID, err)
	}

	out := make([]domain.Candidate, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// UpdateTallies writes the derived count and percentage of every given
// candidate in one round trip.
func (r *Repo) UpdateTallies(ctx context.Context, tallies []domain.CandidateTally) error {
	if len(tallies) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range tallies {
		batch.Queue(
			`UPDATE candidates SET vote_count = $2, vote_percentage = $3, updated_at = now() WHERE id = $1`,
			t.CandidateID, t.VoteCount, t.VotePercentage,
		)
	}

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	for _, t := range tallies {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return postgres.MapError(err, "candidate", t.CandidateID)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("update candidate tallies: %w", err)
	}
	return nil
}

// ResetTallies zeroes every candidate's count and percentage.
func (r *Repo) ResetTallies(ctx context.Context) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE candidates SET vote_count = 0, vote_percentage = 0, updated_at = now()`)
	if err != nil {
		return 0, fmt.Errorf("reset candidate tallies: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toDomain(r row) domain.Candidate {
	return domain.Candidate{
		ID:             r.ID,
		PostID:         r.PostID,
		FullName:       r.FullName,
		Status:         domain.CandidateStatus(r.Status),
		VoteCount:      r.VoteCount,
		VotePercentage: r.VotePercentage,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
