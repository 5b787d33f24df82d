// Package vote implements the vote ledger on PostgreSQL. The ledger is the
// only writer of vote rows; one vote per (voter, post) is enforced by the
// votes_voter_post_key constraint.
package vote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/election-backend/internal/adapter/postgres"
	"github.com/heartmarshall/election-backend/internal/domain"
)

const table = "votes"

var columns = []string{
	"id", "voter_id", "post_id", "candidate_id", "status",
	"fingerprint", "metadata", "created_at", "updated_at",
}

// Repo provides vote persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// row is the scan target for a votes row.
type row struct {
	ID          uuid.UUID `db:"id"`
	VoterID     uuid.UUID `db:"voter_id"`
	PostID      uuid.UUID `db:"post_id"`
	CandidateID uuid.UUID `db:"candidate_id"`
	Status      string    `db:"status"`
	Fingerprint string    `db:"fingerprint"`
	Metadata    []byte    `db:"metadata"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert stores a new vote. A second vote for the same (voter, post) fails
// with domain.ErrAlreadyExists, whatever the status of the first one.
func (r *Repo) Insert(ctx context.Context, v domain.Vote) (domain.Vote, error) {
	meta, err := marshalMetadata(v.Metadata)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("vote %s: %w", v.ID, err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(v.ID, v.VoterID, v.PostID, v.CandidateID, string(v.Status),
			v.Fingerprint, meta, v.CreatedAt, v.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Vote{}, fmt.Errorf("build insert vote: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		// Only the (voter, post) key means the ballot is already in. Any other
		// collision, such as a repeated fingerprint, is a plain conflict.
		if postgres.IsUniqueViolation(err, "") && !postgres.IsUniqueViolation(err, postgres.ConstraintVoteVoterPost) {
			return domain.Vote{}, fmt.Errorf("vote %s: %w", v.ID, domain.ErrConflict)
		}
		return domain.Vote{}, postgres.MapError(err, "vote", v.ID)
	}
	return toDomain(out)
}

// UpdateStatus writes a new status and metadata for a vote. Callers validate
// the transition and hold the row lock (GetForUpdate) in the same transaction.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.VoteStatus, metadata map[string]any, at time.Time) (domain.Vote, error) {
	meta, err := marshalMetadata(metadata)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("vote %s: %w", id, err)
	}

	query, args, err := postgres.Builder().
		Update(table).
		Set("status", string(status)).
		Set("metadata", meta).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Vote{}, fmt.Errorf("build update vote: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		return domain.Vote{}, postgres.MapError(err, "vote", id)
	}
	return toDomain(out)
}

// DeleteAll removes every vote and returns how many were deleted.
func (r *Repo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM votes`)
	if err != nil {
		return 0, fmt.Errorf("delete all votes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a vote by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vote, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, "", "vote", id)
}

// GetForUpdate returns a vote and locks its row until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Vote, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, "FOR UPDATE", "vote", id)
}

// FindByVoterAndPost returns the vote a voter cast for a post.
func (r *Repo) FindByVoterAndPost(ctx context.Context, voterID, postID uuid.UUID) (domain.Vote, error) {
	return r.getOne(ctx, sq.Eq{"voter_id": voterID, "post_id": postID}, "", "vote for post", postID)
}

// FindByFingerprint returns the vote carrying the given fingerprint.
func (r *Repo) FindByFingerprint(ctx context.Context, fingerprint string) (domain.Vote, error) {
	return r.getOne(ctx, sq.Eq{"fingerprint": fingerprint}, "", "vote fingerprint", fingerprint)
}

// CountByCandidateAndStatus counts votes for a candidate in one status.
func (r *Repo) CountByCandidateAndStatus(ctx context.Context, candidateID uuid.UUID, status domain.VoteStatus) (int, error) {
	query, args, err := postgres.Builder().
		Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"candidate_id": candidateID, "status": string(status)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count votes: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "candidate votes", candidateID)
	}
	return n, nil
}

// CountByPost returns per-candidate counts of votes for a post whose status is
// one of statuses, read in a single grouped query. Candidates without votes
// are absent from the map.
func (r *Repo) CountByPost(ctx context.Context, postID uuid.UUID, statuses []domain.VoteStatus) (map[uuid.UUID]int, error) {
	query, args, err := postgres.Builder().
		Select("candidate_id", "COUNT(*) AS votes").
		From(table).
		Where(sq.Eq{"post_id": postID, "status": statusStrings(statuses)}).
		GroupBy("candidate_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count votes by post: %w", err)
	}

	var rows []struct {
		CandidateID uuid.UUID `db:"candidate_id"`
		Votes       int       `db:"votes"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "post votes", postID)
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, rw := range rows {
		counts[rw.CandidateID] = rw.Votes
	}
	return counts, nil
}

// List returns votes matching the filter, newest first.
func (r *Repo) List(ctx context.Context, f domain.VoteFilter) ([]domain.Vote, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id")

	if f.PostID != nil {
		b = b.Where(sq.Eq{"post_id": *f.PostID})
	}
	if f.CandidateID != nil {
		b = b.Where(sq.Eq{"candidate_id": *f.CandidateID})
	}
	if f.Status != nil {
		b = b.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	return r.selectMany(ctx, b)
}

// ListByPost returns every vote for a post.
func (r *Repo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Vote, error) {
	return r.List(ctx, domain.VoteFilter{PostID: &postID})
}

// ListByCandidate returns every vote for a candidate.
func (r *Repo) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]domain.Vote, error) {
	return r.List(ctx, domain.VoteFilter{CandidateID: &candidateID})
}

// ListPage returns up to limit votes ordered by ID, starting after the given
// ID. Pass uuid.Nil to start from the beginning.
func (r *Repo) ListPage(ctx context.Context, after uuid.UUID, limit int) ([]domain.Vote, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Gt{"id": after}).
		OrderBy("id").
		Limit(uint64(limit))

	return r.selectMany(ctx, b)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, where sq.Eq, suffix, entity string, id any) (domain.Vote, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where)
	if suffix != "" {
		b = b.Suffix(suffix)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.Vote{}, fmt.Errorf("build select vote: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &out, query, args...); err != nil {
		return domain.Vote{}, postgres.MapError(err, entity, id)
	}
	return toDomain(out)
}

func (r *Repo) selectMany(ctx context.Context, b sq.SelectBuilder) ([]domain.Vote, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list votes: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	votes := make([]domain.Vote, 0, len(rows))
	for _, rw := range rows {
		v, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, nil
}

func toDomain(r row) (domain.Vote, error) {
	v := domain.Vote{
		ID:          r.ID,
		VoterID:     r.VoterID,
		PostID:      r.PostID,
		CandidateID: r.CandidateID,
		Status:      domain.VoteStatus(r.Status),
		Fingerprint: r.Fingerprint,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if len(r.Metadata) > 0 {
		meta := make(map[string]any)
		if err := json.Unmarshal(r.Metadata, &meta); err != nil {
			return domain.Vote{}, fmt.Errorf("vote %s unmarshal metadata: %w", r.ID, err)
		}
		v.Metadata = meta
	}
	return v, nil
}

func marshalMetadata(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return b, nil
}

func statusStrings(statuses []domain.VoteStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
