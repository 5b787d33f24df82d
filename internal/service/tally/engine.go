package tally

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

type voteCounter interface {
	CountByPost(ctx context.Context, postID uuid.UUID, statuses []domain.VoteStatus) (map[uuid.UUID]int, error)
}

type postStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Post, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	SetTotalVotes(ctx context.Context, id uuid.UUID, total int) error
}

type candidateStore interface {
	ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Candidate, error)
	UpdateTallies(ctx context.Context, tallies []domain.CandidateTally) error
}

type countPolicy interface {
	VerificationRequired(ctx context.Context) bool
}

type electionLock interface {
	Shared(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	ObserveRecompute(d time.Duration)
}

// Engine derives candidate counts, percentages and post totals from the
// vote ledger. Counters are never incremented in place; every recompute
// rewrites them from a single grouped count.
type Engine struct {
	votes      voteCounter
	posts      postStore
	candidates candidateStore
	policy     countPolicy
	lock       electionLock
	tx         txManager
	metrics    recorder
	log        *slog.Logger
}

// NewEngine creates a new tally Engine.
func NewEngine(
	log *slog.Logger,
	votes voteCounter,
	posts postStore,
	candidates candidateStore,
	policy countPolicy,
	lock electionLock,
	tx txManager,
	metrics recorder,
) *Engine {
	return &Engine{
		votes:      votes,
		posts:      posts,
		candidates: candidates,
		policy:     policy,
		lock:       lock,
		tx:         tx,
		metrics:    metrics,
		log:        log.With("service", "tally"),
	}
}

// Recompute rewrites the counters of one post from the ledger. The post row
// is locked for the duration of the transaction, so concurrent recomputes of
// the same post serialise and the last one to commit reflects every vote
// committed before it started. Recompute is idempotent.
func (e *Engine) Recompute(ctx context.Context, postID uuid.UUID) (domain.PostTally, error) {
	started := time.Now()

	var result domain.PostTally
	err := e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := e.lock.Shared(txCtx); err != nil {
			return fmt.Errorf("acquire election lock: %w", err)
		}

		if _, err := e.posts.GetForUpdate(txCtx, postID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrPostNotFound
			}
			return fmt.Errorf("lock post: %w", err)
		}

		statuses := domain.CountableStatuses(e.policy.VerificationRequired(txCtx))
		counts, err := e.votes.CountByPost(txCtx, postID, statuses)
		if err != nil {
			return fmt.Errorf("count votes: %w", err)
		}

		candidates, err := e.candidates.ListByPost(txCtx, postID)
		if err != nil {
			return fmt.Errorf("list candidates: %w", err)
		}

		result = buildTally(postID, candidates, counts)

		if len(result.Candidates) > 0 {
			if err := e.candidates.UpdateTallies(txCtx, result.Candidates); err != nil {
				return fmt.Errorf("update candidate tallies: %w", err)
			}
		}
		if err := e.posts.SetTotalVotes(txCtx, postID, result.TotalVotes); err != nil {
			return fmt.Errorf("update post total: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.PostTally{}, err
	}

	e.metrics.ObserveRecompute(time.Since(started))

	e.log.DebugContext(ctx, "tally recomputed",
		slog.String("post_id", postID.String()),
		slog.Int("total_votes", result.TotalVotes),
	)

	return result, nil
}

// RecomputeAll recomputes every post in turn and stops at the first failure.
func (e *Engine) RecomputeAll(ctx context.Context) ([]domain.PostTally, error) {
	ids, err := e.posts.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	tallies := make([]domain.PostTally, 0, len(ids))
	for _, id := range ids {
		t, err := e.Recompute(ctx, id)
		if err != nil {
			return tallies, fmt.Errorf("recompute post %s: %w", id, err)
		}
		tallies = append(tallies, t)
	}

	e.log.InfoContext(ctx, "all tallies recomputed", slog.Int("posts", len(tallies)))

	return tallies, nil
}

// Results returns the post with its candidates, counted live from the ledger
// under the current count policy. Stored counters are not consulted, so the
// read model never lags behind a failed recompute.
func (e *Engine) Results(ctx context.Context, postID uuid.UUID) (domain.PostResults, error) {
	var (
		post       domain.Post
		counts     map[uuid.UUID]int
		candidates []domain.Candidate
	)

	// One snapshot, so the total always equals the sum of the listed counts.
	err := e.tx.RunReadOnly(ctx, func(ctx context.Context) error {
		var err error
		post, err = e.posts.GetByID(ctx, postID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrPostNotFound
			}
			return fmt.Errorf("get post: %w", err)
		}

		statuses := domain.CountableStatuses(e.policy.VerificationRequired(ctx))
		counts, err = e.votes.CountByPost(ctx, postID, statuses)
		if err != nil {
			return fmt.Errorf("count votes: %w", err)
		}

		candidates, err = e.candidates.ListByPost(ctx, postID)
		if err != nil {
			return fmt.Errorf("list candidates: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.PostResults{}, err
	}

	tally := buildTally(postID, candidates, counts)
	for i := range candidates {
		candidates[i].VoteCount = tally.Candidates[i].VoteCount
		candidates[i].VotePercentage = tally.Candidates[i].VotePercentage
	}
	post.TotalVotes = tally.TotalVotes

	return domain.PostResults{Post: post, Candidates: candidates}, nil
}

// buildTally computes per-candidate counts and percentages. Counts for
// candidates that no longer belong to the post are ignored, so the total is
// always the sum of the listed candidates' counts.
func buildTally(postID uuid.UUID, candidates []domain.Candidate, counts map[uuid.UUID]int) domain.PostTally {
	total := 0
	for _, c := range candidates {
		total += counts[c.ID]
	}

	out := domain.PostTally{
		PostID:     postID,
		TotalVotes: total,
		Candidates: make([]domain.CandidateTally, 0, len(candidates)),
	}
	for _, c := range candidates {
		n := counts[c.ID]
		out.Candidates = append(out.Candidates, domain.CandidateTally{
			CandidateID:    c.ID,
			VoteCount:      n,
			VotePercentage: domain.Percentage(n, total),
		})
	}
	return out
}
