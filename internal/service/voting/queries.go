package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

// GetVote returns a vote by ID.
func (s *Service) GetVote(ctx context.Context, voteID uuid.UUID) (*domain.Vote, error) {
	vote, err := s.votes.GetByID(ctx, voteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("get vote: %w", err)
	}
	return &vote, nil
}

// ListVotes returns ledger records matching the filter, newest first.
func (s *Service) ListVotes(ctx context.Context, input ListVotesInput) ([]domain.Vote, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	votes, err := s.votes.List(ctx, domain.VoteFilter{
		PostID:      input.PostID,
		CandidateID: input.CandidateID,
		Status:      input.Status,
		Limit:       limit,
		Offset:      input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	return votes, nil
}

// GetResults returns a post with its candidates' counts under the current
// count policy.
func (s *Service) GetResults(ctx context.Context, postID uuid.UUID) (*domain.PostResults, error) {
	res, err := s.tally.Results(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RecomputePost rebuilds the counters of one post on demand and records who
// asked for it.
func (s *Service) RecomputePost(ctx context.Context, postID, actorID uuid.UUID) (*domain.PostTally, error) {
	var tally domain.PostTally
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		tally, err = s.tally.Recompute(txCtx, postID)
		if err != nil {
			return err
		}

		err = s.audit.Log(txCtx, domain.AuditEvent{
			Action:       domain.AuditActionTallyRecompute,
			Severity:     domain.AuditSeverityInfo,
			ActorID:      &actorID,
			ResourceType: domain.EntityTypePost,
			ResourceID:   &postID,
			NewValues:    map[string]any{"total_votes": tally.TotalVotes},
		})
		if err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tally recomputed on demand",
		slog.String("post_id", postID.String()),
		slog.String("actor_id", actorID.String()),
		slog.Int("total_votes", tally.TotalVotes),
	)

	return &tally, nil
}
