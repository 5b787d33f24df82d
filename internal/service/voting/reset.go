package voting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

// ResetAllVotes deletes every vote and zeroes every derived counter and voter
// flag under the exclusive election lock. The critical audit record is part
// of the same transaction, so a failed audit write leaves the ledger intact.
func (s *Service) ResetAllVotes(ctx context.Context, actorID uuid.UUID) (domain.ResetSummary, error) {
	if actorID == uuid.Nil {
		return domain.ResetSummary{}, domain.NewValidationError("actor_id", "required")
	}

	var summary domain.ResetSummary
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.lock.Exclusive(txCtx); err != nil {
			return fmt.Errorf("acquire exclusive election lock: %w", err)
		}

		var err error
		if summary.VotesDeleted, err = s.votes.DeleteAll(txCtx); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if summary.CandidatesReset, err = s.candidates.ResetTallies(txCtx); err != nil {
			return fmt.Errorf("reset candidate tallies: %w", err)
		}
		if summary.PostsReset, err = s.posts.ResetTotals(txCtx); err != nil {
			return fmt.Errorf("reset post totals: %w", err)
		}
		if summary.VotersReset, err = s.voters.ResetVoted(txCtx); err != nil {
			return fmt.Errorf("reset voter flags: %w", err)
		}
		summary.ResetAt = s.now().UTC()

		err = s.audit.Log(txCtx, domain.AuditEvent{
			Action:       domain.AuditActionSystemReset,
			Severity:     domain.AuditSeverityCritical,
			ActorID:      &actorID,
			ResourceType: domain.EntityTypeElection,
			NewValues: map[string]any{
				"votes_deleted":    summary.VotesDeleted,
				"candidates_reset": summary.CandidatesReset,
				"posts_reset":      summary.PostsReset,
				"voters_reset":     summary.VotersReset,
			},
			CreatedAt: summary.ResetAt,
		})
		if err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "emergency reset rolled back",
			slog.String("actor_id", actorID.String()),
			slog.String("error", err.Error()),
		)
		if storageFailure(err) {
			return domain.ResetSummary{}, wrapStorage("reset election", err)
		}
		return domain.ResetSummary{}, err
	}

	s.metrics.ResetCompleted()

	sideCtx, cancel := s.sideEffectContext(ctx)
	defer cancel()
	s.publish(sideCtx, domain.LiveUpdate{Action: domain.LiveActionReset, At: summary.ResetAt}, uuid.Nil)

	s.log.WarnContext(ctx, "election reset",
		slog.String("actor_id", actorID.String()),
		slog.Int64("votes_deleted", summary.VotesDeleted),
		slog.Int64("candidates_reset", summary.CandidatesReset),
		slog.Int64("posts_reset", summary.PostsReset),
		slog.Int64("voters_reset", summary.VotersReset),
	)

	return summary, nil
}
