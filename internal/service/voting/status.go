package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

// VerifyVote confirms a cast vote. The transition, the tally refresh and the
// audit record commit together or not at all.
func (s *Service) VerifyVote(ctx context.Context, voteID, actorID uuid.UUID) (*domain.Vote, error) {
	if voteID == uuid.Nil {
		return nil, domain.NewValidationError("vote_id", "required")
	}
	if actorID == uuid.Nil {
		return nil, domain.NewValidationError("actor_id", "required")
	}

	vote, prev, err := s.transition(ctx, voteID, domain.VoteStatusVerified, func(now string, meta map[string]any) {
		meta[domain.MetaVerifiedBy] = actorID.String()
		meta[domain.MetaVerifiedAt] = now
	}, "", &actorID, domain.AuditActionVoteVerify, domain.AuditSeverityInfo)
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, vote, domain.LiveActionVerify)

	s.log.InfoContext(ctx, "vote verified",
		slog.String("vote_id", vote.ID.String()),
		slog.String("actor_id", actorID.String()),
		slog.String("previous_status", string(prev)),
	)

	return &vote, nil
}

// InvalidateVote voids a cast or verified vote with a recorded reason. The
// voter's slot for the post stays taken.
func (s *Service) InvalidateVote(ctx context.Context, input InvalidateVoteInput) (*domain.Vote, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(input.Reason)
	actorID := input.ActorID

	vote, prev, err := s.transition(ctx, input.VoteID, domain.VoteStatusInvalid, func(now string, meta map[string]any) {
		meta[domain.MetaInvalidReason] = reason
		meta[domain.MetaInvalidatedBy] = actorID.String()
		meta[domain.MetaInvalidatedAt] = now
	}, reason, &actorID, domain.AuditActionVoteInvalidate, domain.AuditSeverityWarning)
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, vote, domain.LiveActionInvalidate)

	s.log.InfoContext(ctx, "vote invalidated",
		slog.String("vote_id", vote.ID.String()),
		slog.String("actor_id", actorID.String()),
		slog.String("previous_status", string(prev)),
	)

	return &vote, nil
}

// transition locks the vote row, validates and applies the status change,
// recomputes the post and writes the audit record in one transaction.
func (s *Service) transition(
	ctx context.Context,
	voteID uuid.UUID,
	to domain.VoteStatus,
	annotate func(now string, meta map[string]any),
	reason string,
	actorID *uuid.UUID,
	action domain.AuditAction,
	severity domain.AuditSeverity,
) (domain.Vote, domain.VoteStatus, error) {
	var (
		updated domain.Vote
		prev    domain.VoteStatus
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.lock.Shared(txCtx); err != nil {
			return fmt.Errorf("acquire election lock: %w", err)
		}

		current, err := s.votes.GetForUpdate(txCtx, voteID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrVoteNotFound
			}
			return fmt.Errorf("lock vote: %w", err)
		}
		prev = current.Status

		if err := domain.ValidateTransition(current.Status, to, reason); err != nil {
			return err
		}

		at := s.now()
		meta := copyMetadata(current.Metadata)
		meta[domain.MetaPreviousStatus] = string(current.Status)
		annotate(timeString(at), meta)

		updated, err = s.votes.UpdateStatus(txCtx, voteID, to, meta, at.UTC())
		if err != nil {
			return fmt.Errorf("update vote status: %w", err)
		}

		if _, err := s.tally.Recompute(txCtx, updated.PostID); err != nil {
			return fmt.Errorf("recompute tally: %w", err)
		}

		newValues := map[string]any{"status": string(to)}
		if reason != "" {
			newValues["reason"] = reason
		}
		err = s.audit.Log(txCtx, domain.AuditEvent{
			Action:       action,
			Severity:     severity,
			ActorID:      actorID,
			ResourceType: domain.EntityTypeVote,
			ResourceID:   &updated.ID,
			OldValues:    map[string]any{"status": string(prev)},
			NewValues:    newValues,
		})
		if err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		return nil
	})
	if err != nil {
		if storageFailure(err) {
			return domain.Vote{}, "", wrapStorage("change vote status", err)
		}
		return domain.Vote{}, "", err
	}

	s.metrics.StatusChanged(string(to))
	return updated, prev, nil
}

func (s *Service) afterTransition(ctx context.Context, vote domain.Vote, action domain.LiveAction) {
	sideCtx, cancel := s.sideEffectContext(ctx)
	defer cancel()

	s.publish(sideCtx, domain.LiveUpdate{
		PostID:      vote.PostID,
		CandidateID: vote.CandidateID,
		Action:      action,
		At:          vote.UpdatedAt,
	}, vote.ID)
}
