package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
	"github.com/heartmarshall/election-backend/internal/metrics"
	"github.com/heartmarshall/election-backend/internal/service/integrity"
)

// CastVote admits one vote. Admission checks and the insert run under the
// storage timeout; once the vote is stored, the tally refresh, voter flag,
// audit event and live update are best effort and never fail the call.
func (s *Service) CastVote(ctx context.Context, input CastVoteInput) (*domain.Vote, error) {
	if err := input.Validate(); err != nil {
		s.metrics.VoteCast(metrics.OutcomeRejected)
		return nil, err
	}

	vote, err := s.admit(ctx, input)
	if err != nil {
		s.metrics.VoteCast(castOutcome(err))
		return nil, err
	}
	s.metrics.VoteCast(metrics.OutcomeAccepted)

	s.afterCast(ctx, vote)

	s.log.InfoContext(ctx, "vote cast",
		slog.String("vote_id", vote.ID.String()),
		slog.String("post_id", vote.PostID.String()),
	)

	return &vote, nil
}

func castOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyVoted):
		return metrics.OutcomeDuplicate
	case errors.Is(err, domain.ErrStorageUnavailable):
		return metrics.OutcomeUnavailable
	case domain.KindOf(err) != "", errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

// admit runs the admission checks in order and stores the vote.
func (s *Service) admit(ctx context.Context, input CastVoteInput) (domain.Vote, error) {
	storageCtx := ctx
	if s.cfg.StorageTimeout > 0 {
		var cancel context.CancelFunc
		storageCtx, cancel = context.WithTimeout(ctx, s.cfg.StorageTimeout)
		defer cancel()
	}

	voter, err := s.voters.GetByID(storageCtx, input.VoterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Vote{}, domain.ErrVoterNotFound
		}
		return domain.Vote{}, wrapStorage("load voter", err)
	}
	if !domain.IsVoterActive(voter) {
		return domain.Vote{}, domain.ErrVoterInactive
	}

	if _, err := s.votes.FindByVoterAndPost(storageCtx, input.VoterID, input.PostID); err == nil {
		return domain.Vote{}, domain.ErrAlreadyVoted
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Vote{}, wrapStorage("check existing vote", err)
	}

	post, err := s.posts.GetByID(storageCtx, input.PostID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Vote{}, domain.ErrPostNotFound
		}
		return domain.Vote{}, wrapStorage("load post", err)
	}
	if post.Status != domain.PostStatusActive {
		return domain.Vote{}, domain.ErrPostNotActive
	}

	now := s.now()
	switch domain.VotingWindow(post, now) {
	case domain.WindowNotOpen:
		return domain.Vote{}, domain.ErrVotingNotOpen
	case domain.WindowClosed:
		return domain.Vote{}, domain.ErrVotingClosed
	}

	if !domain.CanVote(post, voter.House, now) {
		return domain.Vote{}, domain.ErrNotEligible
	}

	candidate, err := s.candidates.GetByID(storageCtx, input.CandidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Vote{}, domain.ErrCandidateNotFound
		}
		return domain.Vote{}, wrapStorage("load candidate", err)
	}
	if !domain.IsCandidateActive(candidate) {
		return domain.Vote{}, domain.ErrCandidateNotActive
	}
	if candidate.PostID != input.PostID {
		return domain.Vote{}, domain.ErrCandidateMismatch
	}

	createdAt := integrity.NormalizeTime(now)
	vote := domain.Vote{
		ID:          uuid.New(),
		VoterID:     voter.ID,
		PostID:      post.ID,
		CandidateID: candidate.ID,
		Status:      domain.VoteStatusCast,
		Fingerprint: integrity.Fingerprint(voter.ID, post.ID, candidate.ID, createdAt),
		Metadata:    castMetadata(voter, post, candidate, input.Client),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	var stored domain.Vote
	err = s.tx.RunInTx(storageCtx, func(txCtx context.Context) error {
		if err := s.lock.Shared(txCtx); err != nil {
			return fmt.Errorf("acquire election lock: %w", err)
		}
		var insertErr error
		stored, insertErr = s.votes.Insert(txCtx, vote)
		return insertErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.Vote{}, s.resolveConflict(ctx, input)
		}
		return domain.Vote{}, wrapStorage("insert vote", err)
	}

	return stored, nil
}

// resolveConflict handles a lost race at the uniqueness boundary. The
// competing vote is re-read for the log; the caller always sees AlreadyVoted.
func (s *Service) resolveConflict(ctx context.Context, input CastVoteInput) error {
	readCtx, cancel := s.sideEffectContext(ctx)
	defer cancel()

	existing, err := s.votes.FindByVoterAndPost(readCtx, input.VoterID, input.PostID)
	if err != nil {
		s.log.WarnContext(ctx, "vote conflict without a readable winner",
			slog.String("voter_id", input.VoterID.String()),
			slog.String("post_id", input.PostID.String()),
			slog.String("error", err.Error()),
		)
		return domain.ErrAlreadyVoted
	}

	s.log.InfoContext(ctx, "concurrent duplicate vote rejected",
		slog.String("post_id", input.PostID.String()),
		slog.String("existing_vote_id", existing.ID.String()),
	)
	return domain.ErrAlreadyVoted
}

// afterCast runs the best-effort steps that follow a stored vote. The voter
// flag and the audit event are written under the shared election lock and
// only while the vote is still in the ledger, so a reset that commits in
// between leaves neither behind.
func (s *Service) afterCast(ctx context.Context, vote domain.Vote) {
	sideCtx, cancel := s.sideEffectContext(ctx)
	defer cancel()

	if _, err := s.tally.Recompute(sideCtx, vote.PostID); err != nil {
		s.sideEffectFailed(ctx, StepRecompute, vote.ID, err)
	}

	err := s.whileStored(sideCtx, vote.ID, func(txCtx context.Context) error {
		return s.voters.MarkVoted(txCtx, vote.VoterID, vote.CreatedAt)
	})
	if errors.Is(err, errVoteRemoved) {
		s.voteRemoved(ctx, vote.ID)
		return
	}
	if err != nil {
		s.sideEffectFailed(ctx, StepMarkVoted, vote.ID, err)
	}

	voterID := vote.VoterID
	voteID := vote.ID
	err = s.whileStored(sideCtx, vote.ID, func(txCtx context.Context) error {
		return s.audit.Log(txCtx, domain.AuditEvent{
			Action:       domain.AuditActionVoteCast,
			Severity:     domain.AuditSeverityInfo,
			ActorID:      &voterID,
			ResourceType: domain.EntityTypeVote,
			ResourceID:   &voteID,
			NewValues: map[string]any{
				"post_id":      vote.PostID.String(),
				"candidate_id": vote.CandidateID.String(),
				"status":       string(vote.Status),
				"fingerprint":  vote.Fingerprint,
			},
		})
	})
	if errors.Is(err, errVoteRemoved) {
		s.voteRemoved(ctx, vote.ID)
		return
	}
	if err != nil {
		s.sideEffectFailed(ctx, StepAudit, vote.ID, err)
	}

	s.publish(sideCtx, domain.LiveUpdate{
		PostID:      vote.PostID,
		CandidateID: vote.CandidateID,
		Action:      domain.LiveActionCast,
		At:          vote.CreatedAt,
	}, vote.ID)
}

// errVoteRemoved means a reset deleted the vote before a follow-up step ran.
var errVoteRemoved = errors.New("vote removed from ledger")

// whileStored runs fn in a transaction that holds the shared election lock,
// provided the vote still exists.
func (s *Service) whileStored(ctx context.Context, voteID uuid.UUID, fn func(ctx context.Context) error) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.lock.Shared(txCtx); err != nil {
			return fmt.Errorf("acquire election lock: %w", err)
		}
		if _, err := s.votes.GetByID(txCtx, voteID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errVoteRemoved
			}
			return fmt.Errorf("reload vote: %w", err)
		}
		return fn(txCtx)
	})
}

func (s *Service) voteRemoved(ctx context.Context, voteID uuid.UUID) {
	s.log.WarnContext(ctx, "vote removed by reset before follow-up steps",
		slog.String("vote_id", voteID.String()),
	)
}

func castMetadata(voter domain.Voter, post domain.Post, candidate domain.Candidate, client domain.ClientContext) map[string]any {
	meta := map[string]any{
		domain.MetaCandidateName: candidate.FullName,
		domain.MetaPostTitle:     post.Title,
	}
	if voter.House != nil {
		meta[domain.MetaVoterHouse] = *voter.House
	}
	if voter.Class != nil {
		meta[domain.MetaVoterClass] = *voter.Class
	}
	if ip := strings.TrimSpace(client.IPAddress); ip != "" {
		meta[domain.MetaIPAddress] = ip
	}
	if ua := strings.TrimSpace(client.UserAgent); ua != "" {
		meta[domain.MetaUserAgent] = truncate(ua, maxUserAgentLength)
	}
	return meta
}

// timeString formats timestamps stored in vote metadata.
func timeString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
