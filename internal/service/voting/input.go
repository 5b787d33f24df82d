package voting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

const (
	maxReasonLength    = 500
	maxUserAgentLength = 512
)

// CastVoteInput holds parameters for CastVote.
type CastVoteInput struct {
	VoterID     uuid.UUID
	PostID      uuid.UUID
	CandidateID uuid.UUID
	Client      domain.ClientContext
}

func (i CastVoteInput) Validate() error {
	var errs []domain.FieldError

	if i.VoterID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "voter_id", Message: "required"})
	}
	if i.PostID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "post_id", Message: "required"})
	}
	if i.CandidateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "candidate_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// InvalidateVoteInput holds parameters for InvalidateVote.
type InvalidateVoteInput struct {
	VoteID  uuid.UUID
	ActorID uuid.UUID
	Reason  string
}

func (i InvalidateVoteInput) Validate() error {
	var errs []domain.FieldError

	if i.VoteID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "vote_id", Message: "required"})
	}
	if i.ActorID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "actor_id", Message: "required"})
	}
	reason := strings.TrimSpace(i.Reason)
	if reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	} else if len(reason) > maxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long (max 500)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListVotesInput holds parameters for ListVotes. Status is parsed once at
// the boundary with domain.ParseVoteStatusFilter.
type ListVotesInput struct {
	PostID      *uuid.UUID
	CandidateID *uuid.UUID
	Status      *domain.VoteStatus
	Limit       int
	Offset      int
}

func (i ListVotesInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown vote status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
