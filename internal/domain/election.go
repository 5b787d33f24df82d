package domain

import (
	"time"

	"github.com/google/uuid"
)

// Voter is a registered member as seen by the voting core.
// HasVoted and VotedAt are a fast-path signal; the ledger is authoritative.
type Voter struct {
	ID        uuid.UUID
	FullName  string
	Status    VoterStatus
	House     *string
	Class     *string
	HasVoted  bool
	VotedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Post is a contested position. The core only mutates TotalVotes.
type Post struct {
	ID             uuid.UUID
	Title          string
	Status         PostStatus
	Type           PostType
	EligibleHouses []string
	VotingStartsAt *time.Time
	VotingEndsAt   *time.Time
	MaxVotes       int
	TotalVotes     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Candidate belongs to exactly one post. VoteCount and VotePercentage are
// derived by the tally engine and never edited by hand.
type Candidate struct {
	ID             uuid.UUID
	PostID         uuid.UUID
	FullName       string
	Status         CandidateStatus
	VoteCount      int
	VotePercentage float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Vote is a ledger record. At most one exists per (VoterID, PostID).
type Vote struct {
	ID          uuid.UUID
	VoterID     uuid.UUID
	PostID      uuid.UUID
	CandidateID uuid.UUID
	Status      VoteStatus
	Fingerprint string
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Metadata keys stored on a vote.
const (
	MetaVoterHouse     = "voter_house"
	MetaVoterClass     = "voter_class"
	MetaCandidateName  = "candidate_name"
	MetaPostTitle      = "post_title"
	MetaIPAddress      = "ip_address"
	MetaUserAgent      = "user_agent"
	MetaVerifiedBy     = "verified_by"
	MetaVerifiedAt     = "verified_at"
	MetaInvalidReason  = "invalid_reason"
	MetaInvalidatedBy  = "invalidated_by"
	MetaInvalidatedAt  = "invalidated_at"
	MetaPreviousStatus = "previous_status"
)

// ClientContext describes the request that cast a vote.
type ClientContext struct {
	IPAddress string
	UserAgent string
}

// VoteFilter narrows ledger listings. Nil fields are not applied.
type VoteFilter struct {
	PostID      *uuid.UUID
	CandidateID *uuid.UUID
	Status      *VoteStatus
	Limit       int
	Offset      int
}

// AuditEvent is emitted by the voting core; persistence is a collaborator.
type AuditEvent struct {
	ID           uuid.UUID
	Action       AuditAction
	Severity     AuditSeverity
	ActorID      *uuid.UUID
	ResourceType EntityType
	ResourceID   *uuid.UUID
	OldValues    map[string]any
	NewValues    map[string]any
	CreatedAt    time.Time
}

// LiveUpdate is a fire-and-forget notification for push subscribers.
type LiveUpdate struct {
	PostID      uuid.UUID  `json:"post_id"`
	CandidateID uuid.UUID  `json:"candidate_id"`
	Action      LiveAction `json:"action"`
	At          time.Time  `json:"at"`
}

// VoteReceipt is the anonymous public view of a vote, keyed by fingerprint.
// It must never carry voter-identifying fields.
type VoteReceipt struct {
	PostID      uuid.UUID  `json:"post_id"`
	CandidateID uuid.UUID  `json:"candidate_id"`
	Status      VoteStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	Verified    bool       `json:"verified"`
}

// CandidateTally is one candidate's derived result.
type CandidateTally struct {
	CandidateID    uuid.UUID
	VoteCount      int
	VotePercentage float64
}

// PostTally is the outcome of a recompute for one post.
type PostTally struct {
	PostID     uuid.UUID
	TotalVotes int
	Candidates []CandidateTally
}

// PostResults is the read model served to result pages.
type PostResults struct {
	Post       Post
	Candidates []Candidate
}

// ResetSummary reports what an emergency reset cleared.
type ResetSummary struct {
	VotesDeleted    int64
	CandidatesReset int64
	PostsReset      int64
	VotersReset     int64
	ResetAt         time.Time
}
