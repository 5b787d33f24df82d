package domain

import (
	"strings"
)

// VoteStatus is the ledger state of a single vote.
type VoteStatus string

const (
	VoteStatusCast     VoteStatus = "cast"
	VoteStatusVerified VoteStatus = "verified"
	VoteStatusInvalid  VoteStatus = "invalid"
)

func (s VoteStatus) String() string { return string(s) }

func (s VoteStatus) IsValid() bool {
	switch s {
	case VoteStatusCast, VoteStatusVerified, VoteStatusInvalid:
		return true
	}
	return false
}

// PostStatus is the administrative state of a contested post.
type PostStatus string

const (
	PostStatusInactive  PostStatus = "inactive"
	PostStatusActive    PostStatus = "active"
	PostStatusCompleted PostStatus = "completed"
)

func (s PostStatus) String() string { return string(s) }

func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusInactive, PostStatusActive, PostStatusCompleted:
		return true
	}
	return false
}

// PostType controls who may vote for a post.
type PostType string

const (
	PostTypeGeneral PostType = "general"
	PostTypeHouse   PostType = "house"
)

func (t PostType) String() string { return string(t) }

func (t PostType) IsValid() bool {
	switch t {
	case PostTypeGeneral, PostTypeHouse:
		return true
	}
	return false
}

// CandidateStatus is the standing of a candidate in its post.
type CandidateStatus string

const (
	CandidateStatusActive       CandidateStatus = "active"
	CandidateStatusWithdrawn    CandidateStatus = "withdrawn"
	CandidateStatusDisqualified CandidateStatus = "disqualified"
)

func (s CandidateStatus) String() string { return string(s) }

func (s CandidateStatus) IsValid() bool {
	switch s {
	case CandidateStatusActive, CandidateStatusWithdrawn, CandidateStatusDisqualified:
		return true
	}
	return false
}

// VoterStatus is the membership state of a voter.
type VoterStatus string

const (
	VoterStatusActive    VoterStatus = "active"
	VoterStatusInactive  VoterStatus = "inactive"
	VoterStatusSuspended VoterStatus = "suspended"
)

func (s VoterStatus) String() string { return string(s) }

func (s VoterStatus) IsValid() bool {
	switch s {
	case VoterStatusActive, VoterStatusInactive, VoterStatusSuspended:
		return true
	}
	return false
}

// AuditAction represents the kind of event recorded in the audit log.
type AuditAction string

const (
	AuditActionVoteCast       AuditAction = "VOTE_CAST"
	AuditActionVoteVerify     AuditAction = "VOTE_VERIFY"
	AuditActionVoteInvalidate AuditAction = "VOTE_INVALIDATE"
	AuditActionSystemReset    AuditAction = "SYSTEM_RESET"
	AuditActionTallyRecompute AuditAction = "TALLY_RECOMPUTE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionVoteCast, AuditActionVoteVerify, AuditActionVoteInvalidate,
		AuditActionSystemReset, AuditActionTallyRecompute:
		return true
	}
	return false
}

// AuditSeverity grades an audit event.
type AuditSeverity string

const (
	AuditSeverityInfo     AuditSeverity = "info"
	AuditSeverityWarning  AuditSeverity = "warning"
	AuditSeverityCritical AuditSeverity = "critical"
)

func (s AuditSeverity) String() string { return string(s) }

// EntityType identifies the kind of resource an audit event refers to.
type EntityType string

const (
	EntityTypeVote     EntityType = "VOTE"
	EntityTypePost     EntityType = "POST"
	EntityTypeElection EntityType = "ELECTION"
)

func (e EntityType) String() string { return string(e) }

// LiveAction tags a live-update notification.
type LiveAction string

const (
	LiveActionCast       LiveAction = "cast"
	LiveActionVerify     LiveAction = "verify"
	LiveActionInvalidate LiveAction = "invalidate"
	LiveActionReset      LiveAction = "reset"
)

// UserRole represents the authorization level of a caller.
type UserRole string

const (
	UserRoleVoter UserRole = "voter"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// ParseVoteStatus converts boundary input into a VoteStatus.
// Input is case-insensitive; anything outside the enum is a validation error.
func ParseVoteStatus(field, raw string) (VoteStatus, error) {
	s := VoteStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", NewValidationError(field, "must be one of cast, verified, invalid")
	}
	return s, nil
}

// ParseVoteStatusFilter parses an optional status filter. Empty input yields nil.
func ParseVoteStatusFilter(field, raw string) (*VoteStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	s, err := ParseVoteStatus(field, raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
