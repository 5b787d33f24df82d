package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrUnavailable   = errors.New("temporarily unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ErrorKind is the stable, machine-readable identifier of a voting failure.
// Boundary layers map kinds to response codes; the set never shrinks.
type ErrorKind string

const (
	KindVoterNotFound           ErrorKind = "VOTER_NOT_FOUND"
	KindVoterInactive           ErrorKind = "VOTER_INACTIVE"
	KindAlreadyVoted            ErrorKind = "ALREADY_VOTED"
	KindPostNotFound            ErrorKind = "POST_NOT_FOUND"
	KindPostNotActive           ErrorKind = "POST_NOT_ACTIVE"
	KindVotingNotOpen           ErrorKind = "VOTING_NOT_OPEN"
	KindVotingClosed            ErrorKind = "VOTING_CLOSED"
	KindNotEligible             ErrorKind = "NOT_ELIGIBLE"
	KindCandidateNotFound       ErrorKind = "CANDIDATE_NOT_FOUND"
	KindCandidateNotActive      ErrorKind = "CANDIDATE_NOT_ACTIVE"
	KindCandidateMismatch       ErrorKind = "CANDIDATE_MISMATCH"
	KindVoteNotFound            ErrorKind = "VOTE_NOT_FOUND"
	KindAlreadyVerified         ErrorKind = "ALREADY_VERIFIED"
	KindInvalidStatusTransition ErrorKind = "INVALID_STATUS_TRANSITION"
	KindStorageConflict         ErrorKind = "STORAGE_CONFLICT"
	KindStorageUnavailable      ErrorKind = "STORAGE_UNAVAILABLE"
)

// VoteError is a typed failure of a voting operation. It carries a stable
// Kind plus a human-readable message and unwraps to its category sentinel
// (ErrNotFound, ErrConflict, ...), so generic layers keep working.
type VoteError struct {
	Kind     ErrorKind
	Message  string
	category error
}

func (e *VoteError) Error() string { return e.Message }

func (e *VoteError) Unwrap() error { return e.category }

// Is matches any VoteError of the same kind, so a wrapped copy with a
// different message still satisfies errors.Is against the sentinel.
func (e *VoteError) Is(target error) bool {
	var t *VoteError
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

func newVoteError(kind ErrorKind, category error, message string) *VoteError {
	return &VoteError{Kind: kind, Message: message, category: category}
}

// Typed voting errors.
var (
	ErrVoterNotFound           = newVoteError(KindVoterNotFound, ErrNotFound, "voter not found")
	ErrVoterInactive           = newVoteError(KindVoterInactive, ErrForbidden, "voter account is not active")
	ErrAlreadyVoted            = newVoteError(KindAlreadyVoted, ErrConflict, "voter has already voted for this post")
	ErrPostNotFound            = newVoteError(KindPostNotFound, ErrNotFound, "post not found")
	ErrPostNotActive           = newVoteError(KindPostNotActive, ErrConflict, "post is not active")
	ErrVotingNotOpen           = newVoteError(KindVotingNotOpen, ErrConflict, "voting has not started for this post")
	ErrVotingClosed            = newVoteError(KindVotingClosed, ErrConflict, "voting has ended for this post")
	ErrNotEligible             = newVoteError(KindNotEligible, ErrForbidden, "voter is not eligible for this post")
	ErrCandidateNotFound       = newVoteError(KindCandidateNotFound, ErrNotFound, "candidate not found")
	ErrCandidateNotActive      = newVoteError(KindCandidateNotActive, ErrConflict, "candidate is not active")
	ErrCandidateMismatch       = newVoteError(KindCandidateMismatch, ErrValidation, "candidate does not belong to this post")
	ErrVoteNotFound            = newVoteError(KindVoteNotFound, ErrNotFound, "vote not found")
	ErrAlreadyVerified         = newVoteError(KindAlreadyVerified, ErrConflict, "vote is already verified")
	ErrInvalidStatusTransition = newVoteError(KindInvalidStatusTransition, ErrConflict, "invalid vote status transition")
	ErrStorageConflict         = newVoteError(KindStorageConflict, ErrConflict, "concurrent write conflict")
	ErrStorageUnavailable      = newVoteError(KindStorageUnavailable, ErrUnavailable, "storage temporarily unavailable, retry")
)

// KindOf returns the ErrorKind carried by err, or "" if err is not a VoteError.
func KindOf(err error) ErrorKind {
	var ve *VoteError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}

// WithMessage returns a copy of a typed error with a more specific message.
func WithMessage(base *VoteError, message string) *VoteError {
	return &VoteError{Kind: base.Kind, Message: message, category: base.category}
}
