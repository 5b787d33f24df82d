package domain

import (
	"math"
	"strings"
)

// ValidateTransition checks a vote status change against the ledger's
// transition table:
//
//	cast     -> verified            (once)
//	cast     -> invalid             (reason required)
//	verified -> invalid             (reason required)
//
// Everything else, including invalid -> * and verified -> cast, is rejected.
func ValidateTransition(from, to VoteStatus, reason string) error {
	if !to.IsValid() {
		return NewValidationError("status", "unknown vote status")
	}

	switch {
	case from == VoteStatusVerified && to == VoteStatusVerified:
		return ErrAlreadyVerified
	case from == VoteStatusCast && to == VoteStatusVerified:
		return nil
	case (from == VoteStatusCast || from == VoteStatusVerified) && to == VoteStatusInvalid:
		if strings.TrimSpace(reason) == "" {
			return NewValidationError("reason", "required when invalidating a vote")
		}
		return nil
	}

	return WithMessage(ErrInvalidStatusTransition,
		"cannot change vote status from "+string(from)+" to "+string(to))
}

// Percentage returns count as a share of total in percent, rounded to two
// decimals. A zero total yields zero.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
