package domain

import (
	"slices"
	"time"
)

// WindowState describes where a moment falls relative to a post's voting window.
type WindowState string

const (
	WindowNotOpen WindowState = "not_open"
	WindowOpen    WindowState = "open"
	WindowClosed  WindowState = "closed"
)

// VotingWindow classifies now against the post window. A missing bound means
// the window never opens.
func VotingWindow(post Post, now time.Time) WindowState {
	if post.VotingStartsAt == nil || post.VotingEndsAt == nil {
		return WindowNotOpen
	}
	if now.Before(*post.VotingStartsAt) {
		return WindowNotOpen
	}
	if now.After(*post.VotingEndsAt) {
		return WindowClosed
	}
	return WindowOpen
}

// IsVotingOpen reports whether the post is active and now lies inside its
// inclusive window.
func IsVotingOpen(post Post, now time.Time) bool {
	return post.Status == PostStatusActive && VotingWindow(post, now) == WindowOpen
}

// IsHouseEligible reports whether a voter with the given house may vote for
// the post, ignoring status and timing.
func IsHouseEligible(post Post, voterHouse *string) bool {
	switch post.Type {
	case PostTypeGeneral:
		return true
	case PostTypeHouse:
		if voterHouse == nil || *voterHouse == "" || len(post.EligibleHouses) == 0 {
			return false
		}
		return slices.Contains(post.EligibleHouses, *voterHouse)
	default:
		return false
	}
}

// CanVote decides whether a voter with the given house may cast a ballot for
// the post at now. Rules apply in order: active status, open window, then
// house membership for house-restricted posts.
func CanVote(post Post, voterHouse *string, now time.Time) bool {
	if post.Status != PostStatusActive {
		return false
	}
	if VotingWindow(post, now) != WindowOpen {
		return false
	}
	return IsHouseEligible(post, voterHouse)
}

// IsVoterActive reports whether the voter may take part in voting at all.
func IsVoterActive(v Voter) bool {
	return v.Status == VoterStatusActive
}

// IsCandidateActive reports whether the candidate can still receive votes.
func IsCandidateActive(c Candidate) bool {
	return c.Status == CandidateStatusActive
}

// CountableStatuses returns the vote statuses that count toward a tally.
// With verification required only verified votes count.
func CountableStatuses(verificationRequired bool) []VoteStatus {
	if verificationRequired {
		return []VoteStatus{VoteStatusVerified}
	}
	return []VoteStatus{VoteStatusCast, VoteStatusVerified}
}

// IsCountable reports whether a vote in status s counts under the policy.
func IsCountable(s VoteStatus, verificationRequired bool) bool {
	return slices.Contains(CountableStatuses(verificationRequired), s)
}
