package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
	"github.com/heartmarshall/election-backend/internal/service/voting"
)

var _ adminVoting = &adminVotingMock{}

type adminVotingMock struct {
	ListVotesFunc      func(ctx context.Context, input voting.ListVotesInput) ([]domain.Vote, error)
	VerifyVoteFunc     func(ctx context.Context, voteID uuid.UUID, actorID uuid.UUID) (*domain.Vote, error)
	InvalidateVoteFunc func(ctx context.Context, input voting.InvalidateVoteInput) (*domain.Vote, error)
	RecomputePostFunc  func(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (*domain.PostTally, error)
	ResetAllVotesFunc  func(ctx context.Context, actorID uuid.UUID) (domain.ResetSummary, error)

	calls struct {
		ListVotes []struct {
			Ctx   context.Context
			Input voting.ListVotesInput
		}
		VerifyVote []struct {
			Ctx     context.Context
			VoteID  uuid.UUID
			ActorID uuid.UUID
		}
		InvalidateVote []struct {
			Ctx   context.Context
			Input voting.InvalidateVoteInput
		}
		RecomputePost []struct {
			Ctx     context.Context
			PostID  uuid.UUID
			ActorID uuid.UUID
		}
		ResetAllVotes []struct {
			Ctx     context.Context
			ActorID uuid.UUID
		}
	}
	lockListVotes      sync.RWMutex
	lockVerifyVote     sync.RWMutex
	lockInvalidateVote sync.RWMutex
	lockRecomputePost  sync.RWMutex
	lockResetAllVotes  sync.RWMutex
}

func (mock *adminVotingMock) ListVotes(ctx context.Context, input voting.ListVotesInput) ([]domain.Vote, error) {
	if mock.ListVotesFunc == nil {
		panic("adminVotingMock.ListVotesFunc: method is nil but adminVoting.ListVotes was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input voting.ListVotesInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockListVotes.Lock()
	mock.calls.ListVotes = append(mock.calls.ListVotes, callInfo)
	mock.lockListVotes.Unlock()
	return mock.ListVotesFunc(ctx, input)
}

func (mock *adminVotingMock) ListVotesCalls() []struct {
	Ctx   context.Context
	Input voting.ListVotesInput
} {
	mock.lockListVotes.RLock()
	calls := mock.calls.ListVotes
	mock.lockListVotes.RUnlock()
	return calls
}

func (mock *adminVotingMock) VerifyVote(ctx context.Context, voteID uuid.UUID, actorID uuid.UUID) (*domain.Vote, error) {
	if mock.VerifyVoteFunc == nil {
		panic("adminVotingMock.VerifyVoteFunc: method is nil but adminVoting.VerifyVote was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		VoteID  uuid.UUID
		ActorID uuid.UUID
	}{
		Ctx:     ctx,
		VoteID:  voteID,
		ActorID: actorID,
	}
	mock.lockVerifyVote.Lock()
	mock.calls.VerifyVote = append(mock.calls.VerifyVote, callInfo)
	mock.lockVerifyVote.Unlock()
	return mock.VerifyVoteFunc(ctx, voteID, actorID)
}

func (mock *adminVotingMock) VerifyVoteCalls() []struct {
	Ctx     context.Context
	VoteID  uuid.UUID
	ActorID uuid.UUID
} {
	mock.lockVerifyVote.RLock()
	calls := mock.calls.VerifyVote
	mock.lockVerifyVote.RUnlock()
	return calls
}

func (mock *adminVotingMock) InvalidateVote(ctx context.Context, input voting.InvalidateVoteInput) (*domain.Vote, error) {
	if mock.InvalidateVoteFunc == nil {
		panic("adminVotingMock.InvalidateVoteFunc: method is nil but adminVoting.InvalidateVote was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input voting.InvalidateVoteInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockInvalidateVote.Lock()
	mock.calls.InvalidateVote = append(mock.calls.InvalidateVote, callInfo)
	mock.lockInvalidateVote.Unlock()
	return mock.InvalidateVoteFunc(ctx, input)
}

func (mock *adminVotingMock) InvalidateVoteCalls() []struct {
	Ctx   context.Context
	Input voting.InvalidateVoteInput
} {
	mock.lockInvalidateVote.RLock()
	calls := mock.calls.InvalidateVote
	mock.lockInvalidateVote.RUnlock()
	return calls
}

func (mock *adminVotingMock) RecomputePost(ctx context.Context, postID uuid.UUID, actorID uuid.UUID) (*domain.PostTally, error) {
	if mock.RecomputePostFunc == nil {
		panic("adminVotingMock.RecomputePostFunc: method is nil but adminVoting.RecomputePost was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		PostID  uuid.UUID
		ActorID uuid.UUID
	}{
		Ctx:     ctx,
		PostID:  postID,
		ActorID: actorID,
	}
	mock.lockRecomputePost.Lock()
	mock.calls.RecomputePost = append(mock.calls.RecomputePost, callInfo)
	mock.lockRecomputePost.Unlock()
	return mock.RecomputePostFunc(ctx, postID, actorID)
}

func (mock *adminVotingMock) RecomputePostCalls() []struct {
	Ctx     context.Context
	PostID  uuid.UUID
	ActorID uuid.UUID
} {
	mock.lockRecomputePost.RLock()
	calls := mock.calls.RecomputePost
	mock.lockRecomputePost.RUnlock()
	return calls
}

func (mock *adminVotingMock) ResetAllVotes(ctx context.Context, actorID uuid.UUID) (domain.ResetSummary, error) {
	if mock.ResetAllVotesFunc == nil {
		panic("adminVotingMock.ResetAllVotesFunc: method is nil but adminVoting.ResetAllVotes was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ActorID uuid.UUID
	}{
		Ctx:     ctx,
		ActorID: actorID,
	}
	mock.lockResetAllVotes.Lock()
	mock.calls.ResetAllVotes = append(mock.calls.ResetAllVotes, callInfo)
	mock.lockResetAllVotes.Unlock()
	return mock.ResetAllVotesFunc(ctx, actorID)
}

func (mock *adminVotingMock) ResetAllVotesCalls() []struct {
	Ctx     context.Context
	ActorID uuid.UUID
} {
	mock.lockResetAllVotes.RLock()
	calls := mock.calls.ResetAllVotes
	mock.lockResetAllVotes.RUnlock()
	return calls
}
