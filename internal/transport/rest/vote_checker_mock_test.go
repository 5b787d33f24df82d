package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/service/integrity"
)

var _ voteChecker = &voteCheckerMock{}

type voteCheckerMock struct {
	CheckVoteFunc func(ctx context.Context, voteID uuid.UUID) (integrity.CheckResult, error)

	calls struct {
		CheckVote []struct {
			Ctx    context.Context
			VoteID uuid.UUID
		}
	}
	lockCheckVote sync.RWMutex
}

func (mock *voteCheckerMock) CheckVote(ctx context.Context, voteID uuid.UUID) (integrity.CheckResult, error) {
	if mock.CheckVoteFunc == nil {
		panic("voteCheckerMock.CheckVoteFunc: method is nil but voteChecker.CheckVote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		VoteID uuid.UUID
	}{
		Ctx:    ctx,
		VoteID: voteID,
	}
	mock.lockCheckVote.Lock()
	mock.calls.CheckVote = append(mock.calls.CheckVote, callInfo)
	mock.lockCheckVote.Unlock()
	return mock.CheckVoteFunc(ctx, voteID)
}

func (mock *voteCheckerMock) CheckVoteCalls() []struct {
	Ctx    context.Context
	VoteID uuid.UUID
} {
	mock.lockCheckVote.RLock()
	calls := mock.calls.CheckVote
	mock.lockCheckVote.RUnlock()
	return calls
}
