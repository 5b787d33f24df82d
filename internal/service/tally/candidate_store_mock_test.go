package tally

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ candidateStore = &candidateStoreMock{}

type candidateStoreMock struct {
	ListByPostFunc    func(ctx context.Context, postID uuid.UUID) ([]domain.Candidate, error)
	UpdateTalliesFunc func(ctx context.Context, tallies []domain.CandidateTally) error

	calls struct {
		ListByPost []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
		UpdateTallies []struct {
			Ctx     context.Context
			Tallies []domain.CandidateTally
		}
	}
	lockListByPost    sync.RWMutex
	lockUpdateTallies sync.RWMutex
}

func (mock *candidateStoreMock) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Candidate, error) {
	if mock.ListByPostFunc == nil {
		panic("candidateStoreMock.ListByPostFunc: method is nil but candidateStore.ListByPost was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{
		Ctx:    ctx,
		PostID: postID,
	}
	mock.lockListByPost.Lock()
	mock.calls.ListByPost = append(mock.calls.ListByPost, callInfo)
	mock.lockListByPost.Unlock()
	return mock.ListByPostFunc(ctx, postID)
}

func (mock *candidateStoreMock) ListByPostCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockListByPost.RLock()
	calls := mock.calls.ListByPost
	mock.lockListByPost.RUnlock()
	return calls
}

func (mock *candidateStoreMock) UpdateTallies(ctx context.Context, tallies []domain.CandidateTally) error {
	if mock.UpdateTalliesFunc == nil {
		panic("candidateStoreMock.UpdateTalliesFunc: method is nil but candidateStore.UpdateTallies was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Tallies []domain.CandidateTally
	}{
		Ctx:     ctx,
		Tallies: tallies,
	}
	mock.lockUpdateTallies.Lock()
	mock.calls.UpdateTallies = append(mock.calls.UpdateTallies, callInfo)
	mock.lockUpdateTallies.Unlock()
	return mock.UpdateTalliesFunc(ctx, tallies)
}

func (mock *candidateStoreMock) UpdateTalliesCalls() []struct {
	Ctx     context.Context
	Tallies []domain.CandidateTally
} {
	mock.lockUpdateTallies.RLock()
	calls := mock.calls.UpdateTallies
	mock.lockUpdateTallies.RUnlock()
	return calls
}
