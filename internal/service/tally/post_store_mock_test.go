package tally

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ postStore = &postStoreMock{}

type postStoreMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (domain.Post, error)
	GetForUpdateFunc  func(ctx context.Context, id uuid.UUID) (domain.Post, error)
	ListIDsFunc       func(ctx context.Context) ([]uuid.UUID, error)
	SetTotalVotesFunc func(ctx context.Context, id uuid.UUID, total int) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		GetForUpdate []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListIDs []struct {
			Ctx context.Context
		}
		SetTotalVotes []struct {
			Ctx   context.Context
			Id    uuid.UUID
			Total int
		}
	}
	lockGetByID       sync.RWMutex
	lockGetForUpdate  sync.RWMutex
	lockListIDs       sync.RWMutex
	lockSetTotalVotes sync.RWMutex
}

func (mock *postStoreMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	if mock.GetByIDFunc == nil {
		panic("postStoreMock.GetByIDFunc: method is nil but postStore.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *postStoreMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *postStoreMock) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	if mock.GetForUpdateFunc == nil {
		panic("postStoreMock.GetForUpdateFunc: method is nil but postStore.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *postStoreMock) GetForUpdateCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *postStoreMock) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	if mock.ListIDsFunc == nil {
		panic("postStoreMock.ListIDsFunc: method is nil but postStore.ListIDs was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockListIDs.Lock()
	mock.calls.ListIDs = append(mock.calls.ListIDs, callInfo)
	mock.lockListIDs.Unlock()
	return mock.ListIDsFunc(ctx)
}

func (mock *postStoreMock) ListIDsCalls() []struct{ Ctx context.Context } {
	mock.lockListIDs.RLock()
	calls := mock.calls.ListIDs
	mock.lockListIDs.RUnlock()
	return calls
}

func (mock *postStoreMock) SetTotalVotes(ctx context.Context, id uuid.UUID, total int) error {
	if mock.SetTotalVotesFunc == nil {
		panic("postStoreMock.SetTotalVotesFunc: method is nil but postStore.SetTotalVotes was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    uuid.UUID
		Total int
	}{
		Ctx:   ctx,
		Id:    id,
		Total: total,
	}
	mock.lockSetTotalVotes.Lock()
	mock.calls.SetTotalVotes = append(mock.calls.SetTotalVotes, callInfo)
	mock.lockSetTotalVotes.Unlock()
	return mock.SetTotalVotesFunc(ctx, id, total)
}

func (mock *postStoreMock) SetTotalVotesCalls() []struct {
	Ctx   context.Context
	Id    uuid.UUID
	Total int
} {
	mock.lockSetTotalVotes.RLock()
	calls := mock.calls.SetTotalVotes
	mock.lockSetTotalVotes.RUnlock()
	return calls
}
