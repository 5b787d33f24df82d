package voting

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ postRepo = &postRepoMock{}

type postRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (domain.Post, error)
	ResetTotalsFunc func(ctx context.Context) (int64, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ResetTotals []struct {
			Ctx context.Context
		}
	}
	lockGetByID     sync.RWMutex
	lockResetTotals sync.RWMutex
}

func (mock *postRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	if mock.GetByIDFunc == nil {
		panic("postRepoMock.GetByIDFunc: method is nil but postRepo.GetByID was just called")
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

func (mock *postRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *postRepoMock) ResetTotals(ctx context.Context) (int64, error) {
	if mock.ResetTotalsFunc == nil {
		panic("postRepoMock.ResetTotalsFunc: method is nil but postRepo.ResetTotals was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockResetTotals.Lock()
	mock.calls.ResetTotals = append(mock.calls.ResetTotals, callInfo)
	mock.lockResetTotals.Unlock()
	return mock.ResetTotalsFunc(ctx)
}

func (mock *postRepoMock) ResetTotalsCalls() []struct{ Ctx context.Context } {
	mock.lockResetTotals.RLock()
	calls := mock.calls.ResetTotals
	mock.lockResetTotals.RUnlock()
	return calls
}
