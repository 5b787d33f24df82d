package voting

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ candidateRepo = &candidateRepoMock{}

type candidateRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (domain.Candidate, error)
	ResetTalliesFunc func(ctx context.Context) (int64, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ResetTallies []struct {
			Ctx context.Context
		}
	}
	lockGetByID      sync.RWMutex
	lockResetTallies sync.RWMutex
}

func (mock *candidateRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Candidate, error) {
	if mock.GetByIDFunc == nil {
		panic("candidateRepoMock.GetByIDFunc: method is nil but candidateRepo.GetByID was just called")
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

func (mock *candidateRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *candidateRepoMock) ResetTallies(ctx context.Context) (int64, error) {
	if mock.ResetTalliesFunc == nil {
		panic("candidateRepoMock.ResetTalliesFunc: method is nil but candidateRepo.ResetTallies was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockResetTallies.Lock()
	mock.calls.ResetTallies = append(mock.calls.ResetTallies, callInfo)
	mock.lockResetTallies.Unlock()
	return mock.ResetTalliesFunc(ctx)
}

func (mock *candidateRepoMock) ResetTalliesCalls() []struct{ Ctx context.Context } {
	mock.lockResetTallies.RLock()
	calls := mock.calls.ResetTallies
	mock.lockResetTallies.RUnlock()
	return calls
}
