package tally

import (
	"context"
	"sync"
)

var _ electionLock = &electionLockMock{}

type electionLockMock struct {
	SharedFunc func(ctx context.Context) error

	calls struct {
		Shared []struct {
			Ctx context.Context
		}
	}
	lockShared sync.RWMutex
}

func (mock *electionLockMock) Shared(ctx context.Context) error {
	if mock.SharedFunc == nil {
		panic("electionLockMock.SharedFunc: method is nil but electionLock.Shared was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockShared.Lock()
	mock.calls.Shared = append(mock.calls.Shared, callInfo)
	mock.lockShared.Unlock()
	return mock.SharedFunc(ctx)
}

func (mock *electionLockMock) SharedCalls() []struct{ Ctx context.Context } {
	mock.lockShared.RLock()
	calls := mock.calls.Shared
	mock.lockShared.RUnlock()
	return calls
}
