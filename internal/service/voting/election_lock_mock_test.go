package voting

import (
	"context"
	"sync"
)

var _ electionLock = &electionLockMock{}

type electionLockMock struct {
	SharedFunc    func(ctx context.Context) error
	ExclusiveFunc func(ctx context.Context) error

	calls struct {
		Shared []struct {
			Ctx context.Context
		}
		Exclusive []struct {
			Ctx context.Context
		}
	}
	lockShared    sync.RWMutex
	lockExclusive sync.RWMutex
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

func (mock *electionLockMock) Exclusive(ctx context.Context) error {
	if mock.ExclusiveFunc == nil {
		panic("electionLockMock.ExclusiveFunc: method is nil but electionLock.Exclusive was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockExclusive.Lock()
	mock.calls.Exclusive = append(mock.calls.Exclusive, callInfo)
	mock.lockExclusive.Unlock()
	return mock.ExclusiveFunc(ctx)
}

func (mock *electionLockMock) ExclusiveCalls() []struct{ Ctx context.Context } {
	mock.lockExclusive.RLock()
	calls := mock.calls.Exclusive
	mock.lockExclusive.RUnlock()
	return calls
}
