package tally

import (
	"context"
	"sync"
)

var _ countPolicy = &countPolicyMock{}

type countPolicyMock struct {
	VerificationRequiredFunc func(ctx context.Context) bool

	calls struct {
		VerificationRequired []struct {
			Ctx context.Context
		}
	}
	lockVerificationRequired sync.RWMutex
}

func (mock *countPolicyMock) VerificationRequired(ctx context.Context) bool {
	if mock.VerificationRequiredFunc == nil {
		panic("countPolicyMock.VerificationRequiredFunc: method is nil but countPolicy.VerificationRequired was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockVerificationRequired.Lock()
	mock.calls.VerificationRequired = append(mock.calls.VerificationRequired, callInfo)
	mock.lockVerificationRequired.Unlock()
	return mock.VerificationRequiredFunc(ctx)
}

func (mock *countPolicyMock) VerificationRequiredCalls() []struct{ Ctx context.Context } {
	mock.lockVerificationRequired.RLock()
	calls := mock.calls.VerificationRequired
	mock.lockVerificationRequired.RUnlock()
	return calls
}
