package voting

import (
	"sync"
)

var _ recorder = &recorderMock{}

type recorderMock struct {
	VoteCastFunc         func(outcome string)
	StatusChangedFunc    func(to string)
	SideEffectFailedFunc func(step string)
	ResetCompletedFunc   func()

	calls struct {
		VoteCast []struct {
			Outcome string
		}
		StatusChanged []struct {
			To string
		}
		SideEffectFailed []struct {
			Step string
		}
		ResetCompleted []struct{}
	}
	lockVoteCast         sync.RWMutex
	lockStatusChanged    sync.RWMutex
	lockSideEffectFailed sync.RWMutex
	lockResetCompleted   sync.RWMutex
}

func (mock *recorderMock) VoteCast(outcome string) {
	if mock.VoteCastFunc == nil {
		panic("recorderMock.VoteCastFunc: method is nil but recorder.VoteCast was just called")
	}
	callInfo := struct{ Outcome string }{Outcome: outcome}
	mock.lockVoteCast.Lock()
	mock.calls.VoteCast = append(mock.calls.VoteCast, callInfo)
	mock.lockVoteCast.Unlock()
	mock.VoteCastFunc(outcome)
}

func (mock *recorderMock) VoteCastCalls() []struct{ Outcome string } {
	mock.lockVoteCast.RLock()
	calls := mock.calls.VoteCast
	mock.lockVoteCast.RUnlock()
	return calls
}

func (mock *recorderMock) StatusChanged(to string) {
	if mock.StatusChangedFunc == nil {
		panic("recorderMock.StatusChangedFunc: method is nil but recorder.StatusChanged was just called")
	}
	callInfo := struct{ To string }{To: to}
	mock.lockStatusChanged.Lock()
	mock.calls.StatusChanged = append(mock.calls.StatusChanged, callInfo)
	mock.lockStatusChanged.Unlock()
	mock.StatusChangedFunc(to)
}

func (mock *recorderMock) StatusChangedCalls() []struct{ To string } {
	mock.lockStatusChanged.RLock()
	calls := mock.calls.StatusChanged
	mock.lockStatusChanged.RUnlock()
	return calls
}

func (mock *recorderMock) SideEffectFailed(step string) {
	if mock.SideEffectFailedFunc == nil {
		panic("recorderMock.SideEffectFailedFunc: method is nil but recorder.SideEffectFailed was just called")
	}
	callInfo := struct{ Step string }{Step: step}
	mock.lockSideEffectFailed.Lock()
	mock.calls.SideEffectFailed = append(mock.calls.SideEffectFailed, callInfo)
	mock.lockSideEffectFailed.Unlock()
	mock.SideEffectFailedFunc(step)
}

func (mock *recorderMock) SideEffectFailedCalls() []struct{ Step string } {
	mock.lockSideEffectFailed.RLock()
	calls := mock.calls.SideEffectFailed
	mock.lockSideEffectFailed.RUnlock()
	return calls
}

func (mock *recorderMock) ResetCompleted() {
	if mock.ResetCompletedFunc == nil {
		panic("recorderMock.ResetCompletedFunc: method is nil but recorder.ResetCompleted was just called")
	}
	mock.lockResetCompleted.Lock()
	mock.calls.ResetCompleted = append(mock.calls.ResetCompleted, struct{}{})
	mock.lockResetCompleted.Unlock()
	mock.ResetCompletedFunc()
}

func (mock *recorderMock) ResetCompletedCalls() []struct{} {
	mock.lockResetCompleted.RLock()
	calls := mock.calls.ResetCompleted
	mock.lockResetCompleted.RUnlock()
	return calls
}
