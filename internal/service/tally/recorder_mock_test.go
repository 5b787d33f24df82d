package tally

import (
	"sync"
	"time"
)

var _ recorder = &recorderMock{}

type recorderMock struct {
	ObserveRecomputeFunc func(d time.Duration)

	calls struct {
		ObserveRecompute []struct {
			D time.Duration
		}
	}
	lockObserveRecompute sync.RWMutex
}

func (mock *recorderMock) ObserveRecompute(d time.Duration) {
	if mock.ObserveRecomputeFunc == nil {
		panic("recorderMock.ObserveRecomputeFunc: method is nil but recorder.ObserveRecompute was just called")
	}
	callInfo := struct{ D time.Duration }{D: d}
	mock.lockObserveRecompute.Lock()
	mock.calls.ObserveRecompute = append(mock.calls.ObserveRecompute, callInfo)
	mock.lockObserveRecompute.Unlock()
	mock.ObserveRecomputeFunc(d)
}

func (mock *recorderMock) ObserveRecomputeCalls() []struct{ D time.Duration } {
	mock.lockObserveRecompute.RLock()
	calls := mock.calls.ObserveRecompute
	mock.lockObserveRecompute.RUnlock()
	return calls
}
