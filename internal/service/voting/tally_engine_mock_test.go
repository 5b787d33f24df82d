package voting

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ tallyEngine = &tallyEngineMock{}

type tallyEngineMock struct {
	RecomputeFunc func(ctx context.Context, postID uuid.UUID) (domain.PostTally, error)
	ResultsFunc   func(ctx context.Context, postID uuid.UUID) (domain.PostResults, error)

	calls struct {
		Recompute []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
		Results []struct {
			Ctx    context.Context
			PostID uuid.UUID
		}
	}
	lockRecompute sync.RWMutex
	lockResults   sync.RWMutex
}

func (mock *tallyEngineMock) Recompute(ctx context.Context, postID uuid.UUID) (domain.PostTally, error) {
	if mock.RecomputeFunc == nil {
		panic("tallyEngineMock.RecomputeFunc: method is nil but tallyEngine.Recompute was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{
		Ctx:    ctx,
		PostID: postID,
	}
	mock.lockRecompute.Lock()
	mock.calls.Recompute = append(mock.calls.Recompute, callInfo)
	mock.lockRecompute.Unlock()
	return mock.RecomputeFunc(ctx, postID)
}

func (mock *tallyEngineMock) RecomputeCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockRecompute.RLock()
	calls := mock.calls.Recompute
	mock.lockRecompute.RUnlock()
	return calls
}

func (mock *tallyEngineMock) Results(ctx context.Context, postID uuid.UUID) (domain.PostResults, error) {
	if mock.ResultsFunc == nil {
		panic("tallyEngineMock.ResultsFunc: method is nil but tallyEngine.Results was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PostID uuid.UUID
	}{
		Ctx:    ctx,
		PostID: postID,
	}
	mock.lockResults.Lock()
	mock.calls.Results = append(mock.calls.Results, callInfo)
	mock.lockResults.Unlock()
	return mock.ResultsFunc(ctx, postID)
}

func (mock *tallyEngineMock) ResultsCalls() []struct {
	Ctx    context.Context
	PostID uuid.UUID
} {
	mock.lockResults.RLock()
	calls := mock.calls.Results
	mock.lockResults.RUnlock()
	return calls
}
