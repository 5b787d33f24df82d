package voting

import (
	"context"
	"sync"

	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ livePublisher = &livePublisherMock{}

type livePublisherMock struct {
	PublishFunc func(ctx context.Context, update domain.LiveUpdate) error

	calls struct {
		Publish []struct {
			Ctx    context.Context
			Update domain.LiveUpdate
		}
	}
	lockPublish sync.RWMutex
}

func (mock *livePublisherMock) Publish(ctx context.Context, update domain.LiveUpdate) error {
	if mock.PublishFunc == nil {
		panic("livePublisherMock.PublishFunc: method is nil but livePublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Update domain.LiveUpdate
	}{
		Ctx:    ctx,
		Update: update,
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, update)
}

func (mock *livePublisherMock) PublishCalls() []struct {
	Ctx    context.Context
	Update domain.LiveUpdate
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
