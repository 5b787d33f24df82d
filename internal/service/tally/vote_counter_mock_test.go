package tally

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ voteCounter = &voteCounterMock{}

type voteCounterMock struct {
	CountByPostFunc func(ctx context.Context, postID uuid.UUID, statuses []domain.VoteStatus) (map[uuid.UUID]int, error)

	calls struct {
		CountByPost []struct {
			Ctx      context.Context
			PostID   uuid.UUID
			Statuses []domain.VoteStatus
		}
	}
	lockCountByPost sync.RWMutex
}

func (mock *voteCounterMock) CountByPost(ctx context.Context, postID uuid.UUID, statuses []domain.VoteStatus) (map[uuid.UUID]int, error) {
	if mock.CountByPostFunc == nil {
		panic("voteCounterMock.CountByPostFunc: method is nil but voteCounter.CountByPost was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		PostID   uuid.UUID
		Statuses []domain.VoteStatus
	}{
		Ctx:      ctx,
		PostID:   postID,
		Statuses: statuses,
	}
	mock.lockCountByPost.Lock()
	mock.calls.CountByPost = append(mock.calls.CountByPost, callInfo)
	mock.lockCountByPost.Unlock()
	return mock.CountByPostFunc(ctx, postID, statuses)
}

func (mock *voteCounterMock) CountByPostCalls() []struct {
	Ctx      context.Context
	PostID   uuid.UUID
	Statuses []domain.VoteStatus
} {
	mock.lockCountByPost.RLock()
	calls := mock.calls.CountByPost
	mock.lockCountByPost.RUnlock()
	return calls
}
