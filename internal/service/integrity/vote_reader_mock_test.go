package integrity

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ voteReader = &voteReaderMock{}

type voteReaderMock struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (domain.Vote, error)
	FindByFingerprintFunc func(ctx context.Context, fingerprint string) (domain.Vote, error)
	ListPageFunc          func(ctx context.Context, after uuid.UUID, limit int) ([]domain.Vote, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		FindByFingerprint []struct {
			Ctx         context.Context
			Fingerprint string
		}
		ListPage []struct {
			Ctx   context.Context
			After uuid.UUID
			Limit int
		}
	}
	lockGetByID           sync.RWMutex
	lockFindByFingerprint sync.RWMutex
	lockListPage          sync.RWMutex
}

func (mock *voteReaderMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Vote, error) {
	if mock.GetByIDFunc == nil {
		panic("voteReaderMock.GetByIDFunc: method is nil but voteReader.GetByID was just called")
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

func (mock *voteReaderMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *voteReaderMock) FindByFingerprint(ctx context.Context, fingerprint string) (domain.Vote, error) {
	if mock.FindByFingerprintFunc == nil {
		panic("voteReaderMock.FindByFingerprintFunc: method is nil but voteReader.FindByFingerprint was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Fingerprint string
	}{
		Ctx:         ctx,
		Fingerprint: fingerprint,
	}
	mock.lockFindByFingerprint.Lock()
	mock.calls.FindByFingerprint = append(mock.calls.FindByFingerprint, callInfo)
	mock.lockFindByFingerprint.Unlock()
	return mock.FindByFingerprintFunc(ctx, fingerprint)
}

func (mock *voteReaderMock) FindByFingerprintCalls() []struct {
	Ctx         context.Context
	Fingerprint string
} {
	mock.lockFindByFingerprint.RLock()
	calls := mock.calls.FindByFingerprint
	mock.lockFindByFingerprint.RUnlock()
	return calls
}

func (mock *voteReaderMock) ListPage(ctx context.Context, after uuid.UUID, limit int) ([]domain.Vote, error) {
	if mock.ListPageFunc == nil {
		panic("voteReaderMock.ListPageFunc: method is nil but voteReader.ListPage was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		After uuid.UUID
		Limit int
	}{
		Ctx:   ctx,
		After: after,
		Limit: limit,
	}
	mock.lockListPage.Lock()
	mock.calls.ListPage = append(mock.calls.ListPage, callInfo)
	mock.lockListPage.Unlock()
	return mock.ListPageFunc(ctx, after, limit)
}

func (mock *voteReaderMock) ListPageCalls() []struct {
	Ctx   context.Context
	After uuid.UUID
	Limit int
} {
	mock.lockListPage.RLock()
	calls := mock.calls.ListPage
	mock.lockListPage.RUnlock()
	return calls
}
