package voting

import (
	"context"
	"sync"

	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, event domain.AuditEvent) error

	calls struct {
		Log []struct {
			Ctx   context.Context
			Event domain.AuditEvent
		}
	}
	lockLog sync.RWMutex
}

func (mock *auditLoggerMock) Log(ctx context.Context, event domain.AuditEvent) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Event domain.AuditEvent
	}{
		Ctx:   ctx,
		Event: event,
	}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, event)
}

func (mock *auditLoggerMock) LogCalls() []struct {
	Ctx   context.Context
	Event domain.AuditEvent
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}
