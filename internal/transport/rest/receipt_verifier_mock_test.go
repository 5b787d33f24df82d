package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/election-backend/internal/domain"
)

var _ receiptVerifier = &receiptVerifierMock{}

type receiptVerifierMock struct {
	VerifyByFingerprintFunc func(ctx context.Context, fingerprint string) (domain.VoteReceipt, error)

	calls struct {
		VerifyByFingerprint []struct {
			Ctx         context.Context
			Fingerprint string
		}
	}
	lockVerifyByFingerprint sync.RWMutex
}

func (mock *receiptVerifierMock) VerifyByFingerprint(ctx context.Context, fingerprint string) (domain.VoteReceipt, error) {
	if mock.VerifyByFingerprintFunc == nil {
		panic("receiptVerifierMock.VerifyByFingerprintFunc: method is nil but receiptVerifier.VerifyByFingerprint was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Fingerprint string
	}{
		Ctx:         ctx,
		Fingerprint: fingerprint,
	}
	mock.lockVerifyByFingerprint.Lock()
	mock.calls.VerifyByFingerprint = append(mock.calls.VerifyByFingerprint, callInfo)
	mock.lockVerifyByFingerprint.Unlock()
	return mock.VerifyByFingerprintFunc(ctx, fingerprint)
}

func (mock *receiptVerifierMock) VerifyByFingerprintCalls() []struct {
	Ctx         context.Context
	Fingerprint string
} {
	mock.lockVerifyByFingerprint.RLock()
	calls := mock.calls.VerifyByFingerprint
	mock.lockVerifyByFingerprint.RUnlock()
	return calls
}
