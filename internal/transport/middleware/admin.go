package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
	"github.com/heartmarshall/election-backend/pkg/ctxutil"
)

// RequireAdmin returns the admin's ID, domain.ErrUnauthorized for anonymous
// callers, or domain.ErrForbidden for non-admins.
// Use in REST handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return uuid.Nil, domain.ErrForbidden
	}
	return id, nil
}

// RequireUser returns the authenticated caller's ID or domain.ErrUnauthorized.
func RequireUser(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}
