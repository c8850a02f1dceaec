package httpx

import (
	"context"

	"github.com/aussiebroadwan/polls/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRole   ctxKey = "role"
)

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyRole, c.UserType)
	return ctx
}

// UserIDFromContext returns the authenticated user id set by AuthnMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(int64)
	return id, ok && id > 0
}

// RoleFromContext returns the role claim of the authenticated caller.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(CtxKeyRole).(string)
	return role
}
