package authctx

import (
	"context"

	"gropower-backend/internal/domain"
)

type contextKey string

const (
	userContextKey    contextKey = "currentUser"
	profileContextKey contextKey = "currentProfile"
)

// CurrentUser is the token-derived identity; the access gate loads the
// fresh profile (status, onboarding flag) on top of it per request.
type CurrentUser struct {
	ID    int64
	Email string
	Role  domain.UserRole
}

func WithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func FromContext(ctx context.Context) *CurrentUser {
	val, ok := ctx.Value(userContextKey).(CurrentUser)
	if !ok {
		return nil
	}
	return &val
}

// WithProfile stores the freshly loaded profile once the access gate has
// cleared it.
func WithProfile(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, profileContextKey, u)
}

func ProfileFromContext(ctx context.Context) *domain.User {
	val, ok := ctx.Value(profileContextKey).(domain.User)
	if !ok {
		return nil
	}
	return &val
}
