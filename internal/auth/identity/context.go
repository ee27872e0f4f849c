package identity

import (
	"context"

	"homestay/pkg/model"
)

type callerKey struct{}

// WithCaller attaches the authenticated user to the request context. The
// caller context lives and dies with the request; it is never persisted.
func WithCaller(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, callerKey{}, user)
}

// CallerFrom returns the authenticated user, or (nil, false) for an
// anonymous request.
func CallerFrom(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(callerKey{}).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
