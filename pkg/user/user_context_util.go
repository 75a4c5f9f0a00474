package user

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

// CurrentId retrieves the current user's ID from the context. Returns
// ErrNotFound if no user is present in the context.
func CurrentId(ctx context.Context) (string, error) {
	current, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return "", ErrNotFound
	}
	return current.ID, nil
}

func CurrentUser(ctx context.Context) (User, error) {
	current, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return User{}, ErrNotFound
	}
	return current, nil
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}
