package utils

import (
	"context"

	"brytashop-be/internal/auth"
)

// SetUserContext stores the authenticated user on the context (called by the auth middleware).
func SetUserContext(ctx context.Context, id uint, email string, permissions []auth.Permission) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserPermissionsKey, permissions)
	return ctx
}

// GetUserIDFromContext retrieves the user id safely.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok && id != 0
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func GetUserPermissionsFromContext(ctx context.Context) []auth.Permission {
	perms, _ := ctx.Value(UserPermissionsKey).([]auth.Permission)
	return perms
}

// GetActorFromContext returns the caller, or false for anonymous requests.
func GetActorFromContext(ctx context.Context) (auth.Actor, bool) {
	id, ok := GetUserIDFromContext(ctx)
	if !ok {
		return auth.Actor{}, false
	}
	return auth.Actor{
		ID:          id,
		Email:       GetUserEmailFromContext(ctx),
		Permissions: GetUserPermissionsFromContext(ctx),
	}, true
}
