package graph

import (
	"context"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/transport"
	"brytashop-be/internal/utils"
)

// currentActor returns the caller; anonymous callers get a zero Actor.
func currentActor(ctx context.Context) auth.Actor {
	actor, _ := utils.GetActorFromContext(ctx)
	return actor
}

func (r *Resolver) setSessionCookie(ctx context.Context, token string) {
	if w := transport.GetResponseWriter(ctx); w != nil {
		auth.SetTokenCookie(w, token, r.SecureCookies)
	}
}

func (r *Resolver) clearSessionCookie(ctx context.Context) {
	if w := transport.GetResponseWriter(ctx); w != nil {
		auth.ClearTokenCookie(w, r.SecureCookies)
	}
}
