package middleware

import (
	"context"
	"net/http"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/logger"
	"brytashop-be/internal/user"
	"brytashop-be/internal/utils"

	"go.uber.org/zap"
)

// UserLookup resolves the user behind a session token.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// AuthMiddleware attaches the caller to the context when the request carries
// a valid session. Anything else proceeds as anonymous.
func AuthMiddleware(tokens *auth.TokenManager, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid session token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("session user not found", zap.Uint("user_id", claims.UserID), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), u.ID, u.Email, u.Permissions)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
