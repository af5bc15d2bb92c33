package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/logger"
	"brytashop-be/internal/metrics"
	"brytashop-be/internal/user"
	"brytashop-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubUsers map[uint]*user.User

func (s stubUsers) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret")
	users := stubUsers{
		7: {ID: 7, Email: "a@example.com", Permissions: []auth.Permission{auth.PermissionAdmin}},
	}

	var gotActor auth.Actor
	var gotOK bool
	handler := AuthMiddleware(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, gotOK = utils.GetActorFromContext(r.Context())
	}))

	t.Run("Cookie", func(t *testing.T) {
		tok, err := tokens.Generate(7)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, gotOK)
		assert.Equal(t, uint(7), gotActor.ID)
		assert.Equal(t, "a@example.com", gotActor.Email)
		assert.True(t, gotActor.Can(auth.PermissionAdmin))
	})

	t.Run("BearerHeader", func(t *testing.T) {
		tok, _ := tokens.Generate(7)
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, gotOK)
	})

	t.Run("InvalidTokenIsAnonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.False(t, gotOK)
	})

	t.Run("DeletedUserIsAnonymous", func(t *testing.T) {
		tok, _ := tokens.Generate(99)
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.False(t, gotOK)
	})

	t.Run("NoToken", func(t *testing.T) {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/query", nil))
		assert.False(t, gotOK)
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS("http://shop.test")(next)

	t.Run("AllowedOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Origin", "http://shop.test")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "http://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("OtherOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/query", nil)
		req.Header.Set("Origin", "http://shop.test")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), 3, "x@example.com", nil))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := observed.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/query", fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, 3, fields["user_id"])
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("StrictTierForWebhook", func(t *testing.T) {
		l := NewRateLimiter("")
		handler := l.Middleware(ok)

		codes := make([]int, 0, tierStrict.burst+1)
		for i := 0; i < tierStrict.burst+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
		assert.Equal(t, http.StatusOK, codes[0])
	})

	t.Run("Tiers", func(t *testing.T) {
		l := NewRateLimiter("internal-secret")

		req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", nil)
		assert.Equal(t, "strict", l.resolveTier(req).name)

		req = httptest.NewRequest(http.MethodPost, "/query", nil)
		assert.Equal(t, "general", l.resolveTier(req).name)

		req.Header.Set("X-Action", "auth")
		assert.Equal(t, "general", l.resolveTier(req).name)

		req.Header.Set("X-Service-Auth", "internal-secret")
		assert.Equal(t, "internal", l.resolveTier(req).name)
	})

	t.Run("IdentityPrefersUser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		assert.Equal(t, "ip:10.0.0.1", identity(req))

		req = req.WithContext(utils.SetUserContext(req.Context(), 4, "", nil))
		assert.Equal(t, "user:4", identity(req))
	})

	t.Run("CleanupDropsIdleBuckets", func(t *testing.T) {
		l := NewRateLimiter("")
		now := time.Now()
		l.now = func() time.Time { return now }
		l.get("ip:1:general", tierGeneral)

		l.now = func() time.Time { return now.Add(visitorTTL + time.Second) }
		l.Cleanup()
		assert.Empty(t, l.visitors)
	})
}


func TestRequestMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	handler := RequestMetrics(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `brytashop_http_request_duration_seconds_count{method="GET",status="418"} 1`)
}
