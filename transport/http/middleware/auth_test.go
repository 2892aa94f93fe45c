package middleware_test

import (
	"clinic/config"
	"clinic/infras/jwt"
	jwtMocks "clinic/infras/jwt/mocks"
	"clinic/infras/otel/mocks"
	"clinic/permissions"
	cacheMocks "clinic/shared/cache/mocks"
	"clinic/shared/constant"
	"clinic/transport/http/middleware"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const permissionTable = `{
  "endpoints": [
    {"method": "POST", "path": "/v1/auth/login", "skip": true},
    {"method": "GET", "path": "/v1/admins", "permissions": ["superadmin"]},
    {"method": "POST", "path": "/v1/reservations", "permissions": ["admin", "superadmin"]}
  ]
}`

type authFixture struct {
	jwt    *jwtMocks.MockJWT
	cache  *cacheMocks.MockRedisCache
	router http.Handler
	seen   map[string]any
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	table, err := permissions.Parse([]byte(permissionTable))
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	f := &authFixture{
		jwt:   jwtMocks.NewMockJWT(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		seen:  map[string]any{},
	}

	auth := middleware.NewAuthRoleMiddleware(f.jwt, mocks.NewOtel(), table, cfg, f.cache)

	ok := func(w http.ResponseWriter, r *http.Request) {
		f.seen["user_id"] = r.Context().Value(constant.ContextKeyUserID)
		f.seen["username"] = r.Context().Value(constant.ContextKeyUsername)
		f.seen["token_exp"] = r.Context().Value(constant.ContextKeyTokenExp)
		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", ok)
		r.Get("/admins", ok)
		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", ok)
		})
	})

	f.router = router

	return f
}

func (f *authFixture) do(method, target string, headers map[string]string) int {
	request := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)

	return recorder.Code
}

func bearer(token string) map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer " + token}
}

func claimsFor(role string) *jwt.Claims {
	return &jwt.Claims{
		UserID:   "admin-1",
		Username: "reception",
		Role:     role,
		TokenID:  "token-1",
		Type:     jwt.AccessToken,
		RegisteredClaims: jwtLib.RegisteredClaims{
			ExpiresAt: jwtLib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuth(t *testing.T) {
	t.Run("public route needs no token", func(t *testing.T) {
		f := newAuthFixture(t)

		assert.Equal(t, http.StatusNoContent, f.do(http.MethodPost, "/v1/auth/login", nil))
	})

	t.Run("missing token", func(t *testing.T) {
		f := newAuthFixture(t)

		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/v1/reservations", nil))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "stale", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/v1/reservations", bearer("stale")))
	})

	t.Run("revoked token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(claimsFor(constant.RoleAdmin), nil)
		f.cache.EXPECT().Exists(gomock.Any(), jwt.RevokedKey("token-1")).Return(true, nil)

		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/v1/reservations", bearer("good")))
	})

	t.Run("operator identity reaches the handler", func(t *testing.T) {
		f := newAuthFixture(t)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(claimsFor(constant.RoleAdmin), nil)
		f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNoContent, f.do(http.MethodPost, "/v1/reservations", bearer("good")))
		assert.Equal(t, "admin-1", f.seen["user_id"])
		assert.Equal(t, "reception", f.seen["username"])
		assert.IsType(t, time.Time{}, f.seen["token_exp"])
	})

	t.Run("revocation store outage lets valid tokens through", func(t *testing.T) {
		f := newAuthFixture(t)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claimsFor(constant.RoleAdmin), nil)
		f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

		assert.Equal(t, http.StatusNoContent, f.do(http.MethodPost, "/v1/reservations", bearer("good")))
	})
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{name: "admin cannot manage admins", role: constant.RoleAdmin, wantCode: http.StatusForbidden},
		{name: "superadmin manages admins", role: constant.RoleSuperAdmin, wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claimsFor(tt.role), nil)
			f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(false, nil)

			assert.Equal(t, tt.wantCode, f.do(http.MethodGet, "/v1/admins", bearer("good")))
		})
	}
}

func TestAPIKey(t *testing.T) {
	f := newAuthFixture(t)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodGet, "/v1/admins", map[string]string{constant.RequestHeaderAPIKey: "internal-key"}))
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/v1/admins", map[string]string{constant.RequestHeaderAPIKey: "guess"}))
}
