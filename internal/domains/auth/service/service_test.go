package service_test

import (
	"clinic/config"
	"clinic/infras/jwt"
	jwtMocks "clinic/infras/jwt/mocks"
	"clinic/infras/otel/mocks"
	activityMocks "clinic/internal/domains/activitylog/service/mocks"
	adminMocks "clinic/internal/domains/admin/mocks"
	adminModel "clinic/internal/domains/admin/model"
	"clinic/internal/domains/auth/model/dto"
	"clinic/internal/domains/auth/service"
	cacheMocks "clinic/shared/cache/mocks"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/password"
	"clinic/shared/timezone"
	"context"
	"errors"
	"testing"
	"time"

	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	adminRepo *adminMocks.MockAdmin
	activity  *activityMocks.MockActivityLog
	cache     *cacheMocks.MockRedisCache
	jwt       *jwtMocks.MockJWT
	svc       service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		adminRepo: adminMocks.NewMockAdmin(ctrl),
		activity:  activityMocks.NewMockActivityLog(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		jwt:       jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.adminRepo, f.activity, f.cache, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func hash(t *testing.T, plain string) string {
	t.Helper()

	hashed, err := password.Hash(plain)
	require.NoError(t, err)

	return hashed
}

func sessionContext(tokenID string, expiresAt time.Time) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, "sara")
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, tokenID)

	return context.WithValue(ctx, constant.ContextKeyTokenExp, expiresAt)
}

var tokenPair = &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		FirstName:            "Sara",
		LastName:             "Ahmadi",
		Username:             "Sara",
		Password:             "secret-password",
		PasswordConfirmation: "secret-password",
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
		anyErr    bool
	}{
		{
			name: "creates an enabled admin",
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.adminRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, admin adminModel.Admin) error {
						assert.Equal(t, "sara", admin.Username)
						assert.True(t, admin.Enabled)
						assert.NoError(t, password.Verify("secret-password", admin.Password))

						return nil
					})
				f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "username taken",
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: service.ErrUsernameTaken,
		},
		{
			name: "insert failure",
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.adminRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Register(context.Background(), req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	current := hash(t, "password")
	legacy := hash(t, "old-password")

	validAdmin := adminModel.Admin{
		ID:        "admin-1",
		FirstName: "Sara",
		LastName:  "Ahmadi",
		Username:  "sara",
		Password:  current,
		Role:      constant.RoleAdmin,
		Enabled:   true,
		Metadata:  gModel.NewMetadata(constant.ContextSystem, timezone.Now()),
	}

	legacyAdmin := validAdmin
	legacyAdmin.Password = ""
	legacyAdmin.OldPassword = &legacy

	disabledAdmin := validAdmin
	disabledAdmin.Enabled = false

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantErr   error
		anyErr    bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "Sara", Password: "password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "admin-1", "sara", constant.RoleAdmin).Return(tokenPair, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, adminModel.FieldLastLogin)
						assert.NotContains(t, fields, adminModel.FieldPassword)

						return nil
					})
				f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "legacy password is migrated",
			req:  dto.LoginRequest{Username: "sara", Password: "old-password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(legacyAdmin, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						rehashed, ok := fields[adminModel.FieldPassword].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("old-password", rehashed))
						assert.Contains(t, fields, adminModel.FieldOldPassword)
						assert.Nil(t, fields[adminModel.FieldOldPassword])

						return nil
					})
				f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "sara", Password: "wrong-password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "disabled admin",
			req:  dto.LoginRequest{Username: "sara", Password: "password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(disabledAdmin, nil)
			},
			wantErr: service.ErrAdminDisabled,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Username: "sara", Password: "password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("token generation failed"))
			},
			anyErr: true,
		},
		{
			name: "update last login error",
			req:  dto.LoginRequest{Username: "sara", Password: "password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Login(context.Background(), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "access-token", result.AccessToken)
				assert.Equal(t, "refresh-token", result.RefreshToken)
				assert.Equal(t, "Sara Ahmadi", result.Admin.FullName)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	claims := &jwt.Claims{UserID: "admin-1", TokenID: "refresh-1", Type: jwt.RefreshToken}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
	}{
		{
			name: "successful token refresh",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), jwt.RevokedKey("refresh-1")).Return(false, nil)
				f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-token").Return(tokenPair, nil)
			},
		},
		{
			name: "invalid refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: service.ErrInvalidRefresh,
		},
		{
			name: "revoked refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: service.ErrInvalidRefresh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	expiresAt := time.Now().Add(10 * time.Minute)

	t.Run("revokes the access token until it expires", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Save(gomock.Any(), jwt.RevokedKey("access-1"), "1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ any, ttl int) error {
				assert.InDelta(t, 600, ttl, 5)

				return nil
			})
		f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Logout(sessionContext("access-1", expiresAt), dto.LogoutRequest{}))
	})

	t.Run("revokes the refresh token of the same admin", func(t *testing.T) {
		f := newFixture(t)

		refreshClaims := &jwt.Claims{
			UserID:           "admin-1",
			TokenID:          "refresh-1",
			Type:             jwt.RefreshToken,
			RegisteredClaims: jwtLib.RegisteredClaims{ExpiresAt: jwtLib.NewNumericDate(time.Now().Add(time.Hour))},
		}

		f.cache.EXPECT().Save(gomock.Any(), jwt.RevokedKey("access-1"), gomock.Any(), gomock.Any()).Return(nil)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(refreshClaims, nil)
		f.cache.EXPECT().Save(gomock.Any(), jwt.RevokedKey("refresh-1"), gomock.Any(), gomock.Any()).Return(nil)
		f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Logout(sessionContext("access-1", expiresAt), dto.LogoutRequest{RefreshToken: "refresh-token"}))
	})

	t.Run("expired token needs no revocation", func(t *testing.T) {
		f := newFixture(t)

		f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Logout(sessionContext("access-1", time.Now().Add(-time.Minute)), dto.LogoutRequest{}))
	})

	t.Run("cache failure", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		assert.Error(t, f.svc.Logout(sessionContext("access-1", expiresAt), dto.LogoutRequest{}))
	})

	t.Run("no session", func(t *testing.T) {
		f := newFixture(t)

		assert.Error(t, f.svc.Logout(context.Background(), dto.LogoutRequest{}))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	admin := adminModel.Admin{ID: "admin-1", Username: "sara", Password: hash(t, "password"), Enabled: true}

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantErr   error
		anyErr    bool
	}{
		{
			name: "successful change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				f.adminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hashed, ok := fields[adminModel.FieldPassword].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("new-password", hashed))

						return nil
					})
				f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "new-password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
			},
			wantErr: service.ErrWrongPassword,
		},
		{
			name: "admin not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"},
			setupMock: func(f fixture) {
				f.adminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(sessionContext("access-1", time.Now().Add(time.Minute)), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
