package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/jwt"
	"clinic/infras/otel"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityService "clinic/internal/domains/activitylog/service"
	adminModel "clinic/internal/domains/admin/model"
	adminRepo "clinic/internal/domains/admin/repository"
	"clinic/internal/domains/auth/model/dto"
	"clinic/shared"
	"clinic/shared/cache"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"clinic/shared/password"
	"clinic/shared/timezone"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const revokedMarker = "1"

var (
	ErrInvalidCredentials = failure.BadRequestFromString("invalid username or password")
	ErrUsernameTaken      = failure.BadRequestFromString("username already registered")
	ErrAdminDisabled      = failure.Forbidden("admin account is disabled")
	ErrInvalidRefresh     = failure.Unauthorized("invalid refresh token")
	ErrWrongPassword      = failure.BadRequestFromString("current password is incorrect")
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	adminRepo  adminRepo.Admin
	activity   activityService.ActivityLog
	cache      cache.RedisCache
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(adminRepo adminRepo.Admin, activity activityService.ActivityLog, cache cache.RedisCache, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		adminRepo:  adminRepo,
		activity:   activity,
		cache:      cache,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func usernameFilter(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    adminModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(username),
				Table:    adminModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)

	exists, err := s.adminRepo.Exist(ctx, usernameFilter(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if admin exists")

		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if exists {
		return ErrUsernameTaken
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := req.ToAdminModel(actor.Name, hashedPassword)

	if err = s.adminRepo.Insert(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to create admin")

		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.audit(ctx, admin.ID, activityModel.ActionCreated, actor)

	return nil
}

// Login accepts the current hash or the legacy one. A legacy match is
// re-hashed into the current column and the legacy hash is dropped.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := usernameFilter(req.Username)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == "" {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, ErrInvalidCredentials
	}

	match, err := password.VerifyWithLegacy(req.Password, admin.Password, admin.OldPassword)
	if err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to verify password")
		}

		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials
	}

	if !admin.Enabled {
		return res, ErrAdminDisabled
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, admin.ID, admin.Username, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, admin.Username)

	if match == password.MatchLegacy {
		hashedPassword, err := password.Hash(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}

		updatedFields[adminModel.FieldPassword] = hashedPassword
		updatedFields[adminModel.FieldOldPassword] = nil
	}

	if err = s.adminRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	s.audit(ctx, admin.ID, activityModel.ActionLogin, gDto.Actor{ID: admin.ID, Name: admin.Username, Role: admin.Role})

	res.FromTokenPair(tokenPair)
	res.FromAdmin(admin)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, ErrInvalidRefresh
	}

	revoked, err := s.cache.Exists(ctx, jwt.RevokedKey(claims.TokenID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check refresh token revocation")

		return res, fmt.Errorf("failed to check refresh token revocation: %w", err)
	}

	if revoked {
		return res, ErrInvalidRefresh
	}

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, ErrInvalidRefresh
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// Logout revokes the access token of the request until it would have expired anyway.
func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	expiresAt, _ := ctx.Value(constant.ContextKeyTokenExp).(time.Time)

	if tokenID == "" {
		return failure.Unauthorized("missing token")
	}

	if err = s.revoke(ctx, tokenID, expiresAt); err != nil {
		return err
	}

	if req.RefreshToken != "" {
		claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring invalid refresh token on logout")
		} else if claims.UserID == actor.ID {
			if err = s.revoke(ctx, claims.TokenID, claims.ExpiresAt.Time); err != nil {
				return err
			}
		}
	}

	s.audit(ctx, actor.ID, activityModel.ActionLogout, actor)

	return nil
}

func (s *serviceImpl) revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := int(time.Until(expiresAt).Seconds())
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Save(ctx, jwt.RevokedKey(tokenID), revokedMarker, ttl); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(actor.ID, adminModel.FieldID, adminModel.TableName)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == "" {
		return failure.NotFound("admin not found")
	}

	if _, err = password.VerifyWithLegacy(req.CurrentPassword, admin.Password, admin.OldPassword); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := map[string]any{
		adminModel.FieldPassword:    hashedPassword,
		adminModel.FieldOldPassword: nil,
		constant.FieldModifiedAt:    timezone.Now(),
		constant.FieldModifiedBy:    actor.Name,
	}

	if err = s.adminRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	s.audit(ctx, admin.ID, activityModel.ActionUpdated, actor)

	return nil
}

func (s *serviceImpl) audit(ctx context.Context, adminID, action string, actor gDto.Actor) {
	entry := activityDto.NewEntry(activityModel.EntityAdmin, adminID, action, actor, "")
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("admin_id", adminID).Msg("failed to record admin activity")
	}
}
