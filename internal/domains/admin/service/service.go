package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/otel"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityService "clinic/internal/domains/activitylog/service"
	"clinic/internal/domains/admin/model"
	"clinic/internal/domains/admin/model/dto"
	"clinic/internal/domains/admin/repository"
	"clinic/shared"
	"clinic/shared/cache"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAdmin    = "admin:get"
	cacheGetAllAdmin = "admin:gets"
)

var sortableFields = []string{model.FieldUsername, model.FieldFirstName, model.FieldLastName, model.FieldLastLogin, constant.FieldCreatedAt}

var (
	ErrAdminNotFound   = failure.NotFound("admin not found")
	ErrEmptyUpdate     = failure.BadRequestFromString("update request cannot be empty")
	ErrSelfDeactivated = failure.BadRequestFromString("you cannot disable your own account")
)

type Admin interface {
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetAdminsRequest) (dto.GetAdminsResponse, error)
	Get(ctx context.Context, id string) (dto.AdminResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateAdminRequest) error
}

type serviceImpl struct {
	repo     repository.Admin
	activity activityService.ActivityLog
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Admin, activity activityService.ActivityLog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Admin {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetAdminsRequest) (res dto.GetAdminsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slices.Contains(sortableFields, params.SortBy) {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir
	}

	params.SortBy = model.TableName + "." + params.SortBy
	if params.SortDir == "" {
		params.SortDir = gDto.SortDirAsc
	}

	filter := req.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAdmin, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for admins")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count admins")

		return res, fmt.Errorf("failed to count admins: %w", err)
	}

	admins, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admins")

		return res, fmt.Errorf("failed to get admins: %w", err)
	}

	res.FromModels(admins, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admins to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAdmin, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for admin")

		return res, nil
	}

	admin, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == "" {
		return res, ErrAdminNotFound
	}

	res.FromModel(admin)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admin to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateAdminRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateAdminRequest{}) {
		return ErrEmptyUpdate
	}

	actor := gDto.ActorFromContext(ctx)

	if actor.ID == id && req.Enabled != nil && !*req.Enabled {
		return ErrSelfDeactivated
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if admin exists")

		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if !exist {
		return ErrAdminNotFound
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Name), filter); err != nil {
		log.Error().Err(err).Msg("failed to update admin")

		return fmt.Errorf("failed to update admin: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAdmin, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete admin from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAdmin)
	}()

	entry := activityDto.NewEntry(activityModel.EntityAdmin, id, activityModel.ActionUpdated, actor, "")
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("admin_id", id).Msg("failed to record admin activity")
	}

	return nil
}
