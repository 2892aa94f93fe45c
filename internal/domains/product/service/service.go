package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/otel"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityService "clinic/internal/domains/activitylog/service"
	"clinic/internal/domains/product/model"
	"clinic/internal/domains/product/model/dto"
	"clinic/internal/domains/product/repository"
	"clinic/shared"
	"clinic/shared/cache"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"clinic/shared/timezone"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProduct    = "product:get"
	cacheGetAllProduct = "product:gets"
	cacheCountProduct  = "product:count"
)

var sortableFields = []string{model.FieldTitle, model.FieldPrice, model.FieldQuantity, constant.FieldCreatedAt}

var (
	ErrProductNotFound = failure.NotFound("product not found")
	ErrEmptyUpdate     = failure.BadRequestFromString("update request cannot be empty")
)

type Product interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (string, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetProductsRequest) (dto.GetProductsResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ProductResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateProductRequest) error
	// Delete disables the product. Rows are kept for the orders that reference them.
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Product
	activity activityService.ActivityLog
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Product, activity activityService.ActivityLog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Product {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProductRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	product := req.ToModel(actor.Name)

	if err = s.repo.Insert(ctx, product); err != nil {
		log.Error().Err(err).Msg("failed to create product")

		return "", fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx, "")
	s.audit(ctx, product.ID, activityModel.ActionCreated, actor)

	return product.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetProductsRequest) (res dto.GetProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slices.Contains(sortableFields, params.SortBy) {
		params.SortBy = model.FieldTitle
		params.SortDir = gDto.SortDirAsc
	}

	params.SortBy = model.TableName + "." + params.SortBy
	if params.SortDir == "" {
		params.SortDir = gDto.SortDirAsc
	}

	filter := req.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProduct, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for products")

		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	products, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get products")

		return res, fmt.Errorf("failed to get products: %w", err)
	}

	res.FromModels(products, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save products to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProduct, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for product count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count products")

		return res, fmt.Errorf("failed to count products: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save product count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetProduct, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for product")

		return res, nil
	}

	product, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get product")

		return res, fmt.Errorf("failed to get product: %w", err)
	}

	if product.ID == "" {
		return res, ErrProductNotFound
	}

	res.FromModel(product)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save product to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateProductRequest{}) {
		return ErrEmptyUpdate
	}

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Name), filter); err != nil {
		log.Error().Err(err).Msg("failed to update product")

		return fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx, id)
	s.audit(ctx, id, activityModel.ActionUpdated, actor)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldEnabled:       false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.Name,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to disable product")

		return fmt.Errorf("failed to disable product: %w", err)
	}

	s.invalidate(ctx, id)
	s.audit(ctx, id, activityModel.ActionDeleted, actor)

	return nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if product exists")

		return fmt.Errorf("failed to check if product exists: %w", err)
	}

	if !exist {
		return ErrProductNotFound
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProduct, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete product from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProduct)
		shared.InvalidateCaches(c, s.cache, cacheCountProduct)
	}()
}

func (s *serviceImpl) audit(ctx context.Context, id, action string, actor gDto.Actor) {
	entry := activityDto.NewEntry(activityModel.EntityProduct, id, action, actor, "")
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("failed to record product activity")
	}
}
