package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/infras/otel"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityService "clinic/internal/domains/activitylog/service"
	"clinic/internal/domains/disease/model"
	"clinic/internal/domains/disease/model/dto"
	"clinic/internal/domains/disease/repository"
	"clinic/shared"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldTitle, constant.FieldCreatedAt}

var (
	ErrDiseaseNotFound  = failure.NotFound("disease not found")
	ErrCategoryNotFound = failure.NotFound("disease category not found")
	ErrUnknownCategory  = failure.Unprocessable("category_id does not name a disease category")
	ErrCategoryInUse    = failure.Conflict("disease category still has diseases")
	ErrEmptyUpdate      = failure.BadRequestFromString("update request cannot be empty")
)

type Disease interface {
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (string, error)
	GetCategories(ctx context.Context, params gDto.QueryParams) (dto.GetCategoriesResponse, error)
	UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) error
	// DeleteCategory refuses while any disease still belongs to the category.
	DeleteCategory(ctx context.Context, id string) error

	Create(ctx context.Context, req dto.CreateDiseaseRequest) (string, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetDiseasesRequest) (dto.GetDiseasesResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateDiseaseRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Disease
	categories repository.Category
	activity   activityService.ActivityLog
	otel       otel.Otel
}

func New(repo repository.Disease, categories repository.Category, activity activityService.ActivityLog, otel otel.Otel) Disease {
	return &serviceImpl{
		repo:       repo,
		categories: categories,
		activity:   activity,
		otel:       otel,
	}
}

func (s *serviceImpl) CreateCategory(ctx context.Context, req dto.CategoryRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.CreateCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	category := req.ToModel(actor.Name)

	if err = s.categories.Insert(ctx, category); err != nil {
		log.Error().Err(err).Msg("failed to create disease category")

		return "", fmt.Errorf("failed to create disease category: %w", err)
	}

	s.audit(ctx, activityModel.EntityDiseaseCategory, category.ID, activityModel.ActionCreated, actor)

	return category.ID, nil
}

func (s *serviceImpl) GetCategories(ctx context.Context, params gDto.QueryParams) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.GetCategories")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params = sorted(params, model.CategoryTableName)
	filter := gDto.FilterGroup{}

	total, err := s.categories.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count disease categories")

		return res, fmt.Errorf("failed to count disease categories: %w", err)
	}

	categories, err := s.categories.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get disease categories")

		return res, fmt.Errorf("failed to get disease categories: %w", err)
	}

	res.FromModels(categories, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) UpdateCategory(ctx context.Context, id string, req dto.CategoryRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.UpdateCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	if err = s.ensureCategory(ctx, id, ErrCategoryNotFound); err != nil {
		return err
	}

	if err = s.categories.Update(ctx, shared.TransformFields(req, actor.Name), filter); err != nil {
		log.Error().Err(err).Msg("failed to update disease category")

		return fmt.Errorf("failed to update disease category: %w", err)
	}

	s.audit(ctx, activityModel.EntityDiseaseCategory, id, activityModel.ActionUpdated, actor)

	return nil
}

func (s *serviceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.DeleteCategory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)

	if err = s.ensureCategory(ctx, id, ErrCategoryNotFound); err != nil {
		return err
	}

	inUse, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldCategoryID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check diseases of category")

		return fmt.Errorf("failed to check diseases of category: %w", err)
	}

	if inUse {
		return ErrCategoryInUse
	}

	if err = s.categories.Delete(ctx, shared.FilterByID(id, model.FieldID, model.CategoryTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete disease category")

		return fmt.Errorf("failed to delete disease category: %w", err)
	}

	s.audit(ctx, activityModel.EntityDiseaseCategory, id, activityModel.ActionDeleted, actor)

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDiseaseRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureCategory(ctx, req.CategoryID, ErrUnknownCategory); err != nil {
		return "", err
	}

	actor := gDto.ActorFromContext(ctx)
	disease := req.ToModel(actor.Name)

	if err = s.repo.Insert(ctx, disease); err != nil {
		log.Error().Err(err).Msg("failed to create disease")

		return "", fmt.Errorf("failed to create disease: %w", err)
	}

	s.audit(ctx, activityModel.EntityDisease, disease.ID, activityModel.ActionCreated, actor)

	return disease.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetDiseasesRequest) (res dto.GetDiseasesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params = sorted(params, model.TableName)
	filter := req.ToFilter()

	total, err := s.repo.CountDetails(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count diseases")

		return res, fmt.Errorf("failed to count diseases: %w", err)
	}

	diseases, err := s.repo.GetAllDetails(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get diseases")

		return res, fmt.Errorf("failed to get diseases: %w", err)
	}

	res.FromModels(diseases, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateDiseaseRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateDiseaseRequest{}) {
		return ErrEmptyUpdate
	}

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureDisease(ctx, filter); err != nil {
		return err
	}

	if req.CategoryID != "" {
		if err = s.ensureCategory(ctx, req.CategoryID, ErrUnknownCategory); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.Name), filter); err != nil {
		log.Error().Err(err).Msg("failed to update disease")

		return fmt.Errorf("failed to update disease: %w", err)
	}

	s.audit(ctx, activityModel.EntityDisease, id, activityModel.ActionUpdated, actor)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".disease.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureDisease(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete disease")

		return fmt.Errorf("failed to delete disease: %w", err)
	}

	s.audit(ctx, activityModel.EntityDisease, id, activityModel.ActionDeleted, actor)

	return nil
}

// ensureCategory returns missing when no category has id.
func (s *serviceImpl) ensureCategory(ctx context.Context, id string, missing error) error {
	exist, err := s.categories.Exist(ctx, shared.FilterByID(id, model.FieldID, model.CategoryTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if disease category exists")

		return fmt.Errorf("failed to check if disease category exists: %w", err)
	}

	if !exist {
		return missing
	}

	return nil
}

func (s *serviceImpl) ensureDisease(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if disease exists")

		return fmt.Errorf("failed to check if disease exists: %w", err)
	}

	if !exist {
		return ErrDiseaseNotFound
	}

	return nil
}

func (s *serviceImpl) audit(ctx context.Context, entity, id, action string, actor gDto.Actor) {
	entry := activityDto.NewEntry(entity, id, action, actor, "")
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("entity_id", id).Msg("failed to record disease activity")
	}
}

// sorted defaults to newest first and only lets whitelisted columns through.
func sorted(params gDto.QueryParams, table string) gDto.QueryParams {
	if !slices.Contains(sortableFields, params.SortBy) {
		params.SortBy = constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	params.SortBy = table + "." + params.SortBy
	if params.SortDir == "" {
		params.SortDir = gDto.SortDirDesc
	}

	return params
}
