package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/otel"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityService "clinic/internal/domains/activitylog/service"
	"clinic/internal/domains/customer/model"
	"clinic/internal/domains/customer/model/dto"
	"clinic/internal/domains/customer/repository"
	"clinic/shared"
	"clinic/shared/cache"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"clinic/shared/timezone"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cacheGetCustomer = "customer:get"

const (
	messageBlocked        = "customer blocked"
	messageAlreadyBlocked = "customer is already blocked"
)

var (
	ErrCustomerNotFound = failure.NotFound("customer not found")
	ErrPhoneTaken       = failure.Conflict("phone number already belongs to another customer")
)

type Customer interface {
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) error
	Block(ctx context.Context, id string) (dto.BlockCustomerResponse, error)

	// GetTx loads a customer inside a booking transaction. A missing customer is ErrCustomerNotFound.
	GetTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Customer, error)
	// FindOrCreateTx looks the customer up by phone, refreshing the name on a
	// match and creating the customer otherwise.
	FindOrCreateTx(ctx context.Context, tx *sqlx.Tx, req dto.ContactRequest) (model.Customer, error)
}

type serviceImpl struct {
	repo     repository.Customer
	activity activityService.ActivityLog
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Customer, activity activityService.ActivityLog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCustomer, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer")

		return res, nil
	}

	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == "" {
		return res, ErrCustomerNotFound
	}

	res.FromModel(customer)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	fields, err := req.ToFields()
	if err != nil {
		return err //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return ErrCustomerNotFound
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldPhone, Value: req.Phone, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check customer phone")

		return fmt.Errorf("failed to check customer phone: %w", err)
	}

	if taken {
		return ErrPhoneTaken
	}

	if err = s.repo.Update(ctx, shared.TransformFields(fields, actor.Name), filter); err != nil {
		log.Error().Err(err).Msg("failed to update customer")

		return fmt.Errorf("failed to update customer: %w", err)
	}

	s.audit(ctx, id, activityModel.ActionUpdated, actor)

	return nil
}

// Block reports an already blocked customer through the response instead of an error.
func (s *serviceImpl) Block(ctx context.Context, id string) (res dto.BlockCustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Block")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	customer, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldBlocked)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == "" {
		return res, ErrCustomerNotFound
	}

	if customer.Blocked {
		return dto.BlockCustomerResponse{Blocked: false, Message: messageAlreadyBlocked}, nil
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldBlocked:       true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.Name,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to block customer")

		return res, fmt.Errorf("failed to block customer: %w", err)
	}

	s.audit(ctx, id, activityModel.ActionBlocked, actor)

	return dto.BlockCustomerResponse{Blocked: true, Message: messageBlocked}, nil
}

func (s *serviceImpl) GetTx(ctx context.Context, tx *sqlx.Tx, id string) (customer model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.GetTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customer, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == "" {
		return customer, ErrCustomerNotFound
	}

	return customer, nil
}

func (s *serviceImpl) FindOrCreateTx(ctx context.Context, tx *sqlx.Tx, req dto.ContactRequest) (customer model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.FindOrCreateTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	phoneFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldPhone, Value: req.Phone, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	customer, err = s.repo.GetTx(ctx, tx, phoneFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to find customer by phone")

		return customer, fmt.Errorf("failed to find customer by phone: %w", err)
	}

	if customer.ID == "" {
		customer = req.ToModel(actor)

		if err = s.repo.InsertTx(ctx, tx, customer); err != nil {
			log.Error().Err(err).Msg("failed to create customer")

			return customer, fmt.Errorf("failed to create customer: %w", err)
		}

		return customer, nil
	}

	named := req.ToModel(actor)
	if customer.FirstName == named.FirstName && customer.LastName == named.LastName {
		return customer, nil
	}

	err = s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldFirstName:     named.FirstName,
		model.FieldLastName:      named.LastName,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.Name,
	}, shared.FilterByID(customer.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to rename customer")

		return customer, fmt.Errorf("failed to rename customer: %w", err)
	}

	customer.FirstName = named.FirstName
	customer.LastName = named.LastName

	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetCustomer, customer.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete customer from cache")
		}
	}()

	return customer, nil
}

func (s *serviceImpl) audit(ctx context.Context, id, action string, actor gDto.Actor) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCustomer, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete customer from cache")
		}
	}()

	entry := activityDto.NewEntry(activityModel.EntityCustomer, id, action, actor, "")
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("failed to record customer activity")
	}
}
