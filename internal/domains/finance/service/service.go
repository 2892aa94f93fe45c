package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/infras/otel"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityService "clinic/internal/domains/activitylog/service"
	"clinic/internal/domains/finance/model"
	"clinic/internal/domains/finance/model/dto"
	"clinic/internal/domains/finance/repository"
	"clinic/shared/calendar"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"clinic/shared/transaction"
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// duplicateWindowDays is how far before today a deposit from the same card
// still counts as the same refund.
const duplicateWindowDays = 2

var sortableFields = []string{constant.FieldCreatedAt, model.FieldDepositDate, model.FieldAmount}

var (
	ErrDuplicateRefund  = failure.Unprocessable("a refund from this card was already recorded within the past three days")
	ErrTurnSlotRequired = failure.Unprocessable("turn date and turn time are required for a turn refund")
)

type Refund interface {
	// Create records a refund request unless an active one paid from the same
	// card falls between two days ago and the deposit date.
	Create(ctx context.Context, req dto.CreateRefundRequest) (string, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetRefundsRequest) (dto.GetRefundsResponse, error)
}

type serviceImpl struct {
	repo       repository.Refund
	activity   activityService.ActivityLog
	transactor transaction.Transactor
	otel       otel.Otel
}

func New(repo repository.Refund, activity activityService.ActivityLog, transactor transaction.Transactor, otel otel.Otel) Refund {
	return &serviceImpl{
		repo:       repo,
		activity:   activity,
		transactor: transactor,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRefundRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".refund.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.MissesTurnSlot() {
		return "", ErrTurnSlotRequired
	}

	actor := gDto.ActorFromContext(ctx)

	refund, err := req.ToModel(actor.Name)
	if err != nil {
		return "", err
	}

	from := calendar.Today().AddDate(0, 0, -duplicateWindowDays)
	filter := dto.DuplicateFilter(refund.LastFourDigits, from, refund.DepositDate)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		duplicates, err := s.repo.CountTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count recent refunds")

			return fmt.Errorf("failed to count recent refunds: %w", err)
		}

		if duplicates > 0 {
			return ErrDuplicateRefund
		}

		if err := s.repo.InsertTx(ctx, tx, refund); err != nil {
			log.Error().Err(err).Msg("failed to create refund")

			return fmt.Errorf("failed to create refund: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	entry := activityDto.NewEntry(activityModel.EntityRefund, refund.ID, activityModel.ActionCreated, actor, "")
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("refund_id", refund.ID).Msg("failed to record refund activity")
	}

	return refund.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetRefundsRequest) (res dto.GetRefundsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".refund.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slices.Contains(sortableFields, params.SortBy) {
		params.SortBy = constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	params.SortBy = model.TableName + "." + params.SortBy
	if params.SortDir == "" {
		params.SortDir = gDto.SortDirDesc
	}

	filter := req.ToFilter()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count refunds")

		return res, fmt.Errorf("failed to count refunds: %w", err)
	}

	refunds, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get refunds")

		return res, fmt.Errorf("failed to get refunds: %w", err)
	}

	res.FromModels(refunds, total, params.Limit)

	return res, nil
}
