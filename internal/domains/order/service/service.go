package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/otel"
	"clinic/internal/domains/order/model"
	"clinic/internal/domains/order/model/dto"
	"clinic/internal/domains/order/repository"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var ErrInvalidPaymentMethod = failure.BadRequestFromString("payment method must be 1 (pos), 2 (card) or 3 (cash)")

type Order interface {
	// CreateForReservationTx records the booking fee inside the booking transaction.
	CreateForReservationTx(ctx context.Context, tx *sqlx.Tx, customerID string, paymentMethod int) (model.Order, error)
}

type serviceImpl struct {
	repo repository.Order
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Order, cfg *config.Config, otel otel.Otel) Order {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) CreateForReservationTx(ctx context.Context, tx *sqlx.Tx, customerID string, paymentMethod int) (order model.Order, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.CreateForReservationTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req := dto.ReservationOrder{
		CustomerID:    customerID,
		PaymentMethod: paymentMethod,
		Amount:        s.cfg.Reservation.BookingFee,
	}

	order, err = req.ToModel(gDto.ActorFromContext(ctx))
	if err != nil {
		return order, ErrInvalidPaymentMethod
	}

	if err = s.repo.InsertTx(ctx, tx, order); err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("failed to create reservation order")

		return order, fmt.Errorf("failed to create reservation order: %w", err)
	}

	return order, nil
}
