package service

import (
	"clinic/shared/constant"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// hasActiveForDate reports whether customerID already has an active reservation on date.
func (s *serviceImpl) hasActiveForDate(ctx context.Context, tx *sqlx.Tx, customerID string, date time.Time) (bool, error) {
	exist, err := s.repo.ExistTx(ctx, tx, active(ofCustomer(customerID), onDate(date)))
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("failed to check active reservation")

		return false, fmt.Errorf("failed to check active reservation: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) guardDuplicate(ctx context.Context, tx *sqlx.Tx, customerID string, date time.Time) error {
	exist, err := s.hasActiveForDate(ctx, tx, customerID, date)
	if err != nil {
		return err
	}

	if exist {
		return ErrDuplicateBooking
	}

	return nil
}

// constraintError maps violations of the reservation table constraints to the
// business error the guard would have produced.
func constraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case constant.PqErrorCodeUniqueViolation:
		return ErrDuplicateBooking
	case constant.PqErrorCodeFkViolation:
		return ErrUnknownOrder
	default:
		return nil
	}
}
