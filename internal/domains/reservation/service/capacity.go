package service

import (
	"clinic/internal/domains/reservation/model/dto"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// canAdmit rejects a booking into a slot that already holds SlotCapacity
// active reservations, then one into a day that holds DailyCapacity. It only
// reads, and must share tx with the insert it gates.
func (s *serviceImpl) canAdmit(ctx context.Context, tx *sqlx.Tx, slot dto.Slot) error {
	inSlot, err := s.repo.CountTx(ctx, tx, active(onDate(slot.Date), atTime(slot.Time)))
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations in slot")

		return fmt.Errorf("failed to count reservations in slot: %w", err)
	}

	if inSlot >= s.cfg.Reservation.SlotCapacity {
		return ErrSlotFull
	}

	onDay, err := s.repo.CountTx(ctx, tx, active(onDate(slot.Date)))
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations on day")

		return fmt.Errorf("failed to count reservations on day: %w", err)
	}

	if onDay >= s.cfg.Reservation.DailyCapacity {
		return ErrDayFull
	}

	return nil
}
