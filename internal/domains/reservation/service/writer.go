package service

import (
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	customerModel "clinic/internal/domains/customer/model"
	"clinic/internal/domains/reservation/model"
	"clinic/internal/domains/reservation/model/dto"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) Book(ctx context.Context, req dto.BookRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := dto.ParseSlot(req.Date, req.Time)
	if err != nil {
		return res, err
	}

	actor := gDto.ActorFromContext(ctx)

	var (
		reservation model.Reservation
		logs        []activityModel.ActivityLog
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		customer, err := s.resolveCustomer(ctx, tx, req)
		if err != nil {
			return err
		}

		if err = s.guardDuplicate(ctx, tx, customer.ID, slot.Date); err != nil {
			return err
		}

		if err = s.canAdmit(ctx, tx, slot); err != nil {
			return err
		}

		orderID, err := s.resolveOrder(ctx, tx, req, customer.ID)
		if err != nil {
			return err
		}

		reservation = dto.NewReservation(customer.ID, orderID, slot, req.LocationTag, req.Notes, actor)

		if err = s.insert(ctx, tx, reservation); err != nil {
			return err
		}

		logs, err = s.activity.AppendTx(ctx, tx, entry(reservation.ID, activityModel.ActionCreated, actor, ""))

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.afterCommit(ctx, logs)
	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)

	var (
		reservation model.Reservation
		logs        []activityModel.ActivityLog
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		reservation, err = s.getTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if reservation.Status == model.StatusReplaced || reservation.Status == model.StatusSoftDeleted {
			return ErrNotActive
		}

		var reason *string
		if req.Reason != "" {
			reason = &req.Reason
		}

		fields := stamp(map[string]any{
			model.FieldStatus:       model.StatusCancelled,
			model.FieldCancelReason: reason,
		}, actor)

		if err = s.update(ctx, tx, id, fields); err != nil {
			return err
		}

		reservation.Status = model.StatusCancelled
		reservation.CancelReason = reason
		reservation.ModifiedAt = fields[constant.FieldModifiedAt].(time.Time) //nolint:forcetypeassert
		reservation.ModifiedBy = actor.Name

		message := ""
		if reason != nil {
			message = fmt.Sprintf("reservation %s cancelled by %s: %s", id, actor.Name, *reason)
		}

		logs, err = s.activity.AppendTx(ctx, tx, entry(id, activityModel.ActionCancelled, actor, message))

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.afterCommit(ctx, logs)
	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Hold(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Hold")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)
	if actor.Role == "" {
		return ErrOperatorRequired
	}

	ttl := time.Duration(s.cfg.Reservation.HoldTTLMinutes) * time.Minute

	var logs []activityModel.ActivityLog

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		reservation, err := s.getTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if !reservation.IsActive() {
			return ErrNotActive
		}

		// An operator moves one reservation at a time. The newest selection wins.
		release := stamp(map[string]any{model.HoldFieldStatus: model.HoldStatusConsumed}, actor)
		if err = s.holds.UpdateTx(ctx, tx, release, heldBy(actor.ID)); err != nil {
			log.Error().Err(err).Str("operator_id", actor.ID).Msg("failed to release previous holds")

			return fmt.Errorf("failed to release previous holds: %w", err)
		}

		if err = s.holds.InsertTx(ctx, tx, dto.NewHold(id, actor, ttl)); err != nil {
			log.Error().Err(err).Str("reservation_id", id).Msg("failed to hold reservation")

			return fmt.Errorf("failed to hold reservation: %w", err)
		}

		logs, err = s.activity.AppendTx(ctx, tx, entry(id, activityModel.ActionHeld, actor, ""))

		return err //nolint:wrapcheck
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	s.activity.Publish(ctx, logs...)

	return nil
}

func (s *serviceImpl) Relocate(ctx context.Context, req dto.RelocateRequest) (res dto.RelocateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Relocate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := dto.ParseSlot(req.Date, req.Time)
	if err != nil {
		return res, err
	}

	actor := gDto.ActorFromContext(ctx)

	var (
		created model.Reservation
		logs    []activityModel.ActivityLog
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		hold, err := s.holds.GetTx(ctx, tx, activeHoldOf(actor.ID, timezone.Now()))
		if err != nil {
			log.Error().Err(err).Str("operator_id", actor.ID).Msg("failed to get reservation hold")

			return fmt.Errorf("failed to get reservation hold: %w", err)
		}

		if hold.ID == "" {
			return ErrNoActiveHold
		}

		consume := stamp(map[string]any{model.HoldFieldStatus: model.HoldStatusConsumed}, actor)
		if err = s.holds.UpdateTx(ctx, tx, consume, byHoldID(hold.ID)); err != nil {
			log.Error().Err(err).Str("hold_id", hold.ID).Msg("failed to consume reservation hold")

			return fmt.Errorf("failed to consume reservation hold: %w", err)
		}

		old, err := s.getTx(ctx, tx, hold.ReservationID)
		if err != nil {
			return err
		}

		if !old.IsActive() {
			return ErrNotActive
		}

		// The old record leaves the active set first so that neither the guard
		// nor the slot count sees it.
		if err = s.update(ctx, tx, old.ID, stamp(map[string]any{model.FieldStatus: model.StatusReplaced}, actor)); err != nil {
			return err
		}

		if err = s.guardDuplicate(ctx, tx, old.CustomerID, slot.Date); err != nil {
			return err
		}

		if err = s.canAdmit(ctx, tx, slot); err != nil {
			return err
		}

		created = dto.NewReservation(old.CustomerID, old.OrderID, slot, old.LocationTag, old.Notes, actor)

		if err = s.insert(ctx, tx, created); err != nil {
			return err
		}

		logs, err = s.activity.AppendTx(ctx, tx,
			entry(old.ID, activityModel.ActionReplaced, actor, fmt.Sprintf("reservation %s replaced by %s", old.ID, created.ID)),
			entry(created.ID, activityModel.ActionRelocated, actor, fmt.Sprintf("reservation %s relocated from %s", created.ID, old.ID)),
		)

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.afterCommit(ctx, logs)

	return dto.RelocateResponse{ID: created.ID}, nil
}

func (s *serviceImpl) Reassign(ctx context.Context, id string, req dto.ReassignRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Reassign")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)

	var (
		reservation model.Reservation
		logs        []activityModel.ActivityLog
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) (err error) {
		reservation, err = s.getTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if !reservation.IsActive() {
			return ErrNotActive
		}

		customer, err := s.customers.FindOrCreateTx(ctx, tx, req.ContactRequest)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if customer.Blocked {
			return ErrCustomerBlocked
		}

		if customer.ID == reservation.CustomerID {
			return nil
		}

		if err = s.guardDuplicate(ctx, tx, customer.ID, reservation.ReservedDate); err != nil {
			return err
		}

		fields := stamp(map[string]any{model.FieldCustomerID: customer.ID}, actor)
		if err = s.update(ctx, tx, id, fields); err != nil {
			return err
		}

		message := fmt.Sprintf("reservation %s reassigned from %s to %s by %s", id, reservation.CustomerID, customer.ID, actor.Name)
		reservation.CustomerID = customer.ID
		reservation.ModifiedBy = actor.Name

		logs, err = s.activity.AppendTx(ctx, tx, entry(id, activityModel.ActionReassigned, actor, message))

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if len(logs) > 0 {
		s.afterCommit(ctx, logs)
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) SetVisited(ctx context.Context, id string, req dto.VisitedRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.SetVisited")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)

	exist, err := s.repo.Exist(ctx, visibleByID(id))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to check if reservation exists")

		return fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return ErrReservationNotFound
	}

	visited := req.Visited != nil && *req.Visited

	if err = s.repo.Update(ctx, stamp(map[string]any{model.FieldVisited: visited}, actor), byID(id)); err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to update reservation attendance")

		return fmt.Errorf("failed to update reservation attendance: %w", err)
	}

	message := fmt.Sprintf("reservation %s marked as visited=%t by %s", id, visited, actor.Name)
	if err := s.activity.Append(ctx, entry(id, activityModel.ActionUpdated, actor, message)); err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to record reservation activity")
	}

	return nil
}

func (s *serviceImpl) SoftDelete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.SoftDelete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)

	var logs []activityModel.ActivityLog

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		reservation, err := s.getTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if reservation.Status == model.StatusSoftDeleted {
			return ErrReservationNotFound
		}

		if err = s.update(ctx, tx, id, stamp(map[string]any{model.FieldStatus: model.StatusSoftDeleted}, actor)); err != nil {
			return err
		}

		logs, err = s.activity.AppendTx(ctx, tx, entry(id, activityModel.ActionDeleted, actor, ""))

		return err //nolint:wrapcheck
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	s.afterCommit(ctx, logs)

	return nil
}

// resolveCustomer loads the customer by id, or finds or creates one from the
// caller's contact details.
func (s *serviceImpl) resolveCustomer(ctx context.Context, tx *sqlx.Tx, req dto.BookRequest) (customer customerModel.Customer, err error) {
	if req.IsWalkIn() {
		customer, err = s.customers.FindOrCreateTx(ctx, tx, req.ToContact())
	} else {
		customer, err = s.customers.GetTx(ctx, tx, req.CustomerID)
	}

	if err != nil {
		return customer, err //nolint:wrapcheck
	}

	if customer.Blocked {
		return customer, ErrCustomerBlocked
	}

	return customer, nil
}

// resolveOrder links a given order, or charges the booking fee to a walk-in caller.
func (s *serviceImpl) resolveOrder(ctx context.Context, tx *sqlx.Tx, req dto.BookRequest, customerID string) (*string, error) {
	if req.OrderID != "" {
		return &req.OrderID, nil
	}

	if !req.IsWalkIn() {
		return nil, nil //nolint:nilnil
	}

	order, err := s.orders.CreateForReservationTx(ctx, tx, customerID, req.PaymentMethod)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &order.ID, nil
}

// getTx loads a reservation for update. A missing row is ErrReservationNotFound.
func (s *serviceImpl) getTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Reservation, error) {
	reservation, err := s.repo.GetTx(ctx, tx, byID(id))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return reservation, ErrReservationNotFound
	}

	return reservation, nil
}

func (s *serviceImpl) insert(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) error {
	if err := s.repo.InsertTx(ctx, tx, reservation); err != nil {
		if mapped := constraintError(err); mapped != nil {
			return mapped
		}

		log.Error().Err(err).Str("customer_id", reservation.CustomerID).Msg("failed to insert reservation")

		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return nil
}

func (s *serviceImpl) update(ctx context.Context, tx *sqlx.Tx, id string, fields map[string]any) error {
	if err := s.repo.UpdateTx(ctx, tx, fields, byID(id)); err != nil {
		if mapped := constraintError(err); mapped != nil {
			return mapped
		}

		log.Error().Err(err).Str("reservation_id", id).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	return nil
}

// stamp adds the modification columns to fields.
func stamp(fields map[string]any, actor gDto.Actor) map[string]any {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = actor.Name

	return fields
}

func entry(id, action string, actor gDto.Actor, message string) activityDto.Entry {
	return activityDto.NewEntry(activityModel.EntityReservation, id, action, actor, message)
}
