package service

import (
	"clinic/internal/domains/reservation/model"
	"clinic/internal/domains/reservation/model/dto"
	"clinic/shared"
	"clinic/shared/calendar"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldReservedDate, model.FieldReservedTime, model.FieldLocationTag, constant.FieldCreatedAt}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, visibleByID(id))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if detail.ID == "" {
		return res, ErrReservationNotFound
	}

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetReservationsRequest) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params = reportOrder(params)
	filter := req.ToFilter(calendar.Today())

	total, err := s.repo.CountDetails(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	details, err := s.repo.GetAllDetails(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(details, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Slots(ctx context.Context, req dto.SlotsRequest) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Slots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to := s.window(req.Mode)
	cacheKey := shared.BuildCacheKey(cacheGetSlots, from.Format(constant.StorageDateFormat), req.State)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation slots")

		return res, nil
	}

	counts, err := s.repo.SlotCounts(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservation slots")

		return res, fmt.Errorf("failed to count reservation slots: %w", err)
	}

	res = dto.SlotsResponse{
		From:      calendar.ToDisplay(from),
		To:        calendar.ToDisplay(to),
		Full:      []dto.SlotResponse{},
		Available: []dto.SlotResponse{},
	}

	for _, count := range counts {
		var slot dto.SlotResponse
		slot.FromModel(count)

		switch {
		case count.Total >= s.cfg.Reservation.SlotCapacity:
			if req.State != dto.StateAvailable {
				res.Full = append(res.Full, slot)
			}
		case count.Total > 0:
			if req.State != dto.StateFull {
				res.Available = append(res.Available, slot)
			}
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Days(ctx context.Context, req dto.DaysRequest) (res []dto.DayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Days")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to := s.window(req.Mode)
	cacheKey := shared.BuildCacheKey(cacheGetDays, from.Format(constant.StorageDateFormat))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation days")

		return res, nil
	}

	counts, err := s.repo.DayCounts(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservation days")

		return nil, fmt.Errorf("failed to count reservation days: %w", err)
	}

	totals := make(map[string]int, len(counts))
	for _, count := range counts {
		totals[count.ReservedDate.Format(constant.StorageDateFormat)] = count.Total
	}

	res = make([]dto.DayResponse, 0, s.windowDays())
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		res = append(res, dto.DayResponse{
			DayName: calendar.DayName(day),
			Date:    calendar.ToDisplay(day),
			Count:   totals[day.Format(constant.StorageDateFormat)],
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation days to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SlotDetails(ctx context.Context, req dto.SlotDetailsRequest) (res []dto.ReservationDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.SlotDetails")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := dto.ParseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	details, err := s.repo.GetAllDetails(ctx, params, active(onDate(slot.Date), atTime(slot.Time)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations in slot")

		return nil, fmt.Errorf("failed to get reservations in slot: %w", err)
	}

	return dto.FromDetails(details), nil
}

func (s *serviceImpl) Today(ctx context.Context, req dto.TodayRequest) (res []dto.ReservationDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Today")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filters := []any{onDate(calendar.Today())}
	if req.Visited != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldVisited, Value: *req.Visited, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldReservedTime, SortDir: gDto.SortDirAsc}

	details, err := s.repo.GetAllDetails(ctx, params, active(filters...))
	if err != nil {
		log.Error().Err(err).Msg("failed to get today's reservations")

		return nil, fmt.Errorf("failed to get today's reservations: %w", err)
	}

	return dto.FromDetails(details), nil
}

// window returns the first and last day of the mode-th window after today.
func (s *serviceImpl) window(mode int) (from, to time.Time) {
	days := s.windowDays()

	from = calendar.Today().AddDate(0, 0, days*mode)
	to = from.AddDate(0, 0, days-1)

	return from, to
}

func (s *serviceImpl) windowDays() int {
	if s.cfg.Reservation.WindowDays > 0 {
		return s.cfg.Reservation.WindowDays
	}

	return 7
}

// reportOrder keeps the report sorted by a known column, date first by default.
func reportOrder(params gDto.QueryParams) gDto.QueryParams {
	if !slices.Contains(sortableFields, params.SortBy) {
		params.SortBy = model.FieldReservedDate
		params.SortDir = gDto.SortDirAsc
	}

	params.SortBy = model.TableName + "." + params.SortBy
	if params.SortDir == "" {
		params.SortDir = gDto.SortDirAsc
	}

	return params
}
