package reservation

import (
	"clinic/infras/otel"
	"clinic/internal/domains/reservation/model/dto"
	"clinic/internal/domains/reservation/service"
	"clinic/shared"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"clinic/shared/validator"
	"clinic/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errInvalidMode = failure.BadRequestFromString("mode must be a whole number")

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Book)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/relocate", handler.Relocate)
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Get("/days", handler.GetDays)
		routerGroup.Get("/slot-details", handler.GetSlotDetails)
		routerGroup.Get("/today", handler.GetToday)
		routerGroup.Post("/report/export", handler.Export)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
		routerGroup.Post("/{id}/hold", handler.Hold)
		routerGroup.Post("/{id}/reassign", handler.Reassign)
		routerGroup.Patch("/{id}/visited", handler.SetVisited)
	})
}

// Book handles a new reservation.
// @Summary Book a reservation
// @Description Book an existing customer by id, or a caller by name and phone. Callers without an id pay the booking fee.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.BookRequest true "Book Request"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Booked reservation"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "Duplicate booking, slot full, day full or invalid date"
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Book")
	defer scope.End()

	req := dto.BookRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Book(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", req.Date).Str("time", req.Time).Msg("failed to book reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation booked " + res.ID)

	response.WithJSON(w, http.StatusOK, res)
}

// Cancel cancels a reservation. Cancelling twice succeeds.
// @Summary Cancel a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.CancelRequest false "Cancel Request"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Cancelled reservation"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.CancelRequest{}

	if err := validator.ValidateOptional(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Cancel(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Hold selects a reservation for the caller's next relocation.
// @Summary Hold a reservation for relocation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation held"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/hold [post]
// @Security BearerAuth
func (handler *Handler) Hold(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Hold")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Hold(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to hold reservation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Reservation held")
}

// Relocate moves the held reservation to another slot.
// @Summary Relocate the held reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.RelocateRequest true "Relocate Request"
// @Success 200 {object} response.Data[dto.RelocateResponse] "ID of the new reservation"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error "No active hold, slot full, day full or duplicate booking"
// @Failure 500 {object} response.Error
// @Router /v1/reservations/relocate [post]
// @Security BearerAuth
func (handler *Handler) Relocate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Relocate")
	defer scope.End()

	req := dto.RelocateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Relocate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", req.Date).Str("time", req.Time).Msg("failed to relocate reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Reassign moves a reservation to another caller.
// @Summary Reassign a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.ReassignRequest true "Reassign Request"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reassigned reservation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/reassign [post]
// @Security BearerAuth
func (handler *Handler) Reassign(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reassign")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.ReassignRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reassign(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to reassign reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetVisited records whether the customer came.
// @Summary Set attendance
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.VisitedRequest true "Visited Request"
// @Success 200 {object} response.Message "Attendance updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/visited [patch]
// @Security BearerAuth
func (handler *Handler) SetVisited(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetVisited")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.VisitedRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetVisited(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update attendance")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Attendance updated")
}

// DeleteReservation hides a reservation from every listing.
// @Summary Delete a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation deleted"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.SoftDelete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Reservation deleted")
}

// GetReservationByID retrieves a reservation with its customer.
// @Summary Get reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationDetailResponse] "Reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservations is the paginated reservation report.
// @Summary Reservation report
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param mode query string false "upcoming (default) or all"
// @Param search query string false "Search customer name, phone, notes and location"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "Reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	req, err := reportRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Export uploads the reservation report as CSV.
// @Summary Export the reservation report
// @Tags Reservation
// @Produce json
// @Param mode query string false "upcoming (default) or all"
// @Param search query string false "Search customer name, phone, notes and location"
// @Success 200 {object} response.Data[dto.ExportResponse] "Report URL"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/report/export [post]
// @Security BearerAuth
func (handler *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Export")
	defer scope.End()

	req, err := reportRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Export(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSlots summarizes occupied slots in a 7-day window.
// @Summary Slot occupancy
// @Tags Reservation
// @Produce json
// @Param mode query integer false "Window offset in weeks from today"
// @Param state query string false "full or available"
// @Success 200 {object} response.Data[dto.SlotsResponse] "Full and available slots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/slots [get]
// @Security BearerAuth
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	mode, err := modeParam(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.SlotsRequest{Mode: mode, State: r.URL.Query().Get(constant.RequestParamState)}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Slots(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDays counts active reservations per day in a 7-day window.
// @Summary Daily occupancy
// @Tags Reservation
// @Produce json
// @Param mode query integer false "Window offset in weeks from today"
// @Success 200 {object} response.Data[[]dto.DayResponse] "One entry per day"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/days [get]
// @Security BearerAuth
func (handler *Handler) GetDays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDays")
	defer scope.End()

	mode, err := modeParam(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.DaysRequest{Mode: mode}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Days(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation days")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSlotDetails lists the active reservations of one slot.
// @Summary Slot details
// @Tags Reservation
// @Produce json
// @Param date query string true "Jalali date YYYY/MM/DD"
// @Param time query string true "Time HH:MM"
// @Success 200 {object} response.Data[[]dto.ReservationDetailResponse] "Reservations in the slot"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/slot-details [get]
// @Security BearerAuth
func (handler *Handler) GetSlotDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlotDetails")
	defer scope.End()

	req := dto.SlotDetailsRequest{
		Date: r.URL.Query().Get(constant.RequestParamDate),
		Time: r.URL.Query().Get(constant.RequestParamTime),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.SlotDetails(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slot details")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetToday lists today's active reservations.
// @Summary Today's reservations
// @Tags Reservation
// @Produce json
// @Param visited query boolean false "Filter by attendance"
// @Success 200 {object} response.Data[[]dto.ReservationDetailResponse] "Today's reservations"
// @Failure 500 {object} response.Error
// @Router /v1/reservations/today [get]
// @Security BearerAuth
func (handler *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetToday")
	defer scope.End()

	req := dto.TodayRequest{Visited: shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamVisited))}

	res, err := handler.service.Today(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get today's reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func reportRequest(r *http.Request) (dto.GetReservationsRequest, error) {
	req := dto.GetReservationsRequest{
		Mode:   r.URL.Query().Get(constant.RequestParamMode),
		Search: r.URL.Query().Get(constant.RequestParamSearch),
	}

	return req, validator.ValidateStruct(&req) //nolint:wrapcheck
}

func modeParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get(constant.RequestParamMode)
	if raw == "" {
		return 0, nil
	}

	mode, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidMode
	}

	return mode, nil
}
