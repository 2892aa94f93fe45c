package activitylog

import (
	"clinic/infras/otel"
	"clinic/internal/domains/activitylog/model/dto"
	"clinic/internal/domains/activitylog/service"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/validator"
	"clinic/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ActivityLog
	otel    otel.Otel
}

func New(service service.ActivityLog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/activity-logs", handler.GetActivityLogs)
}

// GetActivityLogs pages through the audit trail.
// @Summary Get activity logs
// @Tags ActivityLog
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param action query string false "Filter by action"
// @Param entity_type query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity id"
// @Param actor_id query string false "Filter by actor id"
// @Param from query string false "Created on or after this jalali date (YYYY/MM/DD)"
// @Param to query string false "Created on or before this jalali date (YYYY/MM/DD)"
// @Success 200 {object} response.Data[dto.GetActivityLogsResponse] "Activity logs"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activity-logs [get]
// @Security BearerAuth
func (handler *Handler) GetActivityLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivityLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	req := dto.GetActivityLogsRequest{
		Action:     query.Get("action"),
		EntityType: query.Get("entity_type"),
		EntityID:   query.Get("entity_id"),
		ActorID:    query.Get("actor_id"),
		From:       query.Get("from"),
		To:         query.Get("to"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
