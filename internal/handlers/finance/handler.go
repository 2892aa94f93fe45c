package finance

import (
	"clinic/infras/otel"
	"clinic/internal/domains/finance/model/dto"
	"clinic/internal/domains/finance/service"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/validator"
	"clinic/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Refund
	otel    otel.Otel
}

func New(service service.Refund, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/refunds", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRefund)
		routerGroup.Get("/", handler.GetRefunds)
	})
}

// CreateRefund records a refund request.
// @Summary Create a refund request
// @Description Rejects a second active refund paid from the same card between two days ago and the deposit date.
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body dto.CreateRefundRequest true "Create Refund Request"
// @Success 201 {object} response.Data[string] "ID of the new refund request"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/refunds [post]
// @Security BearerAuth
func (handler *Handler) CreateRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRefund")
	defer scope.End()

	req := dto.CreateRefundRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create refund")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Refund created successfully")

	response.WithJSON(w, http.StatusCreated, id)
}

// GetRefunds lists refund requests, newest first.
// @Summary Get refund requests
// @Tags Finance
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search name, phone and card digits"
// @Param unit query string false "Filter by unit" Enums(qom, tehran)
// @Success 200 {object} response.Data[dto.GetRefundsResponse] "List of refund requests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/refunds [get]
// @Security BearerAuth
func (handler *Handler) GetRefunds(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRefunds")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	req := dto.GetRefundsRequest{
		Search: query.Get(constant.RequestParamSearch),
		Unit:   query.Get(constant.RequestParamUnit),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get refunds")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
