package salesreport

import (
	"clinic/infras/otel"
	"clinic/internal/domains/salesreport/model/dto"
	"clinic/internal/domains/salesreport/service"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/validator"
	"clinic/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.SalesReport
	otel    otel.Otel
}

func New(service service.SalesReport, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sales-reports", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSalesReport)
		routerGroup.Get("/", handler.GetSalesReports)
	})
}

// CreateSalesReport records a deposit taken by the call center.
// @Summary Create a sales report
// @Tags SalesReport
// @Accept json
// @Produce json
// @Param request body dto.CreateSalesReportRequest true "Create Sales Report Request"
// @Success 201 {object} response.Data[string] "ID of the new sales report"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sales-reports [post]
// @Security BearerAuth
func (handler *Handler) CreateSalesReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSalesReport")
	defer scope.End()

	req := dto.CreateSalesReportRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create sales report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sales report created successfully")

	response.WithJSON(w, http.StatusCreated, id)
}

// GetSalesReports lists sales reports, newest first.
// @Summary Get sales reports
// @Tags SalesReport
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search name, phone and tracking code"
// @Param report_type query string false "Filter by report type" Enums(turns, medicines, phone_visit)
// @Success 200 {object} response.Data[dto.GetSalesReportsResponse] "List of sales reports"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sales-reports [get]
// @Security BearerAuth
func (handler *Handler) GetSalesReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSalesReports")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	req := dto.GetSalesReportsRequest{
		Search:     query.Get(constant.RequestParamSearch),
		ReportType: query.Get(constant.RequestParamReportType),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sales reports")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
