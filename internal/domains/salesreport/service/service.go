package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/infras/otel"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityService "clinic/internal/domains/activitylog/service"
	"clinic/internal/domains/salesreport/model"
	"clinic/internal/domains/salesreport/model/dto"
	"clinic/internal/domains/salesreport/repository"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

var sortableFields = []string{constant.FieldCreatedAt, model.FieldDepositDate, model.FieldAppointmentDate, model.FieldAmount}

type SalesReport interface {
	Create(ctx context.Context, req dto.CreateSalesReportRequest) (string, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetSalesReportsRequest) (dto.GetSalesReportsResponse, error)
}

type serviceImpl struct {
	repo     repository.SalesReport
	activity activityService.ActivityLog
	otel     otel.Otel
}

func New(repo repository.SalesReport, activity activityService.ActivityLog, otel otel.Otel) SalesReport {
	return &serviceImpl{
		repo:     repo,
		activity: activity,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSalesReportRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".salesreport.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := gDto.ActorFromContext(ctx)

	report, err := req.ToModel(actor.Name)
	if err != nil {
		return "", err
	}

	if err = s.repo.Insert(ctx, report); err != nil {
		log.Error().Err(err).Msg("failed to create sales report")

		return "", fmt.Errorf("failed to create sales report: %w", err)
	}

	entry := activityDto.NewEntry(activityModel.EntitySalesReport, report.ID, activityModel.ActionCreated, actor, "")
	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error().Err(err).Str("sales_report_id", report.ID).Msg("failed to record sales report activity")
	}

	return report.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetSalesReportsRequest) (res dto.GetSalesReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".salesreport.GetAll")
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
		log.Error().Err(err).Msg("failed to count sales reports")

		return res, fmt.Errorf("failed to count sales reports: %w", err)
	}

	reports, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sales reports")

		return res, fmt.Errorf("failed to get sales reports: %w", err)
	}

	res.FromModels(reports, total, params.Limit)

	return res, nil
}
