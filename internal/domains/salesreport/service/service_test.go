package service_test

import (
	otelMocks "clinic/infras/otel/mocks"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityMocks "clinic/internal/domains/activitylog/service/mocks"
	salesMocks "clinic/internal/domains/salesreport/mocks"
	"clinic/internal/domains/salesreport/model"
	"clinic/internal/domains/salesreport/model/dto"
	"clinic/internal/domains/salesreport/service"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*salesMocks.MockSalesReport, *activityMocks.MockActivityLog, service.SalesReport) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := salesMocks.NewMockSalesReport(ctrl)
	activity := activityMocks.NewMockActivityLog(ctrl)

	return repo, activity, service.New(repo, activity, otelMocks.NewOtel())
}

func reportRequest() dto.CreateSalesReportRequest {
	return dto.CreateSalesReportRequest{
		FullName:        "Reza Karimi",
		Phone:           "09351234567",
		AppointmentDate: "1404/02/10",
		Amount:          500000,
		DepositDate:     "1404/02/03",
		DepositTime:     "18:05",
		Tracking:        "TRK-99812",
		LastFourDigits:  "1122",
		ReportType:      "phone_visit",
		Bank:            "Saderat",
	}
}

func TestSalesReportService_Create(t *testing.T) {
	impossible := reportRequest()
	impossible.AppointmentDate = "1404/07/31"

	tests := []struct {
		name      string
		req       dto.CreateSalesReportRequest
		insertErr error
		wantStore bool
		wantCode  int
	}{
		{name: "created", req: reportRequest(), wantStore: true},
		{name: "impossible appointment date", req: impossible, wantCode: http.StatusUnprocessableEntity},
		{name: "insert failure", req: reportRequest(), wantStore: true, insertErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, activity, svc := newService(t)

			if tt.wantStore {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, report model.SalesReport) error {
						assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), report.AppointmentDate)
						assert.Equal(t, time.Date(2025, time.April, 23, 0, 0, 0, 0, time.UTC), report.DepositDate)
						assert.Equal(t, "18:05:00", report.DepositTime)
						assert.False(t, report.FinancialApproval)
						assert.Nil(t, report.FinancialApprovalDate)
						assert.Equal(t, model.StatusActive, report.Status)

						return tt.insertErr
					})
			}

			if tt.wantStore && tt.insertErr == nil {
				activity.EXPECT().Append(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entries ...activityDto.Entry) error {
						require.Len(t, entries, 1)
						assert.Equal(t, activityModel.EntitySalesReport, entries[0].EntityType)

						return nil
					})
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "callcenter")

			id, err := svc.Create(ctx, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, id)
		})
	}
}

func TestSalesReportService_GetAll(t *testing.T) {
	repo, _, svc := newService(t)

	approvedAt := time.Date(2025, time.April, 24, 6, 30, 0, 0, time.UTC)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.SalesReport, error) {
			assert.Equal(t, "sales_reports.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(sales_reports.report_type = :report_type)", where)

			return []model.SalesReport{{
				ID:                    "sr-1",
				AppointmentDate:       time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
				DepositDate:           time.Date(2025, time.April, 23, 0, 0, 0, 0, time.UTC),
				DepositTime:           "18:05:00",
				FinancialApproval:     true,
				FinancialApprovalDate: &approvedAt,
			}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.GetSalesReportsRequest{ReportType: "turns"})

	require.NoError(t, err)
	require.Len(t, res.SalesReports, 1)
	assert.Equal(t, "1404/02/10", res.SalesReports[0].AppointmentDate)
	assert.Equal(t, "1404/02/03", res.SalesReports[0].DepositDate)
	assert.Equal(t, "18:05", res.SalesReports[0].DepositTime)
	assert.NotNil(t, res.SalesReports[0].FinancialApprovalDate)
}

func TestSalesReportService_GetAllFailure(t *testing.T) {
	repo, _, svc := newService(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.GetSalesReportsRequest{})

	assert.Error(t, err)
}
