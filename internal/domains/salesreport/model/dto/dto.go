package dto

import (
	"clinic/internal/domains/salesreport/model"
	"clinic/shared"
	"clinic/shared/calendar"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"

	"github.com/google/uuid"
)

type CreateSalesReportRequest struct {
	FullName        string `json:"full_name"        validate:"required,max=255"`
	Phone           string `json:"phone"            validate:"required,mobile"`
	AppointmentDate string `json:"appointment_date" validate:"required,jalali_date"`
	Amount          int64  `json:"amount"           validate:"required,min=1"`
	DepositDate     string `json:"deposit_date"     validate:"required,jalali_date"`
	DepositTime     string `json:"deposit_time"     validate:"required,slot_time"`
	Tracking        string `json:"tracking"         validate:"required,max=255"`
	LastFourDigits  string `json:"last_four_digits" validate:"required,number,len=4"`
	ReportType      string `json:"report_type"      validate:"required,oneof=turns medicines phone_visit"`
	Bank            string `json:"bank"             validate:"required,max=100"`
}

// ToModel converts the Jalali dates to storage form. Reports start unapproved.
func (r *CreateSalesReportRequest) ToModel(user string) (model.SalesReport, error) {
	appointmentDate, err := calendar.ToStorage(r.AppointmentDate)
	if err != nil {
		return model.SalesReport{}, err
	}

	depositDate, err := calendar.ToStorage(r.DepositDate)
	if err != nil {
		return model.SalesReport{}, err
	}

	depositTime, err := calendar.NormalizeTime(r.DepositTime)
	if err != nil {
		return model.SalesReport{}, err
	}

	return model.SalesReport{
		ID:              uuid.NewString(),
		FullName:        r.FullName,
		Phone:           r.Phone,
		AppointmentDate: appointmentDate,
		Amount:          r.Amount,
		DepositDate:     depositDate,
		DepositTime:     depositTime,
		Tracking:        r.Tracking,
		LastFourDigits:  r.LastFourDigits,
		ReportType:      r.ReportType,
		Bank:            r.Bank,
		Status:          model.StatusActive,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type GetSalesReportsRequest struct {
	Search     string `validate:"omitempty,max=100"`
	ReportType string `validate:"omitempty,oneof=turns medicines phone_visit"`
}

func (r *GetSalesReportsRequest) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if r.ReportType != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldReportType, Value: r.ReportType, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if r.Search != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldFullName, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_full_name"},
				gDto.Filter{Field: model.FieldPhone, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_phone"},
				gDto.Filter{Field: model.FieldTracking, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_tracking"},
			},
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type SalesReportResponse struct {
	ID                    string  `json:"id"`
	FullName              string  `json:"full_name"`
	Phone                 string  `json:"phone"`
	AppointmentDate       string  `json:"appointment_date"`
	Amount                int64   `json:"amount"`
	DepositDate           string  `json:"deposit_date"`
	DepositTime           string  `json:"deposit_time"`
	Tracking              string  `json:"tracking"`
	LastFourDigits        string  `json:"last_four_digits"`
	ReportType            string  `json:"report_type"`
	Bank                  string  `json:"bank"`
	FinancialApproval     bool    `json:"financial_approval"`
	FinancialApprovalDate *string `json:"financial_approval_date"`
	Status                string  `json:"status"`
	gDto.Metadata
}

func (r *SalesReportResponse) FromModel(report model.SalesReport) {
	r.ID = report.ID
	r.FullName = report.FullName
	r.Phone = report.Phone
	r.AppointmentDate = calendar.ToDisplay(report.AppointmentDate)
	r.Amount = report.Amount
	r.DepositDate = calendar.ToDisplay(report.DepositDate)
	r.DepositTime = calendar.DisplayTime(report.DepositTime)
	r.Tracking = report.Tracking
	r.LastFourDigits = report.LastFourDigits
	r.ReportType = report.ReportType
	r.Bank = report.Bank
	r.FinancialApproval = report.FinancialApproval
	r.Status = report.Status
	r.Metadata.FromModel(report.Metadata)

	if report.FinancialApprovalDate != nil {
		approved := calendar.ToDisplayDateTime(*report.FinancialApprovalDate)
		r.FinancialApprovalDate = &approved
	}
}

type GetSalesReportsResponse struct {
	SalesReports []SalesReportResponse `json:"sales_reports"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetSalesReportsResponse) FromModels(models []model.SalesReport, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.SalesReports = make([]SalesReportResponse, len(models))
	for i, mod := range models {
		r.SalesReports[i].FromModel(mod)
	}
}
