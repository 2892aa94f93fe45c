package model

import (
	"clinic/shared/model"
	"time"
)

const (
	TableName  = "sales_reports"
	EntityName = "sales_report"

	FieldID              = "id"
	FieldFullName        = "full_name"
	FieldPhone           = "phone"
	FieldAppointmentDate = "appointment_date"
	FieldDepositDate     = "deposit_date"
	FieldAmount          = "amount"
	FieldTracking        = "tracking"
	FieldReportType      = "report_type"
)

const StatusActive = "active"

// SalesReport is a deposit the call center took for a turn, medicine or phone
// visit, waiting for the finance team to approve it.
type SalesReport struct {
	ID                    string     `db:"id"`
	FullName              string     `db:"full_name"`
	Phone                 string     `db:"phone"`
	AppointmentDate       time.Time  `db:"appointment_date"`
	Amount                int64      `db:"amount"`
	DepositDate           time.Time  `db:"deposit_date"`
	DepositTime           string     `db:"deposit_time"`
	Tracking              string     `db:"tracking"`
	LastFourDigits        string     `db:"last_four_digits"`
	ReportType            string     `db:"report_type"`
	Bank                  string     `db:"bank"`
	FinancialApproval     bool       `db:"financial_approval"`
	FinancialApprovalDate *time.Time `db:"financial_approval_date"`
	Status                string     `db:"status"`
	model.Metadata
}
