package model

import (
	"clinic/shared/model"
	"time"
)

const (
	TableName  = "refunds"
	EntityName = "refund"

	FieldID                = "id"
	FieldFullName          = "full_name"
	FieldPhone             = "phone"
	FieldUnit              = "unit"
	FieldDepositDate       = "deposit_date"
	FieldAmount            = "amount"
	FieldLastFourDigits    = "last_four_digits"
	FieldFinancialApproval = "financial_approval"
	FieldStatus            = "status"
)

const (
	StatusActive = "active"

	TurnTypeTurn     = "turn"
	TurnTypeMedicine = "medicine"
)

// Refund is a patient's request to get a deposit back. A turn refund also
// names the appointment the deposit was paid for.
type Refund struct {
	ID                string     `db:"id"`
	FullName          string     `db:"full_name"`
	Phone             string     `db:"phone"`
	RecordTurn        string     `db:"record_turn"`
	Unit              string     `db:"unit"`
	DepositDate       time.Time  `db:"deposit_date"`
	DepositTime       string     `db:"deposit_time"`
	Amount            int64      `db:"amount"`
	RefundReason      string     `db:"refund_reason"`
	CardNumber        string     `db:"card_number"`
	LastFourDigits    string     `db:"last_four_digits"`
	TurnType          string     `db:"turn_type"`
	TurnDate          *time.Time `db:"turn_date"`
	TurnTime          *string    `db:"turn_time"`
	Bank              string     `db:"bank"`
	FinancialApproval bool       `db:"financial_approval"`
	RefundApproved    bool       `db:"refund_approved"`
	Status            string     `db:"status"`
	model.Metadata
}
