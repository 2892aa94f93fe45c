package dto

import (
	"clinic/internal/domains/finance/model"
	"clinic/shared"
	"clinic/shared/calendar"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateRefundRequest struct {
	FullName       string `json:"full_name"        validate:"required,max=255"`
	Phone          string `json:"phone"            validate:"required,mobile"`
	RecordTurn     string `json:"record_turn"      validate:"required,oneof=consultation site face-to-face"`
	Unit           string `json:"unit"             validate:"required,oneof=qom tehran"`
	DepositDate    string `json:"deposit_date"     validate:"required,jalali_date"`
	DepositTime    string `json:"deposit_time"     validate:"required,slot_time"`
	Amount         int64  `json:"amount"           validate:"required,min=1"`
	RefundReason   string `json:"refund_reason"    validate:"required,max=1000"`
	CardNumber     string `json:"card_number"      validate:"required,number,len=16"`
	LastFourDigits string `json:"last_four_digits" validate:"required,number,len=4"`
	TurnType       string `json:"turn_type"        validate:"required,oneof=turn medicine"`
	TurnDate       string `json:"turn_date"        validate:"omitempty,jalali_date"`
	TurnTime       string `json:"turn_time"        validate:"omitempty,slot_time"`
	Bank           string `json:"bank"             validate:"required,max=100"`
}

// MissesTurnSlot reports a turn refund that does not say which appointment it is for.
func (r *CreateRefundRequest) MissesTurnSlot() bool {
	return r.TurnType == model.TurnTypeTurn && (r.TurnDate == "" || r.TurnTime == "")
}

// ToModel converts the Jalali dates to storage form. The appointment is only
// kept for turn refunds.
func (r *CreateRefundRequest) ToModel(user string) (model.Refund, error) {
	depositDate, err := calendar.ToStorage(r.DepositDate)
	if err != nil {
		return model.Refund{}, err
	}

	depositTime, err := calendar.NormalizeTime(r.DepositTime)
	if err != nil {
		return model.Refund{}, err
	}

	refund := model.Refund{
		ID:             uuid.NewString(),
		FullName:       r.FullName,
		Phone:          r.Phone,
		RecordTurn:     r.RecordTurn,
		Unit:           r.Unit,
		DepositDate:    depositDate,
		DepositTime:    depositTime,
		Amount:         r.Amount,
		RefundReason:   r.RefundReason,
		CardNumber:     r.CardNumber,
		LastFourDigits: r.LastFourDigits,
		TurnType:       r.TurnType,
		Bank:           r.Bank,
		Status:         model.StatusActive,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}

	if r.TurnType != model.TurnTypeTurn {
		return refund, nil
	}

	turnDate, err := calendar.ToStorage(r.TurnDate)
	if err != nil {
		return model.Refund{}, err
	}

	turnTime, err := calendar.NormalizeTime(r.TurnTime)
	if err != nil {
		return model.Refund{}, err
	}

	refund.TurnDate, refund.TurnTime = &turnDate, &turnTime

	return refund, nil
}

// DuplicateFilter matches active refunds paid from the same card between from
// and to, inclusive.
func DuplicateFilter(lastFourDigits string, from, to time.Time) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: model.FieldLastFourDigits, Value: lastFourDigits, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldDepositDate, Value: []time.Time{from, to}, Operator: gDto.FilterOperatorBetween, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: model.StatusActive, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)
}

type GetRefundsRequest struct {
	Search string `validate:"omitempty,max=100"`
	Unit   string `validate:"omitempty,oneof=qom tehran"`
}

func (r *GetRefundsRequest) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if r.Unit != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldUnit, Value: r.Unit, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if r.Search != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldFullName, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_full_name"},
				gDto.Filter{Field: model.FieldPhone, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_phone"},
				gDto.Filter{Field: model.FieldLastFourDigits, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_last_four_digits"},
			},
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type RefundResponse struct {
	ID                string  `json:"id"`
	FullName          string  `json:"full_name"`
	Phone             string  `json:"phone"`
	RecordTurn        string  `json:"record_turn"`
	Unit              string  `json:"unit"`
	DepositDate       string  `json:"deposit_date"`
	DepositTime       string  `json:"deposit_time"`
	Amount            int64   `json:"amount"`
	RefundReason      string  `json:"refund_reason"`
	CardNumber        string  `json:"card_number"`
	LastFourDigits    string  `json:"last_four_digits"`
	TurnType          string  `json:"turn_type"`
	TurnDate          *string `json:"turn_date"`
	TurnTime          *string `json:"turn_time"`
	Bank              string  `json:"bank"`
	FinancialApproval bool    `json:"financial_approval"`
	RefundApproved    bool    `json:"refund_approved"`
	Status            string  `json:"status"`
	gDto.Metadata
}

func (r *RefundResponse) FromModel(refund model.Refund) {
	r.ID = refund.ID
	r.FullName = refund.FullName
	r.Phone = refund.Phone
	r.RecordTurn = refund.RecordTurn
	r.Unit = refund.Unit
	r.DepositDate = calendar.ToDisplay(refund.DepositDate)
	r.DepositTime = calendar.DisplayTime(refund.DepositTime)
	r.Amount = refund.Amount
	r.RefundReason = refund.RefundReason
	r.CardNumber = refund.CardNumber
	r.LastFourDigits = refund.LastFourDigits
	r.TurnType = refund.TurnType
	r.TurnDate = calendar.ToDisplayPtr(refund.TurnDate)
	r.Bank = refund.Bank
	r.FinancialApproval = refund.FinancialApproval
	r.RefundApproved = refund.RefundApproved
	r.Status = refund.Status
	r.Metadata.FromModel(refund.Metadata)

	if refund.TurnTime != nil {
		turnTime := calendar.DisplayTime(*refund.TurnTime)
		r.TurnTime = &turnTime
	}
}

type GetRefundsResponse struct {
	Refunds   []RefundResponse `json:"refunds"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRefundsResponse) FromModels(models []model.Refund, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Refunds = make([]RefundResponse, len(models))
	for i, mod := range models {
		r.Refunds[i].FromModel(mod)
	}
}
