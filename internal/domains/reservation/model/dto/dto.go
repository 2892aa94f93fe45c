package dto

import (
	customerDto "clinic/internal/domains/customer/model/dto"
	"clinic/internal/domains/reservation/model"
	"clinic/shared"
	"clinic/shared/calendar"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	ModeUpcoming = "upcoming"
	ModeAll      = "all"

	StateFull      = "full"
	StateAvailable = "available"
)

// BookRequest books either an existing customer by id or a caller identified
// by name and phone. Callers without an id also pay the booking fee.
type BookRequest struct {
	CustomerID    string `json:"customer_id"    validate:"omitempty,uuid"`
	OrderID       string `json:"order_id"       validate:"omitempty,uuid"`
	FirstName     string `json:"first_name"     validate:"required_without=CustomerID,omitempty,max=100"`
	LastName      string `json:"last_name"      validate:"required_without=CustomerID,omitempty,max=100"`
	Phone         string `json:"phone"          validate:"required_without=CustomerID,omitempty,mobile"`
	Date          string `json:"date"           validate:"required,jalali_date"`
	Time          string `json:"time"           validate:"required,slot_time"`
	LocationTag   string `json:"location_tag"   validate:"required,max=50"`
	PaymentMethod int    `json:"payment_method" validate:"required_without=CustomerID,omitempty,oneof=1 2 3"`
	Notes         string `json:"notes"          validate:"omitempty,max=1000"`
}

func (r *BookRequest) IsWalkIn() bool {
	return r.CustomerID == ""
}

func (r *BookRequest) ToContact() customerDto.ContactRequest {
	return customerDto.ContactRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

// Slot is a normalized (date, time) pair in storage form.
type Slot struct {
	Date time.Time
	Time string
}

// ParseSlot converts a Jalali date and an HH:MM time into storage form.
func ParseSlot(date, clock string) (Slot, error) {
	storageDate, err := calendar.ToStorage(date)
	if err != nil {
		return Slot{}, err
	}

	storageTime, err := calendar.NormalizeTime(clock)
	if err != nil {
		return Slot{}, err
	}

	return Slot{Date: storageDate, Time: storageTime}, nil
}

// NewReservation builds an active reservation for slot owned by actor.
func NewReservation(customerID string, orderID *string, slot Slot, locationTag, notes string, actor gDto.Actor) model.Reservation {
	var operatorID *string
	if actor.ID != "" && actor.Role != "" {
		operatorID = &actor.ID
	}

	return model.Reservation{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		OperatorID:   operatorID,
		OrderID:      orderID,
		ReservedDate: slot.Date,
		ReservedTime: slot.Time,
		LocationTag:  locationTag,
		Notes:        notes,
		Status:       model.StatusActive,
		Metadata:     gModel.NewMetadata(actor.Name, timezone.Now()),
	}
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type RelocateRequest struct {
	Date string `json:"date" validate:"required,jalali_date"`
	Time string `json:"time" validate:"required,slot_time"`
}

type VisitedRequest struct {
	Visited *bool `json:"visited" validate:"required"`
}

type ReassignRequest struct {
	customerDto.ContactRequest
}

type GetReservationsRequest struct {
	Mode   string `validate:"omitempty,oneof=upcoming all"`
	Search string `validate:"omitempty,max=100"`
}

// ToFilter narrows the report. Upcoming, the default, lists active reservations
// from today on. All lists everything that was not soft deleted.
func (r *GetReservationsRequest) ToFilter(today time.Time) gDto.FilterGroup {
	filters := []any{}

	if r.Mode == ModeAll {
		filters = append(filters,
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusSoftDeleted, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		)
	} else {
		filters = append(filters,
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusActive, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldReservedDate, Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		)
	}

	if r.Search != "" {
		search := []any{
			gDto.Filter{Field: model.FieldNotes, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_notes"},
			gDto.Filter{Field: model.FieldLocationTag, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_location"},
			gDto.Filter{Field: "first_name", Value: r.Search, Operator: gDto.FilterOperatorLike, Table: "customers", ArgName: "search_first_name"},
			gDto.Filter{Field: "last_name", Value: r.Search, Operator: gDto.FilterOperatorLike, Table: "customers", ArgName: "search_last_name"},
			gDto.Filter{Field: "phone", Value: r.Search, Operator: gDto.FilterOperatorLike, Table: "customers", ArgName: "search_phone"},
		}

		filters = append(filters, gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr, Filters: search})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type SlotsRequest struct {
	Mode  int    `validate:"gte=0,lte=52"`
	State string `validate:"omitempty,oneof=full available"`
}

type DaysRequest struct {
	Mode int `validate:"gte=0,lte=52"`
}

type SlotDetailsRequest struct {
	Date string `validate:"required,jalali_date"`
	Time string `validate:"required,slot_time"`
}

type TodayRequest struct {
	Visited *bool
}

type ReservationResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customer_id"`
	OperatorID   *string `json:"operator_id"`
	OrderID      *string `json:"order_id"`
	Date         string  `json:"date"`
	DayName      string  `json:"day_name"`
	Time         string  `json:"time"`
	LocationTag  string  `json:"location_tag"`
	Notes        string  `json:"notes"`
	Visited      bool    `json:"visited"`
	Status       string  `json:"status"`
	CancelReason *string `json:"cancel_reason"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(reservation model.Reservation) {
	r.ID = reservation.ID
	r.CustomerID = reservation.CustomerID
	r.OperatorID = reservation.OperatorID
	r.OrderID = reservation.OrderID
	r.Date = calendar.ToDisplay(reservation.ReservedDate)
	r.DayName = calendar.DayName(reservation.ReservedDate)
	r.Time = calendar.DisplayTime(reservation.ReservedTime)
	r.LocationTag = reservation.LocationTag
	r.Notes = reservation.Notes
	r.Visited = reservation.Visited
	r.Status = reservation.Status
	r.CancelReason = reservation.CancelReason
	r.Metadata.FromModel(reservation.Metadata)
}

type CustomerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type ReservationDetailResponse struct {
	ReservationResponse
	Customer CustomerSummary `json:"customer"`
}

func (r *ReservationDetailResponse) FromModel(detail model.Detail) {
	r.ReservationResponse.FromModel(detail.Reservation)
	r.Customer = CustomerSummary{
		ID:        detail.CustomerID,
		FirstName: deref(detail.CustomerFirstName),
		LastName:  deref(detail.CustomerLastName),
		Phone:     deref(detail.CustomerPhone),
	}
}

type GetReservationsResponse struct {
	Reservations []ReservationDetailResponse `json:"reservations"`
	TotalPage    int                         `json:"total_page"`
	TotalData    int                         `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = FromDetails(models)
}

func FromDetails(models []model.Detail) []ReservationDetailResponse {
	res := make([]ReservationDetailResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type SlotResponse struct {
	Date    string `json:"date"`
	DayName string `json:"day_name"`
	Time    string `json:"time"`
	Count   int    `json:"count"`
}

func (r *SlotResponse) FromModel(count model.SlotCount) {
	r.Date = calendar.ToDisplay(count.ReservedDate)
	r.DayName = calendar.DayName(count.ReservedDate)
	r.Time = calendar.DisplayTime(count.ReservedTime)
	r.Count = count.Total
}

// SlotsResponse partitions occupied slots. Empty slots appear in neither list.
type SlotsResponse struct {
	From      string         `json:"from"`
	To        string         `json:"to"`
	Full      []SlotResponse `json:"full"`
	Available []SlotResponse `json:"available"`
}

type DayResponse struct {
	DayName string `json:"day_name"`
	Date    string `json:"date"`
	Count   int    `json:"count"`
}

type RelocateResponse struct {
	ID string `json:"id"`
}

type ExportResponse struct {
	URL   string `json:"url"`
	Total int    `json:"total"`
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

// NewHold grants actor the right to relocate reservationID until ttl passes.
func NewHold(reservationID string, actor gDto.Actor, ttl time.Duration) model.Hold {
	at := timezone.Now()

	return model.Hold{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		OperatorID:    actor.ID,
		Status:        model.HoldStatusActive,
		ExpiresAt:     at.Add(ttl),
		Metadata:      gModel.NewMetadata(actor.Name, at),
	}
}
