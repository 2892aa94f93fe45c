package model

import (
	customerModel "clinic/internal/domains/customer/model"
	"clinic/shared/model"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID           = "id"
	FieldCustomerID   = "customer_id"
	FieldOperatorID   = "operator_id"
	FieldOrderID      = "order_id"
	FieldReservedDate = "reserved_date"
	FieldReservedTime = "reserved_time"
	FieldLocationTag  = "location_tag"
	FieldNotes        = "notes"
	FieldVisited      = "visited"
	FieldStatus       = "status"
	FieldCancelReason = "cancel_reason"
)

const (
	StatusActive      = "active"
	StatusCancelled   = "cancelled"
	StatusSoftDeleted = "soft_deleted"
	StatusReplaced    = "replaced"
)

// Reservation is one booked appointment. Rows are never removed, only moved
// out of StatusActive.
type Reservation struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	OperatorID   *string   `db:"operator_id"`
	OrderID      *string   `db:"order_id"`
	ReservedDate time.Time `db:"reserved_date"`
	ReservedTime string    `db:"reserved_time"`
	LocationTag  string    `db:"location_tag"`
	Notes        string    `db:"notes"`
	Visited      bool      `db:"visited"`
	Status       string    `db:"status"`
	CancelReason *string   `db:"cancel_reason"`
	model.Metadata
}

func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// Detail is a reservation joined with the customer it belongs to.
type Detail struct {
	Reservation
	CustomerFirstName *string `column:"first_name" db:"customer_first_name" table:"customers"`
	CustomerLastName  *string `column:"last_name"  db:"customer_last_name"  table:"customers"`
	CustomerPhone     *string `column:"phone"      db:"customer_phone"      table:"customers"`
}

func (Detail) GetJoinQuery() string {
	return "LEFT JOIN " + customerModel.TableName + " ON " + customerModel.TableName + "." + customerModel.FieldID +
		" = " + TableName + "." + FieldCustomerID
}

// SlotCount is the number of active reservations in one (date, time) slot.
type SlotCount struct {
	ReservedDate time.Time `db:"reserved_date"`
	ReservedTime string    `db:"reserved_time"`
	Total        int       `db:"total"`
}

// DayCount is the number of active reservations on one date.
type DayCount struct {
	ReservedDate time.Time `db:"reserved_date"`
	Total        int       `db:"total"`
}
