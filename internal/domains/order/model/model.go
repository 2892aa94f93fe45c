package model

import "clinic/shared/model"

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID         = "id"
	FieldCustomerID = "customer_id"
	FieldAdminID    = "admin_id"
	FieldType       = "order_type"
	FieldState      = "state"
	FieldPOS        = "pos"
	FieldCard       = "card"
	FieldCash       = "cash"
)

const (
	TypeReservation = "reservation"

	StatePaid = "paid"
)

// Payment methods accepted when booking.
const (
	PaymentPOS  = 1
	PaymentCard = 2
	PaymentCash = 3
)

type Order struct {
	ID          string  `db:"id"`
	CustomerID  string  `db:"customer_id"`
	AdminID     *string `db:"admin_id"`
	Type        string  `db:"order_type"`
	State       string  `db:"state"`
	POS         int64   `db:"pos"`
	Card        int64   `db:"card"`
	Cash        int64   `db:"cash"`
	Information string  `db:"information"`
	model.Metadata
}

// Total is what the customer paid across all methods.
func (o *Order) Total() int64 {
	return o.POS + o.Card + o.Cash
}
