package dto

import (
	"clinic/internal/domains/order/model"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"
	"fmt"

	"github.com/google/uuid"
)

const informationReservation = "new reservation"

// ReservationOrder is the payment taken when a walk-in booking is made.
type ReservationOrder struct {
	CustomerID    string
	PaymentMethod int
	Amount        int64
}

// ToModel splits the amount onto the column of the chosen payment method.
func (r *ReservationOrder) ToModel(actor gDto.Actor) (model.Order, error) {
	order := model.Order{
		ID:          uuid.NewString(),
		CustomerID:  r.CustomerID,
		Type:        model.TypeReservation,
		State:       model.StatePaid,
		Information: informationReservation,
		Metadata:    gModel.NewMetadata(actor.Name, timezone.Now()),
	}

	if actor.ID != "" && actor.Role != "" {
		adminID := actor.ID
		order.AdminID = &adminID
	}

	switch r.PaymentMethod {
	case model.PaymentPOS:
		order.POS = r.Amount
	case model.PaymentCard:
		order.Card = r.Amount
	case model.PaymentCash:
		order.Cash = r.Amount
	default:
		return model.Order{}, fmt.Errorf("unknown payment method %d", r.PaymentMethod)
	}

	return order, nil
}
