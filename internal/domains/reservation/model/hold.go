package model

import (
	"clinic/shared/model"
	"time"
)

const (
	HoldTableName  = "reservation_holds"
	HoldEntityName = "reservation_hold"

	HoldFieldID            = "id"
	HoldFieldReservationID = "reservation_id"
	HoldFieldOperatorID    = "operator_id"
	HoldFieldStatus        = "status"
	HoldFieldExpiresAt     = "expires_at"
)

const (
	HoldStatusActive   = "active"
	HoldStatusConsumed = "consumed"
)

// Hold records which reservation an operator selected for relocation. It is
// consumed by the relocation and counts as absent once ExpiresAt has passed.
type Hold struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	OperatorID    string    `db:"operator_id"`
	Status        string    `db:"status"`
	ExpiresAt     time.Time `db:"expires_at"`
	model.Metadata
}
