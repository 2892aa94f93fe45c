package model

import "time"

const (
	TableName  = "activity_logs"
	EntityName = "activity_log"

	FieldID         = "id"
	FieldAction     = "action"
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldActorID    = "actor_id"
	FieldActorName  = "actor_name"
	FieldMessage    = "message"
	FieldCreatedAt  = "created_at"
)

const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionCancelled  = "cancelled"
	ActionHeld       = "held"
	ActionRelocated  = "relocated"
	ActionReplaced   = "replaced"
	ActionReassigned = "reassigned"
	ActionBlocked    = "blocked"
	ActionLogin      = "login"
	ActionLogout     = "logout"
)

const (
	EntityReservation     = "reservation"
	EntityCustomer        = "customer"
	EntityProduct         = "product"
	EntityAdmin           = "admin"
	EntityRefund          = "refund"
	EntitySalesReport     = "sales_report"
	EntityDisease         = "disease"
	EntityDiseaseCategory = "disease_category"
)

// ActivityLog rows are only ever inserted.
type ActivityLog struct {
	ID         string    `db:"id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	ActorID    string    `db:"actor_id"`
	ActorName  string    `db:"actor_name"`
	Message    string    `db:"message"`
	CreatedAt  time.Time `db:"created_at"`
}
