package model

import (
	"clinic/shared/model"
	"time"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldPhone     = "phone"
	FieldSex       = "sex"
	FieldBirthday  = "birthday"
	FieldCity      = "city"
	FieldTown      = "town"
	FieldAddress   = "address"
	FieldZipCode   = "zip_code"
	FieldBlocked   = "blocked"
	FieldEnabled   = "enabled"
)

// Customer is a patient. Phone is unique and is how operators find people on a call.
type Customer struct {
	ID        string     `db:"id"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Phone     string     `db:"phone"`
	Sex       *string    `db:"sex"`
	Birthday  *time.Time `db:"birthday"`
	City      string     `db:"city"`
	Town      string     `db:"town"`
	Address   string     `db:"address"`
	ZipCode   string     `db:"zip_code"`
	Blocked   bool       `db:"blocked"`
	Enabled   bool       `db:"enabled"`
	model.Metadata
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
