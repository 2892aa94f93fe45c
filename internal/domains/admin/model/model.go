package model

import (
	"clinic/shared/model"
	"time"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID          = "id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldRole        = "role"
	FieldEnabled     = "enabled"
	FieldLastLogin   = "last_login"
)

// Admin is an operator of the call center. OldPassword holds the hash carried
// over from the previous system until the first successful login replaces it.
type Admin struct {
	ID          string     `db:"id"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Username    string     `db:"username"`
	Password    string     `db:"password"`
	OldPassword *string    `db:"old_password"`
	Role        string     `db:"role"`
	Enabled     bool       `db:"enabled"`
	LastLogin   *time.Time `db:"last_login"`
	model.Metadata
}

func (a *Admin) FullName() string {
	return a.FirstName + " " + a.LastName
}
