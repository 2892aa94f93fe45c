package dto

import (
	"clinic/internal/domains/customer/model"
	"clinic/shared/calendar"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactRequest identifies a customer by phone on the booking and reassign paths.
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Phone     string `json:"phone"      validate:"required,mobile"`
}

func (r *ContactRequest) ToModel(actor gDto.Actor) model.Customer {
	return model.Customer{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     r.Phone,
		Enabled:   true,
		Metadata:  gModel.NewMetadata(actor.Name, timezone.Now()),
	}
}

type UpdateCustomerRequest struct {
	FirstName string  `json:"first_name"         validate:"required,max=100"`
	LastName  string  `json:"last_name"          validate:"required,max=100"`
	Phone     string  `json:"phone"              validate:"required,mobile"`
	Sex       *string `json:"sex,omitempty"      validate:"omitempty,oneof=male female"`
	Birthday  string  `json:"birthday"           validate:"required,jalali_date"`
	City      string  `json:"city,omitempty"     validate:"omitempty,max=100"`
	Town      string  `json:"town,omitempty"     validate:"omitempty,max=100"`
	Address   string  `json:"address,omitempty"  validate:"omitempty,max=500"`
	ZipCode   string  `json:"zip_code,omitempty" validate:"omitempty,max=20"`
}

// CustomerFields carries the columns written by an update, birthday already converted.
type CustomerFields struct {
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Phone     string     `db:"phone"`
	Sex       *string    `db:"sex"`
	Birthday  *time.Time `db:"birthday"`
	City      string     `db:"city"`
	Town      string     `db:"town"`
	Address   string     `db:"address"`
	ZipCode   string     `db:"zip_code"`
}

func (r *UpdateCustomerRequest) ToFields() (CustomerFields, error) {
	birthday, err := calendar.ToStorage(r.Birthday)
	if err != nil {
		return CustomerFields{}, err //nolint:wrapcheck
	}

	return CustomerFields{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     r.Phone,
		Sex:       r.Sex,
		Birthday:  &birthday,
		City:      r.City,
		Town:      r.Town,
		Address:   r.Address,
		ZipCode:   r.ZipCode,
	}, nil
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Sex       *string `json:"sex,omitempty"`
	Birthday  *string `json:"birthday,omitempty"`
	City      string  `json:"city"`
	Town      string  `json:"town"`
	Address   string  `json:"address"`
	ZipCode   string  `json:"zip_code"`
	Blocked   bool    `json:"blocked"`
	Enabled   bool    `json:"enabled"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(customer model.Customer) {
	r.ID = customer.ID
	r.FirstName = customer.FirstName
	r.LastName = customer.LastName
	r.Phone = customer.Phone
	r.Sex = customer.Sex
	r.Birthday = calendar.ToDisplayPtr(customer.Birthday)
	r.City = customer.City
	r.Town = customer.Town
	r.Address = customer.Address
	r.ZipCode = customer.ZipCode
	r.Blocked = customer.Blocked
	r.Enabled = customer.Enabled
	r.Metadata.FromModel(customer.Metadata)
}

type BlockCustomerResponse struct {
	Blocked bool   `json:"blocked"`
	Message string `json:"message"`
}
