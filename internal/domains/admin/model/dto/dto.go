package dto

import (
	"clinic/internal/domains/admin/model"
	"clinic/shared"
	"clinic/shared/calendar"
	gDto "clinic/shared/dto"
)

type AdminResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	Enabled   bool    `json:"enabled"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *AdminResponse) FromModel(admin model.Admin) {
	r.ID = admin.ID
	r.FirstName = admin.FirstName
	r.LastName = admin.LastName
	r.Username = admin.Username
	r.Role = admin.Role
	r.Enabled = admin.Enabled

	if admin.LastLogin != nil {
		lastLogin := calendar.ToDisplayDateTime(*admin.LastLogin)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(admin.Metadata)
}

type GetAdminsRequest struct {
	Search  string `validate:"omitempty,max=100"`
	Enabled *bool
}

func (r *GetAdminsRequest) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if r.Search != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldUsername, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_username"},
				gDto.Filter{Field: model.FieldFirstName, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_first_name"},
				gDto.Filter{Field: model.FieldLastName, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_last_name"},
			},
		})
	}

	if r.Enabled != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldEnabled, Value: *r.Enabled, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type UpdateAdminRequest struct {
	FirstName string `db:"first_name" json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `db:"last_name"  json:"last_name,omitempty"  validate:"omitempty,max=100"`
	Role      string `db:"role"       json:"role,omitempty"       validate:"omitempty,oneof=admin superadmin"`
	Enabled   *bool  `db:"enabled"    json:"enabled,omitempty"`
}

type GetAdminsResponse struct {
	Admins    []AdminResponse `json:"admins"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAdminsResponse) FromModels(models []model.Admin, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Admins = make([]AdminResponse, len(models))
	for i, mod := range models {
		r.Admins[i].FromModel(mod)
	}
}
