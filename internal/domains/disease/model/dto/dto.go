package dto

import (
	"clinic/internal/domains/disease/model"
	"clinic/shared"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"

	"github.com/google/uuid"
)

type CategoryRequest struct {
	Title string `db:"title" json:"title" validate:"required,max=256"`
}

func (r *CategoryRequest) ToModel(user string) model.Category {
	return model.Category{
		ID:       uuid.NewString(),
		Title:    r.Title,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(category model.Category) {
	r.ID = category.ID
	r.Title = category.Title
	r.Metadata.FromModel(category.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}

type CreateDiseaseRequest struct {
	Title      string `json:"title"       validate:"required,max=255"`
	EnTitle    string `json:"en_title"    validate:"omitempty,max=255"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

func (r *CreateDiseaseRequest) ToModel(user string) model.Disease {
	return model.Disease{
		ID:         uuid.NewString(),
		Title:      r.Title,
		EnTitle:    r.EnTitle,
		CategoryID: r.CategoryID,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateDiseaseRequest struct {
	Title      string `db:"title"       json:"title,omitempty"       validate:"omitempty,max=255"`
	EnTitle    string `db:"en_title"    json:"en_title,omitempty"    validate:"omitempty,max=255"`
	CategoryID string `db:"category_id" json:"category_id,omitempty" validate:"omitempty,uuid"`
}

type GetDiseasesRequest struct {
	CategoryID string `validate:"omitempty,uuid"`
	Search     string `validate:"omitempty,max=100"`
}

func (r *GetDiseasesRequest) ToFilter() gDto.FilterGroup {
	filters := []any{}

	if r.CategoryID != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldCategoryID, Value: r.CategoryID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if r.Search != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldTitle, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_title"},
				gDto.Filter{Field: model.FieldEnTitle, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_en_title"},
			},
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type DiseaseResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	EnTitle       string  `json:"en_title"`
	CategoryID    string  `json:"category_id"`
	CategoryTitle *string `json:"category_title"`
	gDto.Metadata
}

func (r *DiseaseResponse) FromModel(detail model.Detail) {
	r.ID = detail.ID
	r.Title = detail.Title
	r.EnTitle = detail.EnTitle
	r.CategoryID = detail.CategoryID
	r.CategoryTitle = detail.CategoryTitle
	r.Metadata.FromModel(detail.Metadata)
}

type GetDiseasesResponse struct {
	Diseases  []DiseaseResponse `json:"diseases"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetDiseasesResponse) FromModels(models []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Diseases = make([]DiseaseResponse, len(models))
	for i, mod := range models {
		r.Diseases[i].FromModel(mod)
	}
}
