package dto

import (
	"clinic/internal/domains/product/model"
	"clinic/shared"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Title         string `json:"title"          validate:"required,max=255"`
	ShortTitle    string `json:"short_title"    validate:"omitempty,max=100"`
	Quantity      int    `json:"quantity"       validate:"omitempty,min=0"`
	Price         int64  `json:"price"          validate:"required,min=0"`
	Discount      int64  `json:"discount"       validate:"omitempty,min=0"`
	DiscountPrice int64  `json:"discount_price" validate:"omitempty,min=0,ltefield=Price"`
	Unit          string `json:"unit"           validate:"omitempty,max=50"`
	Information   string `json:"information"    validate:"omitempty,max=1000"`
}

func (r *CreateProductRequest) ToModel(user string) model.Product {
	return model.Product{
		ID:            uuid.NewString(),
		Title:         r.Title,
		ShortTitle:    r.ShortTitle,
		Quantity:      r.Quantity,
		Price:         r.Price,
		Discount:      r.Discount,
		DiscountPrice: r.DiscountPrice,
		Unit:          r.Unit,
		Information:   r.Information,
		Enabled:       true,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateProductRequest struct {
	Title         string `db:"title"          json:"title,omitempty"          validate:"omitempty,max=255"`
	ShortTitle    string `db:"short_title"    json:"short_title,omitempty"    validate:"omitempty,max=100"`
	Quantity      *int   `db:"quantity"       json:"quantity,omitempty"       validate:"omitempty,min=0"`
	Price         *int64 `db:"price"          json:"price,omitempty"          validate:"omitempty,min=0"`
	Discount      *int64 `db:"discount"       json:"discount,omitempty"       validate:"omitempty,min=0"`
	DiscountPrice *int64 `db:"discount_price" json:"discount_price,omitempty" validate:"omitempty,min=0"`
	Unit          string `db:"unit"           json:"unit,omitempty"           validate:"omitempty,max=50"`
	Information   string `db:"information"    json:"information,omitempty"    validate:"omitempty,max=1000"`
	Enabled       *bool  `db:"enabled"        json:"enabled,omitempty"`
}

type GetProductsRequest struct {
	Search string `validate:"omitempty,max=100"`
}

// ToFilter lists enabled products only.
func (r *GetProductsRequest) ToFilter() gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldEnabled, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if r.Search != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldTitle, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_title"},
				gDto.Filter{Field: model.FieldShortTitle, Value: r.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName, ArgName: "search_short_title"},
			},
		})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

type ProductResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ShortTitle    string `json:"short_title"`
	Quantity      int    `json:"quantity"`
	Price         int64  `json:"price"`
	Discount      int64  `json:"discount"`
	DiscountPrice int64  `json:"discount_price"`
	Unit          string `json:"unit"`
	Information   string `json:"information"`
	Enabled       bool   `json:"enabled"`
	gDto.Metadata
}

func (r *ProductResponse) FromModel(product model.Product) {
	r.ID = product.ID
	r.Title = product.Title
	r.ShortTitle = product.ShortTitle
	r.Quantity = product.Quantity
	r.Price = product.Price
	r.Discount = product.Discount
	r.DiscountPrice = product.DiscountPrice
	r.Unit = product.Unit
	r.Information = product.Information
	r.Enabled = product.Enabled
	r.Metadata.FromModel(product.Metadata)
}

type GetProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProductsResponse) FromModels(models []model.Product, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Products = make([]ProductResponse, len(models))
	for i, mod := range models {
		r.Products[i].FromModel(mod)
	}
}
