package model

import "clinic/shared/model"

const (
	TableName  = "products"
	EntityName = "product"

	FieldID            = "id"
	FieldTitle         = "title"
	FieldShortTitle    = "short_title"
	FieldQuantity      = "quantity"
	FieldPrice         = "price"
	FieldDiscount      = "discount"
	FieldDiscountPrice = "discount_price"
	FieldUnit          = "unit"
	FieldInformation   = "information"
	FieldEnabled       = "enabled"
)

// Product is a sellable service or item. Prices are in rial.
type Product struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	ShortTitle    string `db:"short_title"`
	Quantity      int    `db:"quantity"`
	Price         int64  `db:"price"`
	Discount      int64  `db:"discount"`
	DiscountPrice int64  `db:"discount_price"`
	Unit          string `db:"unit"`
	Information   string `db:"information"`
	Enabled       bool   `db:"enabled"`
	model.Metadata
}
