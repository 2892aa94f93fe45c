package model

import "clinic/shared/model"

const (
	TableName  = "diseases"
	EntityName = "disease"

	CategoryTableName  = "disease_categories"
	CategoryEntityName = "disease_category"

	FieldID         = "id"
	FieldTitle      = "title"
	FieldEnTitle    = "en_title"
	FieldCategoryID = "category_id"
)

// Category groups diseases for the intake forms.
type Category struct {
	ID    string `db:"id"`
	Title string `db:"title"`
	model.Metadata
}

type Disease struct {
	ID         string `db:"id"`
	Title      string `db:"title"`
	EnTitle    string `db:"en_title"`
	CategoryID string `db:"category_id"`
	model.Metadata
}

// Detail is a disease with the title of its category.
type Detail struct {
	Disease
	CategoryTitle *string `column:"title" db:"category_title" table:"disease_categories"`
}

func (Detail) GetJoinQuery() string {
	return "LEFT JOIN " + CategoryTableName + " ON " + CategoryTableName + "." + FieldID + " = " + TableName + "." + FieldCategoryID
}
