package dto

import (
	"clinic/shared/calendar"
	"clinic/shared/model"
)

// Metadata is the audit stamp rendered for operators: Jalali date and
// wall-clock time in the application timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = calendar.ToDisplayDateTime(model.CreatedAt)
	m.ModifiedAt = calendar.ToDisplayDateTime(model.ModifiedAt)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}
