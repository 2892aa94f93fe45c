package dto

import (
	"clinic/internal/domains/activitylog/model"
	"clinic/shared"
	"clinic/shared/calendar"
	gDto "clinic/shared/dto"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one audit fact about an entity.
type Entry struct {
	EntityType string
	EntityID   string
	Action     string
	Actor      gDto.Actor
	Message    string
}

// NewEntry builds an entry whose message is derived from the action when message is empty.
func NewEntry(entityType, entityID, action string, actor gDto.Actor, message string) Entry {
	if message == "" {
		message = fmt.Sprintf("%s %s %s by %s", entityType, entityID, action, actor.Name)
	}

	return Entry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		Message:    message,
	}
}

func (e *Entry) ToModel(at time.Time) model.ActivityLog {
	return model.ActivityLog{
		ID:         uuid.NewString(),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		ActorID:    e.Actor.ID,
		ActorName:  e.Actor.Name,
		Message:    e.Message,
		CreatedAt:  at,
	}
}

type GetActivityLogsRequest struct {
	Action     string `validate:"omitempty,max=50"`
	EntityType string `validate:"omitempty,max=50"`
	EntityID   string `validate:"omitempty,max=64"`
	ActorID    string `validate:"omitempty,max=64"`
	From       string `validate:"omitempty,jalali_date"`
	To         string `validate:"omitempty,jalali_date"`
}

// ToFilter matches the given fields exactly. From and To are inclusive
// Jalali days in the application timezone.
func (r *GetActivityLogsRequest) ToFilter() gDto.FilterGroup {
	filters := []any{}

	for _, pair := range [][2]string{
		{model.FieldAction, r.Action},
		{model.FieldEntityType, r.EntityType},
		{model.FieldEntityID, r.EntityID},
		{model.FieldActorID, r.ActorID},
	} {
		if pair[1] == "" {
			continue
		}

		filters = append(filters, gDto.Filter{
			Field:    pair[0],
			Value:    pair[1],
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if created := r.createdWithin(); created != nil {
		filters = append(filters, *created)
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func (r *GetActivityLogsRequest) createdWithin() *gDto.Filter {
	var from, to *time.Time

	if day, err := calendar.ToStorage(r.From); err == nil {
		start := calendar.DayStart(day)
		from = &start
	}

	if day, err := calendar.ToStorage(r.To); err == nil {
		end := calendar.DayEnd(day)
		to = &end
	}

	filter := gDto.Filter{Field: model.FieldCreatedAt, Table: model.TableName}

	switch {
	case from != nil && to != nil:
		filter.Operator, filter.Value = gDto.FilterOperatorBetween, []time.Time{*from, *to}
	case from != nil:
		filter.Operator, filter.Value = gDto.FilterOperatorGreaterEq, *from
	case to != nil:
		filter.Operator, filter.Value = gDto.FilterOperatorLessEq, *to
	default:
		return nil
	}

	return &filter
}

type ActivityLogResponse struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id"`
	ActorName  string `json:"actor_name"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
}

func (r *ActivityLogResponse) FromModel(log model.ActivityLog) {
	r.ID = log.ID
	r.Action = log.Action
	r.EntityType = log.EntityType
	r.EntityID = log.EntityID
	r.ActorID = log.ActorID
	r.ActorName = log.ActorName
	r.Message = log.Message
	r.CreatedAt = calendar.ToDisplayDateTime(log.CreatedAt)
}

type GetActivityLogsResponse struct {
	ActivityLogs []ActivityLogResponse `json:"activity_logs"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetActivityLogsResponse) FromModels(models []model.ActivityLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.ActivityLogs = make([]ActivityLogResponse, len(models))
	for i, mod := range models {
		r.ActivityLogs[i].FromModel(mod)
	}
}
