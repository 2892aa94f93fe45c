package service

import (
	"clinic/internal/domains/reservation/model"
	"clinic/shared"
	gDto "clinic/shared/dto"
	"time"
)

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

// visibleByID matches id unless the reservation was soft deleted.
func visibleByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusSoftDeleted, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	}
}

func active(filters ...any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: append([]any{
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusActive, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		}, filters...),
	}
}

func onDate(date time.Time) gDto.Filter {
	return gDto.Filter{Field: model.FieldReservedDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName}
}

func atTime(clock string) gDto.Filter {
	return gDto.Filter{Field: model.FieldReservedTime, Value: clock, Operator: gDto.FilterOperatorEq, Table: model.TableName}
}

func ofCustomer(customerID string) gDto.Filter {
	return gDto.Filter{Field: model.FieldCustomerID, Value: customerID, Operator: gDto.FilterOperatorEq, Table: model.TableName}
}

func byHoldID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.HoldFieldID, model.HoldTableName)
}

// activeHoldOf matches the operator's unexpired hold.
func activeHoldOf(operatorID string, at time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.HoldFieldOperatorID, Value: operatorID, Operator: gDto.FilterOperatorEq, Table: model.HoldTableName},
			gDto.Filter{Field: model.HoldFieldStatus, Value: model.HoldStatusActive, Operator: gDto.FilterOperatorEq, Table: model.HoldTableName},
			gDto.Filter{Field: model.HoldFieldExpiresAt, Value: at, Operator: gDto.FilterOperatorGreaterEq, Table: model.HoldTableName},
		},
	}
}

func heldBy(operatorID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.HoldFieldOperatorID, Value: operatorID, Operator: gDto.FilterOperatorEq, Table: model.HoldTableName},
			gDto.Filter{Field: model.HoldFieldStatus, Value: model.HoldStatusActive, Operator: gDto.FilterOperatorEq, Table: model.HoldTableName},
		},
	}
}
