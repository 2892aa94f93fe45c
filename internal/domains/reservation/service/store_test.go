package service_test

import (
	"clinic/internal/domains/reservation/model"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/transaction"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// memoryStore keeps reservations and holds in memory and evaluates the same
// filter groups the SQL repository turns into WHERE clauses. It satisfies
// repository.Reservation, repository.Hold and transaction.Transactor; a
// failing transaction restores the state it started from.
type memoryStore struct {
	mu        sync.Mutex
	rows      []model.Reservation
	holds     []model.Hold
	customers map[string][3]string
	insertErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{customers: map[string][3]string{}}
}

func (m *memoryStore) WithinTx(ctx context.Context, fn transaction.TxFunc) error {
	m.mu.Lock()
	rows := slices.Clone(m.rows)
	holds := slices.Clone(m.holds)
	m.mu.Unlock()

	if err := fn(ctx, nil); err != nil {
		m.mu.Lock()
		m.rows, m.holds = rows, holds
		m.mu.Unlock()

		return err
	}

	return nil
}

func (m *memoryStore) InsertTx(_ context.Context, _ *sqlx.Tx, reservation model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return m.insertErr
	}

	m.rows = append(m.rows, reservation)

	return nil
}

func (m *memoryStore) GetTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (model.Reservation, error) {
	return m.get(filter), nil
}

func (m *memoryStore) CountTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (int, error) {
	return len(m.find(filter)), nil
}

func (m *memoryStore) ExistTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
	return len(m.find(filter)) > 0, nil
}

func (m *memoryStore) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	return len(m.find(filter)) > 0, nil
}

func (m *memoryStore) UpdateTx(ctx context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
	return m.Update(ctx, fields, filter)
}

func (m *memoryStore) Update(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rows {
		if !matches(reservationRow(m.rows[i]), filter) {
			continue
		}

		for field, value := range fields {
			switch field {
			case model.FieldStatus:
				m.rows[i].Status, _ = value.(string)
			case model.FieldCancelReason:
				m.rows[i].CancelReason, _ = value.(*string)
			case model.FieldCustomerID:
				m.rows[i].CustomerID, _ = value.(string)
			case model.FieldVisited:
				m.rows[i].Visited, _ = value.(bool)
			case constant.FieldModifiedBy:
				m.rows[i].ModifiedBy, _ = value.(string)
			case constant.FieldModifiedAt:
				m.rows[i].ModifiedAt, _ = value.(time.Time)
			}
		}
	}

	return nil
}

func (m *memoryStore) GetDetail(_ context.Context, filter gDto.FilterGroup) (model.Detail, error) {
	details := m.details(filter)
	if len(details) == 0 {
		return model.Detail{}, nil
	}

	return details[0], nil
}

func (m *memoryStore) GetAllDetails(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
	return m.details(filter), nil
}

func (m *memoryStore) CountDetails(_ context.Context, filter gDto.FilterGroup) (int, error) {
	return len(m.details(filter)), nil
}

func (m *memoryStore) SlotCounts(_ context.Context, from, to time.Time) ([]model.SlotCount, error) {
	counts := map[[2]string]*model.SlotCount{}

	for _, row := range m.activeBetween(from, to) {
		key := [2]string{row.ReservedDate.Format(constant.StorageDateFormat), row.ReservedTime}
		if counts[key] == nil {
			counts[key] = &model.SlotCount{ReservedDate: row.ReservedDate, ReservedTime: row.ReservedTime}
		}

		counts[key].Total++
	}

	res := make([]model.SlotCount, 0, len(counts))
	for _, count := range counts {
		res = append(res, *count)
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].ReservedDate.Equal(res[j].ReservedDate) {
			return res[i].ReservedDate.Before(res[j].ReservedDate)
		}

		return res[i].ReservedTime < res[j].ReservedTime
	})

	return res, nil
}

func (m *memoryStore) DayCounts(_ context.Context, from, to time.Time) ([]model.DayCount, error) {
	counts := map[string]*model.DayCount{}

	for _, row := range m.activeBetween(from, to) {
		key := row.ReservedDate.Format(constant.StorageDateFormat)
		if counts[key] == nil {
			counts[key] = &model.DayCount{ReservedDate: row.ReservedDate}
		}

		counts[key].Total++
	}

	res := make([]model.DayCount, 0, len(counts))
	for _, count := range counts {
		res = append(res, *count)
	}

	return res, nil
}

func (m *memoryStore) active(customerID string) []model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []model.Reservation

	for _, row := range m.rows {
		if row.CustomerID == customerID && row.Status == model.StatusActive {
			res = append(res, row)
		}
	}

	return res
}

func (m *memoryStore) byID(id string) model.Reservation {
	return m.get(gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq},
	}})
}

func (m *memoryStore) get(filter gDto.FilterGroup) model.Reservation {
	found := m.find(filter)
	if len(found) == 0 {
		return model.Reservation{}
	}

	return found[0]
}

func (m *memoryStore) find(filter gDto.FilterGroup) []model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []model.Reservation

	for _, row := range m.rows {
		if matches(reservationRow(row), filter) {
			res = append(res, row)
		}
	}

	return res
}

func (m *memoryStore) details(filter gDto.FilterGroup) []model.Detail {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []model.Detail

	for _, row := range m.rows {
		values := reservationRow(row)
		contact := m.customers[row.CustomerID]
		values["first_name"], values["last_name"], values["phone"] = contact[0], contact[1], contact[2]

		if !matches(values, filter) {
			continue
		}

		res = append(res, model.Detail{
			Reservation:       row,
			CustomerFirstName: &contact[0],
			CustomerLastName:  &contact[1],
			CustomerPhone:     &contact[2],
		})
	}

	return res
}

func (m *memoryStore) activeBetween(from, to time.Time) []model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []model.Reservation

	for _, row := range m.rows {
		if row.Status == model.StatusActive && !row.ReservedDate.Before(from) && !row.ReservedDate.After(to) {
			res = append(res, row)
		}
	}

	return res
}

// holdStore is the hold side of memoryStore.
type holdStore struct {
	*memoryStore
}

func (h holdStore) InsertTx(_ context.Context, _ *sqlx.Tx, hold model.Hold) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.holds = append(h.holds, hold)

	return nil
}

func (h holdStore) GetTx(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (model.Hold, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, hold := range h.holds {
		if matches(holdRow(hold), filter) {
			return hold, nil
		}
	}

	return model.Hold{}, nil
}

func (h holdStore) UpdateTx(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.holds {
		if !matches(holdRow(h.holds[i]), filter) {
			continue
		}

		if status, ok := fields[model.HoldFieldStatus].(string); ok {
			h.holds[i].Status = status
		}
	}

	return nil
}

func (h holdStore) withStatus(status string) []model.Hold {
	h.mu.Lock()
	defer h.mu.Unlock()

	var res []model.Hold

	for _, hold := range h.holds {
		if hold.Status == status {
			res = append(res, hold)
		}
	}

	return res
}

func reservationRow(r model.Reservation) map[string]any {
	return map[string]any{
		model.FieldID:           r.ID,
		model.FieldCustomerID:   r.CustomerID,
		model.FieldReservedDate: r.ReservedDate,
		model.FieldReservedTime: r.ReservedTime,
		model.FieldLocationTag:  r.LocationTag,
		model.FieldNotes:        r.Notes,
		model.FieldVisited:      r.Visited,
		model.FieldStatus:       r.Status,
	}
}

func holdRow(h model.Hold) map[string]any {
	return map[string]any{
		model.HoldFieldID:            h.ID,
		model.HoldFieldReservationID: h.ReservationID,
		model.HoldFieldOperatorID:    h.OperatorID,
		model.HoldFieldStatus:        h.Status,
		model.HoldFieldExpiresAt:     h.ExpiresAt,
	}
}

func matches(row map[string]any, group gDto.FilterGroup) bool {
	or := group.Operator == gDto.FilterGroupOperatorOr
	result := !or

	for _, item := range group.Filters {
		var ok bool

		switch filter := item.(type) {
		case gDto.Filter:
			ok = matchFilter(row, filter)
		case gDto.FilterGroup:
			ok = matches(row, filter)
		}

		if or {
			result = result || ok
		} else {
			result = result && ok
		}
	}

	return result
}

func matchFilter(row map[string]any, filter gDto.Filter) bool {
	value := row[filter.Field]

	switch filter.Operator {
	case gDto.FilterOperatorEq:
		return equal(value, filter.Value)
	case gDto.FilterOperatorNotEq:
		return !equal(value, filter.Value)
	case gDto.FilterOperatorGreaterEq:
		left, _ := value.(time.Time)
		right, _ := filter.Value.(time.Time)

		return !left.Before(right)
	case gDto.FilterOperatorLike:
		text, _ := value.(string)
		needle, _ := filter.Value.(string)

		return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
	default:
		return false
	}
}

func equal(left, right any) bool {
	if l, ok := left.(time.Time); ok {
		r, ok := right.(time.Time)

		return ok && l.Equal(r)
	}

	return left == right
}
