package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/internal/domains/reservation/model"
	gDto "clinic/shared/dto"
	gRepo "clinic/shared/repository"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	CountTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)

	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error)
	GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error)
	CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error)

	// SlotCounts groups active reservations in [from, to] by date and time.
	SlotCounts(ctx context.Context, from, to time.Time) ([]model.SlotCount, error)
	// DayCounts groups active reservations in [from, to] by date.
	DayCounts(ctx context.Context, from, to time.Time) ([]model.DayCount, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	details gRepo.Repository[model.Detail]
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.Detail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.Detail, error) {
	return r.details.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.details.Count(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) SlotCounts(ctx context.Context, from, to time.Time) ([]model.SlotCount, error) {
	query := fmt.Sprintf(
		"SELECT %[2]s, %[3]s, COUNT(%[4]s) AS total FROM %[1]s WHERE %[5]s = :status AND %[2]s BETWEEN :from AND :to "+
			"GROUP BY %[2]s, %[3]s ORDER BY %[2]s, %[3]s",
		r.Table(), model.FieldReservedDate, model.FieldReservedTime, model.FieldID, model.FieldStatus,
	)

	counts := []model.SlotCount{}

	err := r.SelectRaw(ctx, &counts, query, activeBetween(from, to))

	return counts, err //nolint:wrapcheck
}

func (r *repositoryImpl) DayCounts(ctx context.Context, from, to time.Time) ([]model.DayCount, error) {
	query := fmt.Sprintf(
		"SELECT %[2]s, COUNT(%[3]s) AS total FROM %[1]s WHERE %[4]s = :status AND %[2]s BETWEEN :from AND :to "+
			"GROUP BY %[2]s ORDER BY %[2]s",
		r.Table(), model.FieldReservedDate, model.FieldID, model.FieldStatus,
	)

	counts := []model.DayCount{}

	err := r.SelectRaw(ctx, &counts, query, activeBetween(from, to))

	return counts, err //nolint:wrapcheck
}

func activeBetween(from, to time.Time) map[string]any {
	return map[string]any{
		"status": model.StatusActive,
		"from":   from,
		"to":     to,
	}
}
