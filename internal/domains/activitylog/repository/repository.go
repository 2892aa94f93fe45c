package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/internal/domains/activitylog/model"
	gDto "clinic/shared/dto"
	gRepo "clinic/shared/repository"
	"context"

	"github.com/jmoiron/sqlx"
)

type ActivityLog interface {
	Insert(ctx context.Context, model model.ActivityLog) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.ActivityLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ActivityLog, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ActivityLog]
}

func New(db *postgres.Connection, otel otel.Otel) ActivityLog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ActivityLog](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
