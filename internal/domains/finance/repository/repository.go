package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/internal/domains/finance/model"
	gDto "clinic/shared/dto"
	gRepo "clinic/shared/repository"
	"context"

	"github.com/jmoiron/sqlx"
)

type Refund interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Refund) error
	CountTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Refund, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Refund]
}

func New(db *postgres.Connection, otel otel.Otel) Refund {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Refund](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
