package repository

//go:generate go run go.uber.org/mock/mockgen -source=./hold.go -destination=../mocks/hold_mock.go -package=mocks

import (
	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/internal/domains/reservation/model"
	gDto "clinic/shared/dto"
	gRepo "clinic/shared/repository"
	"context"

	"github.com/jmoiron/sqlx"
)

type Hold interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Hold) error
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Hold, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type holdRepositoryImpl struct {
	gRepo.Repository[model.Hold]
}

func NewHold(db *postgres.Connection, otel otel.Otel) Hold {
	return &holdRepositoryImpl{
		Repository: gRepo.NewRepository[model.Hold](model.HoldEntityName, model.HoldTableName, model.HoldFieldID, db, otel),
	}
}
