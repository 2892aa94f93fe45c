package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/internal/domains/salesreport/model"
	gDto "clinic/shared/dto"
	gRepo "clinic/shared/repository"
	"context"
)

type SalesReport interface {
	Insert(ctx context.Context, model model.SalesReport) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SalesReport, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.SalesReport]
}

func New(db *postgres.Connection, otel otel.Otel) SalesReport {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SalesReport](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
