package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"tourizto/infras/otel"
	"tourizto/infras/postgres"
	"tourizto/internal/domains/place/model"
	gDto "tourizto/shared/dto"
	gRepo "tourizto/shared/repository"
)

type Place interface {
	Insert(ctx context.Context, model model.Place) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Place, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Place, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Place]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Place {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Place](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
