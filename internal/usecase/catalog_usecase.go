package usecase

import (
	"context"

	"cosmetic-platform-dataset/internal/converter"
	"cosmetic-platform-dataset/internal/delivery/dto"
	"cosmetic-platform-dataset/internal/seed"
)

type CatalogUsecase interface {
	ListTables(ctx context.Context) (*dto.TableListResponse, error)
}

type catalogUsecase struct {
	dataset *seed.Dataset
}

func NewCatalogUsecase(dataset *seed.Dataset) CatalogUsecase {
	return &catalogUsecase{dataset: dataset}
}

func (u *catalogUsecase) ListTables(ctx context.Context) (*dto.TableListResponse, error) {
	return converter.TablesToResponse(u.dataset), nil
}
