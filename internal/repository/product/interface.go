package product

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.Product) (model.Product, error)
	CreateMany(ctx context.Context, data []model.Product) ([]model.Product, error)
	GetById(ctx context.Context, id string) (*model.Product, error)
	GetByIds(ctx context.Context, ids []string) (map[string]model.Product, error)
	List(ctx context.Context, f model.ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, id string, data model.ProductUpdate) error
	Delete(ctx context.Context, id string) error
}
