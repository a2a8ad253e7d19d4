package order

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.Order) (model.Order, error)
	GetById(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, f model.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	Delete(ctx context.Context, id string) error
}
