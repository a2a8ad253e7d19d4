package promotion

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.Promotion) (model.Promotion, error)
	GetById(ctx context.Context, id string) (*model.Promotion, error)
	List(ctx context.Context, supplierId string, activeOnly bool) ([]model.Promotion, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
