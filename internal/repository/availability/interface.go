package availability

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.Availability) (model.Availability, error)
	GetById(ctx context.Context, id string) (*model.Availability, error)
	List(ctx context.Context, providerId, from, to string) ([]model.Availability, error)
	ListByDate(ctx context.Context, date, serviceType string) ([]model.Availability, error)
	Delete(ctx context.Context, id string) error
}
