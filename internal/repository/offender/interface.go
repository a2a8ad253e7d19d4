package offender

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.Offender) (model.Offender, error)
	GetById(ctx context.Context, id string) (*model.Offender, error)
	List(ctx context.Context) ([]model.Offender, error)
	Delete(ctx context.Context, id string) error
}
