package sawis

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Upsert(ctx context.Context, data model.SawisReturn) (model.SawisReturn, error)
	GetById(ctx context.Context, id string) (*model.SawisReturn, error)
	GetByPeriod(ctx context.Context, producerId, period string) (*model.SawisReturn, error)
	List(ctx context.Context, producerId, year string) ([]model.SawisReturn, error)
	ListByPeriod(ctx context.Context, period string) ([]model.SawisReturn, error)
	SetStatus(ctx context.Context, id string, status model.SawisStatus, by string) error
}
