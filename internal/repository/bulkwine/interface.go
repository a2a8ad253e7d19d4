package bulkwine

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.BulkWineListing) (model.BulkWineListing, error)
	GetById(ctx context.Context, id string) (*model.BulkWineListing, error)
	List(ctx context.Context, f model.BulkWineFilter) ([]model.BulkWineListing, error)
	Update(ctx context.Context, id string, data model.BulkWineUpdate) error
	Delete(ctx context.Context, id string) error
}
