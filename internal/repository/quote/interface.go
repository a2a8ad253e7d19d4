package quote

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.Quote) (model.Quote, error)
	GetById(ctx context.Context, id string) (*model.Quote, error)
	ListByRFQ(ctx context.Context, rfqId string) ([]model.Quote, error)
	ListBySupplier(ctx context.Context, supplierId string) ([]model.Quote, error)
	SetStatus(ctx context.Context, id string, status model.QuoteStatus) error
}
