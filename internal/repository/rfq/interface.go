package rfq

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.RFQ) (model.RFQ, error)
	GetById(ctx context.Context, id string) (*model.RFQ, error)
	List(ctx context.Context, producerId string, status model.RFQStatus) ([]model.RFQ, error)
	SetStatus(ctx context.Context, id string, status model.RFQStatus) error
	Award(ctx context.Context, id, quoteId string) error
}
