package quote

import (
	"context"
	"fmt"
	"sort"
	"time"

	"winespace/internal/database"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/repository/helper"
	"winespace/internal/repository/ops"

	"cloud.google.com/go/firestore"
)

type QuoteRepository struct {
	db database.Client
}

var _ IRepository = QuoteRepository{}

func New(db database.Client) QuoteRepository {
	return QuoteRepository{
		db: db,
	}
}

func (r QuoteRepository) Create(ctx context.Context, data model.Quote) (model.Quote, error) {
	docRef := r.db.Collection(quotesNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Quote{}, fmt.Errorf("create quote: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r QuoteRepository) GetById(ctx context.Context, id string) (*model.Quote, error) {
	q, err := helper.GetById[model.Quote](ctx, r.db, quotesNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get quote: %w, id: %s", err, id)
	}
	return q, err
}

// ListByRFQ returns the quotes of an rfq, cheapest first.
func (r QuoteRepository) ListByRFQ(ctx context.Context, rfqId string) ([]model.Quote, error) {
	query := r.db.Collection(quotesNode).Query.Where(RFQIdFieldPath, ops.Equal, rfqId)
	quotes, err := helper.GetAll[model.Quote](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w, rfq: %s", err, rfqId)
	}

	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Total < quotes[j].Total })
	return quotes, nil
}

func (r QuoteRepository) ListBySupplier(ctx context.Context, supplierId string) ([]model.Quote, error) {
	query := r.db.Collection(quotesNode).Query.Where(SupplierIdFieldPath, ops.Equal, supplierId)
	quotes, err := helper.GetAll[model.Quote](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w, supplier: %s", err, supplierId)
	}

	sort.Slice(quotes, func(i, j int) bool { return quotes[i].CreatedAt.After(quotes[j].CreatedAt) })
	return quotes, nil
}

func (r QuoteRepository) SetStatus(ctx context.Context, id string, status model.QuoteStatus) error {
	docRef := r.db.Collection(quotesNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: StatusFieldPath, Value: string(status)},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "set quote status", id)
}
