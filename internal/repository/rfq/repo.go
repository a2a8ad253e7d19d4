package rfq

import (
	"context"
	"fmt"
	"sort"
	"time"

	"winespace/internal/database"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/repository/filter"
	"winespace/internal/repository/helper"
	"winespace/internal/repository/ops"

	"cloud.google.com/go/firestore"
)

type RFQRepository struct {
	db database.Client
}

var _ IRepository = RFQRepository{}

func New(db database.Client) RFQRepository {
	return RFQRepository{
		db: db,
	}
}

func (r RFQRepository) Create(ctx context.Context, data model.RFQ) (model.RFQ, error) {
	docRef := r.db.Collection(rfqsNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.RFQ{}, fmt.Errorf("create rfq: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r RFQRepository) GetById(ctx context.Context, id string) (*model.RFQ, error) {
	q, err := helper.GetById[model.RFQ](ctx, r.db, rfqsNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get rfq: %w, id: %s", err, id)
	}
	return q, err
}

func (r RFQRepository) List(ctx context.Context, producerId string, status model.RFQStatus) ([]model.RFQ, error) {
	where := []filter.Where{}
	if producerId != "" {
		where = append(where, filter.Where{Path: ProducerIdFieldPath, Op: ops.Equal, Value: producerId})
	}
	if status != "" {
		where = append(where, filter.Where{Path: StatusFieldPath, Op: ops.Equal, Value: string(status)})
	}

	query := helper.ApplyWhere(r.db.Collection(rfqsNode).Query, where)
	rfqs, err := helper.GetAll[model.RFQ](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list rfqs: %w", err)
	}

	sort.Slice(rfqs, func(i, j int) bool { return rfqs[i].CreatedAt.After(rfqs[j].CreatedAt) })
	return rfqs, nil
}

func (r RFQRepository) SetStatus(ctx context.Context, id string, status model.RFQStatus) error {
	docRef := r.db.Collection(rfqsNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: StatusFieldPath, Value: string(status)},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "set rfq status", id)
}

func (r RFQRepository) Award(ctx context.Context, id, quoteId string) error {
	docRef := r.db.Collection(rfqsNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: StatusFieldPath, Value: string(model.RFQStatusAwarded)},
		{Path: AwardedQuoteIdFieldPath, Value: quoteId},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "award rfq", id)
}
