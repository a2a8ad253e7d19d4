package promotion

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

type PromotionRepository struct {
	db database.Client
}

var _ IRepository = PromotionRepository{}

func New(db database.Client) PromotionRepository {
	return PromotionRepository{
		db: db,
	}
}

func (r PromotionRepository) Create(ctx context.Context, data model.Promotion) (model.Promotion, error) {
	docRef := r.db.Collection(promotionsNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Promotion{}, fmt.Errorf("create promotion: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r PromotionRepository) GetById(ctx context.Context, id string) (*model.Promotion, error) {
	p, err := helper.GetById[model.Promotion](ctx, r.db, promotionsNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get promotion: %w, id: %s", err, id)
	}
	return p, err
}

// List returns promotions ordered by start date. An empty supplierId lists every supplier.
func (r PromotionRepository) List(ctx context.Context, supplierId string, activeOnly bool) ([]model.Promotion, error) {
	where := []filter.Where{}
	if supplierId != "" {
		where = append(where, filter.Where{Path: SupplierIdFieldPath, Op: ops.Equal, Value: supplierId})
	}
	if activeOnly {
		where = append(where, filter.Where{Path: ActiveFieldPath, Op: ops.Equal, Value: true})
	}

	query := helper.ApplyWhere(r.db.Collection(promotionsNode).Query, where)
	promotions, err := helper.GetAll[model.Promotion](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w, supplier: %s", err, supplierId)
	}

	sort.Slice(promotions, func(i, j int) bool {
		return promotions[i].StartsAt.Before(promotions[j].StartsAt)
	})
	return promotions, nil
}

func (r PromotionRepository) SetActive(ctx context.Context, id string, active bool) error {
	docRef := r.db.Collection(promotionsNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: ActiveFieldPath, Value: active},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "set promotion active", id)
}

func (r PromotionRepository) Delete(ctx context.Context, id string) error {
	docRef := r.db.Collection(promotionsNode).Doc(id)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete promotion: %w, id: %s", err, id)
	}
	return nil
}
