package order

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

type OrderRepository struct {
	db database.Client
}

var _ IRepository = OrderRepository{}

func New(db database.Client) OrderRepository {
	return OrderRepository{
		db: db,
	}
}

func (r OrderRepository) Create(ctx context.Context, data model.Order) (model.Order, error) {
	docRef := r.db.Collection(ordersNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Order{}, fmt.Errorf("create order: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r OrderRepository) GetById(ctx context.Context, id string) (*model.Order, error) {
	o, err := helper.GetById[model.Order](ctx, r.db, ordersNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get order: %w, id: %s", err, id)
	}
	return o, err
}

// List returns the matching orders, newest first.
func (r OrderRepository) List(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	where := []filter.Where{}
	if f.BuyerId != "" {
		where = append(where, filter.Where{Path: BuyerIdFieldPath, Op: ops.Equal, Value: f.BuyerId})
	}
	if f.SupplierId != "" {
		where = append(where, filter.Where{Path: SupplierIdFieldPath, Op: ops.Equal, Value: f.SupplierId})
	}
	if f.Status != "" {
		where = append(where, filter.Where{Path: StatusFieldPath, Op: ops.Equal, Value: string(f.Status)})
	}

	query := helper.ApplyWhere(r.db.Collection(ordersNode).Query, where)
	orders, err := helper.GetAll[model.Order](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// UpdateStatus overwrites the status; concurrent writers race and the last one wins.
func (r OrderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	docRef := r.db.Collection(ordersNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: StatusFieldPath, Value: string(status)},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "update order status", id)
}

func (r OrderRepository) Delete(ctx context.Context, id string) error {
	docRef := r.db.Collection(ordersNode).Doc(id)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete order: %w, id: %s", err, id)
	}
	return nil
}
