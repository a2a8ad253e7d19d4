package product

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"winespace/internal/database"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/repository/filter"
	"winespace/internal/repository/helper"
	"winespace/internal/repository/ops"

	"cloud.google.com/go/firestore"
)

type ProductRepository struct {
	db database.Client
}

var _ IRepository = ProductRepository{}

func New(db database.Client) ProductRepository {
	return ProductRepository{
		db: db,
	}
}

func (r ProductRepository) GetById(ctx context.Context, id string) (*model.Product, error) {
	p, err := helper.GetById[model.Product](ctx, r.db, productNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get product: %w, id: %s", err, id)
	}
	return p, err
}

// GetByIds returns the products found for the ids keyed by id. Missing ids are absent from the map.
func (r ProductRepository) GetByIds(ctx context.Context, ids []string) (map[string]model.Product, error) {
	out := make(map[string]model.Product, len(ids))
	unique := dedupe(ids)

	for start := 0; start < len(unique); start += maxInValues {
		end := min(start+maxInValues, len(unique))
		query := r.db.Collection(productNode).Query.Where(IdFieldPath, ops.In, unique[start:end])
		products, err := helper.GetAll[model.Product](ctx, r.db, query)
		if err != nil {
			return nil, fmt.Errorf("get products: %w, ids: %v", err, unique[start:end])
		}
		for _, p := range products {
			out[p.Id] = p
		}
	}

	return out, nil
}

func (r ProductRepository) Create(ctx context.Context, data model.Product) (model.Product, error) {
	docRef := r.db.Collection(productNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Product{}, fmt.Errorf("create product: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

// CreateMany writes the products in batches. A failing batch stops the import;
// batches committed before it are kept.
func (r ProductRepository) CreateMany(ctx context.Context, data []model.Product) ([]model.Product, error) {
	created := make([]model.Product, 0, len(data))
	now := time.Now()

	for start := 0; start < len(data); start += maxBatchWrites {
		end := min(start+maxBatchWrites, len(data))

		dataBatch := []database.DataBatch{}
		pending := []model.Product{}
		for _, p := range data[start:end] {
			docRef := r.db.Collection(productNode).NewDoc()
			p.Id = docRef.ID
			p.Touch(now)
			dataBatch = append(dataBatch, database.DataBatch{DocRef: docRef, Data: p})
			pending = append(pending, p)
		}

		if _, err := r.db.SetDocs(ctx, dataBatch); err != nil {
			return created, fmt.Errorf("create products: %w, batch: %d", err, start/maxBatchWrites)
		}
		created = append(created, pending...)
	}

	return created, nil
}

func (r ProductRepository) List(ctx context.Context, f model.ProductFilter) ([]model.Product, error) {
	where := []filter.Where{}
	if f.SupplierId != "" {
		where = append(where, filter.Where{Path: SupplierIdFieldPath, Op: ops.Equal, Value: f.SupplierId})
	}
	if f.Category != "" {
		where = append(where, filter.Where{Path: CategoryFieldPath, Op: ops.Equal, Value: f.Category})
	}
	if f.ActiveOnly {
		where = append(where, filter.Where{Path: ActiveFieldPath, Op: ops.Equal, Value: true})
	}

	query := helper.ApplyWhere(r.db.Collection(productNode).Query, where)
	products, err := helper.GetAll[model.Product](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return products, nil
}

func (r ProductRepository) Update(ctx context.Context, id string, data model.ProductUpdate) error {
	docRef := r.db.Collection(productNode).Doc(id)
	updates := []firestore.Update{{Path: UpdatedAtFieldPath, Value: time.Now().UTC()}}

	if data.Name != nil {
		updates = append(updates, firestore.Update{Path: NameFieldPath, Value: *data.Name})
	}
	if data.Description != nil {
		updates = append(updates, firestore.Update{Path: DescriptionFieldPath, Value: *data.Description})
	}
	if data.Category != nil {
		updates = append(updates, firestore.Update{Path: CategoryFieldPath, Value: *data.Category})
	}
	if data.Unit != nil {
		updates = append(updates, firestore.Update{Path: UnitFieldPath, Value: *data.Unit})
	}
	if data.BasePrice != nil {
		updates = append(updates, firestore.Update{Path: BasePriceFieldPath, Value: *data.BasePrice})
	}
	if data.TierPrices != nil {
		updates = append(updates, firestore.Update{Path: TierPricesFieldPath, Value: data.TierPrices})
	}
	if data.MinOrderQty != nil {
		updates = append(updates, firestore.Update{Path: MinOrderQtyFieldPath, Value: *data.MinOrderQty})
	}
	if data.Stock != nil {
		updates = append(updates, firestore.Update{Path: StockFieldPath, Value: *data.Stock})
	}
	if data.ImageUrl != nil {
		updates = append(updates, firestore.Update{Path: ImageUrlFieldPath, Value: *data.ImageUrl})
	}
	if data.Active != nil {
		updates = append(updates, firestore.Update{Path: ActiveFieldPath, Value: *data.Active})
	}

	_, err := r.db.UpdateDoc(ctx, docRef, updates)
	return helper.WrapNotFound(err, "update product", id)
}

// Delete removes the product only. Orders keep their copies of the line items.
func (r ProductRepository) Delete(ctx context.Context, id string) error {
	docRef := r.db.Collection(productNode).Doc(id)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete product: %w, id: %s", err, id)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
