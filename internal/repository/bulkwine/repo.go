package bulkwine

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

type BulkWineRepository struct {
	db database.Client
}

var _ IRepository = BulkWineRepository{}

func New(db database.Client) BulkWineRepository {
	return BulkWineRepository{
		db: db,
	}
}

func (r BulkWineRepository) Create(ctx context.Context, data model.BulkWineListing) (model.BulkWineListing, error) {
	docRef := r.db.Collection(listingsNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.BulkWineListing{}, fmt.Errorf("create bulk wine listing: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r BulkWineRepository) GetById(ctx context.Context, id string) (*model.BulkWineListing, error) {
	l, err := helper.GetById[model.BulkWineListing](ctx, r.db, listingsNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get bulk wine listing: %w, id: %s", err, id)
	}
	return l, err
}

// List applies the equality filters in Firestore and the minimum volume in memory.
func (r BulkWineRepository) List(ctx context.Context, f model.BulkWineFilter) ([]model.BulkWineListing, error) {
	where := []filter.Where{}
	if f.SellerId != "" {
		where = append(where, filter.Where{Path: SellerIdFieldPath, Op: ops.Equal, Value: f.SellerId})
	}
	if f.Cultivar != "" {
		where = append(where, filter.Where{Path: CultivarFieldPath, Op: ops.Equal, Value: f.Cultivar})
	}
	if f.Vintage != 0 {
		where = append(where, filter.Where{Path: VintageFieldPath, Op: ops.Equal, Value: f.Vintage})
	}
	if f.Region != "" {
		where = append(where, filter.Where{Path: RegionFieldPath, Op: ops.Equal, Value: f.Region})
	}
	if f.Status != "" {
		where = append(where, filter.Where{Path: StatusFieldPath, Op: ops.Equal, Value: string(f.Status)})
	}

	query := helper.ApplyWhere(r.db.Collection(listingsNode).Query, where)
	listings, err := helper.GetAll[model.BulkWineListing](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list bulk wine listings: %w", err)
	}

	out := listings[:0]
	for _, l := range listings {
		if l.VolumeLitres < f.MinVolume {
			continue
		}
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r BulkWineRepository) Update(ctx context.Context, id string, data model.BulkWineUpdate) error {
	docRef := r.db.Collection(listingsNode).Doc(id)
	updates := []firestore.Update{{Path: UpdatedAtFieldPath, Value: time.Now().UTC()}}

	if data.Cultivar != nil {
		updates = append(updates, firestore.Update{Path: CultivarFieldPath, Value: *data.Cultivar})
	}
	if data.Vintage != nil {
		updates = append(updates, firestore.Update{Path: VintageFieldPath, Value: *data.Vintage})
	}
	if data.Region != nil {
		updates = append(updates, firestore.Update{Path: RegionFieldPath, Value: *data.Region})
	}
	if data.VolumeLitres != nil {
		updates = append(updates, firestore.Update{Path: VolumeLitresFieldPath, Value: *data.VolumeLitres})
	}
	if data.PricePerLitre != nil {
		updates = append(updates, firestore.Update{Path: PricePerLitreFieldPath, Value: *data.PricePerLitre})
	}
	if data.Description != nil {
		updates = append(updates, firestore.Update{Path: DescriptionFieldPath, Value: *data.Description})
	}
	if data.Status != nil {
		updates = append(updates, firestore.Update{Path: StatusFieldPath, Value: string(*data.Status)})
	}

	_, err := r.db.UpdateDoc(ctx, docRef, updates)
	return helper.WrapNotFound(err, "update bulk wine listing", id)
}

func (r BulkWineRepository) Delete(ctx context.Context, id string) error {
	docRef := r.db.Collection(listingsNode).Doc(id)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete bulk wine listing: %w, id: %s", err, id)
	}
	return nil
}
