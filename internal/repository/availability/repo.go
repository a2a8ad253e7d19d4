package availability

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
	"winespace/internal/utils"
)

type AvailabilityRepository struct {
	db database.Client
}

var _ IRepository = AvailabilityRepository{}

func New(db database.Client) AvailabilityRepository {
	return AvailabilityRepository{
		db: db,
	}
}

// Create stores the slot under a deterministic id so the same provider, date and
// service collapse into one document; a second call updates the capacity.
func (r AvailabilityRepository) Create(ctx context.Context, data model.Availability) (model.Availability, error) {
	docId := utils.Hash(data.ProviderId + "|" + data.Date + "|" + data.ServiceType)
	docRef := r.db.Collection(availabilityNode).Doc(docId)
	data.Id = docId
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Availability{}, fmt.Errorf("create availability: %w, id: %s", err, docId)
	}
	return data, nil
}

func (r AvailabilityRepository) GetById(ctx context.Context, id string) (*model.Availability, error) {
	a, err := helper.GetById[model.Availability](ctx, r.db, availabilityNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get availability: %w, id: %s", err, id)
	}
	return a, err
}

// List returns a provider's slots whose date falls within [from, to]; empty bounds are open.
func (r AvailabilityRepository) List(ctx context.Context, providerId, from, to string) ([]model.Availability, error) {
	where := []filter.Where{{Path: ProviderIdFieldPath, Op: ops.Equal, Value: providerId}}
	query := helper.ApplyWhere(r.db.Collection(availabilityNode).Query, where)

	slots, err := helper.GetAll[model.Availability](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w, provider: %s", err, providerId)
	}

	// dates are ISO formatted, so string comparison orders them
	out := slots[:0]
	for _, s := range slots {
		if (from != "" && s.Date < from) || (to != "" && s.Date > to) {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r AvailabilityRepository) ListByDate(ctx context.Context, date, serviceType string) ([]model.Availability, error) {
	where := []filter.Where{{Path: DateFieldPath, Op: ops.Equal, Value: date}}
	if serviceType != "" {
		where = append(where, filter.Where{Path: ServiceTypeFieldPath, Op: ops.Equal, Value: serviceType})
	}

	query := helper.ApplyWhere(r.db.Collection(availabilityNode).Query, where)
	slots, err := helper.GetAll[model.Availability](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list availability by date: %w, date: %s", err, date)
	}
	return slots, nil
}

func (r AvailabilityRepository) Delete(ctx context.Context, id string) error {
	docRef := r.db.Collection(availabilityNode).Doc(id)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete availability: %w, id: %s", err, id)
	}
	return nil
}
