package booking

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

type BookingRepository struct {
	db database.Client
}

var _ IRepository = BookingRepository{}

func New(db database.Client) BookingRepository {
	return BookingRepository{
		db: db,
	}
}

func (r BookingRepository) Create(ctx context.Context, data model.Booking) (model.Booking, error) {
	docRef := r.db.Collection(bookingsNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Booking{}, fmt.Errorf("create booking: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r BookingRepository) GetById(ctx context.Context, id string) (*model.Booking, error) {
	b, err := helper.GetById[model.Booking](ctx, r.db, bookingsNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get booking: %w, id: %s", err, id)
	}
	return b, err
}

// List returns bookings ordered by date. The date range is applied after the fetch
// to avoid composite indexes.
func (r BookingRepository) List(ctx context.Context, f model.BookingFilter) ([]model.Booking, error) {
	where := []filter.Where{}
	if f.ProducerId != "" {
		where = append(where, filter.Where{Path: ProducerIdFieldPath, Op: ops.Equal, Value: f.ProducerId})
	}
	if f.ProviderId != "" {
		where = append(where, filter.Where{Path: ProviderIdFieldPath, Op: ops.Equal, Value: f.ProviderId})
	}

	query := helper.ApplyWhere(r.db.Collection(bookingsNode).Query, where)
	bookings, err := helper.GetAll[model.Booking](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := bookings[:0]
	for _, b := range bookings {
		if (f.From != "" && b.Date < f.From) || (f.To != "" && b.Date > f.To) {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r BookingRepository) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	query := r.db.Collection(bookingsNode).Query.Where(DateFieldPath, ops.Equal, date)
	bookings, err := helper.GetAll[model.Booking](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings by date: %w, date: %s", err, date)
	}
	return bookings, nil
}

func (r BookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	docRef := r.db.Collection(bookingsNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: StatusFieldPath, Value: string(status)},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "update booking status", id)
}
