package booking

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.Booking) (model.Booking, error)
	GetById(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, f model.BookingFilter) ([]model.Booking, error)
	ListByDate(ctx context.Context, date string) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
}
