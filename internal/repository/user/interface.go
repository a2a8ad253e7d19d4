package user

import (
	"context"

	"winespace/internal/model"
)

type IRepository interface {
	Create(ctx context.Context, data model.User) (model.User, error)
	GetById(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, role model.Role) ([]model.User, error)
	Update(ctx context.Context, id string, data model.UserUpdate) error
	SetStatus(ctx context.Context, id string, status model.UserStatus) error
	SetCustomerTier(ctx context.Context, supplierId, producerId string, tier model.Tier) error
}
