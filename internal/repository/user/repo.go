package user

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

type UserRepository struct {
	db database.Client
}

var _ IRepository = UserRepository{}

func New(db database.Client) UserRepository {
	return UserRepository{
		db: db,
	}
}

// Create stores a new user. Emails are unique and compared lower-cased.
func (r UserRepository) Create(ctx context.Context, data model.User) (model.User, error) {
	data.Email = normalizeEmail(data.Email)

	existing, err := r.GetByEmail(ctx, data.Email)
	if err != nil && err != ierr.NotFound {
		return model.User{}, fmt.Errorf("create user: %w, email: %s", err, data.Email)
	}
	if existing != nil {
		return model.User{}, fmt.Errorf("create user: %w, email: %s", ierr.AlreadyExists, data.Email)
	}

	docRef := r.db.Collection(usersNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.User{}, fmt.Errorf("create user: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r UserRepository) GetById(ctx context.Context, id string) (*model.User, error) {
	u, err := helper.GetById[model.User](ctx, r.db, usersNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get user: %w, id: %s", err, id)
	}
	return u, err
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := r.db.Collection(usersNode).Query.Where(EmailFieldPath, ops.Equal, normalizeEmail(email)).Limit(1)
	users, err := helper.GetAll[model.User](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w, email: %s", err, email)
	}
	if len(users) == 0 {
		return nil, ierr.NotFound
	}
	return &users[0], nil
}

// List returns the users with the given role, or all users when role is empty.
func (r UserRepository) List(ctx context.Context, role model.Role) ([]model.User, error) {
	where := []filter.Where{}
	if role != "" {
		where = append(where, filter.Where{Path: RoleFieldPath, Op: ops.Equal, Value: string(role)})
	}

	query := helper.ApplyWhere(r.db.Collection(usersNode).Query, where)
	users, err := helper.GetAll[model.User](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w, role: %s", err, role)
	}

	sort.Slice(users, func(i, j int) bool {
		return strings.ToLower(users[i].CompanyName) < strings.ToLower(users[j].CompanyName)
	})
	return users, nil
}

func (r UserRepository) Update(ctx context.Context, id string, data model.UserUpdate) error {
	docRef := r.db.Collection(usersNode).Doc(id)
	updates := []firestore.Update{{Path: UpdatedAtFieldPath, Value: time.Now().UTC()}}

	if data.Name != nil {
		updates = append(updates, firestore.Update{Path: NameFieldPath, Value: *data.Name})
	}
	if data.CompanyName != nil {
		updates = append(updates, firestore.Update{Path: CompanyNameFieldPath, Value: *data.CompanyName})
	}
	if data.Phone != nil {
		updates = append(updates, firestore.Update{Path: PhoneFieldPath, Value: *data.Phone})
	}
	if data.Region != nil {
		updates = append(updates, firestore.Update{Path: RegionFieldPath, Value: *data.Region})
	}
	if data.Services != nil {
		updates = append(updates, firestore.Update{Path: ServicesFieldPath, Value: data.Services})
	}

	_, err := r.db.UpdateDoc(ctx, docRef, updates)
	return helper.WrapNotFound(err, "update user", id)
}

func (r UserRepository) SetStatus(ctx context.Context, id string, status model.UserStatus) error {
	docRef := r.db.Collection(usersNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: StatusFieldPath, Value: string(status)},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "set user status", id)
}

// SetCustomerTier records the tier a supplier grants a producer. The standard tier removes the entry.
func (r UserRepository) SetCustomerTier(ctx context.Context, supplierId, producerId string, tier model.Tier) error {
	docRef := r.db.Collection(usersNode).Doc(supplierId)

	var value interface{} = string(tier)
	if tier == model.TierStandard {
		value = firestore.Delete
	}

	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{FieldPath: firestore.FieldPath{CustomerTiersFieldPath, producerId}, Value: value},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "set customer tier", supplierId)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
