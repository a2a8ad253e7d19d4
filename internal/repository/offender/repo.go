package offender

import (
	"context"
	"fmt"
	"time"

	"winespace/internal/database"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/repository/filter"
	"winespace/internal/repository/helper"
)

type OffenderRepository struct {
	db database.Client
}

var _ IRepository = OffenderRepository{}

func New(db database.Client) OffenderRepository {
	return OffenderRepository{
		db: db,
	}
}

func (r OffenderRepository) Create(ctx context.Context, data model.Offender) (model.Offender, error) {
	docRef := r.db.Collection(offendersNode).NewDoc()
	data.Id = docRef.ID
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Offender{}, fmt.Errorf("create offender: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

func (r OffenderRepository) GetById(ctx context.Context, id string) (*model.Offender, error) {
	o, err := helper.GetById[model.Offender](ctx, r.db, offendersNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get offender: %w, id: %s", err, id)
	}
	return o, err
}

// List returns every offender, most recently reported first. Text search happens in the caller
// since Firestore has no substring queries.
func (r OffenderRepository) List(ctx context.Context) ([]model.Offender, error) {
	query := helper.ApplyOrderBy(r.db.Collection(offendersNode).Query, filter.OrderBy{Path: CreatedAtFieldPath, Desc: true})
	offenders, err := helper.GetAll[model.Offender](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list offenders: %w", err)
	}
	return offenders, nil
}

func (r OffenderRepository) Delete(ctx context.Context, id string) error {
	docRef := r.db.Collection(offendersNode).Doc(id)
	if _, err := r.db.DeleteDoc(ctx, docRef); err != nil {
		return fmt.Errorf("delete offender: %w, id: %s", err, id)
	}
	return nil
}
