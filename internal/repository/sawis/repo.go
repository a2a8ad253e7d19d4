package sawis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"winespace/internal/database"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/repository/helper"
	"winespace/internal/repository/ops"

	"cloud.google.com/go/firestore"
)

type SawisRepository struct {
	db database.Client
}

var _ IRepository = SawisRepository{}

func New(db database.Client) SawisRepository {
	return SawisRepository{
		db: db,
	}
}

// docId keeps one return per producer and period.
func docId(producerId, period string) string {
	return producerId + "_" + period
}

// Upsert writes the return for its producer and period, replacing any previous draft.
func (r SawisRepository) Upsert(ctx context.Context, data model.SawisReturn) (model.SawisReturn, error) {
	id := docId(data.ProducerId, data.Period)

	existing, err := r.GetById(ctx, id)
	if err != nil && err != ierr.NotFound {
		return model.SawisReturn{}, fmt.Errorf("upsert sawis return: %w, id: %s", err, id)
	}
	if existing != nil {
		data.CreatedAt = existing.CreatedAt
	}

	data.Id = id
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, r.db.Collection(sawisReturnsNode).Doc(id), data); err != nil {
		return model.SawisReturn{}, fmt.Errorf("upsert sawis return: %w, id: %s", err, id)
	}
	return data, nil
}

func (r SawisRepository) GetById(ctx context.Context, id string) (*model.SawisReturn, error) {
	s, err := helper.GetById[model.SawisReturn](ctx, r.db, sawisReturnsNode, id)
	if err != nil && err != ierr.NotFound {
		return nil, fmt.Errorf("get sawis return: %w, id: %s", err, id)
	}
	return s, err
}

func (r SawisRepository) GetByPeriod(ctx context.Context, producerId, period string) (*model.SawisReturn, error) {
	return r.GetById(ctx, docId(producerId, period))
}

// List returns a producer's returns ordered by period. A non-empty year keeps only that year.
func (r SawisRepository) List(ctx context.Context, producerId, year string) ([]model.SawisReturn, error) {
	query := r.db.Collection(sawisReturnsNode).Query.Where(ProducerIdFieldPath, ops.Equal, producerId)
	returns, err := helper.GetAll[model.SawisReturn](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list sawis returns: %w, producer: %s", err, producerId)
	}

	out := returns[:0]
	for _, ret := range returns {
		if year != "" && !strings.HasPrefix(ret.Period, year+"-") {
			continue
		}
		out = append(out, ret)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

func (r SawisRepository) ListByPeriod(ctx context.Context, period string) ([]model.SawisReturn, error) {
	query := r.db.Collection(sawisReturnsNode).Query.Where(PeriodFieldPath, ops.Equal, period)
	returns, err := helper.GetAll[model.SawisReturn](ctx, r.db, query)
	if err != nil {
		return nil, fmt.Errorf("list sawis returns by period: %w, period: %s", err, period)
	}
	return returns, nil
}

func (r SawisRepository) SetStatus(ctx context.Context, id string, status model.SawisStatus, by string) error {
	docRef := r.db.Collection(sawisReturnsNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: StatusFieldPath, Value: string(status)},
		{Path: SubmittedByFieldPath, Value: by},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "set sawis status", id)
}
