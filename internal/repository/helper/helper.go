package helper

import (
	"context"
	"fmt"
	"time"

	"winespace/internal/database"
	dbutils "winespace/internal/database/utils"
	ierr "winespace/internal/errors"
	"winespace/internal/repository/filter"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func NotifyOnChanges(ctx context.Context, db database.Client, query firestore.Query,
	where []filter.Where, kind firestore.DocumentChangeKind, fn func(firestore.DocumentChange, error) error) {

	query = ApplyWhere(query, where)

	events := db.NotifyOnChanges(ctx, query.Snapshots(ctx), kind)

	for e := range events {
		if e.Err != nil {
			fn(e.Change, e.Err)
			return
		}

		if err := fn(e.Change, nil); err != nil {
			return
		}
	}
}

// ApplyWhere narrows the query with every condition, skipping those without a path.
func ApplyWhere(query firestore.Query, where []filter.Where) firestore.Query {
	for _, w := range where {
		if w.Path == "" {
			continue
		}
		query = query.Where(w.Path, w.Op, w.Value)
	}
	return query
}

// ApplyOrderBy sorts the query by the given fields.
func ApplyOrderBy(query firestore.Query, orderBy ...filter.OrderBy) firestore.Query {
	for _, o := range orderBy {
		dir := firestore.Asc
		if o.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(o.Path, dir)
	}
	return query
}

// GetById decodes the document with the given id into a new T. It returns ierr.NotFound
// when the document does not exist.
func GetById[T any](ctx context.Context, db database.Client, collection, id string) (*T, error) {
	if id == "" {
		return nil, ierr.NotFound
	}

	docSnap, err := db.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ierr.NotFound
		}
		return nil, err
	}

	if !docSnap.Exists() {
		return nil, ierr.NotFound
	}

	v := new(T)
	if err := dbutils.DocSnapToType(docSnap, v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetAll runs the query and decodes every document into a T. Documents that fail to decode are skipped.
func GetAll[T any](ctx context.Context, db database.Client, query firestore.Query) ([]T, error) {
	docs, err := db.GetDocs(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var v T
		if err := dbutils.DocSnapToType(doc, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// IsAlreadyExists reports whether a Create failed because the document exists.
func IsAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// WrapNotFound maps a Firestore NotFound status to ierr.NotFound and wraps other errors
// as "<action>: <err>, id: <id>".
func WrapNotFound(err error, action, id string) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return ierr.NotFound
	}
	return fmt.Errorf("%s: %w, id: %s", action, err, id)
}

// NonblockingWrite is a generic function that can write any type of event to any channel type.
// T is the type parameter for the event.
func NonblockingWrite[T any](ctx context.Context, timeout time.Duration, ch chan<- T, event T) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
