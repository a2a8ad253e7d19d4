package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"winespace/internal/database"
	dbutils "winespace/internal/database/utils"
	"winespace/internal/model"
	"winespace/internal/repository/filter"
	"winespace/internal/repository/helper"
	"winespace/internal/repository/ops"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

type NotificationRepository struct {
	db database.Client
}

var _ IRepository = NotificationRepository{}

func New(db database.Client) NotificationRepository {
	return NotificationRepository{
		db: db,
	}
}

// Create queues a notification in the outbox.
func (r NotificationRepository) Create(ctx context.Context, data model.Notification) (model.Notification, error) {
	docRef := r.db.Collection(notificationsNode).NewDoc()
	data.Id = docRef.ID
	data.Sent = false
	data.Touch(time.Now())

	if _, err := r.db.SetDoc(ctx, docRef, data); err != nil {
		return model.Notification{}, fmt.Errorf("create notification: %w, id: %s", err, docRef.ID)
	}
	return data, nil
}

// NotifyOnAdded streams unsent notifications. On startup the listener also
// replays every unsent document, which redelivers mail that failed to send earlier.
func (r NotificationRepository) NotifyOnAdded(ctx context.Context) <-chan NotificationEvent {
	query := r.db.Collection(notificationsNode).Query
	where := []filter.Where{{Path: SentFieldPath, Op: ops.Equal, Value: false}}
	return r.notifyOnChanges(ctx, query, where, firestore.DocumentAdded)
}

func (r NotificationRepository) MarkSent(ctx context.Context, id string) error {
	now := time.Now().UTC()
	docRef := r.db.Collection(notificationsNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: SentFieldPath, Value: true},
		{Path: SentAtFieldPath, Value: now},
		{Path: ErrorFieldPath, Value: firestore.Delete},
		{Path: UpdatedAtFieldPath, Value: now},
	})
	return helper.WrapNotFound(err, "mark notification sent", id)
}

func (r NotificationRepository) MarkFailed(ctx context.Context, id string, cause error) error {
	docRef := r.db.Collection(notificationsNode).Doc(id)
	_, err := r.db.UpdateDoc(ctx, docRef, []firestore.Update{
		{Path: ErrorFieldPath, Value: cause.Error()},
		{Path: UpdatedAtFieldPath, Value: time.Now().UTC()},
	})
	return helper.WrapNotFound(err, "mark notification failed", id)
}

func (r NotificationRepository) notifyOnChanges(ctx context.Context, query firestore.Query, where []filter.Where, kind firestore.DocumentChangeKind) <-chan NotificationEvent {

	ch := make(chan NotificationEvent)
	var writeFailureCount, writeFailureThreshold = 0, 3

	go func() {
		defer close(ch)

		helper.NotifyOnChanges(ctx, r.db, query, where, kind, func(dc firestore.DocumentChange, err error) error {

			if writeFailureCount > writeFailureThreshold {
				return fmt.Errorf("write failure threshould reached")
			}

			n := model.Notification{}
			if err != nil {
				if !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
					log.Error().Err(err).Msg("notification repo: failed to read events")
					helper.NonblockingWrite[NotificationEvent](ctx, channelWriteTimeout, ch, NotificationEvent{Notification: n, Err: err})
				}
				return err
			}

			if err := dbutils.DocSnapToType(dc.Doc, &n); err != nil {
				log.Error().Err(err).Msg("notification repo: failed to convert doc to notification")
				return nil
			}

			if err := helper.NonblockingWrite[NotificationEvent](ctx, channelWriteTimeout, ch, NotificationEvent{Notification: n}); err != nil {
				writeFailureCount++
			}

			return nil
		})

	}()

	return ch
}
