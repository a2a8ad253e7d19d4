package notification

import (
	"context"

	"winespace/internal/model"
)

type NotificationEvent struct {
	Notification model.Notification
	Err          error
}

type IRepository interface {
	Create(ctx context.Context, data model.Notification) (model.Notification, error)
	NotifyOnAdded(ctx context.Context) <-chan NotificationEvent
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, cause error) error
}
