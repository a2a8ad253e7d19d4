package notification

import (
	"context"

	notificationRepo "winespace/internal/repository/notification"
)

type Factory interface {
	OnPendingNotification() NotificationPublisher
}

type factory struct {
	repo notificationRepo.IRepository
}

func NotificationPublisherFactory(repo notificationRepo.IRepository) Factory {
	return &factory{
		repo: repo,
	}
}

// OnPendingNotification publishes every outbox document that has not been sent yet.
func (f *factory) OnPendingNotification() NotificationPublisher {
	return new(func(ctx context.Context) <-chan notificationRepo.NotificationEvent {
		return f.repo.NotifyOnAdded(ctx)
	})
}
