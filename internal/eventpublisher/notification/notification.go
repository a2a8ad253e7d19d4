package notification

import (
	"context"
	"time"

	"winespace/internal/eventpublisher"
	"winespace/internal/eventpublisher/common"
	"winespace/internal/eventpublisher/event"
	notificationRepo "winespace/internal/repository/notification"

	"github.com/rs/zerolog/log"
)

const (
	writeTimeout          = time.Second
	writeFailureThreshold = 3
)

type eventFunc func(context.Context) <-chan notificationRepo.NotificationEvent

type NotificationPublisher interface {
	eventpublisher.Publisher
	Start(ctx context.Context) error
}

type notificationPublisher struct {
	eventFn    eventFunc
	submanager *common.SubManager
	publisher  *common.PublisherWithFailureThreshold
}

func new(fn eventFunc) NotificationPublisher {
	return &notificationPublisher{
		eventFn:    fn,
		submanager: common.NewSubManager(),
		publisher:  common.NewPublisherWithFailureThreshold(writeTimeout, writeFailureThreshold),
	}
}

func (p *notificationPublisher) Subscribe(subscriber event.EventWChannel) {
	p.submanager.Subscribe(subscriber)
}

func (p *notificationPublisher) Unsubscribe(subscriber event.EventWChannel) {
	p.submanager.Unsubscribe(subscriber)
}

func (p *notificationPublisher) publish(ctx context.Context, e notificationRepo.NotificationEvent) {
	p.submanager.OnSubscribers(func(subscriber event.EventWChannel) {
		go func() {
			if err := p.publisher.Publish(ctx,
				subscriber,
				event.Event{Message: e.Notification, Err: e.Err}); err != nil {
				p.Unsubscribe(subscriber)
			}
		}()
	})
}

func (p *notificationPublisher) Start(ctx context.Context) error {
	defer p.submanager.UnsubscribeAll()

	eventsCh := p.eventFn(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Error().Err(ctx.Err()).Msg("NotificationPublisher stopped")
			return ctx.Err()
		case e, ok := <-eventsCh:
			if !ok {
				return nil
			}
			log.Debug().Msgf("publish notificationId %s", e.Notification.Id)
			p.publish(ctx, e)
		}
	}
}
