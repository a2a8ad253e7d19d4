package notification

import (
	"context"
	"fmt"
	"sync"

	"winespace/internal/eventpublisher"
	"winespace/internal/eventpublisher/event"
	"winespace/internal/mailer"
	"winespace/internal/model"
	notificationRepository "winespace/internal/repository/notification"

	"github.com/rs/zerolog/log"
)

type Renderer interface {
	Render(n model.Notification) (mailer.Message, error)
}

// Handler mails the outbox notifications it receives from the publisher.
type Handler struct {
	publisher        eventpublisher.Publisher
	notificationRepo notificationRepository.IRepository
	renderer         Renderer
	mailer           mailer.Mailer
	subscriptionCh   event.EventChannel
	inFlight         sync.Map
}

func New(
	publisher eventpublisher.Publisher,
	notificationRepo notificationRepository.IRepository,
	renderer Renderer,
	mailer mailer.Mailer) *Handler {

	return &Handler{
		publisher:        publisher,
		notificationRepo: notificationRepo,
		renderer:         renderer,
		mailer:           mailer,
		subscriptionCh:   make(event.EventChannel),
	}
}

func (h *Handler) eventChannel() chan<- event.Event {
	return h.subscriptionCh
}

func (h *Handler) EventHandler(ctx context.Context) error {

	h.publisher.Subscribe(h.eventChannel())
	defer h.publisher.Unsubscribe(h.eventChannel())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-h.subscriptionCh:
			if !ok {
				return nil
			}

			if event.Err != nil {
				log.Error().Err(event.Err).Msg("notification handler: error reading events")
				return event.Err
			}

			n, ok := event.Message.(model.Notification)
			if !ok {
				continue
			}

			go h.handle(ctx, n)
		}
	}
}

func (h *Handler) handle(ctx context.Context, n model.Notification) error {
	if n.Sent {
		return nil
	}

	// the listener can replay a document while it is still being sent
	if _, busy := h.inFlight.LoadOrStore(n.Id, struct{}{}); busy {
		return nil
	}
	defer h.inFlight.Delete(n.Id)

	if err := h.send(ctx, n); err != nil {
		log.Error().Err(err).Msgf("notification handler: failed to send %s", n.Id)
		if markErr := h.notificationRepo.MarkFailed(ctx, n.Id, err); markErr != nil {
			log.Error().Err(markErr).Msgf("notification handler: failed to mark %s as failed", n.Id)
		}
		return err
	}

	if err := h.notificationRepo.MarkSent(ctx, n.Id); err != nil {
		log.Error().Err(err).Msgf("notification handler: failed to mark %s as sent", n.Id)
		return err
	}

	log.Debug().Msgf("notification %s (%s) sent to %s", n.Id, n.Kind, n.To)
	return nil
}

func (h *Handler) send(ctx context.Context, n model.Notification) error {
	if n.To == "" {
		return fmt.Errorf("notification has no recipient")
	}

	msg, err := h.renderer.Render(n)
	if err != nil {
		return err
	}
	return h.mailer.Send(ctx, msg)
}
