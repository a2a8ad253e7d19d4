package common

import (
	"context"
	"testing"
	"time"

	"winespace/internal/eventpublisher/event"
)

func TestPublisherUnsubscribesSlowReaders(t *testing.T) {
	p := NewPublisherWithFailureThreshold(10*time.Millisecond, 2)
	slow := make(chan event.Event)

	if err := p.Publish(context.Background(), slow, event.Event{}); err != nil {
		t.Fatalf("first timeout should be tolerated, got %v", err)
	}
	if err := p.Publish(context.Background(), slow, event.Event{}); err != ErrWriteFailure {
		t.Fatalf("expected ErrWriteFailure, got %v", err)
	}
}

func TestPublisherResetsAfterDelivery(t *testing.T) {
	p := NewPublisherWithFailureThreshold(10*time.Millisecond, 2)
	ch := make(chan event.Event, 1)
	ch <- event.Event{}

	if err := p.Publish(context.Background(), ch, event.Event{}); err != nil {
		t.Fatalf("first timeout should be tolerated, got %v", err)
	}
	<-ch
	if err := p.Publish(context.Background(), ch, event.Event{}); err != nil {
		t.Fatalf("delivery failed: %v", err)
	}
	// the buffer is full again; the earlier timeout no longer counts
	if err := p.Publish(context.Background(), ch, event.Event{}); err != nil {
		t.Fatalf("count was not reset, got %v", err)
	}
}

func TestSubManager(t *testing.T) {
	m := NewSubManager()
	a, b := make(chan event.Event), make(chan event.Event)
	m.Subscribe(a)
	m.Subscribe(a)
	m.Subscribe(b)
	if m.Len() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", m.Len())
	}

	m.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Error("unsubscribe should close the channel")
	}

	m.UnsubscribeAll()
	if m.Len() != 0 {
		t.Errorf("expected no subscribers, got %d", m.Len())
	}
}
