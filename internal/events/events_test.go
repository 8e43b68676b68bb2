package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/diabros/apiserver/types"
)

type fakeBackend struct {
	published []publishedMessage
	err       error
	closed    bool
}

type publishedMessage struct {
	channel string
	data    []byte
	attrs   map[string]string
}

func (f *fakeBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, publishedMessage{channel: channel, data: data, attrs: attrs})
	return "msg-1", nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func TestPublisherBookCreated(t *testing.T) {
	backend := &fakeBackend{}
	publisher := NewPublisher(backend, "catalog-events")

	publisher.BookCreated(t.Context(), types.Book{ID: 7, Title: "Sapiens", Author: "Harari"})

	if len(backend.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(backend.published))
	}
	msg := backend.published[0]
	if msg.channel != "catalog-events" {
		t.Fatalf("unexpected channel %q", msg.channel)
	}
	if msg.attrs["type"] != TypeBookCreated {
		t.Fatalf("unexpected type attribute %q", msg.attrs["type"])
	}

	var event Event
	if err := json.Unmarshal(msg.data, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.Type != TypeBookCreated || event.Book == nil || event.Book.ID != 7 {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("occurred_at not stamped")
	}
	if event.Person != nil || event.Recommendation != nil {
		t.Fatalf("unrelated entities present in event: %+v", event)
	}
}

func TestPublisherRecommendationCreated(t *testing.T) {
	backend := &fakeBackend{}
	publisher := NewPublisher(backend, "catalog-events")

	publisher.RecommendationCreated(t.Context(), types.Recommendation{ID: 1, PersonID: 2, BookID: 3})

	if len(backend.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(backend.published))
	}
	var event Event
	if err := json.Unmarshal(backend.published[0].data, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.Recommendation == nil || event.Recommendation.PersonID != 2 || event.Recommendation.BookID != 3 {
		t.Fatalf("unexpected event payload: %+v", event)
	}
}

func TestPublisherSwallowsBackendErrors(t *testing.T) {
	backend := &fakeBackend{err: errors.New("broker down")}
	publisher := NewPublisher(backend, "catalog-events")

	// Must not panic or surface the error.
	publisher.PersonCreated(t.Context(), types.Person{ID: 1, Name: "Alice"})
}

func TestNilPublisherIsSafe(t *testing.T) {
	var publisher *Publisher

	publisher.BookCreated(t.Context(), types.Book{ID: 1})
	publisher.PersonCreated(t.Context(), types.Person{ID: 1})
	publisher.RecommendationCreated(t.Context(), types.Recommendation{ID: 1})
	if err := publisher.Close(); err != nil {
		t.Fatalf("nil publisher close: %v", err)
	}
}

func TestPublisherClose(t *testing.T) {
	backend := &fakeBackend{}
	publisher := NewPublisher(backend, "catalog-events")

	if err := publisher.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !backend.closed {
		t.Fatalf("backend not closed")
	}
}
