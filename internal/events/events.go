// Package events publishes catalog change notifications to a message
// broker. The catalog only produces events; consumption is left to
// downstream services (feeds, notifications).
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/diabros/apiserver/types"
)

// Event types published on the catalog channel.
const (
	TypeBookCreated           = "book.created"
	TypePersonCreated         = "person.created"
	TypeRecommendationCreated = "recommendation.created"
)

// Backend defines the broker-agnostic publish operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Event is the JSON payload published for every catalog change.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	Book           *types.Book           `json:"book,omitempty"`
	Person         *types.Person         `json:"person,omitempty"`
	Recommendation *types.Recommendation `json:"recommendation,omitempty"`
}

// Publisher emits catalog events to a backend. A nil Publisher is valid
// and publishes nothing, so callers never need to branch on whether
// events are configured.
type Publisher struct {
	backend Backend
	channel string
}

// NewPublisher constructs a Publisher for the provided backend and channel.
func NewPublisher(backend Backend, channel string) *Publisher {
	return &Publisher{backend: backend, channel: channel}
}

// BookCreated publishes a book.created event.
func (p *Publisher) BookCreated(ctx context.Context, book types.Book) {
	p.publish(ctx, Event{Type: TypeBookCreated, Book: &book})
}

// PersonCreated publishes a person.created event.
func (p *Publisher) PersonCreated(ctx context.Context, person types.Person) {
	p.publish(ctx, Event{Type: TypePersonCreated, Person: &person})
}

// RecommendationCreated publishes a recommendation.created event.
func (p *Publisher) RecommendationCreated(ctx context.Context, rec types.Recommendation) {
	p.publish(ctx, Event{Type: TypeRecommendationCreated, Recommendation: &rec})
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	if p == nil || p.backend == nil {
		return nil
	}
	return p.backend.Close()
}

// publish is best-effort: a broker failure must never fail the API
// request that triggered the event.
func (p *Publisher) publish(ctx context.Context, event Event) {
	if p == nil || p.backend == nil {
		return
	}
	event.OccurredAt = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: marshal %s: %v", event.Type, err)
		return
	}

	attrs := map[string]string{"type": event.Type}
	if _, err := p.backend.Publish(ctx, p.channel, data, attrs); err != nil {
		log.Printf("events: publish %s: %v", event.Type, err)
	}
}
