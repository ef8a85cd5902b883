// internal/adapter/messaging/publisher.go

package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/onyxdragun/yardsalefndr/internal/domain/listing"
)

// Publisher publishes garage sale events to NATS
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher creates a publisher on an existing connection
func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Publish sends the event on its subject
func (p *Publisher) Publish(ctx context.Context, evt listing.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("error marshaling event: %w", err)
	}
	if err := p.conn.Publish(evt.Subject(), data); err != nil {
		return fmt.Errorf("error publishing %s: %w", evt.Subject(), err)
	}
	return nil
}

// NopPublisher drops events; used when no message bus is configured
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, listing.Event) error { return nil }
