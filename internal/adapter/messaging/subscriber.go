package messaging

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// Subscriber delivers raw NATS messages to callbacks
type Subscriber struct {
	conn *nats.Conn
}

// NewSubscriber creates a subscriber on an existing connection
func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{conn: conn}
}

// Subscribe registers fn for subject, which may contain wildcards.
// The returned func cancels the subscription.
func (s *Subscriber) Subscribe(subject string, fn func(data []byte)) (func(), error) {
	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		fn(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("error subscribing to %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// NopSubscriber never delivers anything; used when no message bus is configured
type NopSubscriber struct{}

func (NopSubscriber) Subscribe(string, func([]byte)) (func(), error) { return func() {}, nil }
