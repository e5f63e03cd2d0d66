package ports

import "context"

// MessagePublisher sends a message to the broker. The routing key is the
// domain event name; the broker topology maps it to a queue.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}
