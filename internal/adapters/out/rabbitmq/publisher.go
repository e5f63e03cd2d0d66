package rabbitmq

import (
	"context"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// Publisher implements ports.MessagePublisher on top of Client.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish sends body with routingKey to the orders exchange. Every message
// gets a fresh message id, which consumers report back in batch results.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	if routingKey == "" {
		return errs.NewValueIsRequiredError("routingKey")
	}

	if err := p.client.publish(ctx, routingKey, uuid.NewString(), body); err != nil {
		return errs.NewQueueError("publish "+routingKey, err)
	}
	return nil
}
