// Package outbox provides the Message stored alongside aggregate changes
// and relayed to the message broker after commit.
package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// SignalPayload is the body of every order message on the broker. Order
// processors only read ID; Status is informational.
type SignalPayload struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// Message is one pending or published broker message.
type Message struct {
	id          kernel.UUID
	eventName   string
	aggregateID kernel.UUID
	payload     []byte
	createdAt   time.Time
	publishedAt *time.Time
	attempts    int
	lastError   string

	isConstructed bool
}

// NewMessage converts a domain event into an unpublished message.
func NewMessage(event kernel.DomainEvent) (*Message, error) {
	if event == nil {
		return nil, errs.NewValueIsRequiredError("event")
	}
	if err := event.AggregateID().Validate(); err != nil {
		return nil, err
	}

	payload := SignalPayload{ID: event.AggregateID().String()}
	switch event.(type) {
	case order.PlacedEvent:
		payload.Status = order.Pending.String()
	case order.ProcessedEvent:
		payload.Status = order.Processed.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("event payload", err)
	}

	return &Message{
		id:            kernel.NewUUID(),
		eventName:     event.EventName(),
		aggregateID:   event.AggregateID(),
		payload:       body,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage rebuilds a message read from the outbox table.
func RestoreMessage(
	id kernel.UUID,
	eventName string,
	aggregateID kernel.UUID,
	payload []byte,
	createdAt time.Time,
	publishedAt *time.Time,
	attempts int,
	lastError string,
) (*Message, error) {
	if err := errors.Join(id.Validate(), aggregateID.Validate()); err != nil {
		return nil, err
	}
	if eventName == "" {
		return nil, errs.NewValueIsRequiredError("event name")
	}

	return &Message{
		id:            id,
		eventName:     eventName,
		aggregateID:   aggregateID,
		payload:       payload,
		createdAt:     createdAt,
		publishedAt:   publishedAt,
		attempts:      attempts,
		lastError:     lastError,
		isConstructed: true,
	}, nil
}

// DecodeSignal extracts the order id from a message body. It is the single
// place where the signal wire format is parsed.
func DecodeSignal(body []byte) (kernel.UUID, error) {
	var payload SignalPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("signal body", err)
	}
	if payload.ID == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("signal id")
	}

	return kernel.UUIDFromString(payload.ID)
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID          { return m.id }
func (m *Message) EventName() string        { return m.eventName }
func (m *Message) AggregateID() kernel.UUID { return m.aggregateID }
func (m *Message) CreatedAt() time.Time     { return m.createdAt }
func (m *Message) PublishedAt() *time.Time  { return m.publishedAt }
func (m *Message) Attempts() int            { return m.attempts }
func (m *Message) LastError() string        { return m.lastError }

// Payload returns a copy of the JSON body.
func (m *Message) Payload() []byte {
	return append([]byte(nil), m.payload...)
}

// IsPublished reports whether the relay already delivered the message.
func (m *Message) IsPublished() bool {
	return m.publishedAt != nil
}

// MarkPublished records a successful publish.
func (m *Message) MarkPublished(at time.Time) {
	at = at.UTC()
	m.publishedAt = &at
	m.attempts++
	m.lastError = ""
}

// MarkFailed records a failed publish attempt; the message stays pending.
func (m *Message) MarkFailed(err error) {
	m.attempts++
	if err != nil {
		m.lastError = err.Error()
	}
}
