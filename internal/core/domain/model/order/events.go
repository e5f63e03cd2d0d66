package order

import "ordering/internal/core/domain/model/kernel"

// Event names double as routing keys on the message broker.
const (
	PlacedEventName    = "order.placed"
	ProcessedEventName = "order.processed"
)

// PlacedEvent is raised once when an order is created. Its payload is the
// processing signal consumed by the order processor.
type PlacedEvent struct {
	OrderID kernel.UUID
}

func (e PlacedEvent) EventName() string { return PlacedEventName }
func (e PlacedEvent) AggregateID() kernel.UUID { return e.OrderID }

// ProcessedEvent is raised when an order moves to Processed. It feeds the
// "order ready" notification.
type ProcessedEvent struct {
	OrderID kernel.UUID
}

func (e ProcessedEvent) EventName() string { return ProcessedEventName }
func (e ProcessedEvent) AggregateID() kernel.UUID { return e.OrderID }
