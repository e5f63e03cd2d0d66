package kernel

// DomainEvent is a fact raised by an aggregate. The unit of work drains
// events from tracked aggregates on commit and stores them in the outbox,
// keyed by EventName, for the relay job to publish.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
}
