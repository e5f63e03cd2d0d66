package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology names the broker objects the service relies on. Every name has a
// default; SignalQueue is usually overridden from configuration.
type Topology struct {
	// Exchange is the topic exchange order events are published to.
	Exchange string
	// SignalQueue receives order.placed events and feeds the order processor.
	SignalQueue string
	// SignalRoutingKey binds SignalQueue to Exchange.
	SignalRoutingKey string
	// NotificationQueue receives order.processed events.
	NotificationQueue string
	// NotificationRoutingKey binds NotificationQueue to Exchange.
	NotificationRoutingKey string
	// DeadLetterExchange receives signals rejected without requeue.
	DeadLetterExchange string
}

// DefaultTopology returns the standard names with the given signal queue.
func DefaultTopology(signalQueue string) Topology {
	if signalQueue == "" {
		signalQueue = "order_signals"
	}

	return Topology{
		Exchange:               "orders",
		SignalQueue:            signalQueue,
		SignalRoutingKey:       "order.placed",
		NotificationQueue:      "order_notifications",
		NotificationRoutingKey: "order.processed",
		DeadLetterExchange:     "orders.dlx",
	}
}

// DeadLetterQueue is where rejected signals end up.
func (t Topology) DeadLetterQueue() string {
	return t.SignalQueue + ".dlq"
}

// declare declares exchanges, queues and bindings. Declarations are idempotent,
// so it runs again after every reconnect.
func (t Topology) declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(t.Exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	// DLX + DLQ
	if err := ch.ExchangeDeclare(t.DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(t.DeadLetterQueue(), true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(t.DeadLetterQueue(), "", t.DeadLetterExchange, false, nil); err != nil {
		return err
	}

	// signal queue dead-letters to the DLX
	_, err := ch.QueueDeclare(t.SignalQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": t.DeadLetterExchange,
	})
	if err != nil {
		return err
	}
	if err := ch.QueueBind(t.SignalQueue, t.SignalRoutingKey, t.Exchange, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(t.NotificationQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(t.NotificationQueue, t.NotificationRoutingKey, t.Exchange, false, nil)
}
