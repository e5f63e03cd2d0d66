// Package rabbitmq connects to RabbitMQ, declares the order topology and
// publishes order events.
package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	ErrConnectionNotReady = errors.New("rabbitmq: connection is not ready")
	ErrChannelNotReady    = errors.New("rabbitmq: publish channel is not open")
)

const (
	heartbeat      = 10 * time.Second
	dialTimeout    = 10 * time.Second
	publishTimeout = 5 * time.Second
	maxBackoff     = 30 * time.Second
)

// Client is a RabbitMQ connector with auto-reconnect and topology setup.
type Client struct {
	url      string
	topology Topology
	logger   *zap.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	pubChan *amqp.Channel

	closed    chan struct{}
	closeOnce sync.Once
	reconnect chan struct{}
	done      chan struct{}
}

// Connect dials the broker once, declares the topology and starts a
// background watcher that reconnects with exponential backoff.
func Connect(ctx context.Context, url string, topology Topology, logger *zap.Logger) (*Client, error) {
	client := &Client{
		url:       url,
		topology:  topology,
		logger:    logger.With(zap.String("component", "rabbitmq")),
		closed:    make(chan struct{}),
		reconnect: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := client.connectOnce(); err != nil {
		return nil, err
	}

	go client.watch()

	return client, nil
}

// Topology returns the declared broker objects.
func (client *Client) Topology() Topology {
	return client.topology
}

// NewConsumerChannel returns a fresh channel with prefetch (QoS) applied.
func (client *Client) NewConsumerChannel(prefetch int) (*amqp.Channel, error) {
	client.mu.RLock()
	conn := client.conn
	client.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return nil, ErrConnectionNotReady
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			_ = ch.Close()
			return nil, err
		}
	}

	return ch, nil
}

// publish sends a persistent JSON message to the topology exchange.
func (client *Client) publish(ctx context.Context, routingKey, messageID string, body []byte) error {
	client.mu.RLock()
	ch := client.pubChan
	conn := client.conn
	client.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return ErrConnectionNotReady
	}
	if ch == nil || ch.IsClosed() {
		return ErrChannelNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return ch.PublishWithContext(ctx,
		client.topology.Exchange, routingKey, false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

// Close stops the watcher and closes AMQP resources. Safe to call twice.
func (client *Client) Close() {
	client.closeOnce.Do(func() {
		close(client.closed)
		<-client.done
	})

	client.mu.Lock()
	defer client.mu.Unlock()
	if client.pubChan != nil {
		_ = client.pubChan.Close()
		client.pubChan = nil
	}
	if client.conn != nil {
		_ = client.conn.Close()
		client.conn = nil
	}
}

func (client *Client) connectOnce() error {
	start := time.Now()

	conn, err := amqp.DialConfig(client.url, amqp.Config{
		Heartbeat: heartbeat,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err := client.topology.declare(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	client.mu.Lock()
	if client.pubChan != nil {
		_ = client.pubChan.Close()
	}
	client.conn = conn
	client.pubChan = ch
	client.mu.Unlock()

	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		select {
		case <-client.closed:
			return
		case <-connClosed:
		case <-chClosed:
		}

		select {
		case client.reconnect <- struct{}{}:
		default:
		}
	}()

	client.logger.Info("connected",
		zap.String("exchange", client.topology.Exchange),
		zap.String("signal_queue", client.topology.SignalQueue),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

func (client *Client) watch() {
	defer close(client.done)

	backoff := time.Second
	for {
		select {
		case <-client.closed:
			return
		case <-client.reconnect:
		}

		for {
			err := client.connectOnce()
			if err == nil {
				backoff = time.Second
				client.logger.Info("reconnected")
				break
			}

			client.logger.Error("reconnect failed", zap.Error(err), zap.Duration("backoff", backoff))

			select {
			case <-client.closed:
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
		}
	}
}
