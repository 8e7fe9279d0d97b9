package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one decoded event. A returned error requeues the delivery.
type Handler func(ctx context.Context, event *Event) error

// Consumer drains a queue bound to the events exchange
type Consumer struct {
	channel *amqp.Channel
	logger  *slog.Logger
	queue   string
}

// NewConsumer declares queue, binds it to exchange with bindingKey and limits
// unacknowledged deliveries to one at a time.
func NewConsumer(ch *amqp.Channel, exchange, queue, bindingKey string, logger *slog.Logger) (*Consumer, error) {
	if err := DeclareExchange(ch, exchange); err != nil {
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := ch.QueueBind(queue, bindingKey, exchange, false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind queue %s: %w", queue, err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	return &Consumer{channel: ch, queue: queue, logger: logger}, nil
}

// Run consumes until ctx is cancelled. It returns an error when the broker
// closes the channel so the process can exit and be restarted.
func (c *Consumer) Run(ctx context.Context, consumerTag string, handle Handler) error {
	closed := c.channel.NotifyClose(make(chan *amqp.Error, 1))

	deliveries, err := c.channel.Consume(c.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", c.queue, err)
	}

	c.logger.Info("consuming events", "queue", c.queue, "consumer", consumerTag)

	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-closed:
			if amqpErr != nil {
				return fmt.Errorf("channel closed: %w", amqpErr)
			}
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", c.queue)
			}
			c.dispatch(ctx, d, handle)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery, handle Handler) {
	var event Event
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.logger.Error("dropping malformed event", "routing_key", d.RoutingKey, "error", err)
		if err := d.Nack(false, false); err != nil {
			c.logger.Error("failed to nack delivery", "error", err)
		}
		return
	}

	if err := handle(ctx, &event); err != nil {
		c.logger.Error("failed to handle event", "event_id", event.ID, "type", event.Type, "error", err)
		if err := d.Nack(false, true); err != nil {
			c.logger.Error("failed to nack delivery", "error", err)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error("failed to ack delivery", "event_id", event.ID, "error", err)
	}
}
