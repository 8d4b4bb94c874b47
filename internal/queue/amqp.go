package queue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"
)

// AMQPQueue is the broker-backed Queue used when AMQP_URL is set. Jobs
// survive process restarts, which is what makes cmd/worker a separate
// deployable from the API server.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *slog.Logger
}

func NewAMQPQueue(url string, log *slog.Logger) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	return &AMQPQueue{conn: conn, ch: ch, log: log}, nil
}

func (q *AMQPQueue) declare(topic string) error {
	_, err := q.ch.QueueDeclare(topic, true, false, false, false, nil)
	return err
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	if err := q.declare(topic); err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return q.ch.Publish("", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Subscribe consumes the topic until the channel closes. Handler errors nack
// without requeue: dispatch itself converges the campaign to a retryable
// state, so replaying the job would double-send.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	if err := q.declare(topic); err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	msgs, err := q.ch.Consume(topic, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", topic, err)
	}

	go func() {
		for msg := range msgs {
			dec := json.NewDecoder(bytes.NewReader(msg.Body))
			dec.UseNumber()
			var payload any
			if err := dec.Decode(&payload); err != nil {
				q.log.Error("invalid job body", "topic", topic, "err", err)
				_ = msg.Nack(false, false)
				continue
			}
			if err := handler(payload); err != nil {
				q.log.Error("job handler failed", "topic", topic, "err", err)
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}()
	return nil
}

func (q *AMQPQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
var _ Queue = (*InMemoryQueue)(nil)
