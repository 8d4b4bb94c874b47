package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TopicCampaignDispatch carries campaign IDs awaiting asynchronous send.
const TopicCampaignDispatch = "campaign.dispatch"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used when no broker is
// configured. Jobs do not survive a restart; a campaign stuck mid-dispatch
// after a crash needs an operator re-dispatch.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	log      *slog.Logger
}

func NewInMemoryQueue(log *slog.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
		log:      log,
	}
}

// JobPayload wraps a message payload with retry info.
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(topic, handler, job)
	}

	return nil
}

// processJob handles retries and errors.
func (q *InMemoryQueue) processJob(topic string, handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		q.log.Warn("job failed",
			"topic", topic,
			"attempt", job.RetryCount,
			"max_retries", job.MaxRetries,
			"err", err,
		)

		if job.RetryCount > job.MaxRetries {
			q.log.Error("job permanently failed", "topic", topic, "payload", fmt.Sprint(job.Payload))
			return // no requeue
		}

		// Linear backoff before retry.
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic.
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// CampaignID coerces a queue payload into a campaign id. In-memory payloads
// arrive as int; broker payloads arrive JSON-decoded as json.Number or
// float64 depending on the decoder.
func CampaignID(payload any) (int, error) {
	switch v := payload.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid campaign id payload %q: %w", v.String(), err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("invalid campaign id payload type %T", payload)
	}
}

// StartDispatchSubscriber binds the dispatch topic to the given run
// function. run errors propagate to the queue's retry loop; an unparseable
// payload is dropped, retrying it could never succeed.
func StartDispatchSubscriber(q Queue, log *slog.Logger, run func(campaignID int) error) {
	go func() {
		err := q.Subscribe(TopicCampaignDispatch, func(payload any) error {
			id, err := CampaignID(payload)
			if err != nil {
				log.Error("dropping dispatch job", "err", err)
				return nil
			}
			return run(id)
		})
		if err != nil {
			log.Error("failed to subscribe to dispatch topic", "err", err)
		}
	}()
}
