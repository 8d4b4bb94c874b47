package queue_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzline/b2bmailer-backend/internal/logger"
	"github.com/quartzline/b2bmailer-backend/internal/queue"
)

func TestInMemoryQueueDeliversToSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue(logger.Discard())

	got := make(chan any, 1)
	require.NoError(t, q.Subscribe(queue.TopicCampaignDispatch, func(payload any) error {
		got <- payload
		return nil
	}))

	require.NoError(t, q.Publish(queue.TopicCampaignDispatch, 7))

	select {
	case payload := <-got:
		assert.Equal(t, 7, payload)
	case <-time.After(2 * time.Second):
		t.Fatal("handler never received the job")
	}
}

func TestInMemoryQueuePublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue(logger.Discard())

	err := q.Publish(queue.TopicCampaignDispatch, 1)
	assert.Error(t, err)
}

func TestInMemoryQueueRetriesFailedJobs(t *testing.T) {
	q := queue.NewInMemoryQueue(logger.Discard())

	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})
	require.NoError(t, q.Subscribe("retry.topic", func(payload any) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return fmt.Errorf("transient failure")
		}
		close(done)
		return nil
	}))

	require.NoError(t, q.Publish("retry.topic", "job"))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job never succeeded after retries")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, attempts)
}

func TestCampaignIDCoercion(t *testing.T) {
	cases := []struct {
		name    string
		payload any
		want    int
		wantErr bool
	}{
		{"int", 5, 5, false},
		{"int64", int64(6), 6, false},
		{"float64", float64(7), 7, false},
		{"json number", json.Number("8"), 8, false},
		{"bad json number", json.Number("x"), 0, true},
		{"string", "9", 0, true},
		{"nil", nil, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := queue.CampaignID(tc.payload)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStartDispatchSubscriberCoercesAndRuns(t *testing.T) {
	q := queue.NewInMemoryQueue(logger.Discard())

	ran := make(chan int, 1)
	queue.StartDispatchSubscriber(q, logger.Discard(), func(campaignID int) error {
		ran <- campaignID
		return nil
	})

	// Subscribe runs on a goroutine; wait for registration before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for q.Publish(queue.TopicCampaignDispatch, json.Number("12")) != nil {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case id := <-ran:
		assert.Equal(t, 12, id)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch handler never ran")
	}
}
