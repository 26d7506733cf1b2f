package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Topics used inside the server process.
const (
	TopicCampaignUpdates = "campaign_updates"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans each published payload out to the topic's handlers,
// retrying a failing handler with a growing pause.
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	MaxRetries int
	Backoff    time.Duration
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

// job wraps a payload with retry info
type job struct {
	topic      string
	payload    any
	retryCount int
}

// Publish returns an error when nobody listens on topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.process(handler, job{topic: topic, payload: payload})
	}
	return nil
}

func (q *InMemoryQueue) process(handler func(payload any) error, j job) {
	for {
		err := handler(j.payload)
		if err == nil {
			return
		}

		j.retryCount++
		if j.retryCount > q.MaxRetries {
			log.Printf("⚠️ %s job dropped after %d attempts: %v\n", j.topic, j.retryCount, err)
			return
		}
		log.Printf("⚠️ %s job failed (attempt %d/%d): %v\n", j.topic, j.retryCount, q.MaxRetries, err)
		time.Sleep(time.Duration(j.retryCount) * q.Backoff)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	if handler == nil {
		return fmt.Errorf("nil handler for topic %s", topic)
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}
