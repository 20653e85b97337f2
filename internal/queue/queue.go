package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/repository"
)

// TopicSimulatedSends carries target IDs awaiting simulated email delivery.
const TopicSimulatedSends = "simulated_sends"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process pub/sub queue with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
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
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartSimulatedSendSubscriber consumes queued target IDs and stamps
// email_sent_at. Delivery is entirely simulated; no mail leaves the process.
func StartSimulatedSendSubscriber(q Queue, targetRepo repository.TargetRepositoryInterface) {
	go func() {
		err := q.Subscribe(TopicSimulatedSends, func(payload any) error {
			targetID, ok := payload.(uuid.UUID)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected uuid.UUID")
				return nil // drop, retrying won't fix the type
			}

			target, err := targetRepo.GetByID(targetID)
			if err != nil {
				log.Println("⚠️ Failed to fetch target:", err)
				return err // triggers retry
			}
			if target == nil {
				log.Println("⚠️ Target not found for ID:", targetID)
				return nil // no retry
			}
			if target.WasSent() {
				return nil // already delivered
			}

			if err := targetRepo.RecordEvent(targetID, repository.EventSent, time.Now()); err != nil {
				log.Println("⚠️ Failed to mark target sent:", err)
				return err // retry
			}

			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for simulated_sends:", err)
		}
	}()
}
