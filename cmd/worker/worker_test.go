package main

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/model"
	"github.com/phishguard/phishsim-backend/internal/repository"
	"github.com/phishguard/phishsim-backend/internal/service"
)

// MockTargetRepo stores targets in memory
type MockTargetRepo struct {
	targets map[uuid.UUID]*model.Target
	mu      sync.Mutex
}

func (m *MockTargetRepo) GetByID(id uuid.UUID) (*model.Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.targets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *MockTargetRepo) RecordEvent(id uuid.UUID, event repository.TargetEvent, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.targets[id]; ok && event == repository.EventSent && t.EmailSentAt == nil {
		t.EmailSentAt = &at
	}
	return nil
}

func TestWorker(t *testing.T) {
	targetID := uuid.New()
	repo := &MockTargetRepo{
		targets: map[uuid.UUID]*model.Target{
			targetID: {ID: targetID, CampaignID: uuid.New(), EmployeeID: uuid.New()},
		},
	}

	jobChan := make(chan uuid.UUID, 1)
	jobChan <- targetID

	var wg sync.WaitGroup
	wg.Add(1)

	worker := service.NewWorker(repo, jobChan, func(id uuid.UUID) bool {
		wg.Done() // signal that job is processed
		return true
	})

	// Start worker
	go worker.Start()

	// Wait until worker processes the job
	wg.Wait()
	close(jobChan)

	// The sent timestamp is stamped after SendFunc returns, poll briefly
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		target, _ := repo.GetByID(targetID)
		if target.WasSent() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("expected target to be marked sent")
}
