package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/model"
	"github.com/phishguard/phishsim-backend/internal/repository"
)

// DeliveryTargetRepo defines the methods the worker needs
type DeliveryTargetRepo interface {
	GetByID(id uuid.UUID) (*model.Target, error)
	RecordEvent(id uuid.UUID, event repository.TargetEvent, at time.Time) error
}

// Worker performs simulated email deliveries for queued targets
type Worker struct {
	TargetRepo DeliveryTargetRepo
	JobChan    <-chan uuid.UUID
	SendFunc   func(targetID uuid.UUID) bool
}

// Constructor
func NewWorker(repo DeliveryTargetRepo, jobChan <-chan uuid.UUID, sendFunc func(targetID uuid.UUID) bool) *Worker {
	return &Worker{
		TargetRepo: repo,
		JobChan:    jobChan,
		SendFunc:   sendFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for targetID := range w.JobChan {
		target, err := w.TargetRepo.GetByID(targetID)
		if err != nil {
			log.Println("Failed to get target:", err)
			continue
		}
		if target == nil || target.WasSent() {
			continue
		}

		// simulated delivery, nothing leaves the process
		if w.SendFunc(targetID) {
			if err := w.TargetRepo.RecordEvent(targetID, repository.EventSent, time.Now()); err != nil {
				log.Println("Failed to mark target sent:", err)
			}
		}
	}
}
