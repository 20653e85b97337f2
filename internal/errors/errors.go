// internal/errors/errors.go
package appErrors

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/model"
)

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID uuid.UUID
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id uuid.UUID) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrInvalidTransition rejects an illegal lifecycle step before any write.
type ErrInvalidTransition struct {
	From model.CampaignStatus
	To   model.CampaignStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("campaign cannot move from %s to %s", e.From, e.To)
}

func NewInvalidTransition(from, to model.CampaignStatus) error {
	return &ErrInvalidTransition{From: from, To: to}
}

// ErrTargetNotFound is a sentinel error
type ErrTargetNotFound struct {
	TargetID uuid.UUID
}

func (e *ErrTargetNotFound) Error() string {
	return fmt.Sprintf("target %s not found", e.TargetID)
}

func NewTargetNotFound(id uuid.UUID) error {
	return &ErrTargetNotFound{TargetID: id}
}
