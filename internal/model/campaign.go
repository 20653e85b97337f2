// internal/model/campaign.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle state of a phishing test campaign.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

// validTransitions is the full lifecycle graph. completed is terminal.
var validTransitions = map[CampaignStatus][]CampaignStatus{
	StatusDraft:     {StatusActive},
	StatusActive:    {StatusPaused, StatusCompleted},
	StatusPaused:    {StatusActive, StatusCompleted},
	StatusCompleted: {},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle step.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s CampaignStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

type Campaign struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	CompanyID    uuid.UUID      `db:"company_id" json:"company_id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description,omitempty"`
	Status       CampaignStatus `db:"status" json:"status"`
	Subject      string         `db:"subject" json:"subject"`
	BodyTemplate string         `db:"body_template" json:"body_template"`
	SenderName   string         `db:"sender_name" json:"sender_name"`
	SenderEmail  string         `db:"sender_email" json:"sender_email"`
	LandingURL   string         `db:"landing_url" json:"landing_url"`
	StartDate    *time.Time     `db:"start_date" json:"start_date,omitempty"`
	EndDate      *time.Time     `db:"end_date" json:"end_date,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}
