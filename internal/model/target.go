// internal/model/target.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// FunnelStage is a target's position in the simulated-email engagement funnel.
type FunnelStage string

const (
	StagePending   FunnelStage = "pending"
	StageSent      FunnelStage = "sent"
	StageOpened    FunnelStage = "opened"
	StageClicked   FunnelStage = "clicked"
	StageSubmitted FunnelStage = "submitted"
)

// Target records one employee's exposure to one campaign. The nullable
// timestamps are the single source of truth for funnel position; the discrete
// stage is always derived from them, never stored.
type Target struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	CampaignID      uuid.UUID  `db:"campaign_id" json:"campaign_id"`
	EmployeeID      uuid.UUID  `db:"employee_id" json:"employee_id"`
	EmailSentAt     *time.Time `db:"email_sent_at" json:"email_sent_at,omitempty"`
	EmailOpenedAt   *time.Time `db:"email_opened_at" json:"email_opened_at,omitempty"`
	LinkClickedAt   *time.Time `db:"link_clicked_at" json:"link_clicked_at,omitempty"`
	DataSubmittedAt *time.Time `db:"data_submitted_at" json:"data_submitted_at,omitempty"`
	ReportedAt      *time.Time `db:"reported_at" json:"reported_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

func (t *Target) WasSent() bool   { return t.EmailSentAt != nil }
func (t *Target) WasOpened() bool { return t.EmailOpenedAt != nil }
func (t *Target) DidClick() bool  { return t.LinkClickedAt != nil }
func (t *Target) DidSubmit() bool { return t.DataSubmittedAt != nil }
func (t *Target) DidReport() bool { return t.ReportedAt != nil }

// FunnelStage returns the highest-order event recorded on the attacked path.
// Reporting is an independent signal and does not factor in.
func (t *Target) FunnelStage() FunnelStage {
	switch {
	case t.DidSubmit():
		return StageSubmitted
	case t.DidClick():
		return StageClicked
	case t.WasOpened():
		return StageOpened
	case t.WasSent():
		return StageSent
	}
	return StagePending
}

// LastActivity returns the most recent of the target's event timestamps,
// or nil when none are set.
func (t *Target) LastActivity() *time.Time {
	var latest *time.Time
	for _, ts := range []*time.Time{t.EmailSentAt, t.EmailOpenedAt, t.LinkClickedAt, t.DataSubmittedAt, t.ReportedAt} {
		if ts == nil {
			continue
		}
		if latest == nil || ts.After(*latest) {
			latest = ts
		}
	}
	return latest
}
