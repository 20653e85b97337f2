// internal/service/campaign_service.go
package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/phishguard/phishsim-backend/internal/errors"
	"github.com/phishguard/phishsim-backend/internal/metrics"
	"github.com/phishguard/phishsim-backend/internal/model"
	"github.com/phishguard/phishsim-backend/internal/queue"
	"github.com/phishguard/phishsim-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	TargetRepo   repository.TargetRepositoryInterface
	EmployeeRepo repository.EmployeeRepositoryInterface
	CompanyRepo  repository.CompanyRepositoryInterface
	Queue        queue.Queue
	Thresholds   metrics.RiskThresholds
}

// Result struct for StartCampaign
type StartCampaignResult struct {
	CampaignID    uuid.UUID
	TargetsQueued int
	Status        model.CampaignStatus
	TargetIDs     []uuid.UUID
}

type CampaignDetails struct {
	ID           uuid.UUID            `json:"id"`
	CompanyID    uuid.UUID            `json:"company_id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Status       model.CampaignStatus `json:"status"`
	Subject      string               `json:"subject"`
	BodyTemplate string               `json:"body_template"`
	SenderName   string               `json:"sender_name"`
	SenderEmail  string               `json:"sender_email"`
	LandingURL   string               `json:"landing_url"`
	StartDate    *time.Time           `json:"start_date,omitempty"`
	EndDate      *time.Time           `json:"end_date,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    *time.Time           `json:"updated_at,omitempty"`
	Metrics      metrics.Summary      `json:"metrics"`
}

type PreviewResult struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *CampaignService) CreateCampaign(companyID uuid.UUID, name, description, subject, bodyTemplate, senderName, senderEmail, landingURL string) (*model.Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("campaign name is required")
	}

	c := &model.Campaign{
		CompanyID:    companyID,
		Name:         name,
		Description:  description,
		Subject:      subject,
		BodyTemplate: bodyTemplate,
		SenderName:   senderName,
		SenderEmail:  senderEmail,
		LandingURL:   landingURL,
		Status:       model.StatusDraft,
	}

	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}

	return c, nil
}

// transition loads the campaign, checks the lifecycle graph and applies the
// status change as a single repository update. All four lifecycle actions
// funnel through here so the legality check is never duplicated.
func (s *CampaignService) transition(campaignID uuid.UUID, next model.CampaignStatus, startDate, endDate *time.Time) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	if !campaign.Status.CanTransitionTo(next) {
		return nil, appErrors.NewInvalidTransition(campaign.Status, next)
	}

	if err := s.CampaignRepo.UpdateStatus(campaignID, next, startDate, endDate); err != nil {
		return nil, err
	}

	campaign.Status = next
	if startDate != nil {
		campaign.StartDate = startDate
	}
	if endDate != nil {
		campaign.EndDate = endDate
	}
	return campaign, nil
}

// StartCampaign moves a draft campaign to active, fans out one target per
// employee and queues each for simulated delivery. An empty employeeIDs slice
// means the whole company.
func (s *CampaignService) StartCampaign(campaignID uuid.UUID, employeeIDs []uuid.UUID) (*StartCampaignResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Status != model.StatusDraft {
		return nil, appErrors.NewInvalidTransition(campaign.Status, model.StatusActive)
	}

	if len(employeeIDs) == 0 {
		employees, err := s.EmployeeRepo.ListByCompany(campaign.CompanyID)
		if err != nil {
			return nil, err
		}
		for _, e := range employees {
			employeeIDs = append(employeeIDs, e.ID)
		}
	}
	if len(employeeIDs) == 0 {
		return nil, fmt.Errorf("campaign has no employees to target")
	}

	now := time.Now()
	if _, err := s.transition(campaignID, model.StatusActive, &now, nil); err != nil {
		return nil, err
	}

	targets, err := s.TargetRepo.CreateBatch(campaignID, employeeIDs)
	if err != nil {
		return nil, err
	}

	result := &StartCampaignResult{
		CampaignID: campaignID,
		Status:     model.StatusActive,
		TargetIDs:  []uuid.UUID{},
	}

	for _, t := range targets {
		if s.Queue != nil {
			if err := s.Queue.Publish(queue.TopicSimulatedSends, t.ID); err != nil {
				log.Println("⚠️ failed to enqueue target", t.ID, ":", err)
				continue
			}
		}
		result.TargetIDs = append(result.TargetIDs, t.ID)
		result.TargetsQueued++
	}

	return result, nil
}

// PauseCampaign halts an active campaign. Timestamps are untouched.
func (s *CampaignService) PauseCampaign(campaignID uuid.UUID) (*model.Campaign, error) {
	return s.transition(campaignID, model.StatusPaused, nil, nil)
}

// ResumeCampaign reactivates a paused campaign, preserving the original start date.
func (s *CampaignService) ResumeCampaign(campaignID uuid.UUID) (*model.Campaign, error) {
	return s.transition(campaignID, model.StatusActive, nil, nil)
}

// StopCampaign ends an active or paused campaign. Terminal.
func (s *CampaignService) StopCampaign(campaignID uuid.UUID) (*model.Campaign, error) {
	now := time.Now()
	return s.transition(campaignID, model.StatusCompleted, nil, &now)
}

// DeleteCampaign removes a campaign from any state, cascading to its targets.
func (s *CampaignService) DeleteCampaign(campaignID uuid.UUID) error {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return err
	}
	return s.CampaignRepo.Delete(campaignID)
}

func (s *CampaignService) RenderPreview(campaignID, employeeID uuid.UUID, overrideBody *string) (*PreviewResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	employee, err := s.EmployeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("employee not found")
	}

	companyName := ""
	if s.CompanyRepo != nil {
		company, err := s.CompanyRepo.GetByID(employee.CompanyID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			companyName = company.Name
		}
	}

	body := campaign.BodyTemplate
	if overrideBody != nil && strings.TrimSpace(*overrideBody) != "" {
		body = *overrideBody
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("template cannot be empty")
	}

	fields := EmployeeFields(employee, companyName)
	return &PreviewResult{
		Subject: RenderTemplate(campaign.Subject, fields),
		Body:    RenderTemplate(body, fields),
	}, nil
}

// RecordTargetEvent applies a simulated engagement event to a target.
// Reporting is accepted at any funnel position.
func (s *CampaignService) RecordTargetEvent(targetID uuid.UUID, event repository.TargetEvent) error {
	target, err := s.TargetRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return appErrors.NewTargetNotFound(targetID)
	}
	return s.TargetRepo.RecordEvent(targetID, event, time.Now())
}

// ListCampaigns fetches a company's campaigns with pagination
func (s *CampaignService) ListCampaigns(companyID uuid.UUID, page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(companyID, offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// GetCampaignDetailsWithStats fetches a campaign and computes its funnel metrics
func (s *CampaignService) GetCampaignDetailsWithStats(campaignID uuid.UUID) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	targets, err := s.TargetRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	return &CampaignDetails{
		ID:           campaign.ID,
		CompanyID:    campaign.CompanyID,
		Name:         campaign.Name,
		Description:  campaign.Description,
		Status:       campaign.Status,
		Subject:      campaign.Subject,
		BodyTemplate: campaign.BodyTemplate,
		SenderName:   campaign.SenderName,
		SenderEmail:  campaign.SenderEmail,
		LandingURL:   campaign.LandingURL,
		StartDate:    campaign.StartDate,
		EndDate:      campaign.EndDate,
		CreatedAt:    campaign.CreatedAt,
		UpdatedAt:    campaign.UpdatedAt,
		Metrics:      metrics.Compute(targets, s.Thresholds),
	}, nil
}
