// internal/service/report_service.go
package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/metrics"
	"github.com/phishguard/phishsim-backend/internal/repository"
)

// ReportService produces the company, employee and trend rollups. Every view
// reuses metrics.Compute; only the grouping key and the pre-filter differ.
type ReportService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	TargetRepo   repository.TargetRepositoryInterface
	EmployeeRepo repository.EmployeeRepositoryInterface
	CompanyRepo  repository.CompanyRepositoryInterface
	Thresholds   metrics.RiskThresholds
}

type CompanyReport struct {
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	metrics.Summary
}

type EmployeeReport struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	metrics.Summary
}

// CompanyReport aggregates every target across all of a company's campaigns.
// The optional range filters on target creation time.
func (s *ReportService) CompanyReport(companyID uuid.UUID, from, to *time.Time) (*CompanyReport, error) {
	targets, err := s.TargetRepo.ListByCompany(companyID, from, to)
	if err != nil {
		return nil, err
	}

	report := &CompanyReport{
		CompanyID: companyID,
		Summary:   metrics.Compute(targets, s.Thresholds),
	}

	if s.CompanyRepo != nil {
		company, err := s.CompanyRepo.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			report.CompanyName = company.Name
		}
	}

	return report, nil
}

// EmployeeReports computes one summary row per employee across every campaign
// that targeted them.
func (s *ReportService) EmployeeReports(companyID uuid.UUID) ([]EmployeeReport, error) {
	employees, err := s.EmployeeRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}

	reports := make([]EmployeeReport, 0, len(employees))
	for _, e := range employees {
		targets, err := s.TargetRepo.ListByEmployee(e.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, EmployeeReport{
			EmployeeID: e.ID,
			Name:       e.FirstName + " " + e.LastName,
			Department: e.Department,
			Summary:    metrics.Compute(targets, s.Thresholds),
		})
	}
	return reports, nil
}

// MonthlyTrends buckets the last `months` months of campaigns by creation
// month and summarizes each bucket. Empty months stay on the axis with zeros.
func (s *ReportService) MonthlyTrends(companyID uuid.UUID, months int) ([]metrics.TrendPoint, error) {
	if months < 1 {
		months = 6
	}
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	campaigns, err := s.CampaignRepo.ListCreatedSince(companyID, since)
	if err != nil {
		return nil, err
	}

	rows := make([]metrics.CampaignTargets, 0, len(campaigns))
	for _, c := range campaigns {
		targets, err := s.TargetRepo.ListByCampaign(c.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, metrics.CampaignTargets{
			CreatedAt: c.CreatedAt,
			Targets:   targets,
		})
	}

	return metrics.MonthlyTrend(rows, months, now, s.Thresholds), nil
}
