package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/model"
)

// TargetEvent names a simulated email engagement event on a target.
type TargetEvent string

const (
	EventSent      TargetEvent = "sent"
	EventOpened    TargetEvent = "opened"
	EventClicked   TargetEvent = "clicked"
	EventSubmitted TargetEvent = "submitted"
	EventReported  TargetEvent = "reported"
)

// eventColumns maps each event to the timestamp column it stamps. Only these
// columns are ever interpolated into SQL.
var eventColumns = map[TargetEvent]string{
	EventSent:      "email_sent_at",
	EventOpened:    "email_opened_at",
	EventClicked:   "link_clicked_at",
	EventSubmitted: "data_submitted_at",
	EventReported:  "reported_at",
}

type TargetRepositoryInterface interface {
	CreateBatch(campaignID uuid.UUID, employeeIDs []uuid.UUID) ([]*model.Target, error)
	GetByID(id uuid.UUID) (*model.Target, error)
	ListByCampaign(campaignID uuid.UUID) ([]model.Target, error)
	ListByEmployee(employeeID uuid.UUID) ([]model.Target, error)
	ListByCompany(companyID uuid.UUID, from, to *time.Time) ([]model.Target, error)
	RecordEvent(id uuid.UUID, event TargetEvent, at time.Time) error
}

type TargetRepository struct {
	DB *sql.DB
}

const targetColumns = `id, campaign_id, employee_id, email_sent_at, email_opened_at,
        link_clicked_at, data_submitted_at, reported_at, created_at`

func scanTarget(row interface{ Scan(...interface{}) error }, t *model.Target) error {
	return row.Scan(
		&t.ID, &t.CampaignID, &t.EmployeeID, &t.EmailSentAt, &t.EmailOpenedAt,
		&t.LinkClickedAt, &t.DataSubmittedAt, &t.ReportedAt, &t.CreatedAt,
	)
}

// CreateBatch fans a campaign out to the given employees. Idempotent per
// (campaign, employee): an employee who already has a target row keeps it.
func (r *TargetRepository) CreateBatch(campaignID uuid.UUID, employeeIDs []uuid.UUID) ([]*model.Target, error) {
	created := []*model.Target{}
	for _, employeeID := range employeeIDs {
		existing, err := r.getByCampaignAndEmployee(campaignID, employeeID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			created = append(created, existing)
			continue
		}

		t := &model.Target{
			ID:         uuid.New(),
			CampaignID: campaignID,
			EmployeeID: employeeID,
			CreatedAt:  time.Now(),
		}
		query := `
            INSERT INTO targets (id, campaign_id, employee_id, created_at)
            VALUES ($1, $2, $3, $4)
        `
		if _, err := r.DB.Exec(query, t.ID, t.CampaignID, t.EmployeeID, t.CreatedAt); err != nil {
			return nil, err
		}
		created = append(created, t)
	}
	return created, nil
}

func (r *TargetRepository) getByCampaignAndEmployee(campaignID, employeeID uuid.UUID) (*model.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets WHERE campaign_id=$1 AND employee_id=$2`
	var t model.Target
	err := scanTarget(r.DB.QueryRow(query, campaignID, employeeID), &t)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TargetRepository) GetByID(id uuid.UUID) (*model.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets WHERE id=$1`
	var t model.Target
	err := scanTarget(r.DB.QueryRow(query, id), &t)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TargetRepository) ListByCampaign(campaignID uuid.UUID) ([]model.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets WHERE campaign_id=$1 ORDER BY created_at`
	return r.list(query, campaignID)
}

func (r *TargetRepository) ListByEmployee(employeeID uuid.UUID) ([]model.Target, error) {
	query := `SELECT ` + targetColumns + ` FROM targets WHERE employee_id=$1 ORDER BY created_at`
	return r.list(query, employeeID)
}

// ListByCompany joins through campaigns so report rollups stay scoped to the
// caller's own company. The optional range filters on target creation time.
func (r *TargetRepository) ListByCompany(companyID uuid.UUID, from, to *time.Time) ([]model.Target, error) {
	query := `
        SELECT t.id, t.campaign_id, t.employee_id, t.email_sent_at, t.email_opened_at,
               t.link_clicked_at, t.data_submitted_at, t.reported_at, t.created_at
        FROM targets t
        JOIN campaigns c ON c.id = t.campaign_id
        WHERE c.company_id=$1`
	args := []interface{}{companyID}
	argPos := 2
	if from != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", argPos)
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND t.created_at <= $%d", argPos)
		args = append(args, *to)
	}
	query += " ORDER BY t.created_at"
	return r.list(query, args...)
}

func (r *TargetRepository) list(query string, args ...interface{}) ([]model.Target, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := []model.Target{}
	for rows.Next() {
		var t model.Target
		if err := scanTarget(rows, &t); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// RecordEvent stamps the event's timestamp column. First write wins: a second
// open or click on the same target leaves the original timestamp in place.
func (r *TargetRepository) RecordEvent(id uuid.UUID, event TargetEvent, at time.Time) error {
	column, ok := eventColumns[event]
	if !ok {
		return fmt.Errorf("unknown target event: %s", event)
	}
	query := fmt.Sprintf(`UPDATE targets SET %s=$1 WHERE id=$2 AND %s IS NULL`, column, column)
	_, err := r.DB.Exec(query, at, id)
	return err
}

var _ TargetRepositoryInterface = (*TargetRepository)(nil)
