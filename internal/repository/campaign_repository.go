package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/phishguard/phishsim-backend/internal/errors"
	"github.com/phishguard/phishsim-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id uuid.UUID) (*model.Campaign, error)
	ListCampaigns(companyID uuid.UUID, offset, limit int, status string) ([]*model.Campaign, int, error)
	ListCreatedSince(companyID uuid.UUID, since time.Time) ([]*model.Campaign, error)
	Update(c *model.Campaign) error
	UpdateStatus(campaignID uuid.UUID, status model.CampaignStatus, startDate, endDate *time.Time) error
	Delete(campaignID uuid.UUID) error
}

type CampaignRepository struct {
	DB *sql.DB
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.StatusDraft
	}
	query := `
        INSERT INTO campaigns
            (id, company_id, name, description, status, subject, body_template,
             sender_name, sender_email, landing_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err := r.DB.Exec(query,
		c.ID, c.CompanyID, c.Name, c.Description, c.Status, c.Subject,
		c.BodyTemplate, c.SenderName, c.SenderEmail, c.LandingURL, c.CreatedAt,
	)
	return err
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET name=$1, description=$2, subject=$3, body_template=$4,
            sender_name=$5, sender_email=$6, landing_url=$7, updated_at=NOW()
        WHERE id=$8
    `
	_, err := r.DB.Exec(query, c.Name, c.Description, c.Subject, c.BodyTemplate,
		c.SenderName, c.SenderEmail, c.LandingURL, c.ID)
	return err
}

// UpdateStatus applies a lifecycle transition as one atomic statement.
// A nil startDate/endDate leaves the stored value untouched, so resuming a
// paused campaign preserves its original start date.
func (r *CampaignRepository) UpdateStatus(campaignID uuid.UUID, status model.CampaignStatus, startDate, endDate *time.Time) error {
	query := `
        UPDATE campaigns
        SET status=$1,
            start_date=COALESCE($2, start_date),
            end_date=COALESCE($3, end_date),
            updated_at=NOW()
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, status, startDate, endDate, campaignID)
	return err
}

func (r *CampaignRepository) GetByID(id uuid.UUID) (*model.Campaign, error) {
	query := `
        SELECT id, company_id, name, description, status, subject, body_template,
               sender_name, sender_email, landing_url, start_date, end_date,
               created_at, updated_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Status, &c.Subject,
		&c.BodyTemplate, &c.SenderName, &c.SenderEmail, &c.LandingURL,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(companyID uuid.UUID, offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `
        SELECT id, company_id, name, description, status, subject, body_template,
               sender_name, sender_email, landing_url, start_date, end_date,
               created_at, updated_at
        FROM campaigns WHERE company_id=$1`
	args := []interface{}{companyID}
	argPos := 2

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Status, &c.Subject,
			&c.BodyTemplate, &c.SenderName, &c.SenderEmail, &c.LandingURL,
			&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE company_id=$1`
	argsCount := []interface{}{companyID}
	if status != "" {
		countQuery += " AND status=$2"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// ListCreatedSince feeds the monthly trend rollup.
func (r *CampaignRepository) ListCreatedSince(companyID uuid.UUID, since time.Time) ([]*model.Campaign, error) {
	query := `
        SELECT id, company_id, name, description, status, subject, body_template,
               sender_name, sender_email, landing_url, start_date, end_date,
               created_at, updated_at
        FROM campaigns
        WHERE company_id=$1 AND created_at >= $2
        ORDER BY created_at
    `
	rows, err := r.DB.Query(query, companyID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Status, &c.Subject,
			&c.BodyTemplate, &c.SenderName, &c.SenderEmail, &c.LandingURL,
			&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// Delete removes a campaign and all of its targets in one transaction so a
// failed delete never leaves orphan targets behind.
func (r *CampaignRepository) Delete(campaignID uuid.UUID) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM targets WHERE campaign_id=$1`, campaignID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM campaigns WHERE id=$1`, campaignID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
