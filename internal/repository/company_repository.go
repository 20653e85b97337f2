package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/model"
)

type CompanyRepositoryInterface interface {
	GetByID(id uuid.UUID) (*model.Company, error)
}

type CompanyRepository struct {
	DB *sql.DB
}

func (r *CompanyRepository) GetByID(id uuid.UUID) (*model.Company, error) {
	query := `SELECT id, name, domain FROM companies WHERE id = $1`
	var c model.Company
	if err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Domain); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

var _ CompanyRepositoryInterface = (*CompanyRepository)(nil)
