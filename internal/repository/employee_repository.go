package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/phishguard/phishsim-backend/internal/model"
)

// EmployeeRepositoryInterface defines methods used by services. Employees are
// reference data owned elsewhere; this service only reads them.
type EmployeeRepositoryInterface interface {
	GetByID(id uuid.UUID) (*model.Employee, error)
	ListByCompany(companyID uuid.UUID) ([]model.Employee, error)
}

// EmployeeRepository is the concrete implementation
type EmployeeRepository struct {
	DB *sql.DB
}

// GetByID fetches an employee by ID
func (r *EmployeeRepository) GetByID(id uuid.UUID) (*model.Employee, error) {
	query := `
        SELECT id, company_id, first_name, last_name, email, department
        FROM employees
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var e model.Employee
	if err := row.Scan(&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.Email, &e.Department); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &e, nil
}

// ListByCompany fetches every employee of a company (used for campaign fan-out)
func (r *EmployeeRepository) ListByCompany(companyID uuid.UUID) ([]model.Employee, error) {
	query := `
        SELECT id, company_id, first_name, last_name, email, department
        FROM employees
        WHERE company_id = $1
        ORDER BY last_name, first_name
    `
	rows, err := r.DB.Query(query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.Email, &e.Department); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

var _ EmployeeRepositoryInterface = (*EmployeeRepository)(nil)
