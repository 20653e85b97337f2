// internal/model/employee.go
package model

import "github.com/google/uuid"

// Employee and Company are reference entities owned elsewhere in the product.
// This service only reads them for fan-out and report display fields.

type Employee struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CompanyID  uuid.UUID `db:"company_id" json:"company_id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Email      string    `db:"email" json:"email"`
	Department string    `db:"department" json:"department"`
}

type Company struct {
	ID     uuid.UUID `db:"id" json:"id"`
	Name   string    `db:"name" json:"name"`
	Domain string    `db:"domain" json:"domain"`
}
