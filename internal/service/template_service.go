// internal/service/template_service.go
package service

import (
	"strings"

	"github.com/phishguard/phishsim-backend/internal/model"
)

func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		if v == "" {
			v = "<unknown>"
		}
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// EmployeeFields builds the placeholder set available to subject and body
// templates for one recipient.
func EmployeeFields(e *model.Employee, companyName string) map[string]string {
	return map[string]string{
		"first_name": e.FirstName,
		"last_name":  e.LastName,
		"email":      e.Email,
		"department": e.Department,
		"company":    companyName,
	}
}
