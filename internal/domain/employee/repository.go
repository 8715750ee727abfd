package employee

import "context"

type EmployeeRepository interface {
	// ListByCompany returns every employee of the company.
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// GetByEmail is used by login; it includes the password hash.
	GetByEmail(ctx context.Context, email string) (Employee, error)

	Create(ctx context.Context, newEmployee Employee) (Employee, error)
}
