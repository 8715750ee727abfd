package employee

import "context"

type EmployeeService interface {
	List(ctx context.Context, companyID string) ([]EmployeeResponse, error)
}
