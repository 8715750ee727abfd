package employee

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	employees, err := e.employeeRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employee.ToResponses(employees), nil
}
