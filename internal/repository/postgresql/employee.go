package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// ListByCompany implements employee.EmployeeRepository.
func (e *employeeRepository) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `
		SELECT id, company_id, full_name, email, role, shift_start, shift_end
		FROM employees
		WHERE company_id = $1
		ORDER BY full_name
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var (
			emp  employee.Employee
			role string
		)
		if err := rows.Scan(&emp.ID, &emp.CompanyID, &emp.FullName, &emp.Email, &role, &emp.ShiftStart, &emp.ShiftEnd); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		emp.Role = employee.Role(role)
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var (
		emp  employee.Employee
		role string
	)
	err := q.QueryRow(ctx, `
		SELECT id, company_id, full_name, email, role, shift_start, shift_end, password_hash
		FROM employees
		WHERE lower(email) = lower($1)
	`, email).Scan(&emp.ID, &emp.CompanyID, &emp.FullName, &emp.Email, &role, &emp.ShiftStart, &emp.ShiftEnd, &emp.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	emp.Role = employee.Role(role)

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx, `
		INSERT INTO employees (id, company_id, full_name, email, role, shift_start, shift_end, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		newEmployee.ID, newEmployee.CompanyID, newEmployee.FullName, newEmployee.Email,
		string(newEmployee.Role), newEmployee.ShiftStart, newEmployee.ShiftEnd, newEmployee.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailAlreadyExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}
