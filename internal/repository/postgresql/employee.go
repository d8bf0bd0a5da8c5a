package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `
	id, org_id, first_name, last_name, email, role,
	working_days, daily_hours, base_salary, require_wifi_check,
	employment_start, is_active, created_at, updated_at
`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string, orgID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND org_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&emp.ID, &emp.OrgID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Role,
		&emp.WorkingDays, &emp.DailyHours, &emp.BaseSalary, &emp.RequireWiFiCheck,
		&emp.EmploymentStart, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepository) ListActive(ctx context.Context, orgID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE org_id = $1 AND is_active = TRUE
		ORDER BY first_name ASC
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.OrgID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Role,
			&emp.WorkingDays, &emp.DailyHours, &emp.BaseSalary, &emp.RequireWiFiCheck,
			&emp.EmploymentStart, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// UpdateSchedule implements employee.EmployeeRepository.
func (e *employeeRepository) UpdateSchedule(ctx context.Context, id string, orgID string, days employee.WorkingDays, dailyHours string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET working_days = $1,
			daily_hours = $2,
			updated_at = NOW()
		WHERE id = $3 AND org_id = $4
	`

	tag, err := q.Exec(ctx, query, days, dailyHours, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to update employee schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateWiFiCheck implements employee.EmployeeRepository.
func (e *employeeRepository) UpdateWiFiCheck(ctx context.Context, id string, orgID string, required bool) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET require_wifi_check = $1,
			updated_at = NOW()
		WHERE id = $2 AND org_id = $3
	`

	tag, err := q.Exec(ctx, query, required, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to update wifi check flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// NewEmployeeRepository creates a new PostgreSQL employee repository
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
