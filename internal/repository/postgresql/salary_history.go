package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/salary"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
)

type salaryHistoryRepository struct {
	db *database.DB
}

const salaryColumns = `
	id, employee_id, org_id, previous_amount, amount, effective_from,
	schedule, reason, notes, created_by, created_at, updated_at
`

func scanSalaryRecord(row pgx.Row) (salary.Record, error) {
	var record salary.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.OrgID,
		&record.PreviousAmount, &record.Amount, &record.EffectiveFrom,
		&record.Schedule, &record.Reason, &record.Notes,
		&record.CreatedBy, &record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

// Create implements salary.SalaryRepository.
func (s *salaryHistoryRepository) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO salary_history (
			employee_id, org_id, previous_amount, amount, effective_from,
			schedule, reason, notes, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.OrgID,
		record.PreviousAmount,
		record.Amount,
		record.EffectiveFrom,
		record.Schedule,
		record.Reason,
		record.Notes,
		record.CreatedBy,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return salary.Record{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return record, nil
}

// GetInForce implements salary.SalaryRepository. Ties on effective_from resolve to
// the most recently created row.
func (s *salaryHistoryRepository) GetInForce(ctx context.Context, employeeID string, orgID string, date time.Time) (salary.Record, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_history
		WHERE employee_id = $1
		  AND org_id = $2
		  AND effective_from <= $3
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1
	`

	record, err := scanSalaryRecord(q.QueryRow(ctx, query, employeeID, orgID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrNoSalaryInForce
		}
		return salary.Record{}, fmt.Errorf("failed to get salary in force: %w", err)
	}

	return record, nil
}

// GetPending implements salary.SalaryRepository.
func (s *salaryHistoryRepository) GetPending(ctx context.Context, employeeID string, orgID string, after time.Time) (salary.Record, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_history
		WHERE employee_id = $1
		  AND org_id = $2
		  AND effective_from > $3
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1
	`

	record, err := scanSalaryRecord(q.QueryRow(ctx, query, employeeID, orgID, after))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get pending salary: %w", err)
	}

	return record, nil
}

// ListByEmployee implements salary.SalaryRepository.
func (s *salaryHistoryRepository) ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]salary.Record, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_history
		WHERE employee_id = $1 AND org_id = $2
		ORDER BY effective_from DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary history: %w", err)
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		record, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary history: %w", err)
	}

	return records, nil
}

// NewSalaryHistoryRepository creates a new PostgreSQL salary history repository
func NewSalaryHistoryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryHistoryRepository{db: db}
}
