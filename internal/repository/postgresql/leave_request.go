package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.org_id, lr.type, lr.start_date, lr.end_date, lr.reason,
	lr.status, lr.reviewer_id, lr.reviewer_notes, lr.reviewed_at,
	lr.created_at, lr.updated_at
`

// Create implements leave.LeaveRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, org_id, type, start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.OrgID,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string, orgID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1 AND lr.org_id = $2
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&req.ID, &req.EmployeeID, &req.OrgID, &req.Type, &req.StartDate, &req.EndDate, &req.Reason,
		&req.Status, &req.ReviewerID, &req.ReviewerNotes, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// Update implements leave.LeaveRepository.
func (l *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			reviewer_id = $2,
			reviewer_notes = $3,
			reviewed_at = $4,
			updated_at = NOW()
		WHERE id = $5 AND org_id = $6
	`

	tag, err := q.Exec(ctx, query,
		request.Status,
		request.ReviewerID,
		request.ReviewerNotes,
		request.ReviewedAt,
		request.ID,
		request.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// List implements leave.LeaveRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter, orgID string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "lr.org_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+leaveRequestColumns+`,
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')) AS employee_name
		FROM leave_requests lr
		LEFT JOIN employees e ON e.id = lr.employee_id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.OrgID, &req.Type, &req.StartDate, &req.EndDate, &req.Reason,
			&req.Status, &req.ReviewerID, &req.ReviewerNotes, &req.ReviewedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, total, nil
}

// ListApprovedInRange implements leave.LeaveRepository.
func (l *leaveRequestRepository) ListApprovedInRange(ctx context.Context, employeeID string, orgID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
		  AND lr.org_id = $2
		  AND lr.status = 'approved'
		  AND lr.start_date <= $4
		  AND lr.end_date >= $3
		ORDER BY lr.start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.OrgID, &req.Type, &req.StartDate, &req.EndDate, &req.Reason,
			&req.Status, &req.ReviewerID, &req.ReviewerNotes, &req.ReviewedAt,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}

// GetBalance implements leave.LeaveRepository.
func (l *leaveRequestRepository) GetBalance(ctx context.Context, employeeID string, orgID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT employee_id, org_id, year, total_days, used_days, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND org_id = $2 AND year = $3
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, employeeID, orgID, year).Scan(
		&balance.EmployeeID, &balance.OrgID, &balance.Year,
		&balance.TotalDays, &balance.UsedDays, &balance.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// DebitBalance implements leave.LeaveRepository. The first debit of a year
// creates the row with the default allowance.
func (l *leaveRequestRepository) DebitBalance(ctx context.Context, employeeID string, orgID string, year int, days int) error {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_balances (employee_id, org_id, year, total_days, used_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id, org_id, year)
		DO UPDATE SET used_days = leave_balances.used_days + EXCLUDED.used_days,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, employeeID, orgID, year, leave.DefaultAnnualAllowance, days); err != nil {
		return fmt.Errorf("failed to debit leave balance: %w", err)
	}

	return nil
}

// NewLeaveRequestRepository creates a new PostgreSQL leave request repository
func NewLeaveRequestRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRequestRepository{db: db}
}
