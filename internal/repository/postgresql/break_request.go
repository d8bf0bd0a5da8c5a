package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/breaks"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
)

type breakRequestRepository struct {
	db *database.DB
}

const breakRequestColumns = `
	br.id, br.attendance_id, br.employee_id, br.org_id,
	br.requested_start, br.requested_end,
	br.approved_start, br.approved_end, br.duration_minutes, br.break_id,
	br.status, br.notes, br.reviewer_id, br.reviewer_notes, br.reviewed_at,
	br.created_at, br.updated_at
`

// Create implements breaks.BreakRequestRepository.
func (b *breakRequestRepository) Create(ctx context.Context, request breaks.BreakRequest) (breaks.BreakRequest, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO break_requests (
			attendance_id, employee_id, org_id,
			requested_start, requested_end,
			approved_start, approved_end, duration_minutes, break_id,
			status, notes, reviewer_id, reviewer_notes, reviewed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.AttendanceID,
		request.EmployeeID,
		request.OrgID,
		request.RequestedStart,
		request.RequestedEnd,
		request.ApprovedStart,
		request.ApprovedEnd,
		request.DurationMinutes,
		request.BreakID,
		request.Status,
		request.Notes,
		request.ReviewerID,
		request.ReviewerNotes,
		request.ReviewedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return breaks.BreakRequest{}, fmt.Errorf("failed to create break request: %w", err)
	}

	return request, nil
}

// GetByID implements breaks.BreakRequestRepository.
func (b *breakRequestRepository) GetByID(ctx context.Context, id string, orgID string) (breaks.BreakRequest, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT ` + breakRequestColumns + `
		FROM break_requests br
		WHERE br.id = $1 AND br.org_id = $2
	`

	var req breaks.BreakRequest
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&req.ID, &req.AttendanceID, &req.EmployeeID, &req.OrgID,
		&req.RequestedStart, &req.RequestedEnd,
		&req.ApprovedStart, &req.ApprovedEnd, &req.DurationMinutes, &req.BreakID,
		&req.Status, &req.Notes, &req.ReviewerID, &req.ReviewerNotes, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return breaks.BreakRequest{}, breaks.ErrBreakRequestNotFound
		}
		return breaks.BreakRequest{}, fmt.Errorf("failed to get break request: %w", err)
	}

	return req, nil
}

// Update implements breaks.BreakRequestRepository.
func (b *breakRequestRepository) Update(ctx context.Context, request breaks.BreakRequest) error {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE break_requests
		SET approved_start = $1,
			approved_end = $2,
			duration_minutes = $3,
			break_id = $4,
			status = $5,
			notes = $6,
			reviewer_id = $7,
			reviewer_notes = $8,
			reviewed_at = $9,
			updated_at = NOW()
		WHERE id = $10 AND org_id = $11
	`

	tag, err := q.Exec(ctx, query,
		request.ApprovedStart,
		request.ApprovedEnd,
		request.DurationMinutes,
		request.BreakID,
		request.Status,
		request.Notes,
		request.ReviewerID,
		request.ReviewerNotes,
		request.ReviewedAt,
		request.ID,
		request.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to update break request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return breaks.ErrBreakRequestNotFound
	}

	return nil
}

// Delete implements breaks.BreakRequestRepository.
func (b *breakRequestRepository) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, b.db)

	query := `DELETE FROM break_requests WHERE id = $1 AND org_id = $2`

	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete break request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return breaks.ErrBreakRequestNotFound
	}

	return nil
}

// List implements breaks.BreakRequestRepository.
func (b *breakRequestRepository) List(ctx context.Context, filter breaks.BreakRequestFilter, orgID string) ([]breaks.BreakRequest, int64, error) {
	q := GetQuerier(ctx, b.db)

	baseWhere := "br.org_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND br.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.AttendanceID != nil && *filter.AttendanceID != "" {
		baseWhere += fmt.Sprintf(" AND br.attendance_id = $%d", argIdx)
		args = append(args, *filter.AttendanceID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND br.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM break_requests br WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count break requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+breakRequestColumns+`,
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')) AS employee_name
		FROM break_requests br
		LEFT JOIN employees e ON e.id = br.employee_id
		WHERE %s
		ORDER BY br.created_at DESC
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
		return nil, 0, fmt.Errorf("failed to query break requests: %w", err)
	}
	defer rows.Close()

	var requests []breaks.BreakRequest
	for rows.Next() {
		var req breaks.BreakRequest
		err := rows.Scan(
			&req.ID, &req.AttendanceID, &req.EmployeeID, &req.OrgID,
			&req.RequestedStart, &req.RequestedEnd,
			&req.ApprovedStart, &req.ApprovedEnd, &req.DurationMinutes, &req.BreakID,
			&req.Status, &req.Notes, &req.ReviewerID, &req.ReviewerNotes, &req.ReviewedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan break request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate break requests: %w", err)
	}

	return requests, total, nil
}

// NewBreakRequestRepository creates a new PostgreSQL break request repository
func NewBreakRequestRepository(db *database.DB) breaks.BreakRequestRepository {
	return &breakRequestRepository{db: db}
}
