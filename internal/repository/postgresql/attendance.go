package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, a.org_id, a.date,
	a.check_in, a.check_out, a.breaks, a.work_minutes,
	a.notes, a.marked_by, a.method, a.version,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.OrgID, &att.Date,
		&att.CheckIn, &att.CheckOut, &att.Breaks, &att.WorkMinutes,
		&att.Notes, &att.MarkedBy, &att.Method, &att.Version,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, org_id, date, check_in, check_out,
			breaks, work_minutes, notes, marked_by, method, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1
		) RETURNING id, version, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.OrgID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.Breaks,
		newAttendance.WorkMinutes,
		newAttendance.Notes,
		newAttendance.MarkedBy,
		newAttendance.Method,
	).Scan(&newAttendance.ID, &newAttendance.Version, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, orgID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.id = $1 AND a.org_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.org_id = $3
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, orgID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1,
			check_out = $2,
			breaks = $3,
			work_minutes = $4,
			notes = $5,
			marked_by = $6,
			method = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $8 AND org_id = $9
	`

	tag, err := q.Exec(ctx, query,
		att.CheckIn,
		att.CheckOut,
		att.Breaks,
		att.WorkMinutes,
		att.Notes,
		att.MarkedBy,
		att.Method,
		att.ID,
		att.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// UpdateBreaks implements attendance.AttendanceRepository. The UPDATE is
// conditional on the version read earlier; zero rows affected means another
// writer got there first and the caller must re-read and retry.
func (a *attendanceRepository) UpdateBreaks(ctx context.Context, id string, orgID string, breaks attendance.BreakList, workMinutes int, expectedVersion int) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET breaks = $1,
			work_minutes = $2,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $3 AND org_id = $4 AND version = $5
	`

	tag, err := q.Exec(ctx, query, breaks, workMinutes, id, orgID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update breaks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a version miss
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM attendances WHERE id = $1 AND org_id = $2)`
		if err := q.QueryRow(ctx, checkQuery, id, orgID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check attendance existence: %w", err)
		}
		if !exists {
			return attendance.ErrAttendanceNotFound
		}
		return attendance.ErrVersionConflict
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "a.org_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND (e.first_name || ' ' || COALESCE(e.last_name, '')) ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total (need to join employees for name filter)
	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Build ORDER BY
	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.first_name"
	case "check_in_time":
		orderByField = "a.check_in"
	case "check_out_time":
		orderByField = "a.check_out"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`,
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')) AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.OrgID, &att.Date,
			&att.CheckIn, &att.CheckOut, &att.Breaks, &att.WorkMinutes,
			&att.Notes, &att.MarkedBy, &att.Method, &att.Version,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.employee_id = $1 AND a.org_id = $2"
	args := []interface{}{employeeID, orgID}
	argIdx := 3

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "check_in_time":
		orderByField = "a.check_in"
	case "check_out_time":
		orderByField = "a.check_out"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`
		FROM attendances a
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.OrgID, &att.Date,
			&att.CheckIn, &att.CheckOut, &att.Breaks, &att.WorkMinutes,
			&att.Notes, &att.MarkedBy, &att.Method, &att.Version,
			&att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, orgID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.org_id = $2
		  AND a.date >= $3
		  AND a.date <= $4
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances by range: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.OrgID, &att.Date,
			&att.CheckIn, &att.CheckOut, &att.Breaks, &att.WorkMinutes,
			&att.Notes, &att.MarkedBy, &att.Method, &att.Version,
			&att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, nil
}

// HasRecordForDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) HasRecordForDate(ctx context.Context, employeeID string, date string, orgID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND date = $2 AND org_id = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, orgID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance record: %w", err)
	}

	return exists, nil
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
func (a *attendanceRepository) BulkCreateAbsences(ctx context.Context, absences []attendance.Attendance) error {
	if len(absences) == 0 {
		return nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, org_id, date, breaks, work_minutes, notes, marked_by, method, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, 1
		) ON CONFLICT (employee_id, date) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, abs := range absences {
		batch.Queue(query,
			abs.EmployeeID,
			abs.OrgID,
			abs.Date,
			abs.Breaks,
			abs.WorkMinutes,
			abs.Notes,
			abs.MarkedBy,
			abs.Method,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range absences {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert absence record: %w", err)
		}
	}

	return nil
}

// NewAttendanceRepository creates a new PostgreSQL attendance repository
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
