package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/timeutil"
)

const absenceMarker = "system"

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	orgRepo        org.OrganizationRepository
	leaveRepo      leave.LeaveRepository
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	orgRepo org.OrganizationRepository,
	leaveRepo leave.LeaveRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		orgRepo:        orgRepo,
		leaveRepo:      leaveRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees writes zero-hour absence records for every active
// employee who had a scheduled working day yesterday but no attendance
// record and no approved leave. Runs hourly, acts only in the first hour
// after midnight UTC; the insert is idempotent so a rerun is harmless.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting absence sweep")

	yesterday := timeutil.DateOnly(time.Now().UTC().AddDate(0, 0, -1))

	organizations, err := j.orgRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	markedTotal := 0
	for _, organization := range organizations {
		marked, err := j.sweepOrganization(ctx, organization.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Absence sweep failed for organization",
				"org_id", organization.ID,
				"error", err)
			continue
		}
		markedTotal += marked
	}

	slog.Info("Cron: Absence sweep finished", "date", yesterday.Format("2006-01-02"), "marked", markedTotal)
	return nil
}

func (j *AttendanceJobs) sweepOrganization(ctx context.Context, orgID string, date time.Time) (int, error) {
	employees, err := j.employeeRepo.ListActive(ctx, orgID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	zero := 0
	note := "marked absent: no attendance recorded"

	var absences []attendance.Attendance
	for _, emp := range employees {
		if !emp.WorkingDays.Contains(date.Weekday()) {
			continue
		}
		if date.Before(timeutil.DateOnly(emp.EmploymentStart)) {
			continue
		}

		exists, err := j.attendanceRepo.HasRecordForDate(ctx, emp.ID, date.Format("2006-01-02"), orgID)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		approvedLeave, err := j.leaveRepo.ListApprovedInRange(ctx, emp.ID, orgID, date, date)
		if err != nil {
			return 0, err
		}
		if len(approvedLeave) > 0 {
			continue
		}

		absences = append(absences, attendance.Attendance{
			EmployeeID:  emp.ID,
			OrgID:       orgID,
			Date:        date,
			Breaks:      attendance.BreakList{},
			WorkMinutes: &zero,
			Notes:       &note,
			MarkedBy:    absenceMarker,
			Method:      attendance.MethodHR,
		})
	}

	if len(absences) == 0 {
		return 0, nil
	}

	if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
		return 0, fmt.Errorf("failed to insert absence records: %w", err)
	}

	return len(absences), nil
}
