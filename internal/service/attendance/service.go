package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/timeutil"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/wifi"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	org.OrganizationRepository
	minimumValidHours float64
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func claimsFromContext(ctx context.Context) (employeeID string, orgID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", "", fmt.Errorf("org_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, orgID, nil
}

func (a *AttendanceServiceImpl) toResponse(att attendance.Attendance, employeeName string) attendance.AttendanceResponse {
	breaks := make([]attendance.BreakResponse, 0, len(att.Breaks))
	for _, b := range att.Breaks {
		breaks = append(breaks, attendance.BreakResponse{
			ID:              b.ID,
			StartTime:       b.StartTime.Format(time.RFC3339),
			EndTime:         b.EndTime.Format(time.RFC3339),
			DurationMinutes: timeutil.MinutesBetween(b.StartTime, b.EndTime),
			Notes:           b.Notes,
		})
	}

	netHours := attendance.NetHours(att)

	return attendance.AttendanceResponse{
		ID:            att.ID,
		EmployeeID:    att.EmployeeID,
		EmployeeName:  employeeName,
		Date:          att.Date.Format("2006-01-02"),
		CheckInTime:   timePtrToString(att.CheckIn),
		CheckOutTime:  timePtrToString(att.CheckOut),
		Breaks:        breaks,
		NetHours:      netHours,
		NetHoursLabel: timeutil.FormatHours(netHours),
		Status:        attendance.ResolveStatus(att),
		IsValidDay:    attendance.IsValidDay(att, a.minimumValidHours),
		Notes:         att.Notes,
		MarkedBy:      att.MarkedBy,
		Method:        att.Method,
		CreatedAt:     att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     att.UpdatedAt.Format(time.RFC3339),
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if emp.RequireWiFiCheck {
		organization, err := a.OrganizationRepository.GetByID(ctx, orgID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}

		ssid := ""
		if req.SSID != nil {
			ssid = *req.SSID
		}
		if !wifi.IsAdmitted(ssid, organization.AllowedSSIDs) {
			return attendance.AttendanceResponse{}, attendance.ErrLocationVerificationFailed
		}
	}

	now := time.Now().UTC()
	today := timeutil.DateOnly(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing != nil && existing.CheckIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	if existing != nil {
		// A zero-hour record exists for today (nightly absence sweep).
		// Reclaim it rather than violating the one-row-per-day rule.
		existing.CheckIn = &now
		existing.Notes = req.Notes
		existing.MarkedBy = employeeID
		existing.Method = attendance.MethodSelfService
		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return a.toResponse(*existing, emp.FullName()), nil
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		OrgID:      orgID,
		Date:       today,
		CheckIn:    &now,
		Breaks:     attendance.BreakList{},
		Notes:      req.Notes,
		MarkedBy:   employeeID,
		Method:     attendance.MethodSelfService,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(created, emp.FullName()), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	today := timeutil.DateOnly(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing == nil || existing.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	// Check-out must be strictly after check-in.
	if !now.After(*existing.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	existing.CheckOut = &now
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	workMinutes := attendance.NetMinutes(*existing)
	existing.WorkMinutes = &workMinutes

	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(*existing, emp.FullName()), nil
}

// Backfill implements attendance.AttendanceService. HR records a complete
// day on behalf of an employee; the record is attributed to the admin.
func (a *AttendanceServiceImpl) Backfill(ctx context.Context, req attendance.BackfillRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	adminID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	checkIn, _ := time.Parse(time.RFC3339, req.CheckInTime)
	checkOut, _ := time.Parse(time.RFC3339, req.CheckOutTime)
	checkIn = checkIn.UTC()
	checkOut = checkOut.UTC()

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing != nil {
		existing.CheckIn = &checkIn
		existing.CheckOut = &checkOut
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		existing.MarkedBy = adminID
		existing.Method = attendance.MethodHR
		workMinutes := attendance.NetMinutes(*existing)
		existing.WorkMinutes = &workMinutes

		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return a.toResponse(*existing, emp.FullName()), nil
	}

	newAtt := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		OrgID:      orgID,
		Date:       date,
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Breaks:     attendance.BreakList{},
		Notes:      req.Notes,
		MarkedBy:   adminID,
		Method:     attendance.MethodHR,
	}
	workMinutes := attendance.NetMinutes(newAtt)
	newAtt.WorkMinutes = &workMinutes

	created, err := a.AttendanceRepository.Create(ctx, newAtt)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(created, emp.FullName()), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id, orgID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	name := ""
	if emp, err := a.EmployeeRepository.GetByID(ctx, att.EmployeeID, orgID); err == nil {
		name = emp.FullName()
	}

	return a.toResponse(att, name), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter, orgID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	name := ""
	if emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, orgID); err == nil {
		name = emp.FullName()
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, a.toResponse(att, name))
	}

	return buildListResponse(responses, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter, orgID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		name := ""
		if att.EmployeeName != nil {
			name = *att.EmployeeName
		}
		responses = append(responses, a.toResponse(att, name))
	}

	return buildListResponse(responses, total, filter.Page, filter.Limit), nil
}

func buildListResponse(responses []attendance.AttendanceResponse, total int64, page, limit int) attendance.ListAttendanceResponse {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("Showing %d of %d records", len(responses), total)

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	orgRepo org.OrganizationRepository,
	minimumValidHours float64,
) attendance.AttendanceService {
	if minimumValidHours <= 0 {
		minimumValidHours = attendance.DefaultMinimumValidHours
	}
	return &AttendanceServiceImpl{
		db:                     db,
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: orgRepo,
		minimumValidHours:      minimumValidHours,
	}
}
