package earnings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/salary"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/timeutil"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

// MonthlyEarningsResponse is the per-month earnings statement.
type MonthlyEarningsResponse struct {
	EmployeeID    string `json:"employee_id"`
	Month         string `json:"month"` // YYYY-MM
	BaseSalary    string `json:"base_salary"`
	SalarySource  string `json:"salary_source"` // "ledger" or "profile"
	ScheduledDays int    `json:"scheduled_days"`
	ValidDays     int    `json:"valid_days"`
	ExpectedHours string `json:"expected_hours"`
	WorkedHours   string `json:"worked_hours"`
	HourlyRate    string `json:"hourly_rate"`
	EarnedSalary  string `json:"earned_salary"`
	Progress      string `json:"progress"` // worked/expected ratio, capped at 1
}

// EarningsService computes month-granular earned salary from attendance,
// schedule and the salary ledger.
type EarningsService interface {
	// GetMonthlyEarnings computes the statement for one employee and month
	// (month in YYYY-MM form). HR may query anyone; used with the caller's
	// own ID for self service.
	GetMonthlyEarnings(ctx context.Context, employeeID string, month string) (MonthlyEarningsResponse, error)

	// GetMyMonthlyEarnings computes the caller's own statement
	GetMyMonthlyEarnings(ctx context.Context, month string) (MonthlyEarningsResponse, error)
}

type EarningsServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	org.OrganizationRepository
	salary.SalaryRepository
	minimumValidHours float64
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

// GetMonthlyEarnings implements EarningsService.
func (e *EarningsServiceImpl) GetMonthlyEarnings(ctx context.Context, employeeID string, month string) (MonthlyEarningsResponse, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return MonthlyEarningsResponse{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}

	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return MonthlyEarningsResponse{}, err
	}

	return e.compute(ctx, employeeID, orgID, monthStart)
}

// GetMyMonthlyEarnings implements EarningsService.
func (e *EarningsServiceImpl) GetMyMonthlyEarnings(ctx context.Context, month string) (MonthlyEarningsResponse, error) {
	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return MonthlyEarningsResponse{}, err
	}
	return e.GetMonthlyEarnings(ctx, employeeID, month)
}

func (e *EarningsServiceImpl) compute(ctx context.Context, employeeID, orgID string, monthStart time.Time) (MonthlyEarningsResponse, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, employeeID, orgID)
	if err != nil {
		return MonthlyEarningsResponse{}, err
	}

	minimumHours := e.minimumValidHours
	if organization, err := e.OrganizationRepository.GetByID(ctx, orgID); err == nil && organization.MinimumValidHours > 0 {
		minimumHours = organization.MinimumValidHours
	}

	monthEnd := timeutil.EndOfMonth(monthStart)

	// Salary and schedule effective at the month's start. The ledger snapshot
	// wins over the live profile so past statements stay stable after raises
	// or schedule changes.
	baseSalary := emp.BaseSalary
	workingDays := emp.WorkingDays
	dailyHours := emp.DailyHours
	salarySource := "profile"

	record, err := e.SalaryRepository.GetInForce(ctx, employeeID, orgID, monthStart)
	switch {
	case err == nil:
		baseSalary = record.Amount
		salarySource = "ledger"
		if len(record.Schedule.WorkingDays) > 0 {
			workingDays = employee.WorkingDays(record.Schedule.WorkingDays)
			dailyHours = record.Schedule.DailyHours
		}
	case errors.Is(err, salary.ErrNoSalaryInForce):
		// Ledger empty for this span, profile base salary applies.
	default:
		return MonthlyEarningsResponse{}, err
	}

	records, err := e.AttendanceRepository.ListByEmployeeAndRange(ctx, employeeID, monthStart, monthEnd, orgID)
	if err != nil {
		return MonthlyEarningsResponse{}, err
	}

	breakdown := CalculateMonth(MonthInputs{
		Year:              monthStart.Year(),
		Month:             monthStart.Month(),
		WorkingDays:       workingDays,
		DailyHours:        dailyHours,
		BaseSalary:        baseSalary,
		MinimumValidHours: minimumHours,
		Records:           records,
	})

	progress := decimal.Zero
	if breakdown.ExpectedHours.IsPositive() {
		progress = breakdown.WorkedHours.Div(breakdown.ExpectedHours)
		if progress.GreaterThan(decimal.NewFromInt(1)) {
			progress = decimal.NewFromInt(1)
		}
	}

	return MonthlyEarningsResponse{
		EmployeeID:    employeeID,
		Month:         monthStart.Format("2006-01"),
		BaseSalary:    baseSalary.StringFixed(2),
		SalarySource:  salarySource,
		ScheduledDays: breakdown.ScheduledDays,
		ValidDays:     breakdown.ValidDays,
		ExpectedHours: breakdown.ExpectedHours.StringFixed(2),
		WorkedHours:   breakdown.WorkedHours.StringFixed(2),
		HourlyRate:    breakdown.HourlyRate.StringFixed(2),
		EarnedSalary:  breakdown.EarnedSalary.StringFixed(2),
		Progress:      progress.StringFixed(4),
	}, nil
}

// NewEarningsService creates a new earnings service
func NewEarningsService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	orgRepo org.OrganizationRepository,
	salaryRepo salary.SalaryRepository,
	minimumValidHours float64,
) EarningsService {
	if minimumValidHours <= 0 {
		minimumValidHours = attendance.DefaultMinimumValidHours
	}
	return &EarningsServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		OrganizationRepository: orgRepo,
		SalaryRepository:       salaryRepo,
		minimumValidHours:      minimumValidHours,
	}
}
