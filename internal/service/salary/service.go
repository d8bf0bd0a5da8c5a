package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/salary"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

type SalaryServiceImpl struct {
	salary.SalaryRepository
	employee.EmployeeRepository
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

func toRecordResponse(record salary.Record) salary.SalaryRecordResponse {
	return salary.SalaryRecordResponse{
		ID:             record.ID,
		EmployeeID:     record.EmployeeID,
		PreviousAmount: record.PreviousAmount.StringFixed(2),
		Amount:         record.Amount.StringFixed(2),
		EffectiveFrom:  record.EffectiveFrom.Format("2006-01-02"),
		Schedule:       record.Schedule,
		Reason:         record.Reason,
		Notes:          record.Notes,
		CreatedBy:      record.CreatedBy,
		CreatedAt:      record.CreatedAt.Format(time.RFC3339),
	}
}

// inForceTerms resolves the amount and schedule governing today, falling
// back to the employee profile when the ledger is empty.
func (s *SalaryServiceImpl) inForceTerms(ctx context.Context, emp employee.Employee, orgID string, now time.Time) (decimal.Decimal, salary.ScheduleSnapshot, error) {
	record, err := s.SalaryRepository.GetInForce(ctx, emp.ID, orgID, now)
	if err != nil {
		if errors.Is(err, salary.ErrNoSalaryInForce) {
			return emp.BaseSalary, salary.ScheduleSnapshot{
				WorkingDays: emp.WorkingDays,
				DailyHours:  emp.DailyHours,
			}, nil
		}
		return decimal.Decimal{}, salary.ScheduleSnapshot{}, err
	}
	if len(record.Schedule.WorkingDays) == 0 {
		record.Schedule = salary.ScheduleSnapshot{
			WorkingDays: emp.WorkingDays,
			DailyHours:  emp.DailyHours,
		}
	}
	return record.Amount, record.Schedule, nil
}

func sameDays(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, day := range a {
		set[day] = true
	}
	for _, day := range b {
		if !set[day] {
			return false
		}
	}
	return true
}

// RecordSalary implements salary.SalaryService. The ledger is append-only;
// a correction is a new row, never an update.
func (s *SalaryServiceImpl) RecordSalary(ctx context.Context, req salary.RecordSalaryRequest) (salary.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	adminID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, orgID)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	amount, _ := decimal.NewFromString(req.Amount)
	now := time.Now().UTC()

	currentAmount, currentSchedule, err := s.inForceTerms(ctx, emp, orgID, now)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	schedule := currentSchedule
	if len(req.WorkingDays) > 0 {
		schedule.WorkingDays = req.WorkingDays
	}
	if req.DailyHours != nil {
		schedule.DailyHours, _ = decimal.NewFromString(*req.DailyHours)
	}

	termsChanged := !amount.Equal(currentAmount) ||
		!schedule.DailyHours.Equal(currentSchedule.DailyHours) ||
		!sameDays(schedule.WorkingDays, currentSchedule.WorkingDays)
	if termsChanged && (req.Reason == nil || *req.Reason == "") {
		return salary.SalaryRecordResponse{}, validator.ValidationErrors{{
			Field:   "reason",
			Message: "reason is required when pay terms change",
		}}
	}

	effectiveFrom := salary.NextEffectiveDate(now)
	if req.EffectiveFrom != nil {
		effectiveFrom, _ = time.Parse("2006-01-02", *req.EffectiveFrom)
	}

	record := salary.Record{
		EmployeeID:     req.EmployeeID,
		OrgID:          orgID,
		PreviousAmount: currentAmount,
		Amount:         amount,
		EffectiveFrom:  effectiveFrom,
		Schedule:       schedule,
		Reason:         req.Reason,
		Notes:          req.Notes,
		CreatedBy:      adminID,
	}

	created, err := s.SalaryRepository.Create(ctx, record)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	return toRecordResponse(created), nil
}

// GetHistory implements salary.SalaryService.
func (s *SalaryServiceImpl) GetHistory(ctx context.Context, employeeID string) (salary.SalaryHistoryResponse, error) {
	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return salary.SalaryHistoryResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID, orgID); err != nil {
		return salary.SalaryHistoryResponse{}, err
	}

	records, err := s.SalaryRepository.ListByEmployee(ctx, employeeID, orgID)
	if err != nil {
		return salary.SalaryHistoryResponse{}, err
	}

	responses := make([]salary.SalaryRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}

	return salary.SalaryHistoryResponse{
		EmployeeID: employeeID,
		Records:    responses,
	}, nil
}

// GetPendingSalary implements salary.SalaryService. A nil Pending field
// means no change is scheduled.
func (s *SalaryServiceImpl) GetPendingSalary(ctx context.Context, employeeID string) (salary.PendingSalaryResponse, error) {
	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return salary.PendingSalaryResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID, orgID); err != nil {
		return salary.PendingSalaryResponse{}, err
	}

	record, err := s.SalaryRepository.GetPending(ctx, employeeID, orgID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, salary.ErrSalaryRecordNotFound) {
			return salary.PendingSalaryResponse{EmployeeID: employeeID}, nil
		}
		return salary.PendingSalaryResponse{}, err
	}

	pending := toRecordResponse(record)
	return salary.PendingSalaryResponse{
		EmployeeID: employeeID,
		Pending:    &pending,
	}, nil
}

// GetCurrentSalary implements salary.SalaryService. A future-dated ledger
// row does not affect the amount reported for dates before it takes effect.
func (s *SalaryServiceImpl) GetCurrentSalary(ctx context.Context, employeeID string, date time.Time) (salary.CurrentSalaryResponse, error) {
	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return salary.CurrentSalaryResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, orgID)
	if err != nil {
		return salary.CurrentSalaryResponse{}, err
	}

	record, err := s.SalaryRepository.GetInForce(ctx, employeeID, orgID, date)
	if err != nil {
		if errors.Is(err, salary.ErrNoSalaryInForce) {
			// Empty ledger: the profile base salary is the baseline.
			return salary.CurrentSalaryResponse{
				EmployeeID:    employeeID,
				Amount:        emp.BaseSalary.StringFixed(2),
				EffectiveFrom: emp.EmploymentStart.Format("2006-01-02"),
				Source:        "profile",
			}, nil
		}
		return salary.CurrentSalaryResponse{}, err
	}

	return salary.CurrentSalaryResponse{
		EmployeeID:    employeeID,
		Amount:        record.Amount.StringFixed(2),
		EffectiveFrom: record.EffectiveFrom.Format("2006-01-02"),
		Source:        "ledger",
	}, nil
}

// NewSalaryService creates a new salary service
func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		SalaryRepository:   salaryRepo,
		EmployeeRepository: employeeRepo,
	}
}
