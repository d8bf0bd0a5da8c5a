package employee

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
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

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               emp.ID,
		Name:             emp.FullName(),
		Email:            emp.Email,
		Role:             emp.Role,
		WorkingDays:      emp.WorkingDays,
		DailyHours:       emp.DailyHours.String(),
		RequireWiFiCheck: emp.RequireWiFiCheck,
		IsActive:         emp.IsActive,
	}
}

// GetMyProfile implements employee.EmployeeService.
func (e *EmployeeServiceImpl) GetMyProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.EmployeeRepository.GetByID(ctx, employeeID, orgID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (e *EmployeeServiceImpl) ListEmployees(ctx context.Context) (employee.ListEmployeesResponse, error) {
	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	employees, err := e.EmployeeRepository.ListActive(ctx, orgID)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}

	return employee.ListEmployeesResponse{
		TotalCount: len(responses),
		Employees:  responses,
	}, nil
}

// UpdateSchedule implements employee.EmployeeService. The change only
// affects months going forward; closed months read the ledger snapshot.
func (e *EmployeeServiceImpl) UpdateSchedule(ctx context.Context, req employee.UpdateScheduleRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := e.EmployeeRepository.UpdateSchedule(ctx, req.EmployeeID, orgID, employee.WorkingDays(req.WorkingDays), req.DailyHours); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.EmployeeRepository.GetByID(ctx, req.EmployeeID, orgID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(emp), nil
}

// UpdateWiFiCheck implements employee.EmployeeService.
func (e *EmployeeServiceImpl) UpdateWiFiCheck(ctx context.Context, req employee.UpdateWiFiCheckRequest) (employee.EmployeeResponse, error) {
	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := e.EmployeeRepository.UpdateWiFiCheck(ctx, req.EmployeeID, orgID, req.RequireWiFiCheck); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.EmployeeRepository.GetByID(ctx, req.EmployeeID, orgID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(emp), nil
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
	}
}
