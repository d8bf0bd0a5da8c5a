package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse-hr/workpulse-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
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

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func toResponse(req leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		Type:          req.Type,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		Reason:        req.Reason,
		Status:        req.Status,
		ReviewerID:    req.ReviewerID,
		ReviewerNotes: req.ReviewerNotes,
		ReviewedAt:    timePtrToString(req.ReviewedAt),
		CreatedAt:     req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     req.UpdatedAt.Format(time.RFC3339),
	}
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := l.LeaveRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		OrgID:      orgID,
		Type:       leave.LeaveType(req.Type),
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toResponse(created), nil
}

func (l *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewLeaveRequestRequest, status leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	reviewerID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRepository.GetByID(ctx, req.ID, orgID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.Status != leave.LeaveRequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := time.Now().UTC()
	request.Status = status
	request.ReviewerID = &reviewerID
	request.ReviewerNotes = req.Notes
	request.ReviewedAt = &now

	// Approval of a debiting leave type consumes the yearly balance in the
	// same transaction as the status change.
	if status == leave.LeaveRequestStatusApproved && request.Type.Debits() {
		days := request.Days()
		year := request.StartDate.Year()

		balance, err := l.balanceOrDefault(ctx, request.EmployeeID, orgID, year)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if balance.Remaining() < days {
			return leave.LeaveRequestResponse{}, leave.ErrInsufficientLeaveBalance
		}

		err = l.withTransaction(ctx, func(ctx context.Context) error {
			if err := l.LeaveRepository.Update(ctx, request); err != nil {
				return err
			}
			return l.LeaveRepository.DebitBalance(ctx, request.EmployeeID, orgID, year, days)
		})
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		return toResponse(request), nil
	}

	if err := l.LeaveRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toResponse(request), nil
}

func (l *LeaveServiceImpl) balanceOrDefault(ctx context.Context, employeeID, orgID string, year int) (leave.Balance, error) {
	balance, err := l.LeaveRepository.GetBalance(ctx, employeeID, orgID, year)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveBalanceNotFound) {
			return leave.Balance{
				EmployeeID: employeeID,
				OrgID:      orgID,
				Year:       year,
				TotalDays:  leave.DefaultAnnualAllowance,
			}, nil
		}
		return leave.Balance{}, err
	}
	return balance, nil
}

// withTransaction wraps fn in a database transaction when a pool is wired;
// in-memory test doubles run fn directly.
func (l *LeaveServiceImpl) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if l.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, l.db, fn)
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.review(ctx, req, leave.LeaveRequestStatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.review(ctx, req, leave.LeaveRequestStatusRejected)
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	return l.list(ctx, filter, orgID)
}

// GetMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return l.list(ctx, filter, orgID)
}

func (l *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveRequestFilter, orgID string) (leave.ListLeaveRequestResponse, error) {
	records, total, err := l.LeaveRepository.List(ctx, filter, orgID)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		LeaveRequests: responses,
	}, nil
}

// GetMyLeaveBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyLeaveBalance(ctx context.Context) (leave.LeaveBalanceResponse, error) {
	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	balance, err := l.balanceOrDefault(ctx, employeeID, orgID, time.Now().UTC().Year())
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	return leave.LeaveBalanceResponse{
		EmployeeID:    employeeID,
		Year:          balance.Year,
		TotalDays:     balance.TotalDays,
		UsedDays:      balance.UsedDays,
		RemainingDays: balance.Remaining(),
	}, nil
}

// NewLeaveService creates a new leave service
func NewLeaveService(db *database.DB, leaveRepo leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		db:              db,
		LeaveRepository: leaveRepo,
	}
}
