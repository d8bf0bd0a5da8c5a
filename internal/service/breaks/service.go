package breaks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/breaks"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/timeutil"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
	"github.com/workpulse-hr/workpulse-backend-go/internal/repository/postgresql"
)

type BreakRequestServiceImpl struct {
	db *database.DB
	breaks.BreakRequestRepository
	attendance.AttendanceRepository
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

func toResponse(req breaks.BreakRequest) breaks.BreakRequestResponse {
	return breaks.BreakRequestResponse{
		ID:              req.ID,
		AttendanceID:    req.AttendanceID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    req.EmployeeName,
		RequestedStart:  req.RequestedStart.Format(time.RFC3339),
		RequestedEnd:    req.RequestedEnd.Format(time.RFC3339),
		ApprovedStart:   timePtrToString(req.ApprovedStart),
		ApprovedEnd:     timePtrToString(req.ApprovedEnd),
		DurationMinutes: req.DurationMinutes,
		BreakID:         req.BreakID,
		Status:          req.Status,
		Notes:           req.Notes,
		ReviewerID:      req.ReviewerID,
		ReviewerNotes:   req.ReviewerNotes,
		ReviewedAt:      timePtrToString(req.ReviewedAt),
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       req.UpdatedAt.Format(time.RFC3339),
	}
}

// appendBreak adds the break to the record's embedded list under optimistic
// concurrency. On a version conflict the record is re-read and the append
// retried once; a second conflict surfaces to the caller.
func (b *BreakRequestServiceImpl) appendBreak(ctx context.Context, attendanceID, orgID string, newBreak attendance.Break) error {
	for attempt := 0; attempt < 2; attempt++ {
		att, err := b.AttendanceRepository.GetByID(ctx, attendanceID, orgID)
		if err != nil {
			return err
		}

		if err := attendance.ValidateBreakWindow(att, newBreak.StartTime, newBreak.EndTime); err != nil {
			return err
		}

		updated := append(attendance.BreakList{}, att.Breaks...)
		updated = append(updated, newBreak)

		att.Breaks = updated
		workMinutes := attendance.NetMinutes(att)

		err = b.AttendanceRepository.UpdateBreaks(ctx, att.ID, orgID, updated, workMinutes, att.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, attendance.ErrVersionConflict) {
			return err
		}
	}
	return attendance.ErrVersionConflict
}

// reviseBreak rewrites an existing embedded break's times, located by its
// stable ID. Same retry discipline as appendBreak.
func (b *BreakRequestServiceImpl) reviseBreak(ctx context.Context, attendanceID, orgID, breakID string, start, end time.Time, notes *string) error {
	for attempt := 0; attempt < 2; attempt++ {
		att, err := b.AttendanceRepository.GetByID(ctx, attendanceID, orgID)
		if err != nil {
			return err
		}

		if err := attendance.ValidateBreakWindow(att, start, end); err != nil {
			return err
		}

		found := false
		updated := append(attendance.BreakList{}, att.Breaks...)
		for i := range updated {
			if updated[i].ID == breakID {
				updated[i].StartTime = start
				updated[i].EndTime = end
				updated[i].DurationMinutes = timeutil.MinutesBetween(start, end)
				if notes != nil {
					updated[i].Notes = notes
				}
				found = true
				break
			}
		}
		if !found {
			return breaks.ErrBreakNotFound
		}

		att.Breaks = updated
		workMinutes := attendance.NetMinutes(att)

		err = b.AttendanceRepository.UpdateBreaks(ctx, att.ID, orgID, updated, workMinutes, att.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, attendance.ErrVersionConflict) {
			return err
		}
	}
	return attendance.ErrVersionConflict
}

// Submit implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) Submit(ctx context.Context, req breaks.SubmitBreakRequestRequest) (breaks.BreakRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	att, err := b.AttendanceRepository.GetByID(ctx, req.AttendanceID, orgID)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}
	if att.EmployeeID != employeeID {
		return breaks.BreakRequestResponse{}, attendance.ErrAttendanceNotFound
	}

	start, _ := time.Parse(time.RFC3339, req.StartTime)
	end, _ := time.Parse(time.RFC3339, req.EndTime)
	start = start.UTC()
	end = end.UTC()

	if err := attendance.ValidateBreakWindow(att, start, end); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	created, err := b.BreakRequestRepository.Create(ctx, breaks.BreakRequest{
		AttendanceID:   req.AttendanceID,
		EmployeeID:     employeeID,
		OrgID:          orgID,
		RequestedStart: start,
		RequestedEnd:   end,
		Status:         breaks.BreakRequestStatusPending,
		Notes:          req.Notes,
	})
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	return toResponse(created), nil
}

// Approve implements breaks.BreakRequestService. Approving an already
// approved request fails validation; no second break is ever appended.
func (b *BreakRequestServiceImpl) Approve(ctx context.Context, req breaks.ApproveBreakRequestRequest) (breaks.BreakRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	reviewerID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	request, err := b.BreakRequestRepository.GetByID(ctx, req.ID, orgID)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	// Approving once yields exactly one break; a second approval must never
	// append a duplicate.
	if request.Status == breaks.BreakRequestStatusApproved {
		return breaks.BreakRequestResponse{}, validator.ValidationErrors{{
			Field:   "status",
			Message: "break request is already approved",
		}}
	}
	if request.Status != breaks.BreakRequestStatusPending {
		return breaks.BreakRequestResponse{}, breaks.ErrBreakRequestAlreadyProcessed
	}

	start := request.RequestedStart
	end := request.RequestedEnd
	if req.StartTime != nil {
		start, _ = time.Parse(time.RFC3339, *req.StartTime)
		start = start.UTC()
	}
	if req.EndTime != nil {
		end, _ = time.Parse(time.RFC3339, *req.EndTime)
		end = end.UTC()
	}
	breakID := uuid.NewString()
	now := time.Now().UTC()
	duration := timeutil.MinutesBetween(start, end)

	err = b.withTransaction(ctx, func(txCtx context.Context) error {
		if err := b.appendBreak(txCtx, request.AttendanceID, orgID, attendance.Break{
			ID:              breakID,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
			Notes:           request.Notes,
		}); err != nil {
			return err
		}

		request.Status = breaks.BreakRequestStatusApproved
		request.ApprovedStart = &start
		request.ApprovedEnd = &end
		request.DurationMinutes = &duration
		request.BreakID = &breakID
		request.ReviewerID = &reviewerID
		request.ReviewerNotes = req.Notes
		request.ReviewedAt = &now

		return b.BreakRequestRepository.Update(txCtx, request)
	})
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	return toResponse(request), nil
}

// Reject implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) Reject(ctx context.Context, req breaks.RejectBreakRequestRequest) (breaks.BreakRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	reviewerID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	request, err := b.BreakRequestRepository.GetByID(ctx, req.ID, orgID)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	if request.Status != breaks.BreakRequestStatusPending {
		return breaks.BreakRequestResponse{}, breaks.ErrBreakRequestAlreadyProcessed
	}

	now := time.Now().UTC()
	request.Status = breaks.BreakRequestStatusRejected
	request.ReviewerID = &reviewerID
	request.ReviewerNotes = &req.Reason
	request.ReviewedAt = &now

	if err := b.BreakRequestRepository.Update(ctx, request); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	return toResponse(request), nil
}

// Cancel implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) Cancel(ctx context.Context, id string) (breaks.BreakRequestResponse, error) {
	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	request, err := b.BreakRequestRepository.GetByID(ctx, id, orgID)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	if request.EmployeeID != employeeID {
		return breaks.BreakRequestResponse{}, breaks.ErrBreakRequestNotFound
	}
	if request.Status != breaks.BreakRequestStatusPending {
		return breaks.BreakRequestResponse{}, breaks.ErrBreakRequestAlreadyProcessed
	}

	now := time.Now().UTC()
	cancelNote := "cancelled by requester"
	request.Status = breaks.BreakRequestStatusCancelled
	request.ReviewerNotes = &cancelNote
	request.ReviewedAt = &now

	if err := b.BreakRequestRepository.Update(ctx, request); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	return toResponse(request), nil
}

// DirectAssign implements breaks.BreakRequestService. The request row is
// written already approved so the audit trail shows who placed the break.
func (b *BreakRequestServiceImpl) DirectAssign(ctx context.Context, req breaks.DirectAssignBreakRequest) (breaks.BreakRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	adminID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	att, err := b.AttendanceRepository.GetByID(ctx, req.AttendanceID, orgID)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	start, _ := time.Parse(time.RFC3339, req.StartTime)
	end, _ := time.Parse(time.RFC3339, req.EndTime)
	start = start.UTC()
	end = end.UTC()

	if err := attendance.ValidateBreakWindow(att, start, end); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	breakID := uuid.NewString()
	now := time.Now().UTC()
	duration := timeutil.MinutesBetween(start, end)

	request := breaks.BreakRequest{
		AttendanceID:    req.AttendanceID,
		EmployeeID:      att.EmployeeID,
		OrgID:           orgID,
		RequestedStart:  start,
		RequestedEnd:    end,
		ApprovedStart:   &start,
		ApprovedEnd:     &end,
		DurationMinutes: &duration,
		BreakID:         &breakID,
		Status:          breaks.BreakRequestStatusApproved,
		Notes:           req.Notes,
		ReviewerID:      &adminID,
		ReviewedAt:      &now,
	}

	err = b.withTransaction(ctx, func(txCtx context.Context) error {
		if err := b.appendBreak(txCtx, req.AttendanceID, orgID, attendance.Break{
			ID:              breakID,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
			Notes:           req.Notes,
		}); err != nil {
			return err
		}

		created, err := b.BreakRequestRepository.Create(txCtx, request)
		if err != nil {
			return err
		}
		request = created
		return nil
	})
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	return toResponse(request), nil
}

// EditApproved implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) EditApproved(ctx context.Context, req breaks.EditApprovedBreakRequest) (breaks.BreakRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	reviewerID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	request, err := b.BreakRequestRepository.GetByID(ctx, req.ID, orgID)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	if request.Status != breaks.BreakRequestStatusApproved || request.BreakID == nil {
		return breaks.BreakRequestResponse{}, breaks.ErrBreakNotFound
	}

	start, _ := time.Parse(time.RFC3339, req.StartTime)
	end, _ := time.Parse(time.RFC3339, req.EndTime)
	start = start.UTC()
	end = end.UTC()

	now := time.Now().UTC()
	duration := timeutil.MinutesBetween(start, end)

	err = b.withTransaction(ctx, func(txCtx context.Context) error {
		if err := b.reviseBreak(txCtx, request.AttendanceID, orgID, *request.BreakID, start, end, req.Notes); err != nil {
			return err
		}

		request.ApprovedStart = &start
		request.ApprovedEnd = &end
		request.DurationMinutes = &duration
		request.ReviewerID = &reviewerID
		if req.Notes != nil {
			request.ReviewerNotes = req.Notes
		}
		request.ReviewedAt = &now

		return b.BreakRequestRepository.Update(txCtx, request)
	})
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	return toResponse(request), nil
}

// Delete implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) Delete(ctx context.Context, id string) error {
	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	request, err := b.BreakRequestRepository.GetByID(ctx, id, orgID)
	if err != nil {
		return err
	}

	if request.EmployeeID != employeeID {
		return breaks.ErrBreakRequestNotFound
	}
	if request.Status != breaks.BreakRequestStatusPending {
		return breaks.ErrOnlyPendingDeletable
	}

	return b.BreakRequestRepository.Delete(ctx, id, orgID)
}

// GetBreakRequest implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) GetBreakRequest(ctx context.Context, id string) (breaks.BreakRequestResponse, error) {
	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	request, err := b.BreakRequestRepository.GetByID(ctx, id, orgID)
	if err != nil {
		return breaks.BreakRequestResponse{}, err
	}

	return toResponse(request), nil
}

// ListBreakRequests implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) ListBreakRequests(ctx context.Context, filter breaks.BreakRequestFilter) (breaks.ListBreakRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return breaks.ListBreakRequestResponse{}, err
	}

	_, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.ListBreakRequestResponse{}, err
	}

	return b.list(ctx, filter, orgID)
}

// GetMyBreakRequests implements breaks.BreakRequestService.
func (b *BreakRequestServiceImpl) GetMyBreakRequests(ctx context.Context, filter breaks.BreakRequestFilter) (breaks.ListBreakRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return breaks.ListBreakRequestResponse{}, err
	}

	employeeID, orgID, err := claimsFromContext(ctx)
	if err != nil {
		return breaks.ListBreakRequestResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return b.list(ctx, filter, orgID)
}

func (b *BreakRequestServiceImpl) list(ctx context.Context, filter breaks.BreakRequestFilter, orgID string) (breaks.ListBreakRequestResponse, error) {
	records, total, err := b.BreakRequestRepository.List(ctx, filter, orgID)
	if err != nil {
		return breaks.ListBreakRequestResponse{}, err
	}

	responses := make([]breaks.BreakRequestResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	return breaks.ListBreakRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		BreakRequests: responses,
	}, nil
}

// withTransaction wraps fn in a database transaction when a pool is wired;
// in-memory test doubles run fn directly.
func (b *BreakRequestServiceImpl) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if b.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, b.db, fn)
}

// NewBreakRequestService creates a new break request service
func NewBreakRequestService(
	db *database.DB,
	breakRequestRepo breaks.BreakRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
) breaks.BreakRequestService {
	return &BreakRequestServiceImpl{
		db:                     db,
		BreakRequestRepository: breakRequestRepo,
		AttendanceRepository:   attendanceRepo,
	}
}
