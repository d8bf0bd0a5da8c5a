package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/breaks"
	"github.com/workpulse-hr/workpulse-backend-go/internal/handler/http/response"
)

type BreakRequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	DirectAssign(w http.ResponseWriter, r *http.Request)
	EditApproved(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
}

type breakRequestHandlerImpl struct {
	breakRequestService breaks.BreakRequestService
}

func NewBreakRequestHandler(breakRequestService breaks.BreakRequestService) BreakRequestHandler {
	return &breakRequestHandlerImpl{
		breakRequestService: breakRequestService,
	}
}

// Submit implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req breaks.SubmitBreakRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode break request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.breakRequestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break request submitted", result)
}

// Approve implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Break request ID is required", nil)
		return
	}

	var req breaks.ApproveBreakRequestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Failed to decode approve request", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.breakRequestService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break request approved", result)
}

// Reject implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Break request ID is required", nil)
		return
	}

	var req breaks.RejectBreakRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode reject request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.breakRequestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break request rejected", result)
}

// Cancel implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Break request ID is required", nil)
		return
	}

	result, err := h.breakRequestService.Cancel(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break request cancelled", result)
}

// DirectAssign implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) DirectAssign(w http.ResponseWriter, r *http.Request) {
	var req breaks.DirectAssignBreakRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode direct assign request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.breakRequestService.DirectAssign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break assigned", result)
}

// EditApproved implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) EditApproved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Break request ID is required", nil)
		return
	}

	var req breaks.EditApprovedBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode edit request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.breakRequestService.EditApproved(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break updated", result)
}

// Delete implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Break request ID is required", nil)
		return
	}

	if err := h.breakRequestService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break request deleted", nil)
}

// Get implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Break request ID is required", nil)
		return
	}

	result, err := h.breakRequestService.GetBreakRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseBreakRequestFilter(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.breakRequestService.ListBreakRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetMy implements BreakRequestHandler.
func (h *breakRequestHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	filter := parseBreakRequestFilter(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.breakRequestService.GetMyBreakRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func parseBreakRequestFilter(r *http.Request) breaks.BreakRequestFilter {
	filter := breaks.BreakRequestFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if attendanceID := r.URL.Query().Get("attendance_id"); attendanceID != "" {
		filter.AttendanceID = &attendanceID
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	filter.Page, filter.Limit = parsePagination(r)

	return filter
}
