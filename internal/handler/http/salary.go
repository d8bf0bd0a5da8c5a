package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/salary"
	"github.com/workpulse-hr/workpulse-backend-go/internal/handler/http/response"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

type SalaryHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
	}
}

// Record implements SalaryHandler.
func (h *salaryHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req salary.RecordSalaryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode salary request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.RecordSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary recorded", result)
}

// History implements SalaryHandler.
func (h *salaryHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.salaryService.GetHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Pending implements SalaryHandler.
func (h *salaryHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.salaryService.GetPendingSalary(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Current implements SalaryHandler.
func (h *salaryHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	// Optional as-of date, defaults to today
	date := time.Now().UTC()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, valid := validator.IsValidDate(d)
		if !valid {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		date = parsed
	}

	result, err := h.salaryService.GetCurrentSalary(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
