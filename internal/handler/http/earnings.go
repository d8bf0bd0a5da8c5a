package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/handler/http/response"
	"github.com/workpulse-hr/workpulse-backend-go/internal/service/earnings"
)

type EarningsHandler interface {
	GetMonthly(w http.ResponseWriter, r *http.Request)
	GetMyMonthly(w http.ResponseWriter, r *http.Request)
}

type earningsHandlerImpl struct {
	earningsService earnings.EarningsService
}

func NewEarningsHandler(earningsService earnings.EarningsService) EarningsHandler {
	return &earningsHandlerImpl{
		earningsService: earningsService,
	}
}

// GetMonthly implements EarningsHandler.
func (h *earningsHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "Query parameter 'month' is required (YYYY-MM)", nil)
		return
	}

	result, err := h.earningsService.GetMonthlyEarnings(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyMonthly implements EarningsHandler.
func (h *earningsHandlerImpl) GetMyMonthly(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "Query parameter 'month' is required (YYYY-MM)", nil)
		return
	}

	result, err := h.earningsService.GetMyMonthlyEarnings(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
