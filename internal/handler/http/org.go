package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
	"github.com/workpulse-hr/workpulse-backend-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateAllowedSSIDs(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	organizationService org.OrganizationService
}

func NewOrganizationHandler(organizationService org.OrganizationService) OrganizationHandler {
	return &organizationHandlerImpl{
		organizationService: organizationService,
	}
}

// GetSettings implements OrganizationHandler.
func (h *organizationHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.organizationService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateAllowedSSIDs implements OrganizationHandler.
func (h *organizationHandlerImpl) UpdateAllowedSSIDs(w http.ResponseWriter, r *http.Request) {
	var req org.UpdateSSIDsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode ssid request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.organizationService.UpdateAllowedSSIDs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allowed networks updated", result)
}
