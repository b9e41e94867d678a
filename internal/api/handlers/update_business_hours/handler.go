package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/hours"
)

const (
	msgInvalidHours    = "Invalid business hours"
	msgServiceNotFound = "Service not found"
	msgUpdated         = "Business hours updated successfully"
	msgFailed          = "Failed to update business hours"
)

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /api/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		h.logger.Warn("PUT /api/hours - Validation failed: %+v", details)
		handlers.RespondValidationError(w, details)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("PUT /api/hours - Invalid hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, hours.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("PUT /api/hours - Failed to update business hours: %v", err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("PUT /api/hours - Business hours updated: source=%s", result.Source)
	handlers.RespondMessage(w, http.StatusOK, result, msgUpdated)
}
