package reset_business_hours

import (
	"errors"
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/hours"
)

const (
	msgInvalidServiceID = "Invalid service ID"
	msgNotFound         = "Business hours not found"
	msgReset            = "Business hours reset successfully"
	msgFailed           = "Failed to reset business hours"
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

// Handle DELETE /api/hours
// Query params: service_id (опционально, без него сбрасываются глобальные часы)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.QueryInt64(r.URL.Query(), "service_id")
	if err != nil {
		h.logger.Warn("DELETE /api/hours - %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Reset(r.Context(), serviceID); err != nil {
		switch {
		case errors.Is(err, hours.ErrHoursNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /api/hours - Failed to reset business hours: %v", err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("DELETE /api/hours - Business hours reset")
	handlers.RespondMessage(w, http.StatusOK, nil, msgReset)
}
