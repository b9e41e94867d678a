package get_business_hours

import (
	"errors"
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/hours"
)

const (
	msgInvalidServiceID = "Invalid service ID"
	msgServiceNotFound  = "Service not found"
	msgFailed           = "Failed to fetch business hours"
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

// Handle GET /api/hours
// Query params: service_id (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.QueryInt64(r.URL.Query(), "service_id")
	if err != nil {
		h.logger.Warn("GET /api/hours - %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.Get(r.Context(), serviceID)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /api/hours - Failed to get business hours: %v", err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("GET /api/hours - Business hours retrieved: source=%s", result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
