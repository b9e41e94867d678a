package list_bookings

import (
	"errors"
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/bookings"
)

const (
	msgInvalidParams = "Invalid query parameters"
	msgInvalidStatus = "Invalid status. Use confirmed, cancelled or completed"
	msgFailed        = "Failed to fetch bookings"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings
// Query params: page, limit, status, date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /api/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /api/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /api/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("GET /api/bookings - Bookings listed: count=%d", len(result.Bookings))
	handlers.RespondPaginated(w, result.Bookings, result.Pagination)
}
