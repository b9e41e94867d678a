package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	getAvailableSlots "github.com/abhi96256/Appoinment/internal/usecase/get_available_slots"
)

const (
	msgMissingParams    = "Service ID and date are required"
	msgInvalidServiceID = "Invalid service ID"
	msgInvalidDate      = "Invalid date format. Use YYYY-MM-DD"
	msgServiceNotFound  = "Service not found"
	msgFailed           = "Failed to fetch availability"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/avail
// Query params: service_id (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("service_id")
	dateStr := r.URL.Query().Get("date")

	if serviceIDStr == "" || dateStr == "" {
		h.logger.Warn("GET /api/avail - Missing service_id or date")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /api/avail - Invalid service ID: %s", serviceIDStr)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /api/avail - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /api/avail - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /api/avail - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("GET /api/avail - Failed to get slots: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("GET /api/avail - Slots retrieved: service_id=%d, date=%s, slots_count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
