package create_booking

import (
	"errors"
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	createBooking "github.com/abhi96256/Appoinment/internal/usecase/create_booking"
)

const (
	msgCreated             = "Booking created successfully"
	msgDateInPast          = "Booking date cannot be in the past"
	msgInvalidTimeSlot     = "Invalid time slot"
	msgOutsideHours        = "Selected time is outside business hours"
	msgServiceNotFound     = "Service not found"
	msgSlotNotAvailable    = "Selected time slot is no longer available"
	msgFailedToCreate      = "Failed to create booking"
	msgInvalidBookingInput = "Invalid booking data"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/book, POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /api/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	req.Normalize()
	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		h.logger.Warn("POST /api/book - Validation failed: %+v", details)
		handlers.RespondValidationError(w, details)
		return
	}

	// Формат уже проверен валидатором, ошибка здесь означает несуществующую дату
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /api/book - Failed to parse request: %v", err)
		handlers.RespondValidationError(w, []handlers.FieldError{
			{Field: "bookingDate", Message: "Valid date is required (YYYY-MM-DD)"},
		})
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingDateInPast):
			h.logger.Warn("POST /api/book - Date in the past: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /api/book - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /api/book - Invalid time slot: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /api/book - Outside business hours: service_id=%d, start=%s", req.ServiceID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /api/book - Slot not available: date=%s, start=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /api/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingInput)

		default:
			h.logger.Error("POST /api/book - Failed to create booking: service_id=%d, date=%s, error=%v",
				req.ServiceID, req.BookingDate, err)
			handlers.RespondInternalError(w, msgFailedToCreate)
		}
		return
	}

	h.logger.Info("POST /api/book - Booking created successfully: booking_id=%d, code=%s",
		result.Booking.ID, result.Booking.ConfirmationCode)
	handlers.RespondMessage(w, http.StatusCreated, FromUseCaseResponse(result), msgCreated)
}
