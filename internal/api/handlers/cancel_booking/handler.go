package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/bookings"
)

const (
	msgInvalidBookingID = "Invalid booking ID"
	msgNotFound         = "Booking not found"
	msgAlreadyCancelled = "Booking is already cancelled"
	msgCancelled        = "Booking cancelled successfully"
	msgFailedToCancel   = "Failed to cancel booking"
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

// Handle POST /api/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /api/bookings/{id}/cancel - Invalid booking ID: %s", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /api/bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("POST /api/bookings/{id}/cancel - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgAlreadyCancelled)

		default:
			h.logger.Error("POST /api/bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w, msgFailedToCancel)
		}
		return
	}

	h.logger.Info("POST /api/bookings/{id}/cancel - Booking cancelled: booking_id=%d", bookingID)
	handlers.RespondMessage(w, http.StatusOK, booking, msgCancelled)
}
