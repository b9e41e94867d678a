package update_booking_status

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
	msgSlotNotAvailable = "Selected time slot is no longer available"
	msgInvalidStatus    = "Invalid status. Use confirmed, cancelled or completed"
	msgUpdated          = "Booking status updated successfully"
	msgFailedToUpdate   = "Failed to update booking status"
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

// Handle PATCH /api/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /api/bookings/{id}/status - Invalid booking ID: %s", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /api/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		h.logger.Warn("PATCH /api/bookings/{id}/status - Validation failed: %+v", details)
		handlers.RespondValidationError(w, details)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), bookingID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /api/bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /api/bookings/{id}/status - Slot taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /api/bookings/{id}/status - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /api/bookings/{id}/status - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w, msgFailedToUpdate)
		}
		return
	}

	h.logger.Info("PATCH /api/bookings/{id}/status - Status updated: booking_id=%d, status=%s", bookingID, req.Status)
	handlers.RespondMessage(w, http.StatusOK, booking, msgUpdated)
}
