package get_customer_bookings

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
)

const (
	msgInvalidEmail = "Valid email is required"
	msgFailed       = "Failed to fetch customer bookings"
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

// Handle GET /api/bookings/customer/{email}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(mux.Vars(r)["email"])
	if err := handlers.Validator().Var(email, "required,email"); err != nil {
		h.logger.Warn("GET /api/bookings/customer/{email} - Invalid email: %q", email)
		handlers.RespondBadRequest(w, msgInvalidEmail)
		return
	}

	result, err := h.service.GetCustomerBookings(r.Context(), email)
	if err != nil {
		h.logger.Error("GET /api/bookings/customer/{email} - Failed to get bookings: email=%s, error=%v", email, err)
		handlers.RespondInternalError(w, msgFailed)
		return
	}

	h.logger.Info("GET /api/bookings/customer/{email} - Bookings retrieved: email=%s, count=%d",
		email, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
