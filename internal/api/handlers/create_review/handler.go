package create_review

import (
	"errors"
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/reviews"
)

const (
	msgNotEligible   = "Booking not found or not eligible for review"
	msgReviewExists  = "Review already exists for this booking"
	msgInvalidReview = "Invalid review data"
	msgCreated       = "Review submitted successfully"
	msgFailed        = "Failed to create review"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /api/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		h.logger.Warn("POST /api/reviews - Validation failed: %+v", details)
		handlers.RespondValidationError(w, details)
		return
	}

	review, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrNotEligible):
			h.logger.Warn("POST /api/reviews - Not eligible: booking_id=%d, service_id=%d", req.BookingID, req.ServiceID)
			handlers.RespondNotFound(w, msgNotEligible)

		case errors.Is(err, reviews.ErrReviewExists):
			h.logger.Warn("POST /api/reviews - Review exists: booking_id=%d", req.BookingID)
			handlers.RespondConflict(w, msgReviewExists)

		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReview)

		default:
			h.logger.Error("POST /api/reviews - Failed to create review: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("POST /api/reviews - Review created: review_id=%d, booking_id=%d", review.ID, req.BookingID)
	handlers.RespondMessage(w, http.StatusCreated, review, msgCreated)
}
