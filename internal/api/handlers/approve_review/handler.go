package approve_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/reviews"
)

const (
	msgInvalidReviewID = "Invalid review ID"
	msgNotFound        = "Review not found"
	msgApproved        = "Review approved successfully"
	msgDisapproved     = "Review disapproved successfully"
	msgFailed          = "Failed to update review"
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

// Handle PUT /api/reviews/{id}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || reviewID <= 0 {
		h.logger.Warn("PUT /api/reviews/{id}/approve - Invalid review ID: %s", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	var req ApproveReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /api/reviews/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		handlers.RespondValidationError(w, details)
		return
	}

	review, err := h.service.SetApproved(r.Context(), reviewID, *req.IsApproved)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("PUT /api/reviews/{id}/approve - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /api/reviews/{id}/approve - Failed to update review: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	msg := msgDisapproved
	if *req.IsApproved {
		msg = msgApproved
	}

	h.logger.Info("PUT /api/reviews/{id}/approve - Review updated: review_id=%d, approved=%t", reviewID, *req.IsApproved)
	handlers.RespondMessage(w, http.StatusOK, review, msg)
}
