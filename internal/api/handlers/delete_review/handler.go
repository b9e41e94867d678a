package delete_review

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
	msgDeleted         = "Review deleted successfully"
	msgFailed          = "Failed to delete review"
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

// Handle DELETE /api/reviews/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || reviewID <= 0 {
		h.logger.Warn("DELETE /api/reviews/{id} - Invalid review ID: %s", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	if err := h.service.Delete(r.Context(), reviewID); err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("DELETE /api/reviews/{id} - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /api/reviews/{id} - Failed to delete review: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("DELETE /api/reviews/{id} - Review deleted: review_id=%d", reviewID)
	handlers.RespondMessage(w, http.StatusOK, nil, msgDeleted)
}
