package get_service_reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/reviews"
)

const (
	msgInvalidServiceID = "Invalid service ID"
	msgInvalidParams    = "Invalid query parameters"
	msgInvalidRating    = "Rating must be between 1 and 5"
	msgFailed           = "Failed to fetch reviews"
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

// Handle GET /api/reviews/service/{serviceId}
// Query params: page, limit, rating (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /api/reviews/service/{serviceId} - Invalid service ID: %s", mux.Vars(r)["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /api/reviews/service/{serviceId} - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListForService(r.Context(), serviceID, req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRating)

		default:
			h.logger.Error("GET /api/reviews/service/{serviceId} - Failed to list reviews: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("GET /api/reviews/service/{serviceId} - Reviews listed: service_id=%d, count=%d",
		serviceID, len(result.Reviews))
	handlers.RespondPaginated(w, result, result.Pagination)
}
