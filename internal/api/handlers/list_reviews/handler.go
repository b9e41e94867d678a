package list_reviews

import (
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
)

const (
	msgInvalidParams = "Invalid query parameters"
	msgFailed        = "Failed to fetch reviews"
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

// Handle GET /api/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /api/reviews - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /api/reviews - Failed to list reviews: %v", err)
		handlers.RespondInternalError(w, msgFailed)
		return
	}

	h.logger.Info("GET /api/reviews - Reviews listed: count=%d", len(result.Reviews))
	handlers.RespondPaginated(w, result.Reviews, result.Pagination)
}
