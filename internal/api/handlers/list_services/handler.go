package list_services

import (
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
)

const msgFailed = "Failed to fetch services"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /api/services - Failed to list services: %v", err)
		handlers.RespondInternalError(w, msgFailed)
		return
	}

	h.logger.Info("GET /api/services - Services listed: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, services)
}
