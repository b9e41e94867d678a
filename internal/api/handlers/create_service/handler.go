package create_service

import (
	"errors"
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/catalog"
)

const (
	msgInvalidService = "Invalid service data"
	msgFailed         = "Failed to create service"
)

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

// Handle POST /api/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /api/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		h.logger.Warn("POST /api/services - Validation failed: %+v", details)
		handlers.RespondValidationError(w, details)
		return
	}

	service, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /api/services - Invalid service: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("POST /api/services - Failed to create service: %v", err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("POST /api/services - Service created: service_id=%d", service.ID)
	handlers.RespondMessage(w, http.StatusCreated, service, "Service created successfully")
}
