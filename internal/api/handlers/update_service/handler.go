package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/catalog"
)

const (
	msgInvalidServiceID = "Invalid service ID"
	msgInvalidService   = "Invalid service data"
	msgNotFound         = "Service not found"
	msgUpdated          = "Service updated successfully"
	msgFailed           = "Failed to update service"
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

// Handle PUT /api/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("PUT /api/services/{id} - Invalid service ID: %s", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /api/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		h.logger.Warn("PUT /api/services/{id} - Validation failed: %+v", details)
		handlers.RespondValidationError(w, details)
		return
	}

	service, err := h.service.Update(r.Context(), req.ToServiceRequest(serviceID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /api/services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /api/services/{id} - Invalid service: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("PUT /api/services/{id} - Failed to update service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("PUT /api/services/{id} - Service updated: service_id=%d", serviceID)
	handlers.RespondMessage(w, http.StatusOK, service, msgUpdated)
}
