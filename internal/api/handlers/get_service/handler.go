package get_service

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
	msgNotFound         = "Service not found"
	msgFailed           = "Failed to fetch service"
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

// Handle GET /api/services/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /api/services/{id} - Invalid service ID: %s", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	service, err := h.service.Get(r.Context(), serviceID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("GET /api/services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /api/services/{id} - Failed to get service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, service)
}
