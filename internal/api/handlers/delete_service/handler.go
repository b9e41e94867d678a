package delete_service

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
	msgDeleted          = "Service deleted successfully"
	msgFailed           = "Failed to delete service"
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

// Handle DELETE /api/services/{id}
// Мягкое удаление: услуга скрывается из каталога, бронирования сохраняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("DELETE /api/services/{id} - Invalid service ID: %s", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /api/services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /api/services/{id} - Failed to delete service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("DELETE /api/services/{id} - Service deactivated: service_id=%d", serviceID)
	handlers.RespondMessage(w, http.StatusOK, nil, msgDeleted)
}
