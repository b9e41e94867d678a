package health

import (
	"context"
	"net/http"
	"time"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Response состояние сервиса
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{Status: "OK", Timestamp: time.Now().UTC(), Database: "connected"}

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Database ping failed: %v", err)
		resp.Status = "ERROR"
		resp.Database = "disconnected"
		handlers.WriteEnvelope(w, http.StatusServiceUnavailable, handlers.Envelope{
			Success: false,
			Data:    resp,
			Error:   "Database unavailable",
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
