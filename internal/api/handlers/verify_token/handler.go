package verify_token

import (
	"net/http"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/api/middleware"
	"github.com/abhi96256/Appoinment/internal/service/auth"
)

const (
	msgNoToken      = "No token provided"
	msgInvalidToken = "Invalid token"
)

// Response данные владельца токена
type Response struct {
	User *auth.User `json:"user"`
}

type Handler struct {
	verifier TokenVerifier
	logger   Logger
}

func NewHandler(verifier TokenVerifier, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		logger:   logger,
	}
}

// Handle GET /api/auth/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		handlers.RespondUnauthorized(w, msgNoToken)
		return
	}

	user, err := h.verifier.Verify(token)
	if err != nil {
		h.logger.Warn("GET /api/auth/verify - Invalid token: %v", err)
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{User: user})
}
