package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/auth"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgLoggedIn           = "Login successful"
	msgFailed             = "Login failed"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /api/auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if details := handlers.ValidateStruct(&req); len(details) > 0 {
		handlers.RespondValidationError(w, details)
		return
	}

	result, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /api/auth/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /api/auth/login - Login failed: %v", err)
			handlers.RespondInternalError(w, msgFailed)
		}
		return
	}

	h.logger.Info("POST /api/auth/login - Admin logged in: email=%s", result.User.Email)
	handlers.RespondMessage(w, http.StatusOK, result, msgLoggedIn)
}
