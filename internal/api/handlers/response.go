package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// Стандартные сообщения об ошибках
const (
	MsgInvalidRequestBody = "Invalid request body"
	MsgValidationFailed   = "Validation failed"
	MsgInternalError      = "Internal server error"
	MsgRouteNotFound      = "Route not found"
)

// Envelope общий формат ответа API
type Envelope struct {
	Success    bool         `json:"success"`
	Data       interface{}  `json:"data,omitempty"`
	Message    string       `json:"message,omitempty"`
	Error      string       `json:"error,omitempty"`
	Details    []FieldError `json:"details,omitempty"`
	Pagination interface{}  `json:"pagination,omitempty"`
}

// FieldError ошибка валидации поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteEnvelope пишет конверт с указанным статусом
func WriteEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// RespondJSON успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	WriteEnvelope(w, status, Envelope{Success: true, Data: data})
}

// RespondMessage успешный ответ с данными и сообщением
func RespondMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	WriteEnvelope(w, status, Envelope{Success: true, Data: data, Message: message})
}

// RespondPaginated успешный ответ со списком и метаданными страницы
func RespondPaginated(w http.ResponseWriter, data interface{}, pagination interface{}) {
	WriteEnvelope(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

// RespondError ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	WriteEnvelope(w, status, Envelope{Success: false, Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError 500 с сообщением операции (например "Failed to create booking")
func RespondInternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = MsgInternalError
	}
	RespondError(w, http.StatusInternalServerError, message)
}

// RespondValidationError 400 "Validation failed" с деталями по полям
func RespondValidationError(w http.ResponseWriter, details []FieldError) {
	WriteEnvelope(w, http.StatusBadRequest, Envelope{Success: false, Error: MsgValidationFailed, Details: details})
}

// DecodeJSON читает тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// NotFound обработчик неизвестных маршрутов
func NotFound(w http.ResponseWriter, _ *http.Request) {
	RespondNotFound(w, MsgRouteNotFound)
}
