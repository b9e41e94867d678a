package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingPayload struct {
	ServiceID     int64    `json:"serviceId" validate:"required,min=1"`
	CustomerEmail string   `json:"customerEmail" validate:"required,email"`
	CustomerPhone string   `json:"customerPhone" validate:"required,phone"`
	BookingDate   string   `json:"bookingDate" validate:"required,isodate"`
	StartTime     string   `json:"startTime" validate:"required,hhmm"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0,money"`
}

func TestValidateStruct(t *testing.T) {
	price := 25.5
	valid := bookingPayload{
		ServiceID:     1,
		CustomerEmail: "jane@example.com",
		CustomerPhone: "+91 98765-43210",
		BookingDate:   "2025-10-15",
		StartTime:     "9:30",
		Price:         &price,
	}
	assert.Empty(t, ValidateStruct(&valid))

	badPrice := 10.123
	invalid := bookingPayload{
		CustomerEmail: "not-an-email",
		CustomerPhone: "abc",
		BookingDate:   "15/10/2025",
		StartTime:     "24:00",
		Price:         &badPrice,
	}
	details := ValidateStruct(&invalid)

	byField := make(map[string]string, len(details))
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "serviceId is required", byField["serviceId"])
	assert.Equal(t, "Valid email is required", byField["customerEmail"])
	assert.Equal(t, "Valid phone number is required", byField["customerPhone"])
	assert.Equal(t, "Valid date is required (YYYY-MM-DD)", byField["bookingDate"])
	assert.Equal(t, "Valid start time is required (HH:MM)", byField["startTime"])
	assert.Equal(t, "Price must have at most 2 decimal places", byField["price"])
}

func TestRespondValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidationError(rec, []FieldError{{Field: "rating", Message: "rating must be at most 5"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, MsgValidationFailed, env.Error)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "rating", env.Details[0].Field)
}

func TestRespondInternalError_DefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgInternalError)
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Route not found"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Haircut"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "Haircut", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{broken"))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestQueryHelpers(t *testing.T) {
	q := url.Values{"page": {"2"}, "bad": {"-1"}, "flag": {"true"}, "word": {"maybe"}}

	page, err := QueryInt(q, "page")
	require.NoError(t, err)
	assert.Equal(t, 2, *page)

	missing, err := QueryInt64(q, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryInt64(q, "bad")
	assert.Error(t, err)

	flag, err := QueryBool(q, "flag")
	require.NoError(t, err)
	assert.True(t, *flag)

	_, err = QueryBool(q, "word")
	assert.Error(t, err)
}
