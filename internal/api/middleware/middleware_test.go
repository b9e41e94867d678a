package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/auth"
	"github.com/abhi96256/Appoinment/pkg/logger"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (*auth.User, error) {
	if token == "good" {
		return &auth.User{ID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}, nil
	}
	return nil, auth.ErrInvalidToken
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) handlers.Envelope {
	t.Helper()
	var env handlers.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAdminAuth(t *testing.T) {
	var seen *auth.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := AdminAuth(fakeVerifier{}, logger.NewNop())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "missing", wantStatus: http.StatusUnauthorized, wantError: "Access token required"},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized, wantError: "Access token required"},
		{name: "invalid", header: "Bearer bad", wantStatus: http.StatusForbidden, wantError: "Invalid or expired token"},
		{name: "valid", header: "Bearer good", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				env := decodeEnvelope(t, rec)
				assert.False(t, env.Success)
				assert.Equal(t, tt.wantError, env.Error)
				assert.Nil(t, seen)
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, "admin@example.com", seen.Email)
		})
	}
}

type countingMetrics struct{ limited int }

func (m *countingMetrics) IncRateLimited(string) { m.limited++ }

func TestRateLimit_Memory(t *testing.T) {
	limiter := NewMemoryLimiter(2, time.Minute)
	metrics := &countingMetrics{}
	h := RateLimit(limiter, metrics, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/book", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, do("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusCreated, do("10.0.0.1:1001").Code)

	rec := do("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, "Too many requests, please try again later", decodeEnvelope(t, rec).Error)
	assert.Equal(t, 1, metrics.limited)

	// другой клиент не затронут
	assert.Equal(t, http.StatusCreated, do("10.0.0.2:1000").Code)
}

type errLimiter struct{}

func (errLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis down")
}

func TestRateLimit_FailOpen(t *testing.T) {
	h := RateLimit(errLimiter{}, &countingMetrics{}, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/book", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := RequestID(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", fromCtx)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
