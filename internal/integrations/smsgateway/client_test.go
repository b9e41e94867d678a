package smsgateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/pkg/logger"
)

func TestClient_Send(t *testing.T) {
	var got SendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"message_id":"m-1","status":"queued"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token", "BOOKAPPT", time.Second, logger.NewNop())
	require.NoError(t, client.Send(context.Background(), "+919876543210", "hello"))

	assert.Equal(t, "Bearer token", auth)
	assert.Equal(t, SendRequest{From: "BOOKAPPT", To: "+919876543210", Body: "hello"}, got)
}

func TestClient_SendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":400,"message":"invalid number"}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL+"/bad", "", "", time.Second, logger.NewNop()).Send(context.Background(), "+1", "x")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "invalid number")

	err = NewClient(srv.URL, "", "", time.Second, logger.NewNop()).Send(context.Background(), "+1", "x")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	err = NewClient("", "", "", time.Second, logger.NewNop()).Send(context.Background(), "+1", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
