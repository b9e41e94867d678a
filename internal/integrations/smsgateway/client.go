package smsgateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент HTTP SMS шлюза
type Client struct {
	url        string
	token      string
	from       string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SMS шлюза
func NewClient(url, token, from string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url:   url,
		token: token,
		from:  from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет SMS на номер в международном формате
func (c *Client) Send(ctx context.Context, phone, text string) error {
	if c.url == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(SendRequest{From: c.from, To: phone, Body: text})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errResp ErrorResponse
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: %d: %s", ErrRejected, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: %d: %s", ErrRejected, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Тело ответа необязательно
	var sendResp SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil && err != io.EOF {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("SMS sent to %s, message_id=%s", phone, sendResp.MessageID)
	return nil
}
