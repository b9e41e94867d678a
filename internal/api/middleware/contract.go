package middleware

import (
	"context"
	"time"

	"github.com/abhi96256/Appoinment/internal/service/auth"
)

// TokenVerifier проверка JWT администратора
type TokenVerifier interface {
	Verify(token string) (*auth.User, error)
}

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// RateLimitMetrics счетчик отклоненных запросов
type RateLimitMetrics interface {
	IncRateLimited(path string)
}

// Limiter решает, пропускать ли запрос с ключом key.
// retryAfter имеет смысл только при allowed == false
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
