package catalog

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetActive(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, service *domain.Service) (*domain.Service, error)
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
