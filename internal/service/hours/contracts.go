package hours

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	GetWithHierarchy(ctx context.Context, serviceID *int64) (*domain.BusinessHoursConfig, error)
	Upsert(ctx context.Context, config *domain.BusinessHoursConfig) (*domain.BusinessHoursConfig, error)
	DeleteByService(ctx context.Context, serviceID *int64) error
}

// ServiceRepository интерфейс каталога услуг (проверка существования)
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
