package get_available_slots

import (
	"context"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetConfirmedByDate получает подтверждённые бронирования на дату
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	// GetActive получает активную услугу, неактивная считается отсутствующей
	GetActive(ctx context.Context, id int64) (*domain.Service, error)
}

// HoursResolver возвращает действующие рабочие часы с учетом иерархии
type HoursResolver interface {
	Resolve(ctx context.Context, serviceID *int64) (domain.EffectiveBusinessHours, error)
}

// Metrics бизнес-метрики
type Metrics interface {
	ObserveSlotsServed(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
