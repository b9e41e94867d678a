package create_booking

import (
	"context"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActive(ctx context.Context, id int64) (*domain.Service, error)
}

// HoursResolver возвращает действующие рабочие часы с учетом иерархии
type HoursResolver interface {
	Resolve(ctx context.Context, serviceID *int64) (domain.EffectiveBusinessHours, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeGenerator генератор кодов подтверждения
type CodeGenerator interface {
	Generate() (string, error)
}

// Notifier отправка уведомлений клиенту (асинхронно, ошибки не возвращаются)
type Notifier interface {
	BookingConfirmed(booking *domain.Booking)
}

// ReminderScheduler планировщик напоминаний о визите
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *domain.Booking) error
}

// EventPublisher публикация событий жизненного цикла бронирования
type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType domain.BookingEventType, booking *domain.Booking) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict(stage string)
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
