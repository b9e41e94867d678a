package bookings

import (
	"context"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений клиенту (асинхронно)
type Notifier interface {
	BookingCancelled(booking *domain.Booking)
}

// ReminderScheduler планировщик напоминаний
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, bookingID int64) error
}

// EventPublisher публикация событий жизненного цикла бронирования
type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType domain.BookingEventType, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
