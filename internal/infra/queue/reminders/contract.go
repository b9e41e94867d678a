package reminders

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// Enqueuer постановка задач (asynq.Client)
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskDeleter удаление отложенных задач (asynq.Inspector)
type TaskDeleter interface {
	DeleteTask(queue, id string) error
}

// BookingReader чтение бронирования воркером
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ReminderSender отправка напоминания клиенту
type ReminderSender interface {
	Reminder(ctx context.Context, booking *domain.Booking) error
}

// Metrics счетчик запланированных напоминаний
type Metrics interface {
	IncReminderScheduled(result string)
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

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
