package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// Scheduler ставит и снимает отложенные напоминания
type Scheduler struct {
	client       Enqueuer
	inspector    TaskDeleter
	lead         time.Duration
	queue        string
	loc          *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewScheduler создает планировщик напоминаний
func NewScheduler(client Enqueuer, inspector TaskDeleter, lead time.Duration, queue string, loc *time.Location, metrics Metrics, logger Logger) *Scheduler {
	if queue == "" {
		queue = "default"
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		client:       client,
		inspector:    inspector,
		lead:         lead,
		queue:        queue,
		loc:          loc,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider позволяет установить кастомный TimeProvider (для тестов)
func (s *Scheduler) WithTimeProvider(tp TimeProvider) *Scheduler {
	s.timeProvider = tp
	return s
}

// Schedule ставит напоминание на start - lead. Прошедшее время пропускается.
// Существующее напоминание той же брони заменяется
func (s *Scheduler) Schedule(ctx context.Context, booking *domain.Booking) error {
	fireAt := StartsAt(booking, s.loc).Add(-s.lead)
	if !fireAt.After(s.timeProvider.Now()) {
		s.logger.Info("Schedule: reminder time %s for booking id=%d already passed, skipping",
			fireAt.Format(time.RFC3339), booking.ID)
		s.metrics.IncReminderScheduled("skipped")
		return nil
	}

	task, opts, err := NewReminderTask(booking.ID, fireAt, s.queue)
	if err != nil {
		s.metrics.IncReminderScheduled("error")
		return fmt.Errorf("%w: build task: %v", ErrSchedule, err)
	}

	_, err = s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// повторное подтверждение: заменяем старую задачу
		if derr := s.delete(booking.ID); derr != nil {
			s.metrics.IncReminderScheduled("error")
			return fmt.Errorf("%w: replace existing task: %v", ErrSchedule, derr)
		}
		_, err = s.client.EnqueueContext(ctx, task, opts...)
	}
	if err != nil {
		s.metrics.IncReminderScheduled("error")
		return fmt.Errorf("%w: enqueue booking id=%d: %v", ErrSchedule, booking.ID, err)
	}

	s.metrics.IncReminderScheduled("scheduled")
	s.logger.Info("Schedule: reminder for booking id=%d at %s", booking.ID, fireAt.Format(time.RFC3339))
	return nil
}

// Cancel снимает напоминание. Отсутствие задачи не ошибка
func (s *Scheduler) Cancel(_ context.Context, bookingID int64) error {
	if err := s.delete(bookingID); err != nil {
		return fmt.Errorf("%w: booking id=%d: %v", ErrCancel, bookingID, err)
	}
	s.logger.Info("Cancel: reminder for booking id=%d removed", bookingID)
	return nil
}

func (s *Scheduler) delete(bookingID int64) error {
	err := s.inspector.DeleteTask(s.queue, domain.ReminderTaskID(bookingID))
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return err
}

// NoopScheduler используется, когда напоминания отключены
type NoopScheduler struct{}

func (NoopScheduler) Schedule(context.Context, *domain.Booking) error { return nil }

func (NoopScheduler) Cancel(context.Context, int64) error { return nil }
