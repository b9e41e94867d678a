package reminders

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingRepo "github.com/abhi96256/Appoinment/internal/infra/storage/booking"
)

// Handler обрабатывает задачи напоминаний
type Handler struct {
	bookings BookingReader
	sender   ReminderSender
	logger   Logger
}

// NewHandler создает обработчик напоминаний
func NewHandler(bookings BookingReader, sender ReminderSender, logger Logger) *Handler {
	return &Handler{
		bookings: bookings,
		sender:   sender,
		logger:   logger,
	}
}

// ProcessTask реализует asynq.Handler
func (h *Handler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	p, err := parsePayload(task)
	if err != nil {
		h.logger.Error("ReminderWorker: %v", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	booking, err := h.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			h.logger.Warn("ReminderWorker: booking id=%d not found, dropping reminder", p.BookingID)
			return fmt.Errorf("booking id=%d not found: %w", p.BookingID, asynq.SkipRetry)
		}
		h.logger.Error("ReminderWorker: failed to load booking id=%d: %v", p.BookingID, err)
		return err
	}

	if booking.Status != domain.StatusConfirmed {
		h.logger.Info("ReminderWorker: booking id=%d is %s, reminder not sent", booking.ID, booking.Status)
		return nil
	}

	if err := h.sender.Reminder(ctx, booking); err != nil {
		h.logger.Warn("ReminderWorker: reminder for booking id=%d failed: %v", booking.ID, err)
		return err
	}

	h.logger.Info("ReminderWorker: reminder sent for booking id=%d", booking.ID)
	return nil
}

// NewServer создает asynq сервер и mux с обработчиком напоминаний
func NewServer(redisOpt asynq.RedisClientOpt, concurrency int, queue string, handler *Handler) (*asynq.Server, *asynq.ServeMux) {
	if concurrency <= 0 {
		concurrency = 5
	}
	if queue == "" {
		queue = "default"
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queue: 1},
	})

	mux := asynq.NewServeMux()
	mux.Handle(TypeBookingReminder, handler)

	return srv, mux
}
