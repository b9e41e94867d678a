package reminders

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// TypeBookingReminder тип задачи напоминания
const TypeBookingReminder = "booking:reminder"

const maxRetry = 3

// Payload полезная нагрузка задачи
type Payload struct {
	BookingID int64 `json:"bookingId"`
}

// NewReminderTask создает задачу с фиксированным ID, чтобы ее можно было отменить
func NewReminderTask(bookingID int64, fireAt time.Time, queue string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(Payload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}

	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.TaskID(domain.ReminderTaskID(bookingID)),
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(maxRetry),
		asynq.Queue(queue),
	}

	return task, opts, nil
}

func parsePayload(task *asynq.Task) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.BookingID <= 0 {
		return p, fmt.Errorf("%w: missing booking id", ErrInvalidPayload)
	}
	return p, nil
}

// StartsAt момент начала записи в часовом поясе салона
func StartsAt(booking *domain.Booking, loc *time.Location) time.Time {
	y, m, d := booking.BookingDate.Date()
	minutes := booking.StartTime.Minutes()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}
