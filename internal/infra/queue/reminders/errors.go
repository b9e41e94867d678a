package reminders

import "errors"

var (
	// ErrSchedule возвращается при ошибке постановки напоминания
	ErrSchedule = errors.New("reminders: failed to schedule reminder")

	// ErrCancel возвращается при ошибке удаления напоминания
	ErrCancel = errors.New("reminders: failed to cancel reminder")

	// ErrInvalidPayload возвращается при некорректной задаче
	ErrInvalidPayload = errors.New("reminders: invalid task payload")
)
