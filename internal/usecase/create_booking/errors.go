package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrBookingDateInPast возвращается, когда дата бронирования раньше сегодняшней
	ErrBookingDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrInvalidTimeSlot возвращается, когда конец визита выходит за пределы суток
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrOutsideBusinessHours возвращается, когда визит не укладывается в рабочие часы или начинается в перерыв
	ErrOutsideBusinessHours = errors.New("create_booking: selected time is outside business hours")

	// ErrSlotNotAvailable возвращается, когда выбранное время пересекается с подтверждённой бронью
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
