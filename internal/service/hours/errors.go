package hours

import "errors"

var (
	// ErrHoursNotFound возвращается, когда переопределение не найдено
	ErrHoursNotFound = errors.New("business hours not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных рабочих часах
	ErrInvalidInput = errors.New("invalid business hours")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
