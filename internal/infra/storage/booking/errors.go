package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят подтверждённой бронью (уникальный индекс)
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrDuplicateConfirmationCode возвращается при коллизии кода подтверждения
	ErrDuplicateConfirmationCode = errors.New("booking.repository: duplicate confirmation code")

	// ErrSerialization возвращается при конфликте сериализуемой транзакции
	ErrSerialization = errors.New("booking.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")
)
