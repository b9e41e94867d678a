package reviews

import "errors"

var (
	// ErrNotEligible возвращается, когда нет завершённого бронирования клиента для услуги
	ErrNotEligible = errors.New("booking not found or not eligible for review")

	// ErrReviewExists возвращается при повторном отзыве на бронирование
	ErrReviewExists = errors.New("review already exists for this booking")

	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review not found")

	// ErrInvalidInput возвращается при некорректных данных отзыва
	ErrInvalidInput = errors.New("invalid review data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
