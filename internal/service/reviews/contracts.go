package reviews

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	List(ctx context.Context, filter domain.ReviewsFilter) ([]*domain.Review, error)
	Count(ctx context.Context, filter domain.ReviewsFilter) (int, error)
	RatingCounts(ctx context.Context, serviceID int64) (map[int]int, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс для проверки права на отзыв
type BookingRepository interface {
	GetCompletedForReview(ctx context.Context, bookingID, serviceID int64, email string) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
