package get_customer_bookings

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/service/bookings/models"
)

type BookingService interface {
	GetCustomerBookings(ctx context.Context, email string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
