package domain

import (
	"strconv"
	"time"

	"github.com/abhi96256/Appoinment/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking represents a customer appointment
type Booking struct {
	ID               int64
	ServiceID        int64
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	BookingDate      time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	Status           BookingStatus
	Notes            *string
	ConfirmationCode string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Service is populated when the booking is loaded together with its service
	Service *Service
}

// BlocksAvailability returns true if the booking occupies its time range.
// Only confirmed bookings take part in conflict checks.
func (b *Booking) BlocksAvailability() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeReviewed returns true if the customer may leave a review for this booking
func (b *Booking) CanBeReviewed() bool {
	return b.Status == StatusCompleted
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	Date          *time.Time     // Конкретная дата (опционально)
	Status        *BookingStatus // Фильтр по статусу (опционально)
	CustomerEmail *string        // Фильтр по email клиента (опционально)
	Limit         uint64         // 0 = без ограничения
	Offset        uint64
}

// ReminderTaskID identifier of the scheduled reminder for a booking
func ReminderTaskID(bookingID int64) string {
	return "booking-reminder-" + strconv.FormatInt(bookingID, 10)
}
