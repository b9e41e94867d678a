package events

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// BookingPayload данные бронирования в событии
type BookingPayload struct {
	ID               int64  `json:"id"`
	ServiceID        int64  `json:"serviceId"`
	CustomerName     string `json:"customerName"`
	CustomerEmail    string `json:"customerEmail"`
	BookingDate      string `json:"bookingDate"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Status           string `json:"status"`
	ConfirmationCode string `json:"confirmationCode"`
}

// BookingEvent сообщение жизненного цикла бронирования
type BookingEvent struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    BookingPayload `json:"booking"`
}

func newBookingPayload(b *domain.Booking) BookingPayload {
	return BookingPayload{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		BookingDate:      b.BookingDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Status:           string(b.Status),
		ConfirmationCode: b.ConfirmationCode,
	}
}
