package create_booking

import (
	"strings"
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
	bookingModels "github.com/abhi96256/Appoinment/internal/service/bookings/models"
	createBooking "github.com/abhi96256/Appoinment/internal/usecase/create_booking"
	"github.com/abhi96256/Appoinment/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64   `json:"serviceId" validate:"required,min=1"`
	CustomerName  string  `json:"customerName" validate:"required,min=1,max=100"`
	CustomerEmail string  `json:"customerEmail" validate:"required,email"`
	CustomerPhone string  `json:"customerPhone" validate:"required,phone"`
	BookingDate   string  `json:"bookingDate" validate:"required,isodate"` // "2025-10-15"
	StartTime     string  `json:"startTime" validate:"required,hhmm"`      // "10:00"
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Normalize обрезает пробелы в строковых полях
func (r *CreateBookingRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	if r.Notes != nil {
		notes := strings.TrimSpace(*r.Notes)
		r.Notes = &notes
	}
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          bookingDate,
		StartTime:     startTime,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *bookingModels.BookingResponse {
	return bookingModels.FromDomainBooking(resp.Booking)
}
