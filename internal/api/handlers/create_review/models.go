package create_review

import (
	"strings"

	"github.com/abhi96256/Appoinment/internal/service/reviews/models"
)

// CreateReviewRequest HTTP request model
type CreateReviewRequest struct {
	ServiceID     int64   `json:"serviceId" validate:"required,min=1"`
	BookingID     int64   `json:"bookingId" validate:"required,min=1"`
	CustomerName  string  `json:"customerName" validate:"required,max=100"`
	CustomerEmail string  `json:"customerEmail" validate:"required,email"`
	Rating        int     `json:"rating" validate:"required,min=1,max=5"`
	Comment       *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateReviewRequest) ToServiceRequest() *models.CreateReviewRequest {
	return &models.CreateReviewRequest{
		ServiceID:     r.ServiceID,
		BookingID:     r.BookingID,
		CustomerName:  strings.TrimSpace(r.CustomerName),
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		Rating:        r.Rating,
		Comment:       r.Comment,
	}
}
