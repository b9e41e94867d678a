package approve_review

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/service/reviews/models"
)

type ReviewService interface {
	SetApproved(ctx context.Context, id int64, approved bool) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
