package get_service_reviews

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/service/reviews/models"
)

type ReviewService interface {
	ListForService(ctx context.Context, serviceID int64, req *models.ListReviewsRequest) (*models.ServiceReviewsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
