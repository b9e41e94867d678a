package get_business_hours

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/service/hours/models"
)

type HoursService interface {
	Get(ctx context.Context, serviceID *int64) (*models.HoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
