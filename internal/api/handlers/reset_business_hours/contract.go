package reset_business_hours

import "context"

type HoursService interface {
	Reset(ctx context.Context, serviceID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
