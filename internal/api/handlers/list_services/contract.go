package list_services

import (
	"context"

	"github.com/abhi96256/Appoinment/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context) ([]models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
