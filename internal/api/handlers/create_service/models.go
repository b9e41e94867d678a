package create_service

import (
	"strings"

	"github.com/abhi96256/Appoinment/internal/service/catalog/models"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Duration    int      `json:"duration" validate:"required,min=15,max=480"`
	Price       *float64 `json:"price" validate:"required,gte=0,money"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		Name:        strings.TrimSpace(r.Name),
		Duration:    r.Duration,
		Price:       *r.Price,
		Description: r.Description,
	}
}
