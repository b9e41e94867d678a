package update_service

import (
	"strings"

	"github.com/abhi96256/Appoinment/internal/service/catalog/models"
)

// UpdateServiceRequest HTTP request model. isActive опционален
type UpdateServiceRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Duration    int      `json:"duration" validate:"required,min=15,max=480"`
	Price       *float64 `json:"price" validate:"required,gte=0,money"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateServiceRequest) ToServiceRequest(id int64) *models.UpdateServiceRequest {
	return &models.UpdateServiceRequest{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Duration:    r.Duration,
		Price:       *r.Price,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}
