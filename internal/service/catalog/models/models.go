package models

import (
	"time"

	"github.com/abhi96256/Appoinment/internal/domain"
)

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name        string
	Duration    int
	Price       float64
	Description *string
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		DurationMinutes: r.Duration,
		Price:           r.Price,
		Description:     r.Description,
		IsActive:        true,
	}
}

// UpdateServiceRequest запрос на обновление услуги.
// IsActive == nil оставляет текущее значение
type UpdateServiceRequest struct {
	ID          int64
	Name        string
	Duration    int
	Price       float64
	Description *string
	IsActive    *bool
}

// ApplyTo переносит поля запроса в существующую услугу
func (r *UpdateServiceRequest) ApplyTo(service *domain.Service) {
	service.Name = r.Name
	service.DurationMinutes = r.Duration
	service.Price = r.Price
	service.Description = r.Description
	if r.IsActive != nil {
		service.IsActive = *r.IsActive
	}
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Duration    int       `json:"duration"`
	Price       float64   `json:"price"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Duration:    s.DurationMinutes,
		Price:       s.Price,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []*domain.Service) []ServiceResponse {
	resp := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		if r := FromDomainService(s); r != nil {
			resp = append(resp, *r)
		}
	}
	return resp
}
