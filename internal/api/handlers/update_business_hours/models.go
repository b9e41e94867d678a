package update_business_hours

import "github.com/abhi96256/Appoinment/internal/service/hours/models"

// UpdateHoursRequest HTTP request model. serviceId == nil задает глобальные часы
type UpdateHoursRequest struct {
	ServiceID           *int64 `json:"serviceId,omitempty" validate:"omitempty,min=1"`
	StartHour           *int   `json:"startHour" validate:"required,min=0,max=23"`
	EndHour             *int   `json:"endHour" validate:"required,min=1,max=24"`
	BreakStartHour      *int   `json:"breakStartHour" validate:"required,min=0,max=24"`
	BreakEndHour        *int   `json:"breakEndHour" validate:"required,min=0,max=24"`
	ExcludeBreakOverlap bool   `json:"excludeBreakOverlap"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateHoursRequest) ToServiceRequest() *models.UpdateHoursRequest {
	return &models.UpdateHoursRequest{
		ServiceID:           r.ServiceID,
		StartHour:           *r.StartHour,
		EndHour:             *r.EndHour,
		BreakStartHour:      *r.BreakStartHour,
		BreakEndHour:        *r.BreakEndHour,
		ExcludeBreakOverlap: r.ExcludeBreakOverlap,
	}
}
